package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/config"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/transport/http/handlers"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/transport/http/middleware"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/usecase"
)

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config    *config.AppConfig
	Logger    *zap.Logger
	Scheduler *usecase.SyncScheduler
	Sessions  *usecase.SessionManager
}

// Register configures the Gin engine for the local status surface.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))

	statusHandler := handlers.NewStatusHandler(deps.Scheduler, deps.Sessions)

	r.GET("/healthz", statusHandler.Healthz)
	r.GET("/snapshot", statusHandler.Snapshot)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
