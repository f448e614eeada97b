package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/domain"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/config"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/httpexec"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/logger"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/rest"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/security"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/telemetry"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/tokenstore"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/transport/http/routes"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/usecase"
)

// Application wires the client together: session manager over the token file,
// resilient transport over the remote API, the sync scheduler and the local
// status surface.
type Application struct {
	cfg       *config.AppConfig
	logger    *zap.Logger
	sessions  *usecase.SessionManager
	auth      *usecase.AuthService
	scheduler *usecase.SyncScheduler
	engine    *gin.Engine
}

// New builds the application from configuration.
func New(_ context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	metrics, err := telemetry.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	store := tokenstore.NewFileStore(cfg.Auth.TokenFile)
	sessions := usecase.NewSessionManager(store, log)
	if restored := sessions.Restore(); restored.Status == domain.StatusAuthenticated {
		log.Info("restored persisted session", zap.String("subject", restored.Claims.SubjectID))
	}

	executor := httpexec.New(cfg.API.BaseURL, cfg.API.Timeout)
	client := rest.NewClient(executor, sessions, rest.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
	}, log).WithMetrics(metrics)
	api := rest.NewAPI(client)

	scheduler := usecase.NewSyncScheduler(api, usecase.SchedulerConfig{
		PassHours:        cfg.Sync.PassHours,
		PassMinElevation: cfg.Sync.PassMinElevation,
	}, log).WithMetrics(metrics)

	auth := usecase.NewAuthService(api, sessions, security.RegistrationPasswordValidator(), log)

	var engine *gin.Engine
	if cfg.Status.Enabled {
		engine = routes.Register(routes.Dependencies{
			Config:    cfg,
			Logger:    log,
			Scheduler: scheduler,
			Sessions:  sessions,
		})
	}

	return &Application{
		cfg:       cfg,
		logger:    log,
		sessions:  sessions,
		auth:      auth,
		scheduler: scheduler,
		engine:    engine,
	}, nil
}

// Sessions exposes the session manager.
func (a *Application) Sessions() *usecase.SessionManager { return a.sessions }

// Auth exposes the auth service.
func (a *Application) Auth() *usecase.AuthService { return a.auth }

// Scheduler exposes the sync scheduler.
func (a *Application) Scheduler() *usecase.SyncScheduler { return a.scheduler }

// Run performs the initial refresh, arms the periodic timer and serves the
// status surface until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer a.scheduler.Close()

	a.scheduler.RefreshNow(ctx)
	if a.cfg.Sync.AutoRefresh {
		a.scheduler.EnableAutoRefresh(ctx, a.cfg.Sync.Interval)
	}

	if a.engine == nil {
		<-ctx.Done()
		return nil
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.Status.Host, a.cfg.Status.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting skywatch client",
		zap.String("env", a.cfg.App.Env),
		zap.String("status_address", srv.Addr),
		zap.String("api_base_url", a.cfg.API.BaseURL),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run status server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown status server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
