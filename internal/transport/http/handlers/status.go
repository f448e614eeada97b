package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/domain"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/usecase"
)

// StatusHandler exposes the headless client's read-only operational surface:
// liveness plus the current collection snapshot projected through the same
// view pipeline the library consumers use.
type StatusHandler struct {
	scheduler *usecase.SyncScheduler
	sessions  *usecase.SessionManager
	startedAt time.Time
}

// NewStatusHandler builds a status handler over the running scheduler and
// session manager.
func NewStatusHandler(scheduler *usecase.SyncScheduler, sessions *usecase.SessionManager) *StatusHandler {
	return &StatusHandler{
		scheduler: scheduler,
		sessions:  sessions,
		startedAt: time.Now().UTC(),
	}
}

// Healthz reports client liveness, session state and refresh status.
func (h *StatusHandler) Healthz(c *gin.Context) {
	snap := h.scheduler.Snapshot()

	resp := HealthResponse{
		Status:        "ok",
		StartedAt:     h.startedAt,
		SessionStatus: string(h.sessions.Current().Status),
		AutoRefresh:   h.scheduler.AutoRefreshEnabled(),
	}
	if !snap.LastUpdated.IsZero() {
		updated := snap.LastUpdated
		resp.LastUpdated = &updated
	}

	c.JSON(http.StatusOK, resp)
}

// Snapshot renders the current collections filtered and sorted per the query
// parameters: q, satellite_sort, pass_sort, min_elevation, visible_only.
func (h *StatusHandler) Snapshot(c *gin.Context) {
	params, err := viewParametersFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	snap := h.scheduler.Snapshot()
	satellites := domain.ProjectSatellites(snap.Favorites, params)
	passes := domain.ProjectPasses(snap.Passes, params)

	resp := SnapshotResponse{
		Satellites: make([]SatelliteRow, 0, len(satellites)),
		Passes:     make([]PassRow, 0, len(passes)),
		Errors: SnapshotErrors{
			Sync:      snap.SyncError,
			Favorites: snap.FavoritesError,
			Passes:    snap.PassesError,
		},
	}
	if !snap.LastUpdated.IsZero() {
		updated := snap.LastUpdated
		resp.LastUpdated = &updated
	}

	for _, sat := range satellites {
		row := SatelliteRow{
			ID:         sat.ID,
			NoradID:    sat.NoradID,
			Name:       sat.Name,
			Category:   sat.Category,
			AltitudeKm: sat.Altitude(),
			VelocityKm: sat.Velocity(),
			AddedAt:    sat.AddedAt,
		}
		if sat.CurrentPosition != nil {
			at := sat.CurrentPosition.Timestamp
			row.PositionAt = &at
		}
		resp.Satellites = append(resp.Satellites, row)
	}

	for _, p := range passes {
		resp.Passes = append(resp.Passes, PassRow{
			NoradID:         p.NoradID,
			SatelliteName:   p.SatelliteName,
			StartTime:       p.StartTime,
			DurationSeconds: p.DurationSeconds,
			MaxElevation:    p.MaxElevationDegrees,
			Visibility:      string(p.Visibility),
			Magnitude:       p.Magnitude,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func viewParametersFromQuery(c *gin.Context) (domain.ViewParameters, error) {
	params := domain.ViewParameters{
		SatelliteQuery:   c.Query("q"),
		SatelliteSortKey: domain.SatelliteSortKey(c.DefaultQuery("satellite_sort", string(domain.SatelliteSortByName))),
		PassSortKey:      domain.PassSortKey(c.DefaultQuery("pass_sort", string(domain.PassSortByStartTime))),
	}

	if raw := c.Query("min_elevation"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.ViewParameters{}, err
		}
		params.PassMinElevation = value
	}

	if raw := c.Query("visible_only"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.ViewParameters{}, err
		}
		params.ShowOnlyVisible = value
	}

	return params, nil
}
