package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/domain"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/port"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/telemetry"
)

// SchedulerConfig carries the fetch window parameters for pass predictions.
type SchedulerConfig struct {
	PassHours        int
	PassMinElevation float64
}

// Snapshot is the read view of the scheduler's collections. Slices are copies;
// callers may keep them across refreshes.
type Snapshot struct {
	Favorites   []domain.FavoriteSatellite
	Passes      []domain.Pass
	LastUpdated time.Time

	// One retained message per failure kind, cleared by the next success
	// of the same kind.
	SyncError      string
	FavoritesError string
	PassesError    string
}

// SyncScheduler maintains the favorites and pass collections as coherent
// periodic snapshots. Each refresh cycle is health-gated: an unhealthy probe
// clears both collections instead of leaving stale data that looks current.
// At most one full cycle is in flight at a time; ticks that land during an
// active cycle are dropped, never queued.
type SyncScheduler struct {
	api     port.TrackingAPI
	cfg     SchedulerConfig
	log     *zap.Logger
	metrics *telemetry.Metrics
	now     func() time.Time

	mu                sync.Mutex
	favorites         []domain.FavoriteSatellite
	passes            []domain.Pass
	lastUpdated       time.Time
	syncErr           string
	favoritesErr      string
	passesErr         string
	cycleInFlight     bool
	positionsInFlight bool
	closed            bool
	stopAuto          chan struct{}
}

// NewSyncScheduler constructs a scheduler over the supplied tracking API.
func NewSyncScheduler(api port.TrackingAPI, cfg SchedulerConfig, log *zap.Logger) *SyncScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PassHours <= 0 {
		cfg.PassHours = 24
	}
	return &SyncScheduler{
		api: api,
		cfg: cfg,
		log: log,
		now: time.Now,
	}
}

// WithMetrics attaches scheduler collectors.
func (s *SyncScheduler) WithMetrics(m *telemetry.Metrics) *SyncScheduler {
	s.metrics = m
	return s
}

// WithClock overrides the time source. Intended for tests.
func (s *SyncScheduler) WithClock(now func() time.Time) *SyncScheduler {
	s.now = now
	return s
}

// RefreshNow runs one guarded refresh cycle synchronously. It reports false
// when the cycle was dropped because another one was already in flight (or the
// scheduler is closed). Timer ticks and the user's refresh button share this
// entry point.
func (s *SyncScheduler) RefreshNow(ctx context.Context) bool {
	s.mu.Lock()
	if s.closed || s.cycleInFlight {
		s.mu.Unlock()
		s.metrics.ObserveDroppedTick()
		return false
	}
	s.cycleInFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.cycleInFlight = false
		s.mu.Unlock()
	}()

	s.runCycle(ctx)
	return true
}

// RefreshPositions refreshes only the favorites collection (current
// positions), guarded independently of the full cycle so a cheap position
// update never re-queries passes.
func (s *SyncScheduler) RefreshPositions(ctx context.Context) bool {
	s.mu.Lock()
	if s.closed || s.positionsInFlight {
		s.mu.Unlock()
		s.metrics.ObserveDroppedTick()
		return false
	}
	s.positionsInFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.positionsInFlight = false
		s.mu.Unlock()
	}()

	favorites, err := s.api.Favorites(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return true
	}
	s.applyFavoritesLocked(favorites, err)
	s.lastUpdated = s.now()
	s.mu.Unlock()

	s.stopOnAuthExpiry(err)
	return true
}

// EnableAutoRefresh starts the periodic timer. Enabling while already enabled
// is a no-op; re-enabling after a disable starts a fresh interval.
func (s *SyncScheduler) EnableAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	s.mu.Lock()
	if s.closed || s.stopAuto != nil {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.stopAuto = stop
	s.mu.Unlock()

	s.log.Info("auto refresh enabled", zap.Duration("interval", interval))

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RefreshNow(ctx)
			}
		}
	}()
}

// DisableAutoRefresh tears the timer down synchronously. No tick fires after
// it returns; a cycle already in flight completes and its result is applied
// only while the scheduler is still alive.
func (s *SyncScheduler) DisableAutoRefresh() {
	s.mu.Lock()
	stop := s.stopAuto
	s.stopAuto = nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		s.log.Info("auto refresh disabled")
	}
}

// AutoRefreshEnabled reports whether the periodic timer is armed.
func (s *SyncScheduler) AutoRefreshEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopAuto != nil
}

// Close releases the timer and marks the scheduler dead so late-arriving
// results from an in-flight cycle are discarded.
func (s *SyncScheduler) Close() {
	s.DisableAutoRefresh()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Snapshot returns a copy of the current collections and retained errors.
func (s *SyncScheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Favorites:      make([]domain.FavoriteSatellite, len(s.favorites)),
		Passes:         make([]domain.Pass, len(s.passes)),
		LastUpdated:    s.lastUpdated,
		SyncError:      s.syncErr,
		FavoritesError: s.favoritesErr,
		PassesError:    s.passesErr,
	}
	copy(snap.Favorites, s.favorites)
	copy(snap.Passes, s.passes)
	return snap
}

// runCycle is the probe-then-fetch sequence. The health probe gates the data
// fetches; the two fetches run as independent tasks so a failure in one never
// blanks the other.
func (s *SyncScheduler) runCycle(ctx context.Context) {
	healthy, err := s.api.Health(ctx)
	if err != nil || !healthy {
		msg := "tracking service reported unhealthy"
		if err != nil {
			msg = err.Error()
		}
		s.log.Warn("health probe failed, clearing collections", zap.String("cause", msg))

		s.mu.Lock()
		if !s.closed {
			s.favorites = nil
			s.passes = nil
			s.syncErr = msg
			s.observeSizesLocked()
		}
		s.mu.Unlock()

		s.metrics.ObserveCycle("unhealthy")
		s.stopOnAuthExpiry(err)
		return
	}

	var (
		wg        sync.WaitGroup
		favorites []domain.FavoriteSatellite
		favErr    error
		passes    []domain.Pass
		passErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		favorites, favErr = s.api.Favorites(ctx)
	}()
	go func() {
		defer wg.Done()
		passes, passErr = s.api.UpcomingPasses(ctx, s.cfg.PassHours, s.cfg.PassMinElevation)
	}()
	wg.Wait()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.syncErr = ""
	s.applyFavoritesLocked(favorites, favErr)
	s.applyPassesLocked(passes, passErr)
	s.lastUpdated = s.now()
	partial := s.favoritesErr != "" || s.passesErr != ""
	s.mu.Unlock()

	if partial {
		s.metrics.ObserveCycle("partial")
	} else {
		s.metrics.ObserveCycle("ok")
	}

	s.stopOnAuthExpiry(favErr)
	s.stopOnAuthExpiry(passErr)
}

// applyFavoritesLocked installs the favorites fetch outcome. A 404 means the
// feature is unavailable and degrades to an empty collection without a
// user-visible error.
func (s *SyncScheduler) applyFavoritesLocked(favorites []domain.FavoriteSatellite, err error) {
	switch {
	case err == nil:
		s.favorites = favorites
		s.favoritesErr = ""
	case isSilentDegrade(err):
		s.favorites = nil
		s.favoritesErr = ""
	default:
		s.log.Warn("favorites refresh failed", zap.Error(err))
		s.favorites = nil
		s.favoritesErr = err.Error()
	}
	s.observeSizesLocked()
}

// applyPassesLocked installs the passes fetch outcome. A 422 (no saved
// location) or 404 means "no passes available", not a failure.
func (s *SyncScheduler) applyPassesLocked(passes []domain.Pass, err error) {
	switch {
	case err == nil:
		s.passes = passes
		s.passesErr = ""
	case isSilentDegrade(err):
		s.passes = nil
		s.passesErr = ""
	default:
		s.log.Warn("passes refresh failed", zap.Error(err))
		s.passes = nil
		s.passesErr = err.Error()
	}
	s.observeSizesLocked()
}

func (s *SyncScheduler) observeSizesLocked() {
	s.metrics.ObserveCollectionSize("favorites", len(s.favorites))
	s.metrics.ObserveCollectionSize("passes", len(s.passes))
}

// stopOnAuthExpiry treats a dead session as a hard stop: the transport has
// already invalidated it, so further ticks would only fail unauthenticated.
func (s *SyncScheduler) stopOnAuthExpiry(err error) {
	if err == nil {
		return
	}
	if kind, ok := domain.ErrorKindOf(err); ok && kind == domain.KindAuthExpired {
		s.log.Warn("session expired, disabling auto refresh")
		s.DisableAutoRefresh()
	}
}

// isSilentDegrade reports whether the failure should present as an empty
// collection instead of an error message.
func isSilentDegrade(err error) bool {
	kind, ok := domain.ErrorKindOf(err)
	if !ok {
		return false
	}
	return kind == domain.KindNotFound || kind == domain.KindValidation
}
