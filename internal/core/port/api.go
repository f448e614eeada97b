package port

import (
	"context"
	"time"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/domain"
)

// SessionSource is the transport's read view of the session plus the eager
// invalidation hook it fires on an authentication failure.
type SessionSource interface {
	// Token returns the current bearer token and whether it is valid now.
	Token(at time.Time) (string, bool)
	// Invalidate clears the session. Idempotent.
	Invalidate()
}

// TrackingAPI is the slice of the remote API the sync scheduler consumes.
type TrackingAPI interface {
	// Health probes the service health endpoint; false or an error means
	// the service must be treated as unhealthy.
	Health(ctx context.Context) (bool, error)
	// Favorites returns the caller's favorite satellites with positions inlined.
	Favorites(ctx context.Context) ([]domain.FavoriteSatellite, error)
	// UpcomingPasses returns predicted passes for the caller's favorites
	// and saved location.
	UpcomingPasses(ctx context.Context, hours int, minElevation float64) ([]domain.Pass, error)
}

// AuthAPI is the slice of the remote API the auth service consumes.
type AuthAPI interface {
	// Login exchanges credentials for an access token.
	Login(ctx context.Context, email, password string) (string, error)
	// Register creates an account and returns the initial access token.
	Register(ctx context.Context, email, password string) (string, error)
	// Logout invalidates the token server-side. Best effort.
	Logout(ctx context.Context) error
}
