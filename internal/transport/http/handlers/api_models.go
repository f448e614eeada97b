package handlers

import "time"

// HealthResponse describes the client liveness payload.
type HealthResponse struct {
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	SessionStatus string     `json:"session_status"`
	AutoRefresh   bool       `json:"auto_refresh"`
	LastUpdated   *time.Time `json:"last_updated,omitempty"`
}

// SatelliteRow is one rendered row of the satellite view.
type SatelliteRow struct {
	ID         int64      `json:"id"`
	NoradID    int        `json:"norad_id"`
	Name       string     `json:"name"`
	Category   string     `json:"category,omitempty"`
	AltitudeKm float64    `json:"altitude_km"`
	VelocityKm float64    `json:"velocity_km_s"`
	AddedAt    time.Time  `json:"added_at"`
	PositionAt *time.Time `json:"position_at,omitempty"`
}

// PassRow is one rendered row of the pass view.
type PassRow struct {
	NoradID         int       `json:"norad_id"`
	SatelliteName   string    `json:"satellite_name"`
	StartTime       time.Time `json:"start_time"`
	DurationSeconds int       `json:"duration_seconds"`
	MaxElevation    float64   `json:"max_elevation_degrees"`
	Visibility      string    `json:"visibility"`
	Magnitude       *float64  `json:"magnitude,omitempty"`
}

// SnapshotErrors carries the retained per-kind failure messages.
type SnapshotErrors struct {
	Sync      string `json:"sync,omitempty"`
	Favorites string `json:"favorites,omitempty"`
	Passes    string `json:"passes,omitempty"`
}

// SnapshotResponse is the projected view of the current collections.
type SnapshotResponse struct {
	Satellites  []SatelliteRow `json:"satellites"`
	Passes      []PassRow      `json:"passes"`
	LastUpdated *time.Time     `json:"last_updated,omitempty"`
	Errors      SnapshotErrors `json:"errors"`
}

// ErrorResponse describes a request failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
