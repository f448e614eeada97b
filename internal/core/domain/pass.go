package domain

import "time"

// Visibility classifies whether a pass can be observed.
type Visibility string

const (
	VisibilityVisible    Visibility = "visible"
	VisibilityDaylight   Visibility = "daylight"
	VisibilityNotVisible Visibility = "not_visible"
)

// ParseVisibility maps a wire value onto the known visibility states,
// defaulting to not visible for anything unrecognized.
func ParseVisibility(raw string) Visibility {
	switch Visibility(raw) {
	case VisibilityVisible, VisibilityDaylight, VisibilityNotVisible:
		return Visibility(raw)
	default:
		return VisibilityNotVisible
	}
}

// Pass is one predicted overhead pass of a favorite satellite for the user's
// saved location. Owned by the sync scheduler's collection cache under the
// same replace-wholesale rule as favorites.
type Pass struct {
	NoradID             int
	SatelliteName       string
	StartTime           time.Time
	DurationSeconds     int
	MaxElevationDegrees float64
	Visibility          Visibility
	Magnitude           *float64
}
