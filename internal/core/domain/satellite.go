package domain

import "time"

// Position is an immutable point-in-time location snapshot for a satellite.
type Position struct {
	Latitude         float64
	Longitude        float64
	AltitudeKm       float64
	VelocityKmPerSec float64
	Timestamp        time.Time
}

// FavoriteSatellite is one entry of the favorites collection. The collection
// is replaced wholesale on every successful fetch; entries are never merged.
type FavoriteSatellite struct {
	ID              int64
	NoradID         int
	Name            string
	Category        string
	CurrentPosition *Position
	AddedAt         time.Time
}

// Altitude returns the current altitude in kilometers, or 0 when no position
// snapshot is attached.
func (f FavoriteSatellite) Altitude() float64 {
	if f.CurrentPosition == nil {
		return 0
	}
	return f.CurrentPosition.AltitudeKm
}

// Velocity returns the current velocity in km/s, or 0 when no position
// snapshot is attached.
func (f FavoriteSatellite) Velocity() float64 {
	if f.CurrentPosition == nil {
		return 0
	}
	return f.CurrentPosition.VelocityKmPerSec
}
