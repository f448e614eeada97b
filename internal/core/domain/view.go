package domain

import (
	"sort"
	"strconv"
	"strings"
)

// SatelliteSortKey selects the ordering of the satellite view.
type SatelliteSortKey string

const (
	SatelliteSortByName     SatelliteSortKey = "name"
	SatelliteSortByNoradID  SatelliteSortKey = "norad_id"
	SatelliteSortByAltitude SatelliteSortKey = "altitude"
	SatelliteSortByVelocity SatelliteSortKey = "velocity"
	SatelliteSortByAddedAt  SatelliteSortKey = "added_at"
)

// PassSortKey selects the ordering of the pass view.
type PassSortKey string

const (
	PassSortByStartTime PassSortKey = "start_time"
	PassSortByElevation PassSortKey = "elevation"
	PassSortByDuration  PassSortKey = "duration"
	PassSortByName      PassSortKey = "name"
)

// ViewParameters are the user-chosen filter and sort settings. They are owned
// by the consumer and passed by value; the pipeline keeps no state of its own.
type ViewParameters struct {
	SatelliteQuery   string
	SatelliteSortKey SatelliteSortKey
	PassMinElevation float64
	PassSortKey      PassSortKey
	ShowOnlyVisible  bool
}

// ProjectSatellites computes the filtered, ordered satellite view. The input
// slice is never mutated; equal sort keys keep their original relative order
// so that re-rendering does not reshuffle rows.
func ProjectSatellites(in []FavoriteSatellite, params ViewParameters) []FavoriteSatellite {
	query := strings.ToLower(strings.TrimSpace(params.SatelliteQuery))

	out := make([]FavoriteSatellite, 0, len(in))
	for _, sat := range in {
		if query != "" && !satelliteMatches(sat, query) {
			continue
		}
		out = append(out, sat)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch params.SatelliteSortKey {
		case SatelliteSortByNoradID:
			return a.NoradID < b.NoradID
		case SatelliteSortByAltitude:
			return a.Altitude() > b.Altitude()
		case SatelliteSortByVelocity:
			return a.Velocity() > b.Velocity()
		case SatelliteSortByAddedAt:
			return a.AddedAt.After(b.AddedAt)
		default:
			return a.Name < b.Name
		}
	})

	return out
}

func satelliteMatches(sat FavoriteSatellite, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(sat.Name), loweredQuery) {
		return true
	}
	return strings.Contains(strconv.Itoa(sat.NoradID), loweredQuery)
}

// ProjectPasses computes the filtered, ordered pass view under the same
// purity and stability rules as ProjectSatellites. Passes at exactly the
// minimum elevation are kept; only entries below it are excluded.
func ProjectPasses(in []Pass, params ViewParameters) []Pass {
	out := make([]Pass, 0, len(in))
	for _, p := range in {
		if params.ShowOnlyVisible && p.Visibility != VisibilityVisible {
			continue
		}
		if p.MaxElevationDegrees < params.PassMinElevation {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch params.PassSortKey {
		case PassSortByElevation:
			return a.MaxElevationDegrees > b.MaxElevationDegrees
		case PassSortByDuration:
			return a.DurationSeconds > b.DurationSeconds
		case PassSortByName:
			return a.SatelliteName < b.SatelliteName
		default:
			return a.StartTime.Before(b.StartTime)
		}
	})

	return out
}
