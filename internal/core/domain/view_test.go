package domain

import (
	"testing"
	"time"
)

func sampleFavorites() []FavoriteSatellite {
	t1 := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)
	return []FavoriteSatellite{
		{
			ID:      1,
			NoradID: 25544,
			Name:    "ISS (ZARYA)",
			AddedAt: t1,
			CurrentPosition: &Position{
				AltitudeKm:       420.5,
				VelocityKmPerSec: 7.66,
			},
		},
		{
			ID:      2,
			NoradID: 20580,
			Name:    "HST",
			AddedAt: t2,
			CurrentPosition: &Position{
				AltitudeKm:       540.1,
				VelocityKmPerSec: 7.59,
			},
		},
		{
			ID:      3,
			NoradID: 43013,
			Name:    "NOAA 20",
			AddedAt: t1.Add(time.Hour),
			// No live position yet; treated as altitude/velocity 0.
		},
	}
}

func noradIDs(sats []FavoriteSatellite) []int {
	ids := make([]int, 0, len(sats))
	for _, s := range sats {
		ids = append(ids, s.NoradID)
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProjectSatellitesDefaultSortByName(t *testing.T) {
	got := ProjectSatellites(sampleFavorites(), ViewParameters{})
	if !equalIDs(noradIDs(got), []int{20580, 25544, 43013}) {
		t.Fatalf("unexpected order: %v", noradIDs(got))
	}
}

func TestProjectSatellitesNewestFirst(t *testing.T) {
	got := ProjectSatellites(sampleFavorites(), ViewParameters{SatelliteSortKey: SatelliteSortByAddedAt})
	if !equalIDs(noradIDs(got), []int{20580, 43013, 25544}) {
		t.Fatalf("unexpected order: %v", noradIDs(got))
	}
}

func TestProjectSatellitesQueryMatchesNameAndNoradID(t *testing.T) {
	favorites := sampleFavorites()

	byName := ProjectSatellites(favorites, ViewParameters{SatelliteQuery: "iss"})
	if !equalIDs(noradIDs(byName), []int{25544}) {
		t.Fatalf("name query: unexpected result %v", noradIDs(byName))
	}

	byID := ProjectSatellites(favorites, ViewParameters{SatelliteQuery: "2058"})
	if !equalIDs(noradIDs(byID), []int{20580}) {
		t.Fatalf("norad query: unexpected result %v", noradIDs(byID))
	}

	none := ProjectSatellites(favorites, ViewParameters{SatelliteQuery: "starlink"})
	if len(none) != 0 {
		t.Fatalf("expected empty result, got %v", noradIDs(none))
	}
}

func TestProjectSatellitesAltitudeDescendingWithMissingPosition(t *testing.T) {
	got := ProjectSatellites(sampleFavorites(), ViewParameters{SatelliteSortKey: SatelliteSortByAltitude})
	if !equalIDs(noradIDs(got), []int{20580, 25544, 43013}) {
		t.Fatalf("unexpected order: %v", noradIDs(got))
	}
}

func TestProjectSatellitesDoesNotMutateInput(t *testing.T) {
	favorites := sampleFavorites()
	before := noradIDs(favorites)

	_ = ProjectSatellites(favorites, ViewParameters{SatelliteSortKey: SatelliteSortByAltitude})

	if !equalIDs(noradIDs(favorites), before) {
		t.Fatalf("input slice was reordered: %v", noradIDs(favorites))
	}
}

func TestProjectSatellitesIdempotent(t *testing.T) {
	params := ViewParameters{SatelliteQuery: "s", SatelliteSortKey: SatelliteSortByVelocity}
	once := ProjectSatellites(sampleFavorites(), params)
	twice := ProjectSatellites(once, params)
	if !equalIDs(noradIDs(once), noradIDs(twice)) {
		t.Fatalf("projection not idempotent: %v vs %v", noradIDs(once), noradIDs(twice))
	}
}

func TestProjectSatellitesSortChangeKeepsEntries(t *testing.T) {
	favorites := sampleFavorites()
	byName := ProjectSatellites(favorites, ViewParameters{SatelliteSortKey: SatelliteSortByName})
	byVelocity := ProjectSatellites(favorites, ViewParameters{SatelliteSortKey: SatelliteSortByVelocity})
	if len(byName) != len(byVelocity) {
		t.Fatalf("sort change dropped entries: %d vs %d", len(byName), len(byVelocity))
	}
}

func TestProjectSatellitesStableForEqualKeys(t *testing.T) {
	added := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	favorites := []FavoriteSatellite{
		{NoradID: 1, Name: "A", AddedAt: added},
		{NoradID: 2, Name: "B", AddedAt: added},
		{NoradID: 3, Name: "C", AddedAt: added},
	}

	got := ProjectSatellites(favorites, ViewParameters{SatelliteSortKey: SatelliteSortByAddedAt})
	if !equalIDs(noradIDs(got), []int{1, 2, 3}) {
		t.Fatalf("equal keys must keep input order, got %v", noradIDs(got))
	}
}

func samplePasses() []Pass {
	base := time.Date(2026, time.March, 2, 4, 0, 0, 0, time.UTC)
	return []Pass{
		{
			NoradID:             25544,
			SatelliteName:       "ISS (ZARYA)",
			StartTime:           base.Add(2 * time.Hour),
			DurationSeconds:     540,
			MaxElevationDegrees: 15,
			Visibility:          VisibilityVisible,
		},
		{
			NoradID:             25544,
			SatelliteName:       "ISS (ZARYA)",
			StartTime:           base.Add(8 * time.Hour),
			DurationSeconds:     620,
			MaxElevationDegrees: 45,
			Visibility:          VisibilityVisible,
		},
		{
			NoradID:             20580,
			SatelliteName:       "HST",
			StartTime:           base,
			DurationSeconds:     410,
			MaxElevationDegrees: 62,
			Visibility:          VisibilityDaylight,
		},
	}
}

func passElevations(passes []Pass) []float64 {
	out := make([]float64, 0, len(passes))
	for _, p := range passes {
		out = append(out, p.MaxElevationDegrees)
	}
	return out
}

func TestProjectPassesMinElevationFilter(t *testing.T) {
	got := ProjectPasses(samplePasses(), ViewParameters{PassMinElevation: 30})
	if len(got) != 2 {
		t.Fatalf("expected 2 passes above 30 degrees, got %d (%v)", len(got), passElevations(got))
	}
	for _, p := range got {
		if p.MaxElevationDegrees < 30 {
			t.Fatalf("pass with elevation %.1f slipped through", p.MaxElevationDegrees)
		}
	}
}

func TestProjectPassesKeepsExactMinimum(t *testing.T) {
	got := ProjectPasses(samplePasses(), ViewParameters{PassMinElevation: 45})
	for _, p := range got {
		if p.MaxElevationDegrees == 45 {
			return
		}
	}
	t.Fatalf("pass at exactly the minimum elevation was excluded: %v", passElevations(got))
}

func TestProjectPassesVisibleOnly(t *testing.T) {
	got := ProjectPasses(samplePasses(), ViewParameters{ShowOnlyVisible: true})
	if len(got) != 2 {
		t.Fatalf("expected 2 visible passes, got %d", len(got))
	}
	for _, p := range got {
		if p.Visibility != VisibilityVisible {
			t.Fatalf("non-visible pass %s slipped through", p.Visibility)
		}
	}
}

func TestProjectPassesDefaultSortByStartTime(t *testing.T) {
	got := ProjectPasses(samplePasses(), ViewParameters{})
	for i := 1; i < len(got); i++ {
		if got[i].StartTime.Before(got[i-1].StartTime) {
			t.Fatalf("passes not in chronological order")
		}
	}
}

func TestProjectPassesSortByElevationDescending(t *testing.T) {
	got := ProjectPasses(samplePasses(), ViewParameters{PassSortKey: PassSortByElevation})
	elevations := passElevations(got)
	for i := 1; i < len(elevations); i++ {
		if elevations[i] > elevations[i-1] {
			t.Fatalf("elevations not descending: %v", elevations)
		}
	}
}

func TestParseVisibility(t *testing.T) {
	cases := map[string]Visibility{
		"visible":     VisibilityVisible,
		"daylight":    VisibilityDaylight,
		"not_visible": VisibilityNotVisible,
		"eclipsed":    VisibilityNotVisible,
		"":            VisibilityNotVisible,
	}
	for raw, want := range cases {
		if got := ParseVisibility(raw); got != want {
			t.Fatalf("ParseVisibility(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestFavoriteAltitudeVelocityWithoutPosition(t *testing.T) {
	sat := FavoriteSatellite{NoradID: 43013, Name: "NOAA 20"}
	if sat.Altitude() != 0 || sat.Velocity() != 0 {
		t.Fatalf("expected zero altitude and velocity, got %.2f / %.2f", sat.Altitude(), sat.Velocity())
	}
}
