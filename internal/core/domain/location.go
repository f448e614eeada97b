package domain

// ObserverLocation is the saved ground location pass predictions are computed
// for. The client only stores and displays it; all computation is server-side.
type ObserverLocation struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// SatelliteSummary is one satellite search result, candidate for the
// add-favorite flow.
type SatelliteSummary struct {
	NoradID  int
	Name     string
	Category string
}
