package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/domain"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/port"
)

const apiPrefix = "/api/v1"

// API binds the remote tracking service's endpoints to typed calls over the
// resilient client. It implements port.TrackingAPI and port.AuthAPI.
type API struct {
	client *Client
}

// NewAPI wraps the supplied client.
func NewAPI(client *Client) *API {
	return &API{client: client}
}

// Health probes the service health endpoint. A response that isn't a healthy
// verdict, or any classified failure, means unhealthy.
func (a *API) Health(ctx context.Context) (bool, error) {
	resp, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
	if err != nil {
		return false, err
	}

	var payload healthModel
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return false, fmt.Errorf("decode health response: %w", err)
	}
	return payload.Status == "healthy" || payload.Status == "ok", nil
}

// Favorites returns the caller's favorite satellites with current positions
// inlined.
func (a *API) Favorites(ctx context.Context) ([]domain.FavoriteSatellite, error) {
	resp, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodGet,
		Path:   apiPrefix + "/users/favorites",
	})
	if err != nil {
		return nil, err
	}

	var payload favoritesListModel
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("decode favorites response: %w", err)
	}

	favorites := make([]domain.FavoriteSatellite, 0, len(payload.Favorites))
	for _, f := range payload.Favorites {
		fav := domain.FavoriteSatellite{
			ID:      f.ID,
			NoradID: f.NoradID,
			Name:    f.Name,
			AddedAt: f.AddedAt.Time,
		}
		if f.Category != nil {
			fav.Category = *f.Category
		}
		if f.CurrentPosition != nil {
			fav.CurrentPosition = &domain.Position{
				Latitude:         f.CurrentPosition.Latitude,
				Longitude:        f.CurrentPosition.Longitude,
				AltitudeKm:       f.CurrentPosition.Altitude,
				VelocityKmPerSec: f.CurrentPosition.Velocity,
				Timestamp:        f.CurrentPosition.Timestamp.Time,
			}
		}
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

// UpcomingPasses returns predicted passes for the caller's favorites and
// saved location within the requested window.
func (a *API) UpcomingPasses(ctx context.Context, hours int, minElevation float64) ([]domain.Pass, error) {
	query := url.Values{}
	if hours > 0 {
		query.Set("hours", strconv.Itoa(hours))
	}
	if minElevation > 0 {
		query.Set("min_elevation", strconv.FormatFloat(minElevation, 'f', -1, 64))
	}

	resp, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodGet,
		Path:   apiPrefix + "/tracking/users/passes/upcoming",
		Query:  query,
	})
	if err != nil {
		return nil, err
	}

	var payload upcomingPassesModel
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("decode passes response: %w", err)
	}

	passes := make([]domain.Pass, 0, len(payload.UpcomingPasses))
	for _, p := range payload.UpcomingPasses {
		passes = append(passes, domain.Pass{
			NoradID:             p.Satellite.NoradID,
			SatelliteName:       p.Satellite.Name,
			StartTime:           p.StartTime.Time,
			DurationSeconds:     p.Duration,
			MaxElevationDegrees: p.MaxElevation,
			Visibility:          domain.ParseVisibility(p.Visibility),
			Magnitude:           p.Magnitude,
		})
	}
	return passes, nil
}

// Login exchanges credentials for an access token.
func (a *API) Login(ctx context.Context, email, password string) (string, error) {
	return a.authCall(ctx, "/auth/login", loginRequestModel{Email: email, Password: password})
}

// Register creates an account and returns the initial access token. The
// service requires the password twice; the client has already validated it.
func (a *API) Register(ctx context.Context, email, password string) (string, error) {
	return a.authCall(ctx, "/auth/register", registerRequestModel{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
}

// Logout invalidates the token server-side.
func (a *API) Logout(ctx context.Context) error {
	_, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodPost,
		Path:   apiPrefix + "/auth/logout",
	})
	return err
}

func (a *API) authCall(ctx context.Context, path string, body any) (string, error) {
	resp, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodPost,
		Path:   apiPrefix + path,
		Body:   body,
	})
	if err != nil {
		return "", err
	}

	var payload authResponseModel
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("auth response carried no access token")
	}
	return payload.AccessToken, nil
}

// Location fetches the saved observer location, or nil when none is set.
func (a *API) Location(ctx context.Context) (*domain.ObserverLocation, error) {
	resp, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodGet,
		Path:   apiPrefix + "/users/location",
	})
	if err != nil {
		if kind, ok := domain.ErrorKindOf(err); ok && kind == domain.KindNotFound {
			return nil, nil
		}
		return nil, err
	}

	var payload locationModel
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("decode location response: %w", err)
	}
	loc := &domain.ObserverLocation{
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
	}
	if payload.Address != nil {
		loc.Address = *payload.Address
	}
	return loc, nil
}

// SaveLocation stores or replaces the observer location.
func (a *API) SaveLocation(ctx context.Context, loc domain.ObserverLocation) error {
	body := locationModel{Latitude: loc.Latitude, Longitude: loc.Longitude}
	if loc.Address != "" {
		body.Address = &loc.Address
	}
	_, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodPut,
		Path:   apiPrefix + "/users/location",
		Body:   body,
	})
	return err
}

// SearchSatellites queries the catalogue by name for the add-favorite flow.
func (a *API) SearchSatellites(ctx context.Context, query string, limit int) ([]domain.SatelliteSummary, error) {
	params := url.Values{}
	params.Set("query", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	resp, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodGet,
		Path:   apiPrefix + "/satellites/search",
		Query:  params,
	})
	if err != nil {
		return nil, err
	}

	var payload searchResponseModel
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]domain.SatelliteSummary, 0, len(payload.Satellites))
	for _, s := range payload.Satellites {
		summary := domain.SatelliteSummary{NoradID: s.NoradID, Name: s.Name}
		if s.Category != nil {
			summary.Category = *s.Category
		}
		results = append(results, summary)
	}
	return results, nil
}

// AddFavorite adds a satellite to the caller's favorites by NORAD id.
func (a *API) AddFavorite(ctx context.Context, noradID int) error {
	_, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodPost,
		Path:   apiPrefix + "/users/favorites",
		Body:   addFavoriteRequestModel{NoradID: noradID},
	})
	return err
}

// RemoveFavorite removes a favorite by NORAD id.
func (a *API) RemoveFavorite(ctx context.Context, noradID int) error {
	_, err := a.client.Execute(ctx, port.Request{
		Method: http.MethodDelete,
		Path:   apiPrefix + "/users/favorites/norad/" + strconv.Itoa(noradID),
	})
	return err
}
