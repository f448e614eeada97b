package rest

import (
	"fmt"
	"strings"
	"time"
)

// apiTime tolerates the service's two timestamp renderings: RFC 3339 and the
// zone-less ISO form, which is taken as UTC.
type apiTime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", raw)
}

type healthModel struct {
	Status string `json:"status"`
}

type positionModel struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Velocity  float64 `json:"velocity"`
	Timestamp apiTime `json:"timestamp"`
}

type favoriteModel struct {
	ID              int64          `json:"id"`
	NoradID         int            `json:"norad_id"`
	Name            string         `json:"name"`
	Category        *string        `json:"category"`
	AddedAt         apiTime        `json:"added_at"`
	CurrentPosition *positionModel `json:"current_position"`
}

type favoritesListModel struct {
	Favorites []favoriteModel `json:"favorites"`
	Total     int             `json:"total"`
}

type passSatelliteModel struct {
	NoradID int    `json:"norad_id"`
	Name    string `json:"name"`
}

type passModel struct {
	Satellite    passSatelliteModel `json:"satellite"`
	StartTime    apiTime            `json:"start_time"`
	Duration     int                `json:"duration"`
	MaxElevation float64            `json:"max_elevation"`
	Visibility   string             `json:"visibility"`
	Magnitude    *float64           `json:"magnitude"`
}

type upcomingPassesModel struct {
	UpcomingPasses []passModel `json:"upcoming_passes"`
	TotalPasses    int         `json:"total_passes"`
}

type authResponseModel struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type loginRequestModel struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequestModel struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type locationModel struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address"`
}

type satelliteSummaryModel struct {
	NoradID  int     `json:"norad_id"`
	Name     string  `json:"name"`
	Category *string `json:"category"`
}

type searchResponseModel struct {
	Satellites []satelliteSummaryModel `json:"satellites"`
	Total      int                     `json:"total"`
}

type addFavoriteRequestModel struct {
	NoradID int `json:"norad_id"`
}
