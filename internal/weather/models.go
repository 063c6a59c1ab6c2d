package weather

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownCity is returned for cities missing from the city->country table.
	ErrUnknownCity = errors.New("city has no known country code")
	// ErrMissingToken is returned when no API token was supplied or configured.
	ErrMissingToken = errors.New("weather api token is required")
)

// Location represents a city the weather API can be queried for.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Key returns a canonical string key for this location.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Query returns the "city,country" form used by weather APIs.
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + "," + l.Country
}

// Reading is a provider's current temperature for a location.
type Reading struct {
	ProviderName string    `json:"provider"`
	Location     Location  `json:"location"`
	Timestamp    time.Time `json:"timestamp"` // always UTC
	TemperatureC float64   `json:"temperatureC"`
}

// APIError is a non-200 response from the weather API.
// Body holds the raw response so it can be surfaced to the user.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("weather api returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("weather api returned %d", e.StatusCode)
}
