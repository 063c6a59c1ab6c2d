package weather

import (
	"context"
)

// Provider abstracts a weather data source that reports current temperature.
type Provider interface {
	Name() string
	CurrentTemperature(ctx context.Context, loc Location, token string) (Reading, error)
}
