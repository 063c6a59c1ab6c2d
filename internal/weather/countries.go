package weather

import (
	"fmt"

	"github.com/i474232898/temperature-dashboard/internal/common"
)

var cityToCountry = map[string]string{
	"New York":       "US",
	"London":         "GB",
	"Paris":          "FR",
	"Tokyo":          "JP",
	"Moscow":         "RU",
	"Sydney":         "AU",
	"Berlin":         "DE",
	"Beijing":        "CN",
	"Rio de Janeiro": "BR",
	"Dubai":          "AE",
	"Los Angeles":    "US",
	"Singapore":      "SG",
	"Mumbai":         "IN",
	"Cairo":          "EG",
	"Mexico City":    "MX",
}

var countryIndex = func() map[string]Location {
	idx := make(map[string]Location, len(cityToCountry))
	for city, cc := range cityToCountry {
		idx[common.Normalize(city)] = Location{City: city, Country: cc}
	}
	return idx
}()

// LookupCity resolves a city name (case-insensitive) to a Location with its country code.
func LookupCity(city string) (Location, error) {
	loc, ok := countryIndex[common.Normalize(city)]
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	return loc, nil
}
