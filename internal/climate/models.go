package climate

import (
	"time"
)

// Season is one of the four meteorological seasons.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// Seasons lists all seasons in calendar order starting from winter.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}

// TemperatureRecord is a single historical observation for a city.
type TemperatureRecord struct {
	City        string    `json:"city"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Season      Season    `json:"season"`
}

// SeasonStats holds the temperature distribution of one season.
type SeasonStats struct {
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Count int     `json:"count"`
}

// SeasonProfile maps each observed season to its statistics.
type SeasonProfile map[Season]SeasonStats

// Anomaly is a record deviating more than two standard deviations from its season mean.
type Anomaly struct {
	TemperatureRecord
	SeasonMean float64 `json:"seasonMean"`
	SeasonStd  float64 `json:"seasonStd"`
	Deviation  float64 `json:"deviation"`
}

// Summary holds global statistics of a city's records.
type Summary struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// TrendPoint is the fitted trend value for one input record.
type TrendPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	DaysElapsed int       `json:"daysElapsed"`
	Fitted      float64   `json:"fitted"`
}

// Trend is a linear least-squares fit of temperature over elapsed days.
// Points are ordered like the input records.
type Trend struct {
	Slope     float64      `json:"slopePerDay"`
	Intercept float64      `json:"intercept"`
	Points    []TrendPoint `json:"points"`
}

// Report is everything the dashboard shows for a selected city.
type Report struct {
	City      string        `json:"city"`
	Summary   Summary       `json:"summary"`
	Profile   SeasonProfile `json:"profile"`
	Anomalies []Anomaly     `json:"anomalies"`
	Trend     Trend         `json:"trend"`
	Chart     Chart         `json:"chart"`
}

// Verdict is the result of classifying a single temperature against a season profile.
type Verdict struct {
	Season      Season      `json:"season"`
	Stats       SeasonStats `json:"stats"`
	Temperature float64     `json:"temperature"`
	Deviation   float64     `json:"deviation"`
	Anomalous   bool        `json:"anomalous"`
}
