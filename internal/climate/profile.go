package climate

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// AnomalySigmas is the number of standard deviations beyond which a reading is anomalous.
const AnomalySigmas = 2.0

var (
	// ErrNoRecords is returned when a computation is asked to run on an empty record set.
	ErrNoRecords = errors.New("no temperature records")
	// ErrSeasonNotProfiled is returned when a season has no records in the profile.
	ErrSeasonNotProfiled = errors.New("season not present in profile")
)

// BuildProfile groups records by season and computes each season's mean and
// sample standard deviation. Seasons with a single record get a zero std.
func BuildProfile(records []TemperatureRecord) SeasonProfile {
	groups := make(map[Season][]float64)
	for _, r := range records {
		groups[r.Season] = append(groups[r.Season], r.Temperature)
	}

	profile := make(SeasonProfile, len(groups))
	for season, temps := range groups {
		s := SeasonStats{Count: len(temps)}
		if len(temps) < 2 {
			s.Mean = temps[0]
		} else {
			s.Mean, s.Std = stat.MeanStdDev(temps, nil)
		}
		profile[season] = s
	}
	return profile
}

// IsAnomalous reports whether temp deviates from the season mean by strictly
// more than AnomalySigmas standard deviations. A season without spread
// (zero std, including single-record seasons) never flags.
func (s SeasonStats) IsAnomalous(temp float64) bool {
	if s.Std <= 0 {
		return false
	}
	return math.Abs(temp-s.Mean) > AnomalySigmas*s.Std
}

// DetectAnomalies returns the records that are anomalous for their season,
// in input order. Records whose season is missing from profile are skipped.
func DetectAnomalies(records []TemperatureRecord, profile SeasonProfile) []Anomaly {
	anomalies := make([]Anomaly, 0)
	for _, r := range records {
		s, ok := profile[r.Season]
		if !ok || !s.IsAnomalous(r.Temperature) {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			TemperatureRecord: r,
			SeasonMean:        s.Mean,
			SeasonStd:         s.Std,
			Deviation:         r.Temperature - s.Mean,
		})
	}
	return anomalies
}

// Summarize computes min, max and mean temperature over records.
func Summarize(records []TemperatureRecord) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrNoRecords
	}

	temps := make([]float64, len(records))
	sum := Summary{Min: math.Inf(1), Max: math.Inf(-1), Count: len(records)}
	for i, r := range records {
		temps[i] = r.Temperature
		sum.Min = math.Min(sum.Min, r.Temperature)
		sum.Max = math.Max(sum.Max, r.Temperature)
	}
	sum.Mean = stat.Mean(temps, nil)
	return sum, nil
}

// Classify checks a single temperature against the profile of the given season.
func Classify(temp float64, season Season, profile SeasonProfile) (Verdict, error) {
	s, ok := profile[season]
	if !ok {
		return Verdict{}, ErrSeasonNotProfiled
	}
	return Verdict{
		Season:      season,
		Stats:       s,
		Temperature: temp,
		Deviation:   temp - s.Mean,
		Anomalous:   s.IsAnomalous(temp),
	}, nil
}
