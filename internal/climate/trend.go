package climate

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

const day = 24 * time.Hour

// FitTrend fits an ordinary least-squares line of temperature against whole
// days elapsed since the earliest record and returns the fitted value for
// every record, in input order.
func FitTrend(records []TemperatureRecord) (Trend, error) {
	if len(records) == 0 {
		return Trend{}, ErrNoRecords
	}

	start := records[0].Timestamp
	for _, r := range records[1:] {
		if r.Timestamp.Before(start) {
			start = r.Timestamp
		}
	}

	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	days := make([]int, len(records))
	distinct := false
	for i, r := range records {
		days[i] = int(r.Timestamp.Sub(start) / day)
		xs[i] = float64(days[i])
		ys[i] = r.Temperature
		if days[i] != days[0] {
			distinct = true
		}
	}

	var alpha, beta float64
	if distinct {
		alpha, beta = stat.LinearRegression(xs, ys, nil, false)
	} else {
		// Degenerate design: every record on the same day.
		alpha = stat.Mean(ys, nil)
	}

	points := make([]TrendPoint, len(records))
	for i, r := range records {
		points[i] = TrendPoint{
			Timestamp:   r.Timestamp,
			DaysElapsed: days[i],
			Fitted:      alpha + beta*xs[i],
		}
	}

	return Trend{Slope: beta, Intercept: alpha, Points: points}, nil
}
