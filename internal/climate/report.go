package climate

import (
	"fmt"
	"time"
)

// ChartPoint is a single (x, y) point on the temperature chart.
type ChartPoint struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
}

// ChartSeries is one named trace of the chart.
type ChartSeries struct {
	Name   string       `json:"name"`
	Mode   string       `json:"mode"` // "markers" or "lines"
	Points []ChartPoint `json:"points"`
}

// Chart describes the temperature/trend/anomaly plot for a city.
// Rendering is left to the client.
type Chart struct {
	Title      string        `json:"title"`
	XAxisTitle string        `json:"xAxisTitle"`
	YAxisTitle string        `json:"yAxisTitle"`
	Series     []ChartSeries `json:"series"`
}

// Analyze computes the full report for one city's records.
// It is a pure function of its inputs.
func Analyze(city string, records []TemperatureRecord) (Report, error) {
	summary, err := Summarize(records)
	if err != nil {
		return Report{}, err
	}
	trend, err := FitTrend(records)
	if err != nil {
		return Report{}, err
	}

	profile := BuildProfile(records)
	anomalies := DetectAnomalies(records, profile)

	return Report{
		City:      city,
		Summary:   summary,
		Profile:   profile,
		Anomalies: anomalies,
		Trend:     trend,
		Chart:     buildChart(city, records, trend, anomalies),
	}, nil
}

func buildChart(city string, records []TemperatureRecord, trend Trend, anomalies []Anomaly) Chart {
	observed := make([]ChartPoint, len(records))
	for i, r := range records {
		observed[i] = ChartPoint{X: r.Timestamp, Y: r.Temperature}
	}

	fitted := make([]ChartPoint, len(trend.Points))
	for i, p := range trend.Points {
		fitted[i] = ChartPoint{X: p.Timestamp, Y: p.Fitted}
	}

	flagged := make([]ChartPoint, len(anomalies))
	for i, a := range anomalies {
		flagged[i] = ChartPoint{X: a.Timestamp, Y: a.Temperature}
	}

	return Chart{
		Title:      fmt.Sprintf("Temperature trend for %s", city),
		XAxisTitle: "Date",
		YAxisTitle: "Temperature, °C",
		Series: []ChartSeries{
			{Name: city + " temperature", Mode: "markers", Points: observed},
			{Name: city + " trend", Mode: "lines", Points: fitted},
			{Name: "Anomalies", Mode: "markers", Points: flagged},
		},
	}
}
