// Package dataset loads uploaded CSV files of historical city temperatures.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/i474232898/temperature-dashboard/internal/climate"
)

const (
	ColumnCity        = "city"
	ColumnTimestamp   = "timestamp"
	ColumnTemperature = "temperature"
	ColumnSeason      = "season"
)

var requiredColumns = []string{ColumnCity, ColumnTimestamp, ColumnTemperature, ColumnSeason}

// Accepted timestamp layouts, tried in order.
var timestampLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

var (
	ErrEmptyDataset  = errors.New("dataset has no rows")
	ErrMissingColumn = errors.New("required column missing")
	ErrMalformedCSV  = errors.New("malformed csv")
	ErrCityNotFound  = errors.New("city not present in dataset")
)

// RowError describes an invalid cell in the uploaded CSV.
type RowError struct {
	Row    int // 1-based line number in the file, header included
	Column string
	Value  string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d, column %q: %s (value %q)", e.Row, e.Column, e.Reason, e.Value)
}

// Dataset is an uploaded table of temperature records.
// It is immutable once loaded.
type Dataset struct {
	ID         string
	UploadedAt time.Time

	frame  dataframe.DataFrame
	cities []string
}

// Load reads a CSV with city, timestamp, temperature and season columns.
// Every row is validated up front so later per-city reads cannot fail on content.
func Load(r io.Reader) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			ColumnCity:        series.String,
			ColumnTimestamp:   series.String,
			ColumnTemperature: series.Float,
			ColumnSeason:      series.String,
		}),
	)
	if df.Err != nil {
		if strings.Contains(df.Err.Error(), "empty") {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, df.Err)
	}

	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, col := range requiredColumns {
		if !names[col] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	if df.Nrow() == 0 {
		return nil, ErrEmptyDataset
	}

	records, err := toRecords(df)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		frame:  df,
		cities: uniqueCities(records),
	}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.frame.Nrow()
}

// Cities returns the distinct cities in order of first appearance.
func (d *Dataset) Cities() []string {
	out := make([]string, len(d.cities))
	copy(out, d.cities)
	return out
}

// Records returns the rows belonging to city, in file order.
func (d *Dataset) Records(city string) ([]climate.TemperatureRecord, error) {
	subset := d.frame.Filter(dataframe.F{
		Colname:    ColumnCity,
		Comparator: series.Eq,
		Comparando: city,
	})
	if subset.Err != nil {
		return nil, fmt.Errorf("filter city %q: %w", city, subset.Err)
	}
	if subset.Nrow() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCityNotFound, city)
	}
	return toRecords(subset)
}

func toRecords(df dataframe.DataFrame) ([]climate.TemperatureRecord, error) {
	cities := df.Col(ColumnCity).Records()
	stamps := df.Col(ColumnTimestamp).Records()
	temps := df.Col(ColumnTemperature).Float()
	seasons := df.Col(ColumnSeason).Records()

	records := make([]climate.TemperatureRecord, df.Nrow())
	for i := range records {
		line := i + 2

		city := cities[i]
		if strings.TrimSpace(city) == "" || city == "NaN" {
			return nil, &RowError{Row: line, Column: ColumnCity, Value: cities[i], Reason: "city is empty"}
		}

		ts, err := parseTimestamp(stamps[i])
		if err != nil {
			return nil, &RowError{Row: line, Column: ColumnTimestamp, Value: stamps[i], Reason: "unrecognized date"}
		}

		if math.IsNaN(temps[i]) || math.IsInf(temps[i], 0) {
			return nil, &RowError{Row: line, Column: ColumnTemperature, Value: fmt.Sprint(temps[i]), Reason: "not a finite number"}
		}

		season, err := climate.ParseSeason(seasons[i])
		if err != nil {
			return nil, &RowError{Row: line, Column: ColumnSeason, Value: seasons[i], Reason: "unknown season"}
		}

		records[i] = climate.TemperatureRecord{
			City:        city,
			Timestamp:   ts,
			Temperature: temps[i],
			Season:      season,
		}
	}
	return records, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func uniqueCities(records []climate.TemperatureRecord) []string {
	seen := make(map[string]bool)
	var cities []string
	for _, r := range records {
		if !seen[r.City] {
			seen[r.City] = true
			cities = append(cities, r.City)
		}
	}
	return cities
}
