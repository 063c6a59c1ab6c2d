package dataset

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/temperature-dashboard/internal/climate"
)

const sampleCSV = `city,timestamp,temperature,season
Berlin,2010-01-01,-1.5,winter
Berlin,2010-01-02,0.5,winter
New York,2010-01-01,2.0,winter
Berlin,2010-06-01,21.3,summer
New York,2010-06-01,27.1,summer
Cairo,2010-06-01,35.0,summer`

func TestLoad(t *testing.T) {
	ds, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if ds.Len() != 6 {
		t.Errorf("Expected 6 rows, got %d", ds.Len())
	}

	want := []string{"Berlin", "New York", "Cairo"}
	if got := ds.Cities(); !reflect.DeepEqual(got, want) {
		t.Errorf("Cities() = %v, want %v", got, want)
	}
}

func TestRecordsFiltersCity(t *testing.T) {
	ds, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	records, err := ds.Records("Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 Berlin records, got %d", len(records))
	}

	first := records[0]
	if first.City != "Berlin" || first.Temperature != -1.5 || first.Season != climate.SeasonWinter {
		t.Errorf("unexpected first record %+v", first)
	}
	if !first.Timestamp.Equal(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected timestamp %v", first.Timestamp)
	}
	if records[2].Season != climate.SeasonSummer {
		t.Errorf("expected file order to be preserved, got %+v", records)
	}

	ny, err := ds.Records("New York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ny) != 2 {
		t.Errorf("Expected 2 New York records, got %d", len(ny))
	}
}

func TestRecordsUnknownCity(t *testing.T) {
	ds, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if _, err := ds.Records("Atlantis"); !errors.Is(err, ErrCityNotFound) {
		t.Errorf("expected ErrCityNotFound, got %v", err)
	}
}

func TestLoadTimestampFormats(t *testing.T) {
	csvData := `city,timestamp,temperature,season
Tokyo,2015-03-01,10,spring
Tokyo,2015-03-02 12:30:00,11,spring
Tokyo,2015-03-03T06:00:00Z,12,spring`

	ds, err := Load(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}
	records, err := ds.Records("Tokyo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2015, 3, 2, 12, 30, 0, 0, time.UTC)
	if !records[1].Timestamp.Equal(want) {
		t.Errorf("expected %v, got %v", want, records[1].Timestamp)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr error
		rowErr  string // expected RowError column, if any
	}{
		{
			name:    "missing season column",
			csv:     "city,timestamp,temperature\nBerlin,2010-01-01,1\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "empty input",
			csv:     "",
			wantErr: ErrEmptyDataset,
		},
		{
			name:   "bad timestamp",
			csv:    "city,timestamp,temperature,season\nBerlin,yesterday,1,winter\n",
			rowErr: ColumnTimestamp,
		},
		{
			name:   "bad temperature",
			csv:    "city,timestamp,temperature,season\nBerlin,2010-01-01,warm,winter\n",
			rowErr: ColumnTemperature,
		},
		{
			name:   "unknown season",
			csv:    "city,timestamp,temperature,season\nBerlin,2010-01-01,1,monsoon\n",
			rowErr: ColumnSeason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.csv))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.rowErr != "" {
				var rowErr *RowError
				if !errors.As(err, &rowErr) {
					t.Fatalf("expected *RowError, got %T: %v", err, err)
				}
				if rowErr.Column != tt.rowErr || rowErr.Row != 2 {
					t.Errorf("unexpected row error %+v", rowErr)
				}
			}
		})
	}
}
