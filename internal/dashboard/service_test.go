package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/i474232898/temperature-dashboard/internal/climate"
	"github.com/i474232898/temperature-dashboard/internal/dataset"
	"github.com/i474232898/temperature-dashboard/internal/metrics"
	"github.com/i474232898/temperature-dashboard/internal/store"
	"github.com/i474232898/temperature-dashboard/internal/weather"
)

// fakeProvider returns a fixed temperature or error and records requests.
type fakeProvider struct {
	temp  float64
	err   error
	calls []weather.Location
	token string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) CurrentTemperature(_ context.Context, loc weather.Location, token string) (weather.Reading, error) {
	f.calls = append(f.calls, loc)
	f.token = token
	if f.err != nil {
		return weather.Reading{}, f.err
	}
	return weather.Reading{ProviderName: "fake", Location: loc, TemperatureC: f.temp}, nil
}

const winterCSV = `city,timestamp,temperature,season
London,2019-12-01,10,winter
London,2020-01-01,12,winter
London,2020-02-01,14,winter
London,2020-07-01,20,summer
Atlantis,2020-01-01,30,winter`

func newTestService(p weather.Provider) *Service {
	svc := NewService(store.NewMemoryStore(0, 0), p, metrics.NewCollector("test"), Options{})
	svc.now = func() time.Time { return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func upload(t *testing.T, svc *Service) UploadResult {
	t.Helper()
	res, err := svc.Upload(strings.NewReader(winterCSV))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	return res
}

func TestServiceUploadAndReport(t *testing.T) {
	svc := newTestService(&fakeProvider{})
	res := upload(t, svc)

	if res.ID == "" || res.Rows != 5 {
		t.Fatalf("unexpected upload result %+v", res)
	}

	cities, err := svc.Cities(res.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cities) != 2 || cities[0] != "London" {
		t.Errorf("unexpected cities %v", cities)
	}

	report, err := svc.Report(res.ID, "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Profile[climate.SeasonWinter].Mean != 12 {
		t.Errorf("unexpected winter profile %+v", report.Profile[climate.SeasonWinter])
	}
	if len(report.Trend.Points) != 4 {
		t.Errorf("expected a trend point per London record, got %d", len(report.Trend.Points))
	}
	if report.Summary.Min != 10 || report.Summary.Max != 20 {
		t.Errorf("unexpected summary %+v", report.Summary)
	}
}

func TestServiceReportErrors(t *testing.T) {
	svc := newTestService(&fakeProvider{})
	res := upload(t, svc)

	if _, err := svc.Report("nope", "London"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected store.ErrNotFound, got %v", err)
	}
	if _, err := svc.Report(res.ID, "Paris"); !errors.Is(err, dataset.ErrCityNotFound) {
		t.Errorf("expected dataset.ErrCityNotFound, got %v", err)
	}
}

func TestServiceUploadRejectsBadCSV(t *testing.T) {
	svc := newTestService(&fakeProvider{})
	if _, err := svc.Upload(strings.NewReader("a,b\n1,2\n")); !errors.Is(err, dataset.ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestServiceCurrentTemperature(t *testing.T) {
	tests := []struct {
		name      string
		temp      float64
		anomalous bool
	}{
		{"anomalous", 17, true},
		{"normal", 15, false},
		{"boundary", 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{temp: tt.temp}
			svc := newTestService(p)
			svc.opts.DefaultToken = "default"
			res := upload(t, svc)

			check, err := svc.CurrentTemperature(context.Background(), res.ID, "London", "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if check.Verdict.Season != climate.SeasonWinter {
				t.Errorf("expected winter verdict, got %s", check.Verdict.Season)
			}
			if check.Verdict.Anomalous != tt.anomalous {
				t.Errorf("expected anomalous=%v, got %+v", tt.anomalous, check.Verdict)
			}
			if p.token != "default" {
				t.Errorf("expected default token to be used, got %q", p.token)
			}
			if check.Location.Country != "GB" {
				t.Errorf("expected GB country code, got %+v", check.Location)
			}
		})
	}
}

func TestServiceCurrentTemperatureErrors(t *testing.T) {
	apiErr := &weather.APIError{StatusCode: 404, Message: "city not found"}
	p := &fakeProvider{err: apiErr}
	svc := newTestService(p)
	res := upload(t, svc)

	if _, err := svc.CurrentTemperature(context.Background(), res.ID, "London", ""); !errors.Is(err, weather.ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}

	_, err := svc.CurrentTemperature(context.Background(), res.ID, "London", "tok")
	var gotAPIErr *weather.APIError
	if !errors.As(err, &gotAPIErr) || gotAPIErr.StatusCode != 404 {
		t.Errorf("expected upstream 404, got %v", err)
	}

	if _, err := svc.CurrentTemperature(context.Background(), res.ID, "Atlantis", "tok"); !errors.Is(err, weather.ErrUnknownCity) {
		t.Errorf("expected ErrUnknownCity, got %v", err)
	}
}

func TestServiceCurrentTemperatureUnprofiledSeason(t *testing.T) {
	svc := newTestService(&fakeProvider{temp: 5})
	svc.now = func() time.Time { return time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC) }
	res := upload(t, svc)

	if _, err := svc.CurrentTemperature(context.Background(), res.ID, "London", "tok"); !errors.Is(err, climate.ErrSeasonNotProfiled) {
		t.Errorf("expected ErrSeasonNotProfiled, got %v", err)
	}
}

func TestServiceCheckToken(t *testing.T) {
	p := &fakeProvider{temp: 8}
	svc := newTestService(p)

	ok, err := svc.CheckToken(context.Background(), "tok")
	if err != nil || !ok {
		t.Fatalf("expected valid token, got %v %v", ok, err)
	}
	if len(p.calls) != 1 || p.calls[0].City != "London" {
		t.Errorf("expected London to be probed, got %+v", p.calls)
	}

	p.err = &weather.APIError{StatusCode: 401, Message: "Invalid API key"}
	ok, err = svc.CheckToken(context.Background(), "bad")
	if ok {
		t.Error("expected invalid token")
	}
	var apiErr *weather.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Errorf("expected upstream 401, got %v", err)
	}
}

func TestServicePurgeExpired(t *testing.T) {
	st := store.NewMemoryStore(0, time.Hour)
	collector := metrics.NewCollector("test")
	svc := NewService(st, &fakeProvider{}, collector, Options{})
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	res := upload(t, svc)
	if n := svc.PurgeExpired(); n != 1 {
		t.Errorf("expected 1 purged dataset, got %d", n)
	}
	if got := testutil.ToFloat64(collector.DatasetsStored); got != 0 {
		t.Errorf("expected stored gauge at 0 after purge, got %v", got)
	}
	if _, err := svc.Cities(res.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected purged dataset to be gone, got %v", err)
	}
}

func TestServiceTracksStoredDatasets(t *testing.T) {
	collector := metrics.NewCollector("test")
	svc := NewService(store.NewMemoryStore(0, 0), &fakeProvider{}, collector, Options{})

	first := upload(t, svc)
	upload(t, svc)
	if got := testutil.ToFloat64(collector.DatasetsStored); got != 2 {
		t.Errorf("expected 2 stored datasets, got %v", got)
	}

	if err := svc.Delete(first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(collector.DatasetsStored); got != 1 {
		t.Errorf("expected 1 stored dataset after delete, got %v", got)
	}

	if err := svc.Delete(first.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
