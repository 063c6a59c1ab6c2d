// Package dashboard wires uploaded datasets, the seasonal statistics and the
// live weather provider into the operations the dashboard exposes.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/temperature-dashboard/internal/climate"
	"github.com/i474232898/temperature-dashboard/internal/dataset"
	"github.com/i474232898/temperature-dashboard/internal/metrics"
	"github.com/i474232898/temperature-dashboard/internal/weather"
)

// Store is the contract the dataset store must satisfy.
type Store interface {
	Save(ds *dataset.Dataset)
	Get(id string) (*dataset.Dataset, error)
	Delete(id string) error
	Purge() int
	Len() int
}

// UploadResult describes an accepted upload.
type UploadResult struct {
	ID     string   `json:"id"`
	Rows   int      `json:"rows"`
	Cities []string `json:"cities"`
}

// LiveCheck is a live temperature classified against the city's seasonal profile.
type LiveCheck struct {
	Location   weather.Location `json:"location"`
	Verdict    climate.Verdict  `json:"verdict"`
	ObservedAt time.Time        `json:"observedAt"`
	CheckedAt  time.Time        `json:"checkedAt"`
}

// Options configures a Service.
type Options struct {
	// DefaultToken is used when a caller does not supply an API token.
	DefaultToken string
	// ReferenceCity is probed to validate tokens.
	ReferenceCity string
}

// Service orchestrates dataset uploads, report computation and live checks.
type Service struct {
	store    Store
	provider weather.Provider
	metrics  *metrics.Collector
	opts     Options
	now      func() time.Time
}

// NewService creates a new Service.
func NewService(store Store, provider weather.Provider, collector *metrics.Collector, opts Options) *Service {
	if opts.ReferenceCity == "" {
		opts.ReferenceCity = "London"
	}
	return &Service{
		store:    store,
		provider: provider,
		metrics:  collector,
		opts:     opts,
		now:      time.Now,
	}
}

// Upload parses a CSV and stores it under a fresh id.
func (s *Service) Upload(r io.Reader) (UploadResult, error) {
	ds, err := dataset.Load(r)
	if err != nil {
		s.metrics.RecordUpload(0, err)
		log.Printf("INFO: rejected upload: %v", err)
		return UploadResult{}, err
	}

	ds.ID = uuid.NewString()
	ds.UploadedAt = s.now()
	s.store.Save(ds)
	s.metrics.RecordUpload(ds.Len(), nil)
	s.metrics.DatasetsStored.Set(float64(s.store.Len()))

	log.Printf("INFO: stored dataset %s with %d rows and %d cities", ds.ID, ds.Len(), len(ds.Cities()))
	return UploadResult{ID: ds.ID, Rows: ds.Len(), Cities: ds.Cities()}, nil
}

// Cities lists the cities of an uploaded dataset.
func (s *Service) Cities(id string) ([]string, error) {
	ds, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return ds.Cities(), nil
}

// Report computes the seasonal profile, anomalies, summary and trend of a city.
// Nothing is cached; each call recomputes from the stored rows.
func (s *Service) Report(id, city string) (climate.Report, error) {
	records, err := s.cityRecords(id, city)
	if err != nil {
		return climate.Report{}, err
	}

	timer := s.metrics.NewTimer(s.metrics.ReportDuration)
	report, err := climate.Analyze(city, records)
	timer.ObserveDuration()
	if err != nil {
		return climate.Report{}, err
	}

	s.metrics.RecordReport(len(report.Anomalies))
	return report, nil
}

// CurrentTemperature fetches the live temperature of city and classifies it
// against the city's profile for the current season.
func (s *Service) CurrentTemperature(ctx context.Context, id, city, token string) (LiveCheck, error) {
	records, err := s.cityRecords(id, city)
	if err != nil {
		return LiveCheck{}, err
	}

	reading, err := s.fetch(ctx, city, token)
	if err != nil {
		return LiveCheck{}, err
	}

	now := s.now()
	season := climate.SeasonForMonth(now.Month())
	verdict, err := climate.Classify(reading.TemperatureC, season, climate.BuildProfile(records))
	if err != nil {
		return LiveCheck{}, fmt.Errorf("classify %s in %s: %w", city, season, err)
	}

	return LiveCheck{
		Location:   reading.Location,
		Verdict:    verdict,
		ObservedAt: reading.Timestamp,
		CheckedAt:  now.UTC(),
	}, nil
}

// CheckToken validates token by fetching the reference city.
// A rejected token yields false together with the upstream *weather.APIError.
func (s *Service) CheckToken(ctx context.Context, token string) (bool, error) {
	if _, err := s.fetch(ctx, s.opts.ReferenceCity, token); err != nil {
		return false, err
	}
	return true, nil
}

// Delete drops an uploaded dataset.
func (s *Service) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.metrics.DatasetsStored.Set(float64(s.store.Len()))
	return nil
}

// PurgeExpired drops datasets past their retention and returns how many went.
func (s *Service) PurgeExpired() int {
	n := s.store.Purge()
	if n > 0 {
		s.metrics.DatasetsPurged.Add(float64(n))
	}
	s.metrics.DatasetsStored.Set(float64(s.store.Len()))
	return n
}

func (s *Service) cityRecords(id, city string) ([]climate.TemperatureRecord, error) {
	ds, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return ds.Records(city)
}

func (s *Service) fetch(ctx context.Context, city, token string) (weather.Reading, error) {
	if token == "" {
		token = s.opts.DefaultToken
	}
	if token == "" {
		return weather.Reading{}, weather.ErrMissingToken
	}

	loc, err := weather.LookupCity(city)
	if err != nil {
		return weather.Reading{}, err
	}

	timer := s.metrics.NewTimer(s.metrics.LiveFetchDuration)
	reading, err := s.provider.CurrentTemperature(ctx, loc, token)
	timer.ObserveDuration()

	var apiErr *weather.APIError
	switch {
	case err == nil:
		s.metrics.RecordLiveFetch("ok")
	case errors.As(err, &apiErr):
		s.metrics.RecordLiveFetch("api_error")
		log.Printf("ERROR: provider %s rejected request for %s: %v", s.provider.Name(), loc.Key(), err)
	default:
		s.metrics.RecordLiveFetch("error")
		log.Printf("ERROR: provider %s fetch failed for %s: %v", s.provider.Name(), loc.Key(), err)
	}
	return reading, err
}
