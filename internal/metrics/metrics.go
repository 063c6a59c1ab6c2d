package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	Registry *prometheus.Registry

	// Upload Metrics
	UploadsTotal   *prometheus.CounterVec
	UploadRows     prometheus.Histogram
	DatasetsPurged prometheus.Counter
	DatasetsStored prometheus.Gauge

	// Analysis Metrics
	ReportsTotal     prometheus.Counter
	AnomaliesFlagged prometheus.Counter
	ReportDuration   prometheus.Histogram

	// Live Fetch Metrics
	LiveFetchTotal    *prometheus.CounterVec
	LiveFetchDuration prometheus.Histogram
}

// NewCollector creates a new metrics collector on its own registry
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		Registry: reg,

		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Total number of CSV uploads by outcome",
			},
			[]string{"outcome"}, // "ok", "rejected"
		),

		UploadRows: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upload_rows",
				Help:      "Number of rows per accepted upload",
				Buckets:   []float64{10, 100, 1000, 10000, 50000, 100000, 500000},
			},
		),

		DatasetsPurged: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "datasets_purged_total",
				Help:      "Total number of expired datasets removed",
			},
		),

		DatasetsStored: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "datasets_stored",
				Help:      "Number of uploaded datasets currently held in memory",
			},
		),

		ReportsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_total",
				Help:      "Total number of city reports computed",
			},
		),

		AnomaliesFlagged: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "anomalies_flagged_total",
				Help:      "Total number of historical records flagged as anomalous",
			},
		),

		ReportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Duration of city report computation in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
		),

		LiveFetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "live_fetch_total",
				Help:      "Total number of live temperature fetches by outcome",
			},
			[]string{"outcome"}, // "ok", "api_error", "error"
		),

		LiveFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "live_fetch_duration_seconds",
				Help:      "Duration of live temperature fetches in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// RecordUpload counts an upload and, when accepted, its row count
func (c *Collector) RecordUpload(rows int, err error) {
	if err != nil {
		c.UploadsTotal.WithLabelValues("rejected").Inc()
		return
	}
	c.UploadsTotal.WithLabelValues("ok").Inc()
	c.UploadRows.Observe(float64(rows))
}

// RecordReport counts a computed report and its anomalies
func (c *Collector) RecordReport(anomalies int) {
	c.ReportsTotal.Inc()
	c.AnomaliesFlagged.Add(float64(anomalies))
}

// RecordLiveFetch increments the live fetch counter
func (c *Collector) RecordLiveFetch(outcome string) {
	c.LiveFetchTotal.WithLabelValues(outcome).Inc()
}
