package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorRecords(t *testing.T) {
	c := NewCollector("test")

	c.RecordUpload(120, nil)
	c.RecordUpload(0, errors.New("bad csv"))
	c.RecordReport(3)
	c.RecordReport(2)
	c.RecordLiveFetch("ok")

	if got := testutil.ToFloat64(c.UploadsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("expected 1 accepted upload, got %v", got)
	}
	if got := testutil.ToFloat64(c.UploadsTotal.WithLabelValues("rejected")); got != 1 {
		t.Errorf("expected 1 rejected upload, got %v", got)
	}
	if got := testutil.ToFloat64(c.ReportsTotal); got != 2 {
		t.Errorf("expected 2 reports, got %v", got)
	}
	if got := testutil.ToFloat64(c.AnomaliesFlagged); got != 5 {
		t.Errorf("expected 5 anomalies, got %v", got)
	}
	if got := testutil.ToFloat64(c.LiveFetchTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("expected 1 live fetch, got %v", got)
	}
}

func TestCollectorsAreIndependent(t *testing.T) {
	// Separate registries must not collide on metric names.
	a := NewCollector("dup")
	b := NewCollector("dup")
	a.RecordReport(1)

	if got := testutil.ToFloat64(b.ReportsTotal); got != 0 {
		t.Errorf("expected independent collectors, got %v", got)
	}
}
