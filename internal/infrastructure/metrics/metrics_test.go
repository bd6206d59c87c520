package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.TransactionsRecorded == nil || m.SnapshotsAppended == nil || m.OutboxEventsPublished == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestCountersIncrement(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	m.TransactionsRecorded.WithLabelValues("expense").Inc()
	m.TransactionsRecorded.WithLabelValues("expense").Inc()
	m.SnapshotsAppended.Inc()

	if got := testutil.ToFloat64(m.TransactionsRecorded.WithLabelValues("expense")); got != 2 {
		t.Fatalf("expected 2 recorded expenses, got %v", got)
	}

	if got := testutil.ToFloat64(m.SnapshotsAppended); got != 1 {
		t.Fatalf("expected 1 snapshot appended, got %v", got)
	}
}
