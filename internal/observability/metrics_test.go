package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"LaunchTracker/internal/domain"
)

func TestCollectorRecords(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	collector.ObserveFetch(OutcomeOK)
	collector.ObserveFetch(OutcomeOK)
	collector.ObserveFetch(OutcomeError)
	collector.ObserveSnapshot(map[domain.Tier]int{domain.Tier1: 3}, 2*time.Second)

	if got := testutil.ToFloat64(collector.FeedRequests.WithLabelValues(OutcomeOK)); got != 2 {
		t.Fatalf("expected ok=2, got %v", got)
	}
	if got := testutil.ToFloat64(collector.FeedRequests.WithLabelValues(OutcomeError)); got != 1 {
		t.Fatalf("expected error=1, got %v", got)
	}
	if got := testutil.ToFloat64(collector.Launches.WithLabelValues("Tier 1")); got != 3 {
		t.Fatalf("expected tier 1 gauge=3, got %v", got)
	}
	if got := testutil.ToFloat64(collector.Launches.WithLabelValues("Tier 3")); got != 0 {
		t.Fatalf("expected tier 3 gauge=0, got %v", got)
	}

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "launchtracker_refresh_duration_seconds_count 1") {
		t.Fatalf("histogram missing from exposition:\n%s", rec.Body.String())
	}
}

func TestCollectorReusesRegistered(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("first NewCollector: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}

	first.ObserveFetch(OutcomeOK)
	if got := testutil.ToFloat64(second.FeedRequests.WithLabelValues(OutcomeOK)); got != 1 {
		t.Fatalf("expected shared counter, got %v", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	t.Parallel()

	var c *Collector
	c.ObserveFetch(OutcomeOK)
	c.ObserveSnapshot(nil, time.Second)
}
