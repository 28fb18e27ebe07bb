package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/ports"
)

// Fetch outcomes recorded by the feed fetcher.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector bundles Prometheus metrics for feed fetching and snapshot refreshes.
type Collector struct {
	gatherer prometheus.Gatherer

	FeedRequests     *prometheus.CounterVec
	Launches         *prometheus.GaugeVec
	RefreshDurations prometheus.Histogram
}

var (
	_ ports.FetchRecorder    = (*Collector)(nil)
	_ ports.SnapshotRecorder = (*Collector)(nil)
)

// NewCollector registers metrics against reg, defaulting to the global registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "launchtracker_feed_requests_total",
		Help: "Outbound launch source requests, labeled by outcome.",
	}, []string{"outcome"}), "launchtracker_feed_requests_total")
	if err != nil {
		return nil, err
	}

	launches, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "launchtracker_launches",
		Help: "Launch records in the latest snapshot, labeled by tier.",
	}, []string{"tier"}), "launchtracker_launches")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "launchtracker_refresh_duration_seconds",
		Help:    "Time spent collecting one snapshot.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}), "launchtracker_refresh_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		FeedRequests:     requests,
		Launches:         launches,
		RefreshDurations: durations,
	}, nil
}

// ObserveFetch counts one request with its outcome.
func (c *Collector) ObserveFetch(outcome string) {
	if c == nil || c.FeedRequests == nil {
		return
	}
	c.FeedRequests.WithLabelValues(outcome).Inc()
}

// ObserveSnapshot sets per-tier gauges and records the refresh duration.
func (c *Collector) ObserveSnapshot(perTier map[domain.Tier]int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.Launches != nil {
		for _, tier := range domain.AllTiers {
			c.Launches.WithLabelValues(tier.String()).Set(float64(perTier[tier]))
		}
	}
	if c.RefreshDurations != nil {
		c.RefreshDurations.Observe(elapsed.Seconds())
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
