package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "space_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard feeds.
type Metrics struct {
	// Provider fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: provider={apod,launches,bodies}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: provider

	BodiesCached           prometheus.Gauge
	StalePicturesDiscarded prometheus.Counter
	DashboardReady         prometheus.Gauge

	// Publisher metrics.
	RecordsPublished *prometheus.CounterVec // labels: record_type={picture,launch,body}
	PublishErrors    prometheus.Counter

	// Scheduler metrics.
	RefreshRuns *prometheus.CounterVec // labels: job={launches,apod}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.BodiesCached,
		m.StalePicturesDiscarded,
		m.DashboardReady,
		m.RecordsPublished,
		m.PublishErrors,
		m.RefreshRuns,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		BodiesCached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bodies_cached",
			Help:      "Number of celestial body payloads held in the session cache.",
		}),
		StalePicturesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_pictures_discarded_total",
			Help:      "Picture responses dropped because a newer request was issued.",
		}),
		DashboardReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ready",
			Help:      "1 once the initial body load has settled, 0 before.",
		}),
		RecordsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Normalized records written to Kafka by record type.",
		}, []string{"record_type"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed Kafka publish calls.",
		}),
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_runs_total",
			Help:      "Scheduled refresh executions by job.",
		}, []string{"job"}),
	}
}
