package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the POS
// service.
type Metrics struct {
	ImportsTotal *prometheus.CounterVec // labels: outcome={success,node_not_found,missing_fields,fetch_unavailable,store_error}
	UpsertsTotal *prometheus.CounterVec // labels: op={create,update}, outcome={success,not_found,duplicate_name,error}

	// Node fetch metrics.
	NodeFetchRequests *prometheus.CounterVec // labels: outcome={success,not_found,fixture,error}
	NodeFetchDuration prometheus.Histogram
	NodeCache         *prometheus.CounterVec // labels: result={hit,miss}

	ServiceUp prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ImportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_pos",
			Name:      "imports_total",
			Help:      "OSM node imports by outcome.",
		}, []string{"outcome"}),
		UpsertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_pos",
			Name:      "upserts_total",
			Help:      "POS upserts by operation and outcome.",
		}, []string{"op", "outcome"}),
		NodeFetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_pos",
			Name:      "node_fetch_requests_total",
			Help:      "OSM API node fetches by outcome.",
		}, []string{"outcome"}),
		NodeFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "campus_pos",
			Name:      "node_fetch_duration_seconds",
			Help:      "OSM API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		NodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_pos",
			Name:      "node_cache_total",
			Help:      "Node fetch cache lookups by result.",
		}, []string{"result"}),
		ServiceUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "campus_pos",
			Name:      "service_up",
			Help:      "1 while the service is running, 0 after shutdown.",
		}),
	}

	prometheus.MustRegister(
		m.ImportsTotal,
		m.UpsertsTotal,
		m.NodeFetchRequests,
		m.NodeFetchDuration,
		m.NodeCache,
		m.ServiceUp,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ImportsTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "campus_pos", Name: "imports_total"}, []string{"outcome"}),
		UpsertsTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "campus_pos", Name: "upserts_total"}, []string{"op", "outcome"}),
		NodeFetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "campus_pos", Name: "node_fetch_requests_total"}, []string{"outcome"}),
		NodeFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "campus_pos", Name: "node_fetch_duration_seconds"}),
		NodeCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "campus_pos", Name: "node_cache_total"}, []string{"result"}),
		ServiceUp:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "campus_pos", Name: "service_up"}),
	}
}
