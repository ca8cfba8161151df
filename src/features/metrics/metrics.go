package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "discogsmeta"

// Metrics records resolver and catalog activity as Prometheus collectors on its own registry.
// It implements metadata.Recorder and discogs.Observer.
type Metrics struct {
	registry           *prometheus.Registry
	resolutions        *prometheus.CounterVec
	resolutionDuration *prometheus.HistogramVec
	catalogRequests    *prometheus.CounterVec
	catalogDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them, along with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Resolver calls by resolver, operation and outcome.",
		}, []string{"resolver", "operation", "outcome"}),
		resolutionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolution_duration_seconds",
			Help:      "Duration of resolver calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"resolver", "operation"}),
		catalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "Requests sent to the Discogs API by endpoint and HTTP status.",
		}, []string{"endpoint", "status"}),
		catalogDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_request_duration_seconds",
			Help:      "Duration of requests sent to the Discogs API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	m.registry.MustRegister(
		m.resolutions,
		m.resolutionDuration,
		m.catalogRequests,
		m.catalogDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry every collector is registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveResolution counts one resolver call and records its duration.
func (m *Metrics) ObserveResolution(resolver, operation, outcome string, duration time.Duration) {
	m.resolutions.WithLabelValues(resolver, operation, outcome).Inc()
	m.resolutionDuration.WithLabelValues(resolver, operation).Observe(duration.Seconds())
}

// ObserveCatalogRequest counts one catalog request and records its duration.
func (m *Metrics) ObserveCatalogRequest(endpoint, status string, duration time.Duration) {
	m.catalogRequests.WithLabelValues(endpoint, status).Inc()
	m.catalogDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
