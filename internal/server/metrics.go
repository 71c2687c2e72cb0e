package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation for the HTTP server. Each
// Metrics owns its own registry so independent server instances (and tests)
// never collide on registration.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  prometheus.Counter
	activeRequests prometheus.Gauge
	duration       prometheus.Histogram
	errorsTotal    prometheus.Counter
	handler        http.Handler
}

// NewMetrics creates and registers the server metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitcalc_requests_total",
			Help: "Total number of HTTP requests processed.",
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bitcalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bitcalc_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		}),
		errorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitcalc_request_errors_total",
			Help: "Total number of HTTP requests answered with an error status.",
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.activeRequests,
		m.duration,
		m.errorsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests increments the active requests gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests decrements the active requests gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(seconds float64, isError bool) {
	m.requestsTotal.Inc()
	m.duration.Observe(seconds)
	if isError {
		m.errorsTotal.Inc()
	}
}

// WritePrometheus serves the metrics in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
