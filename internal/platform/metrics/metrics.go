// Package metrics exposes the server's prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered on a private registry, so several instances can coexist
// in one process.
type Metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestCount    *prometheus.CounterVec
	activeRequests  prometheus.Gauge
	aggregations    *prometheus.CounterVec
	aggregatedItems prometheus.Histogram
	rateLimited     prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		activeRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_requests",
				Help: "Number of active HTTP requests",
			},
		),
		aggregations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingredient_aggregations_total",
				Help: "Ingredient lists aggregated, by source",
			},
			[]string{"source"},
		),
		aggregatedItems: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ingredient_aggregated_items",
				Help:    "Number of lines in an aggregated ingredient list",
				Buckets: []float64{1, 5, 10, 20, 50, 100, 200},
			},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "http_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}

	m.registry.MustRegister(
		m.requestDuration,
		m.requestCount,
		m.activeRequests,
		m.aggregations,
		m.aggregatedItems,
		m.rateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordRequest records one finished request. path should be the route template, not the raw URL.
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, statusStr).Observe(duration.Seconds())
	m.requestCount.WithLabelValues(method, path, statusStr).Inc()
}

// RequestStarted marks a request as in flight.
func (m *Metrics) RequestStarted() {
	m.activeRequests.Inc()
}

// RequestFinished marks an in-flight request as done.
func (m *Metrics) RequestFinished() {
	m.activeRequests.Dec()
}

// RecordAggregation records an aggregation run producing items lines.
func (m *Metrics) RecordAggregation(source string, items int) {
	m.aggregations.WithLabelValues(source).Inc()
	m.aggregatedItems.Observe(float64(items))
}

// RecordRateLimited counts a rejected request.
func (m *Metrics) RecordRateLimited() {
	m.rateLimited.Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
