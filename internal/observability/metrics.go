package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus collectors for the HTTP surface.
type Metrics struct {
	requestsTotal  *prometheus.CounterVec
	latencySeconds *prometheus.HistogramVec
	errorsTotal    *prometheus.CounterVec
}

// NewMetrics initialises and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "path", "status"}),
		latencySeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "path"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of error responses, by error code.",
		}, []string{"method", "path", "code"}),
	}
	prometheus.MustRegister(m.requestsTotal, m.latencySeconds, m.errorsTotal)
	return m
}

// RecordRequest observes one served request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.latencySeconds.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError counts an error response by its domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(method, path, code).Inc()
}
