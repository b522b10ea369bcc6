package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "taskboard"
	// Subsystem for dispatch pipeline metrics
	subsystem = "dispatch"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry
)

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// RequestMetricsCollector handles all request execution metrics
type RequestMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	inFlight        *prometheus.GaugeVec
}

// NewRequestMetricsCollector creates a new request metrics collector
func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Handler execution duration distribution",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"request", "status"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of requests dispatched by type and status",
			},
			[]string{"request", "status"},
		),

		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently executing",
			},
			[]string{"request"},
		),
	}
}

// Register registers all request metrics with the Prometheus registry
func (c *RequestMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.requestDuration,
		c.requestsTotal,
		c.inFlight,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// InFlight returns the in-flight gauge for one request name
func (c *RequestMetricsCollector) InFlight(requestName string) prometheus.Gauge {
	return c.inFlight.WithLabelValues(requestName)
}

// RequestsTotal returns the dispatch counter for one request/status pair
func (c *RequestMetricsCollector) RequestsTotal(requestName, status string) prometheus.Counter {
	return c.requestsTotal.WithLabelValues(requestName, status)
}

// RecordRequestStart marks a request as in flight
func (c *RequestMetricsCollector) RecordRequestStart(requestName string) {
	c.inFlight.WithLabelValues(requestName).Inc()
}

// RecordRequestEnd records the outcome of one request execution
func (c *RequestMetricsCollector) RecordRequestEnd(requestName string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	c.inFlight.WithLabelValues(requestName).Dec()
	c.requestDuration.WithLabelValues(requestName, status).Observe(duration)
	c.requestsTotal.WithLabelValues(requestName, status).Inc()
}
