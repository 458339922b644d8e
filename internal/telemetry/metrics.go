package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service. Each Metrics owns its
// registry so several can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	VendorErrors    *prometheus.CounterVec
	WebhookEvents   *prometheus.CounterVec
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipit_requests_total",
				Help: "Total number of requests by operation and status",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shipit_request_duration_seconds",
				Help:    "Request duration in seconds by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		VendorErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipit_vendor_errors_total",
				Help: "Total Shipit API errors by error code",
			},
			[]string{"code"},
		),
		WebhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipit_webhook_events_total",
				Help: "Total webhook callbacks received by event type",
			},
			[]string{"type"},
		),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.VendorErrors, m.WebhookEvents)
	return m
}

// RecordRequest records a request metric.
func (m *Metrics) RecordRequest(operation, status string, duration float64) {
	m.RequestsTotal.WithLabelValues(operation, status).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(duration)
}

// RecordError records a vendor error metric. An empty code is reported as "unknown".
func (m *Metrics) RecordError(code string) {
	if code == "" {
		code = "unknown"
	}
	m.VendorErrors.WithLabelValues(code).Inc()
}

// RecordWebhook records a received callback.
func (m *Metrics) RecordWebhook(eventType string) {
	m.WebhookEvents.WithLabelValues(eventType).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
