// Package metrics exposes Prometheus collectors for the dashboard
// backend: firewall fetch outcomes and HTTP request timings.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors. Each instance owns its registry so tests
// can construct as many as they like without duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	// FetchTotal counts device-inventory fetches by result ("ok" or
	// "fallback").
	FetchTotal *prometheus.CounterVec

	// HTTPDuration observes request latency by route and status code.
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fortiview",
			Subsystem: "fortigate",
			Name:      "fetch_total",
			Help:      "Device inventory fetches by result.",
		}, []string{"result"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fortiview",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}

	reg.MustRegister(
		m.FetchTotal,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler returns the /metrics endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
