package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latencyBuckets are part of the scraping contract; do not derive them.
var latencyBuckets = []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2, 5}

// Metrics owns the collectors exposed on /metrics and the registry they
// live in.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal   *prometheus.CounterVec
	errorTotal     prometheus.Counter
	requestLatency prometheus.Histogram
}

// newMetrics creates the collectors on a fresh registry. With runtime set,
// the Go and process collectors are registered as well.
func newMetrics(runtime bool) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		errorTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "demo_errors_total",
				Help: "Total simulated errors",
			},
		),
		requestLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latency",
				Buckets: latencyBuckets,
			},
		),
	}

	if runtime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

func (m *Metrics) recordRequest(method, endpoint, status string) {
	m.requestTotal.WithLabelValues(method, endpoint, status).Inc()
}

func (m *Metrics) recordError() {
	m.errorTotal.Inc()
}

func (m *Metrics) observeLatency(seconds float64) {
	m.requestLatency.Observe(seconds)
}
