// Package metrics defines the Prometheus collectors exposed by the API server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	StampsTotal     *prometheus.CounterVec
	StampDuration   prometheus.Histogram
	TemplateReloads prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		StampsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "igazolas_stamps_total",
				Help: "Forms rendered, by result kind.",
			},
			[]string{"result"},
		),
		StampDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "igazolas_stamp_duration_seconds",
				Help:    "Time spent rendering and encoding one form.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
		),
		TemplateReloads: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "igazolas_template_reloads_total",
				Help: "Template cache invalidations caused by file changes.",
			},
		),
	}

	m.registry.MustRegister(
		m.StampsTotal,
		m.StampDuration,
		m.TemplateReloads,
		collectors.NewGoCollector(),
	)
	return m
}

// RecordStamp counts one /generate call. result is "success" or an error kind.
func (m *Metrics) RecordStamp(result string, d time.Duration) {
	m.StampsTotal.WithLabelValues(result).Inc()
	m.StampDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordTemplateReload() {
	m.TemplateReloads.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
