package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of the API
type Metrics struct {
	registry       *prometheus.Registry
	Visualizations *prometheus.CounterVec
	Failures       *prometheus.CounterVec
	UnmatchedState *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Visualizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_access",
			Name:      "visualizations_total",
			Help:      "Tables and figures served, by kind.",
		}, []string{"kind"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_access",
			Name:      "visualization_failures_total",
			Help:      "Tables and figures that could not be built, by kind.",
		}, []string{"kind"}),
		UnmatchedState: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic_access",
			Name:      "unmatched_states_total",
			Help:      "States dropped or left without a code by the state table joins.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Visualizations,
		m.Failures,
		m.UnmatchedState,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
