// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Classifications *prometheus.CounterVec
	OracleFailures  *prometheus.CounterVec
	Surveys         prometheus.Counter
	Recommendations prometheus.Histogram
}

// New registers the collectors on a fresh registry so tests can build as many as they need.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stylist_classifications_total",
			Help: "Vibe classifications by answering engine.",
		}, []string{"engine"}),
		OracleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stylist_oracle_failures_total",
			Help: "Oracle calls that fell back to the rule tier.",
		}, []string{"provider"}),
		Surveys: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stylist_surveys_total",
			Help: "Completed survey submissions.",
		}),
		Recommendations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stylist_recommendations_returned",
			Help:    "Number of products returned per survey.",
			Buckets: []float64{0, 1, 2, 3, 4},
		}),
	}
	reg.MustRegister(m.Classifications, m.OracleFailures, m.Surveys, m.Recommendations)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
