// Package metrics defines the Prometheus collectors of the IPC server and
// exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResultsCount    *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pgalyzer_requests_total",
				Help: "Total IPC requests by action and response code.",
			},
			[]string{"action", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pgalyzer_request_duration_seconds",
				Help:    "IPC request latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"action"},
		),
		ResultsCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pgalyzer_results_count",
				Help:    "Number of results returned per request.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
			[]string{"action"},
		),
		gatherer: reg,
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.ResultsCount)
	return m
}

// Observe records one handled request. A nil Metrics records nothing.
func (m *Metrics) Observe(action string, code, results int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(action, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
	if code == 200 {
		m.ResultsCount.WithLabelValues(action).Observe(float64(results))
	}
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
