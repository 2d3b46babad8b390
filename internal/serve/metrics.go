package serve

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the server's Prometheus collectors. Each Server owns its
// registry so tests and repeated serves never collide on registration.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golife",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served, by status code and method.",
		}, []string{"code", "method"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "golife",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "golife",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served.",
		}),
	}
}

func (m *metrics) instrument(h http.Handler) http.Handler {
	return promhttp.InstrumentHandlerInFlight(m.inflight,
		promhttp.InstrumentHandlerDuration(m.duration,
			promhttp.InstrumentHandlerCounter(m.requests, h)))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
