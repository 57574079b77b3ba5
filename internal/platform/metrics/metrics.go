package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics shared by all routes.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
	PanicsRecovered prometheus.Counter
}

// New creates and registers the HTTP metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "govinda_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method"}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govinda_http_requests_total",
			Help: "HTTP requests by route pattern, method and status class",
		}, []string{"route", "method", "status"}),
		PanicsRecovered: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_http_panics_recovered_total",
			Help: "Total number of handler panics turned into 500 responses",
		}),
	}
}

func (m *Metrics) ObserveRequest(route, method, status string, start time.Time) {
	m.RequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	m.RequestsTotal.WithLabelValues(route, method, status).Inc()
}

func (m *Metrics) IncrementPanicsRecovered() {
	m.PanicsRecovered.Inc()
}
