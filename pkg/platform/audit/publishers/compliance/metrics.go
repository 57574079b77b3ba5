package compliance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "govinda/pkg/platform/audit"
)

// Metrics holds Prometheus metrics for change event persistence.
type Metrics struct {
	EventsEmitted   *prometheus.CounterVec
	PersistFailures prometheus.Counter
	PersistDuration prometheus.Histogram
}

// NewMetrics creates the change event metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EventsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govinda_change_events_emitted_total",
			Help: "Total number of change events written to the outbox",
		}, []string{"category"}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_change_events_persist_failures_total",
			Help: "Total number of change events that could not be written",
		}),
		PersistDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "govinda_change_events_persist_duration_seconds",
			Help:    "Time spent writing a change event to the outbox",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

func (m *Metrics) IncEventsEmitted(category audit.EventCategory) {
	m.EventsEmitted.WithLabelValues(string(category)).Inc()
}

func (m *Metrics) IncPersistFailures() {
	m.PersistFailures.Inc()
}

func (m *Metrics) ObservePersistDuration(seconds float64) {
	m.PersistDuration.Observe(seconds)
}
