package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the outbox relay.
type Metrics struct {
	Published           prometheus.Counter
	PublishFailures     prometheus.Counter
	Pending             prometheus.Gauge
	BatchDuration       prometheus.Histogram
	CircuitBreakerState prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Published: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_outbox_published_total",
			Help: "Total number of outbox entries delivered to the event stream",
		}),
		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_outbox_publish_failures_total",
			Help: "Total number of outbox batches that failed to publish",
		}),
		Pending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "govinda_outbox_pending",
			Help: "Number of outbox entries waiting to be published",
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "govinda_outbox_batch_duration_seconds",
			Help:    "Time spent relaying one outbox batch",
			Buckets: prometheus.DefBuckets,
		}),
		CircuitBreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "govinda_outbox_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
	}
}

func (m *Metrics) AddPublished(n int) {
	if n > 0 {
		m.Published.Add(float64(n))
	}
}

func (m *Metrics) IncPublishFailures() {
	m.PublishFailures.Inc()
}

func (m *Metrics) SetPending(n int) {
	m.Pending.Set(float64(n))
}

func (m *Metrics) ObserveBatchDuration(start time.Time) {
	m.BatchDuration.Observe(time.Since(start).Seconds())
}

// SetCircuitBreakerState sets the circuit breaker state gauge.
func (m *Metrics) SetCircuitBreakerState(open bool) {
	if open {
		m.CircuitBreakerState.Set(1)
	} else {
		m.CircuitBreakerState.Set(0)
	}
}
