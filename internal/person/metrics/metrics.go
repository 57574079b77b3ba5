package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics provides observability for the person module.
type Metrics struct {
	PersonsCreated        prometheus.Counter
	HistorizedMutations   *prometheus.CounterVec
	ConcurrentRejections  prometheus.Counter
	DuplicateRejections   prometheus.Counter
	MutationDuration      prometheus.Histogram
	StateAtLookupDuration prometheus.Histogram
}

// New creates the person module metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PersonsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_persons_created_total",
			Help: "Total number of persons created",
		}),
		HistorizedMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govinda_person_historized_mutations_total",
			Help: "Person mutations that wrote a history entry, by kind",
		}, []string{"kind"}),
		ConcurrentRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_person_concurrent_modifications_total",
			Help: "Person writes rejected because of a stale version",
		}),
		DuplicateRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_person_duplicate_ahv_total",
			Help: "Person creations rejected because the AHV number is taken",
		}),
		MutationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "govinda_person_mutation_duration_seconds",
			Help:    "Duration of transactional person mutations",
			Buckets: durationBuckets,
		}),
		StateAtLookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "govinda_person_state_at_duration_seconds",
			Help:    "Duration of point-in-time person lookups",
			Buckets: durationBuckets,
		}),
	}
}

func (m *Metrics) IncrementPersonsCreated() {
	m.PersonsCreated.Inc()
}

// IncrementHistorized records a mutation of the given kind (name, marital_status).
func (m *Metrics) IncrementHistorized(kind string) {
	m.HistorizedMutations.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementConcurrentRejections() {
	m.ConcurrentRejections.Inc()
}

func (m *Metrics) IncrementDuplicateRejections() {
	m.DuplicateRejections.Inc()
}

// ObserveMutation records the duration of a mutation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveMutation(start time.Time) {
	m.MutationDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveStateAt(start time.Time) {
	m.StateAtLookupDuration.Observe(time.Since(start).Seconds())
}
