package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the household module.
type Metrics struct {
	HouseholdsCreated    prometheus.Counter
	HouseholdsDeleted    prometheus.Counter
	MemberChanges        *prometheus.CounterVec
	ConcurrentRejections prometheus.Counter
	MutationDuration     prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HouseholdsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_households_created_total",
			Help: "Total number of households created",
		}),
		HouseholdsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_households_deleted_total",
			Help: "Total number of households deleted",
		}),
		MemberChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govinda_household_member_changes_total",
			Help: "Household membership changes, by change (added, removed)",
		}, []string{"change"}),
		ConcurrentRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "govinda_household_concurrent_modifications_total",
			Help: "Household writes rejected because of a stale version",
		}),
		MutationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "govinda_household_mutation_duration_seconds",
			Help:    "Duration of transactional household mutations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementHouseholdsCreated() {
	m.HouseholdsCreated.Inc()
}

func (m *Metrics) IncrementHouseholdsDeleted() {
	m.HouseholdsDeleted.Inc()
}

func (m *Metrics) IncrementMemberChange(change string) {
	m.MemberChanges.WithLabelValues(change).Inc()
}

func (m *Metrics) IncrementConcurrentRejections() {
	m.ConcurrentRejections.Inc()
}

// ObserveMutation records the duration of a mutation started at start.
func (m *Metrics) ObserveMutation(start time.Time) {
	m.MutationDuration.Observe(time.Since(start).Seconds())
}
