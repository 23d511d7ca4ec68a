package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the payment module.
type Metrics struct {
	IntentsCreated prometheus.Counter
	Transitions    *prometheus.CounterVec
}

// New creates and registers all payment metrics.
func New() *Metrics {
	return &Metrics{
		IntentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "polydom_payment_intents_created_total",
			Help: "Total payment intents created",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "polydom_payment_transitions_total",
			Help: "Total payment state transitions by target state and outcome",
		}, []string{"state", "outcome"}),
	}
}

// IncrementIntentsCreated records one created intent.
func (m *Metrics) IncrementIntentsCreated() {
	m.IntentsCreated.Inc()
}

// IncrementTransition records one transition attempt outcome
// ("ok", "replayed", "conflict", "error").
func (m *Metrics) IncrementTransition(state, outcome string) {
	m.Transitions.WithLabelValues(state, outcome).Inc()
}
