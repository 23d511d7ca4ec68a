package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the approval module.
type Metrics struct {
	Evaluations   *prometheus.CounterVec
	AuditFailures prometheus.Counter
}

// New creates and registers all approval metrics.
func New() *Metrics {
	return &Metrics{
		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "polydom_approval_evaluations_total",
			Help: "Total approval evaluations by outcome",
		}, []string{"outcome"}),
		AuditFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "polydom_approval_audit_failures_total",
			Help: "Evaluations that failed because the audit entry could not be written",
		}),
	}
}

// IncrementEvaluations records one evaluation outcome.
func (m *Metrics) IncrementEvaluations(approved bool) {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	m.Evaluations.WithLabelValues(outcome).Inc()
}

// IncrementAuditFailures records a failed audit write.
func (m *Metrics) IncrementAuditFailures() {
	m.AuditFailures.Inc()
}
