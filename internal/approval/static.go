package approval

import (
	"context"

	approvalmetrics "polydom/internal/approval/metrics"
	"polydom/pkg/platform/audit"
	"polydom/pkg/requestcontext"
)

const (
	riskLevelLow = "low"

	reasonApproved        = "Approved"
	reasonSandboxApproved = "Sandbox auto-approved"
)

// Static is the current low-assurance evaluator: it approves every operation
// and tags the decision with the mode it ran in. It exists to keep the
// decision seam in place; real identity and fraud checks plug in behind the
// Evaluator interface without changing callers.
type Static struct {
	sandbox bool
	audit   *audit.Emitter
	metrics *approvalmetrics.Metrics
}

// NewStatic constructs the evaluator. metrics may be nil.
func NewStatic(sandbox bool, emitter *audit.Emitter, metrics *approvalmetrics.Metrics) *Static {
	return &Static{sandbox: sandbox, audit: emitter, metrics: metrics}
}

// Evaluate approves the operation and records the decision. If the audit
// entry cannot be written the evaluation fails; an unaudited approval must
// never reach a caller.
func (s *Static) Evaluate(ctx context.Context, req Request) (*Decision, error) {
	now := requestcontext.Now(ctx)

	reason := reasonApproved
	if s.sandbox {
		reason = reasonSandboxApproved
	}

	d := &Decision{
		Approved:  true,
		RiskLevel: riskLevelLow,
		Reason:    reason,
		Checks: Checks{
			IdentityVerified:     true,
			OperationValid:       true,
			NoSuspiciousActivity: true,
		},
		Sandbox:   s.sandbox,
		Timestamp: now,
	}

	entry, err := s.audit.Record(ctx, audit.Decision{
		OperationType: req.OperationType,
		OperationData: req.OperationData,
		Tenant:        req.Domain,
		Approved:      d.Approved,
		RiskLevel:     d.RiskLevel,
		Reason:        d.Reason,
		Sandbox:       d.Sandbox,
		Timestamp:     now,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementAuditFailures()
		}
		return nil, err
	}

	d.AuditLogID = entry.ID
	d.AuditHash = entry.Hash

	if s.metrics != nil {
		s.metrics.IncrementEvaluations(d.Approved)
	}
	return d, nil
}
