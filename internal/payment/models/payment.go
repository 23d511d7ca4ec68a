package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "polydom/pkg/domain"
	dErrors "polydom/pkg/domain-errors"
	"polydom/pkg/platform/sentinel"
)

// State is the lifecycle state of a payment record.
//
// PENDING -> APPROVED | REJECTED
// APPROVED -> COMPLETED | CANCELLED | FAILED
// PENDING -> CANCELLED | FAILED
//
// COMPLETED, CANCELLED, FAILED, and REJECTED are terminal. State is
// monotonic: records never move back toward PENDING or between sibling
// terminal states.
type State string

const (
	StatePending   State = "PENDING"
	StateApproved  State = "APPROVED"
	StateRejected  State = "REJECTED"
	StateCompleted State = "COMPLETED"
	StateCancelled State = "CANCELLED"
	StateFailed    State = "FAILED"
)

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateCancelled, StateFailed, StateRejected:
		return true
	}
	return false
}

// PaymentRecord is the aggregate root for one externally-initiated payment.
//
// Invariants:
//   - Tenant never changes after creation
//   - State moves only along the transitions above
//   - ExternalTxID is set exactly once, on completion
//   - Metadata is merge-patched on every transition, never replaced; a field
//     recorded by an earlier transition is never lost
//   - records are never deleted (retained for audit)
//
// The external payment network retries and reorders its callbacks, so every
// transition is idempotent: re-applying a transition the record already
// absorbed with the identical payload surfaces sentinel.ErrAlreadyApplied,
// which callers treat as success. A conflicting payload is an invariant
// violation.
type PaymentRecord struct {
	ID                id.PaymentID    `json:"id"`
	Tenant            string          `json:"tenant"`
	ExternalPaymentID string          `json:"external_payment_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Memo              string          `json:"memo,omitempty"`
	State             State           `json:"state"`
	ExternalTxID      string          `json:"external_tx_id,omitempty"`
	ErrorDetail       string          `json:"error_detail,omitempty"`
	Metadata          map[string]any  `json:"metadata,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// Approval carries the evaluator's outcome into a state transition. Kept in
// this package so the state machine does not depend on the evaluator.
type Approval struct {
	Approved   bool
	RiskLevel  string
	Reason     string
	AuditLogID string
	AuditHash  string
}

// NewPaymentRecord creates a PENDING record scoped to one tenant.
func NewPaymentRecord(tenant string, amount decimal.Decimal, memo string, now time.Time) (*PaymentRecord, error) {
	if tenant == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "payment tenant cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "payment amount must be positive")
	}
	return &PaymentRecord{
		ID:        id.NewPaymentID(),
		Tenant:    tenant,
		Amount:    amount,
		Memo:      memo,
		State:     StatePending,
		Metadata:  map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanApprove checks whether the approval outcome may be recorded.
func (p *PaymentRecord) CanApprove(approved bool) error {
	switch {
	case p.State == StatePending:
		return nil
	case p.State == StateApproved && approved:
		return sentinel.ErrAlreadyApplied
	case p.State == StateRejected && !approved:
		return sentinel.ErrAlreadyApplied
	default:
		return dErrors.New(dErrors.CodeInvariantViolation, "payment is "+string(p.State)+", approval no longer applies")
	}
}

// ApplyApproval transitions the record to APPROVED or REJECTED.
// Call CanApprove first to validate the transition.
func (p *PaymentRecord) ApplyApproval(approved bool, now time.Time) {
	if approved {
		p.State = StateApproved
	} else {
		p.State = StateRejected
	}
	p.ApprovedAt = &now
	p.UpdatedAt = now
}

// CanComplete checks whether completion with txid may be recorded.
func (p *PaymentRecord) CanComplete(txid string) error {
	switch {
	case p.State == StateApproved:
		return nil
	case p.State == StateCompleted && p.ExternalTxID == txid:
		return sentinel.ErrAlreadyApplied
	case p.State == StateCompleted:
		return dErrors.New(dErrors.CodeInvariantViolation, "payment already completed with a different transaction")
	default:
		return dErrors.New(dErrors.CodeInvariantViolation, "payment is "+string(p.State)+", completion requires APPROVED")
	}
}

// ApplyCompletion transitions the record to COMPLETED and binds the external
// transaction. Call CanComplete first to validate the transition.
func (p *PaymentRecord) ApplyCompletion(txid string, now time.Time) {
	p.State = StateCompleted
	p.ExternalTxID = txid
	p.CompletedAt = &now
	p.UpdatedAt = now
}

// CanCancel checks whether cancellation may be recorded.
func (p *PaymentRecord) CanCancel() error {
	switch {
	case !p.State.Terminal():
		return nil
	case p.State == StateCancelled:
		return sentinel.ErrAlreadyApplied
	default:
		return dErrors.New(dErrors.CodeInvariantViolation, "payment is "+string(p.State)+", cancellation no longer applies")
	}
}

// ApplyCancellation transitions the record to CANCELLED.
// Call CanCancel first to validate the transition.
func (p *PaymentRecord) ApplyCancellation(now time.Time) {
	p.State = StateCancelled
	p.CancelledAt = &now
	p.UpdatedAt = now
}

// CanFail checks whether a failure with the given detail may be recorded.
func (p *PaymentRecord) CanFail(detail string) error {
	switch {
	case !p.State.Terminal():
		return nil
	case p.State == StateFailed && p.ErrorDetail == detail:
		return sentinel.ErrAlreadyApplied
	case p.State == StateFailed:
		return dErrors.New(dErrors.CodeInvariantViolation, "payment already failed with a different error detail")
	default:
		return dErrors.New(dErrors.CodeInvariantViolation, "payment is "+string(p.State)+", failure no longer applies")
	}
}

// ApplyFailure transitions the record to FAILED and records the detail.
// Call CanFail first to validate the transition.
func (p *PaymentRecord) ApplyFailure(detail string, now time.Time) {
	p.State = StateFailed
	p.ErrorDetail = detail
	p.FailedAt = &now
	p.UpdatedAt = now
}

// MergeMetadata merge-patches new fields into the metadata envelope. Existing
// keys are overwritten only by an explicit new value; nothing is deleted.
func (p *PaymentRecord) MergeMetadata(patch map[string]any) {
	if len(patch) == 0 {
		return
	}
	if p.Metadata == nil {
		p.Metadata = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		p.Metadata[k] = v
	}
}

// Clone returns a deep-enough copy for stores that hand records across a
// lock boundary. Metadata is copied one level deep; transition timestamps
// are duplicated.
func (p *PaymentRecord) Clone() *PaymentRecord {
	c := *p
	if p.Metadata != nil {
		c.Metadata = make(map[string]any, len(p.Metadata))
		for k, v := range p.Metadata {
			c.Metadata[k] = v
		}
	}
	c.ApprovedAt = cloneTime(p.ApprovedAt)
	c.CompletedAt = cloneTime(p.CompletedAt)
	c.CancelledAt = cloneTime(p.CancelledAt)
	c.FailedAt = cloneTime(p.FailedAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
