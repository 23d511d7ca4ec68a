// Package approval decides whether a requested operation may proceed and
// records every decision in the audit trail.
//
// The evaluator is a port: the payment state machine and the HTTP surface
// depend only on the Evaluator interface, so a real identity/fraud pipeline
// can replace the current conservative implementation without touching any
// caller.
package approval

import (
	"context"
	"time"

	id "polydom/pkg/domain"
)

// Request describes the operation being evaluated.
type Request struct {
	OperationType string
	OperationData map[string]any
	Domain        string
}

// Checks is the structured breakdown of which checks ran, so callers and
// auditors can see what the decision was based on.
type Checks struct {
	IdentityVerified     bool `json:"identityVerified"`
	OperationValid       bool `json:"operationValid"`
	NoSuspiciousActivity bool `json:"noSuspiciousActivity"`
}

// Decision is the evaluation outcome. Ephemeral: it is not persisted beyond
// the audit entry it references.
type Decision struct {
	Approved   bool
	RiskLevel  string
	Reason     string
	Checks     Checks
	Sandbox    bool
	AuditLogID id.AuditEntryID
	AuditHash  string
	Timestamp  time.Time
}

// Evaluator produces an approval decision for an operation. Implementations
// run synchronously relative to the caller and must not hold a database
// transaction open; emitting the audit entry is their only side effect.
type Evaluator interface {
	Evaluate(ctx context.Context, req Request) (*Decision, error)
}
