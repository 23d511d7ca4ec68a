// Package audit records approval decisions as immutable, hashed entries.
//
// Entries are append-only: nothing in this codebase updates or deletes one.
// The hash binds the entry to the decision's content so a stored entry can
// later be verified against tampering; a hash derived from wall-clock time
// plus randomness would carry no integrity value and is not used.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	id "polydom/pkg/domain"
)

// Decision captures one approval outcome for auditing. It is transport
// agnostic: the evaluator builds it, the emitter persists it.
type Decision struct {
	OperationType string         `json:"operation_type"`
	OperationData map[string]any `json:"operation_data,omitempty"`
	Tenant        string         `json:"tenant"`
	Approved      bool           `json:"approved"`
	RiskLevel     string         `json:"risk_level"`
	Reason        string         `json:"reason"`
	Sandbox       bool           `json:"sandbox"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Entry is one immutable audit record.
type Entry struct {
	ID        id.AuditEntryID `json:"id"`
	Hash      string          `json:"hash"`
	Timestamp time.Time       `json:"timestamp"`
	Decision  Decision        `json:"decision"`
}

// HashDecision computes the deterministic content digest binding an entry to
// its decision: SHA-256 over operation type, tenant, outcome, and timestamp.
// Two identical decisions hash identically; any field change changes the hash.
func HashDecision(d Decision) string {
	canonical := fmt.Sprintf("%s|%s|%t|%s",
		d.OperationType,
		d.Tenant,
		d.Approved,
		d.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
