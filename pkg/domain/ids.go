// Package domain defines typed identifiers shared across modules.
//
// IDs are distinct named types over uuid.UUID so the compiler rejects
// cross-entity assignment. Parse functions enforce the invariant that an ID
// is a valid, non-nil UUID at trust boundaries (HTTP, storage).
package domain

import (
	"github.com/google/uuid"

	dErrors "polydom/pkg/domain-errors"
)

// PaymentID identifies one internal payment record.
type PaymentID uuid.UUID

// AuditEntryID identifies one append-only audit entry.
type AuditEntryID uuid.UUID

// NewPaymentID returns a fresh random payment ID.
func NewPaymentID() PaymentID {
	return PaymentID(uuid.New())
}

// NewAuditEntryID returns a fresh random audit entry ID.
func NewAuditEntryID() AuditEntryID {
	return AuditEntryID(uuid.New())
}

// ParsePaymentID parses and validates a payment ID from its string form.
func ParsePaymentID(s string) (PaymentID, error) {
	u, err := parseUUID(s, "payment id")
	return PaymentID(u), err
}

// ParseAuditEntryID parses and validates an audit entry ID from its string form.
func ParseAuditEntryID(s string) (AuditEntryID, error) {
	u, err := parseUUID(s, "audit entry id")
	return AuditEntryID(u), err
}

func (p PaymentID) String() string    { return uuid.UUID(p).String() }
func (p PaymentID) IsNil() bool       { return uuid.UUID(p) == uuid.Nil }
func (a AuditEntryID) String() string { return uuid.UUID(a).String() }
func (a AuditEntryID) IsNil() bool    { return uuid.UUID(a) == uuid.Nil }

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be the nil UUID")
	}
	return u, nil
}
