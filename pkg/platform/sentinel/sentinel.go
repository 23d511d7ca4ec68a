package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: concurrent modification lost the race
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrAlreadyApplied: the requested transition was already applied with an
//   identical payload; callers treat this as idempotent success
// - ErrUnavailable: service or resource temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidState   = errors.New("invalid state")
	ErrAlreadyApplied = errors.New("already applied")
	ErrUnavailable    = errors.New("unavailable")
)
