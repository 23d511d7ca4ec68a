// Package domainerrors provides coded errors that services return and the
// HTTP layer translates into status codes. Stores return sentinel errors
// (pkg/platform/sentinel); services wrap them with a code here so handlers
// never inspect infrastructure errors directly.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and logging.
type Code string

const (
	// CodeBadRequest covers malformed requests (unparseable body, wrong shape).
	CodeBadRequest Code = "bad_request"
	// CodeValidation covers well-formed requests with invalid field values.
	CodeValidation Code = "validation_error"
	// CodeInvalidInput covers malformed identifiers at parse boundaries.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound means the referenced entity does not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict means the requested transition is incompatible with current state.
	CodeConflict Code = "conflict"
	// CodeConfig means required configuration is absent. Never fall back silently.
	CodeConfig Code = "config_error"
	// CodeUnavailable means a dependency (store, external network) could not be
	// reached or answered indeterminately. Safe to retry for idempotent operations.
	CodeUnavailable Code = "unavailable"
	// CodeInvariantViolation marks a domain invariant breach detected by a model.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal is the catch-all; details are withheld from responses.
	CodeInternal Code = "internal_error"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	code    Code
	message string
	cause   error
}

// New builds a coded error with no cause.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap builds a coded error around a cause. The cause stays reachable via
// errors.Is / errors.As for sentinel checks.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{code: code, message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification of this error.
func (e *Error) Code() Code { return e.code }

// Message returns the human-readable message without the code prefix.
func (e *Error) Message() string { return e.message }

// HasCode reports whether err or anything in its chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.code == code {
			return true
		}
		err = de.cause
		if err == nil {
			break
		}
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}
