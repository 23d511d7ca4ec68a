// Package httputil centralizes JSON response writing and request decoding so
// handlers stay thin and error bodies are uniform across modules.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "polydom/pkg/domain-errors"
)

// errorBody is the uniform error response shape.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a coded error to an HTTP status and writes the uniform
// error body. Internal and configuration errors withhold the description so
// operational detail never leaks to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := statusFor(code)

	body := errorBody{Error: string(code)}
	if describable(code) {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body.ErrorDescription = de.Message()
		}
	}
	WriteJSON(w, status, body)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict, dErrors.CodeInvariantViolation:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// describable reports whether the code's message is safe to return to clients.
func describable(code dErrors.Code) bool {
	switch code {
	case dErrors.CodeInternal, dErrors.CodeConfig:
		return false
	default:
		return true
	}
}

// Validatable is implemented by request types that validate and parse
// themselves after JSON decoding.
type Validatable interface {
	Validate() error
}

// validatablePtr constrains PT to be *T implementing Validatable, so
// DecodeAndPrepare can be called as DecodeAndPrepare[SomeRequest](...).
type validatablePtr[T any] interface {
	*T
	Validatable
}

// DecodeAndPrepare decodes the request body into T, runs Validate, and writes
// the error response itself on failure. Handlers check only the ok flag.
func DecodeAndPrepare[T any, PT validatablePtr[T]](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "request body decode failed", "request_id", requestID, "error", err)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must be valid JSON"))
		return nil, false
	}
	req := PT(&body)
	if err := req.Validate(); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "request validation failed", "request_id", requestID, "error", err)
		}
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
