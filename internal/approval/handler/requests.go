package handler

import (
	"strings"

	dErrors "polydom/pkg/domain-errors"
)

// EvaluateRequest is the HTTP request body for POST /approval.
type EvaluateRequest struct {
	OperationType string         `json:"operationType"`
	OperationData map[string]any `json:"operationData"`
	Domain        string         `json:"domain"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.OperationType = strings.TrimSpace(r.OperationType)
	if r.OperationType == "" {
		return dErrors.New(dErrors.CodeValidation, "operationType is required")
	}

	r.Domain = strings.TrimSpace(r.Domain)
	if r.Domain == "" {
		return dErrors.New(dErrors.CodeValidation, "domain is required")
	}

	return nil
}
