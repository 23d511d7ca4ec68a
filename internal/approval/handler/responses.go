package handler

import (
	"time"

	"polydom/internal/approval"
)

// EvaluateResponse is the HTTP response for POST /approval.
type EvaluateResponse struct {
	Approved   bool            `json:"approved"`
	Rejected   bool            `json:"rejected"`
	AuditLogID string          `json:"auditLogId"`
	AuditHash  string          `json:"auditHash"`
	Timestamp  time.Time       `json:"timestamp"`
	RiskLevel  string          `json:"riskLevel"`
	Reason     string          `json:"reason"`
	Details    approval.Checks `json:"details"`
}

// FromDecision converts a domain decision to an HTTP response.
func FromDecision(d *approval.Decision) *EvaluateResponse {
	return &EvaluateResponse{
		Approved:   d.Approved,
		Rejected:   !d.Approved,
		AuditLogID: d.AuditLogID.String(),
		AuditHash:  d.AuditHash,
		Timestamp:  d.Timestamp,
		RiskLevel:  d.RiskLevel,
		Reason:     d.Reason,
		Details:    d.Checks,
	}
}
