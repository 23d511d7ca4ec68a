package handler

import (
	"time"

	"polydom/internal/payment/models"
)

// PaymentResponse is the HTTP representation of a payment record.
type PaymentResponse struct {
	InternalID        string         `json:"internalId"`
	Domain            string         `json:"domain"`
	ExternalPaymentID string         `json:"paymentId,omitempty"`
	Amount            string         `json:"amount"`
	Memo              string         `json:"memo,omitempty"`
	State             string         `json:"state"`
	Txid              string         `json:"txid,omitempty"`
	ErrorDetail       string         `json:"error,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// FromRecord converts a payment record into its HTTP representation.
func FromRecord(rec *models.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		InternalID:        rec.ID.String(),
		Domain:            rec.Tenant,
		ExternalPaymentID: rec.ExternalPaymentID,
		Amount:            rec.Amount.String(),
		Memo:              rec.Memo,
		State:             string(rec.State),
		Txid:              rec.ExternalTxID,
		ErrorDetail:       rec.ErrorDetail,
		Metadata:          rec.Metadata,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

// TransitionResponse is returned by the transition endpoints.
type TransitionResponse struct {
	Success bool            `json:"success"`
	Payment PaymentResponse `json:"payment"`
}
