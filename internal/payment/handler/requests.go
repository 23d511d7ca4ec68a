package handler

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	id "polydom/pkg/domain"
	dErrors "polydom/pkg/domain-errors"
)

// CreateIntentRequest is the HTTP request body for POST /payments.
type CreateIntentRequest struct {
	Domain string      `json:"domain"`
	Amount json.Number `json:"amount"`
	Memo   string      `json:"memo"`

	parsedAmount decimal.Decimal
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateIntentRequest) Validate() error {
	r.Domain = strings.TrimSpace(r.Domain)

	if r.Amount == "" {
		return dErrors.New(dErrors.CodeValidation, "amount is required")
	}
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "amount must be a number")
	}
	if !amount.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	r.parsedAmount = amount
	return nil
}

// ParsedAmount returns the validated amount.
func (r *CreateIntentRequest) ParsedAmount() decimal.Decimal {
	return r.parsedAmount
}

// TransitionRequest is the shared HTTP body shape for the payment transition
// endpoints. PaymentID is the external network's identifier, InternalID is
// ours; both are required. Txid and Error are used only by complete and
// error respectively.
type TransitionRequest struct {
	PaymentID  string `json:"paymentId"`
	InternalID string `json:"internalId"`
	Txid       string `json:"txid,omitempty"`
	Error      string `json:"error,omitempty"`
	Domain     string `json:"domain,omitempty"`

	parsedInternalID id.PaymentID
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *TransitionRequest) Validate() error {
	r.PaymentID = strings.TrimSpace(r.PaymentID)
	r.InternalID = strings.TrimSpace(r.InternalID)
	r.Domain = strings.TrimSpace(r.Domain)

	if r.PaymentID == "" {
		return dErrors.New(dErrors.CodeValidation, "paymentId is required")
	}
	if r.InternalID == "" {
		return dErrors.New(dErrors.CodeValidation, "internalId is required")
	}
	internalID, err := id.ParsePaymentID(r.InternalID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "internalId must be a valid payment id")
	}
	r.parsedInternalID = internalID
	return nil
}

// ParsedInternalID returns the validated internal payment ID.
func (r *TransitionRequest) ParsedInternalID() id.PaymentID {
	return r.parsedInternalID
}
