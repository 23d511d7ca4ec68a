package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"polydom/internal/approval"
	"polydom/internal/payment/models"
	"polydom/internal/payment/service"
	id "polydom/pkg/domain"
	dErrors "polydom/pkg/domain-errors"
	"polydom/pkg/platform/httputil"
	"polydom/pkg/requestcontext"
)

const operationTypePayment = "payment"

// Handler wires the payment endpoints to the payment service and the
// approval evaluator.
type Handler struct {
	service   *service.Service
	evaluator approval.Evaluator
	logger    *slog.Logger
}

// New constructs a payment handler.
func New(svc *service.Service, evaluator approval.Evaluator, logger *slog.Logger) *Handler {
	return &Handler{service: svc, evaluator: evaluator, logger: logger}
}

// Register mounts payment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.HandleCreateIntent)
		r.Get("/{internalId}", h.HandleGet)
		r.Post("/approve", h.HandleApprove)
		r.Post("/complete", h.HandleComplete)
		r.Post("/cancel", h.HandleCancel)
		r.Post("/error", h.HandleError)
	})
}

// HandleCreateIntent handles POST /payments requests.
func (h *Handler) HandleCreateIntent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CreateIntentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tenant := h.tenant(w, req.Domain, ctx, requestID)
	if tenant == "" {
		return
	}

	rec, err := h.service.CreateIntent(ctx, tenant, req.ParsedAmount(), req.Memo)
	if err != nil {
		h.logger.ErrorContext(ctx, "payment intent creation failed",
			"request_id", requestID,
			"domain", tenant,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "payment intent created",
		"request_id", requestID,
		"domain", tenant,
		"payment_id", rec.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromRecord(rec))
}

// HandleGet handles GET /payments/{internalId} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	internalID, err := id.ParsePaymentID(chi.URLParam(r, "internalId"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "internalId must be a valid payment id"))
		return
	}

	tenant := h.tenant(w, "", ctx, requestID)
	if tenant == "" {
		return
	}

	rec, err := h.service.Get(ctx, tenant, internalID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}

// HandleApprove handles POST /payments/approve requests. The payment is
// evaluated by the approval pipeline first; the resulting decision is
// recorded on the payment whether approved or not.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[TransitionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tenant := h.tenant(w, req.Domain, ctx, requestID)
	if tenant == "" {
		return
	}

	decision, err := h.evaluator.Evaluate(ctx, approval.Request{
		OperationType: operationTypePayment,
		OperationData: map[string]any{
			"paymentId":  req.PaymentID,
			"internalId": req.InternalID,
		},
		Domain: tenant,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "payment approval evaluation failed",
			"request_id", requestID,
			"domain", tenant,
			"payment_id", req.ParsedInternalID(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	auditLogID := ""
	if !decision.AuditLogID.IsNil() {
		auditLogID = decision.AuditLogID.String()
	}
	rec, err := h.service.RecordApproval(ctx, tenant, req.ParsedInternalID(), req.PaymentID, models.Approval{
		Approved:   decision.Approved,
		RiskLevel:  decision.RiskLevel,
		Reason:     decision.Reason,
		AuditLogID: auditLogID,
		AuditHash:  decision.AuditHash,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "payment approval recorded",
		"request_id", requestID,
		"domain", tenant,
		"payment_id", rec.ID,
		"approved", decision.Approved,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, TransitionResponse{Success: true, Payment: FromRecord(rec)})
}

// HandleComplete handles POST /payments/complete requests.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "completion", func(ctx context.Context, tenant string, req *TransitionRequest) (*models.PaymentRecord, error) {
		return h.service.RecordCompletion(ctx, tenant, req.ParsedInternalID(), req.PaymentID, req.Txid)
	})
}

// HandleCancel handles POST /payments/cancel requests.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "cancellation", func(ctx context.Context, tenant string, req *TransitionRequest) (*models.PaymentRecord, error) {
		return h.service.RecordCancellation(ctx, tenant, req.ParsedInternalID())
	})
}

// HandleError handles POST /payments/error requests.
func (h *Handler) HandleError(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "failure", func(ctx context.Context, tenant string, req *TransitionRequest) (*models.PaymentRecord, error) {
		return h.service.RecordFailure(ctx, tenant, req.ParsedInternalID(), req.Error)
	})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, name string,
	apply func(ctx context.Context, tenant string, req *TransitionRequest) (*models.PaymentRecord, error),
) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[TransitionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tenant := h.tenant(w, req.Domain, ctx, requestID)
	if tenant == "" {
		return
	}

	rec, err := apply(ctx, tenant, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "payment transition failed",
			"request_id", requestID,
			"domain", tenant,
			"payment_id", req.ParsedInternalID(),
			"transition", name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "payment transition recorded",
		"request_id", requestID,
		"domain", tenant,
		"payment_id", rec.ID,
		"transition", name,
		"state", rec.State,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, TransitionResponse{Success: true, Payment: FromRecord(rec)})
}

// tenant resolves the acting tenant from the request body's domain field,
// falling back to the tenant resolved from the request host. Writes a
// validation error and returns "" when neither is present.
func (h *Handler) tenant(w http.ResponseWriter, bodyDomain string, ctx context.Context, requestID string) string {
	if bodyDomain != "" {
		return bodyDomain
	}
	if tenant := requestcontext.Tenant(ctx); tenant != "" {
		return tenant
	}
	h.logger.WarnContext(ctx, "request without resolvable domain", "request_id", requestID)
	httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "domain could not be determined from request"))
	return ""
}
