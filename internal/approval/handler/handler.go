package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"polydom/internal/approval"
	"polydom/pkg/platform/httputil"
	"polydom/pkg/requestcontext"
)

// Handler wires the approval endpoint to the evaluator.
type Handler struct {
	evaluator approval.Evaluator
	logger    *slog.Logger
}

// New constructs an approval handler.
func New(evaluator approval.Evaluator, logger *slog.Logger) *Handler {
	return &Handler{evaluator: evaluator, logger: logger}
}

// Register mounts approval endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/approval", h.HandleEvaluate)
}

// HandleEvaluate handles POST /approval requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	decision, err := h.evaluator.Evaluate(ctx, approval.Request{
		OperationType: req.OperationType,
		OperationData: req.OperationData,
		Domain:        req.Domain,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "approval evaluation failed",
			"request_id", requestID,
			"domain", req.Domain,
			"operation_type", req.OperationType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "approval evaluated",
		"request_id", requestID,
		"domain", req.Domain,
		"operation_type", req.OperationType,
		"approved", decision.Approved,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}
