// Package service implements the payment lifecycle state machine.
//
// Every transition runs as an atomic validate-then-mutate against the
// tenant's own store: the store holds its lock (mutex or FOR UPDATE) across
// both callbacks, so two concurrent transition requests cannot both win
// against an inconsistent read. The external network retries callbacks, so
// replays of an identical transition succeed as no-ops while conflicting
// transitions are rejected before any mutation.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	paymentmetrics "polydom/internal/payment/metrics"
	"polydom/internal/payment/models"
	id "polydom/pkg/domain"
	dErrors "polydom/pkg/domain-errors"
	"polydom/pkg/platform/sentinel"
	"polydom/pkg/requestcontext"
)

// Store persists one tenant's payment records.
//
// Execute loads the record, runs validate, and only if validate returns nil
// runs apply and persists the result, all under the store's lock. On a
// validate error Execute returns the unmodified record alongside the error so
// callers can surface idempotent replays.
type Store interface {
	Create(ctx context.Context, record *models.PaymentRecord) error
	FindByID(ctx context.Context, paymentID id.PaymentID) (*models.PaymentRecord, error)
	Execute(ctx context.Context, paymentID id.PaymentID,
		validate func(*models.PaymentRecord) error,
		apply func(*models.PaymentRecord)) (*models.PaymentRecord, error)
}

// StoreProvider resolves the store for one tenant. Implementations must never
// return a store bound to a different tenant's data.
type StoreProvider interface {
	StoreFor(ctx context.Context, tenant string) (Store, error)
}

// Network confirms transitions with the external payment network. Calls carry
// the caller's context; implementations bound every request with a timeout.
type Network interface {
	Approve(ctx context.Context, externalPaymentID string) error
	Complete(ctx context.Context, externalPaymentID, txid string) error
}

// Service orchestrates payment lifecycle transitions.
type Service struct {
	stores  StoreProvider
	network Network
	metrics *paymentmetrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures the service.
type Option func(*Service)

// WithNetwork enables server-side confirmation calls to the payment network.
func WithNetwork(n Network) Option {
	return func(s *Service) { s.network = n }
}

// WithMetrics attaches payment metrics.
func WithMetrics(m *paymentmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the payment service.
func New(stores StoreProvider, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		stores: stores,
		logger: logger,
		tracer: otel.Tracer("polydom/payment"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateIntent creates a PENDING record scoped to tenant. The tenant must
// resolve to a valid store; a tenant without store configuration fails with a
// configuration error rather than writing anywhere else.
func (s *Service) CreateIntent(ctx context.Context, tenant string, amount decimal.Decimal, memo string) (*models.PaymentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "payment.create_intent",
		trace.WithAttributes(attribute.String("tenant", tenant)))
	defer span.End()

	store, err := s.stores.StoreFor(ctx, tenant)
	if err != nil {
		return nil, err
	}

	record, err := models.NewPaymentRecord(tenant, amount, memo, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid payment intent")
	}

	if err := store.Create(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create payment record")
	}

	if s.metrics != nil {
		s.metrics.IncrementIntentsCreated()
	}
	s.logger.InfoContext(ctx, "payment intent created",
		"tenant", tenant,
		"payment_id", record.ID.String(),
		"amount", amount.String(),
	)
	return record, nil
}

// Get returns one record by internal ID.
func (s *Service) Get(ctx context.Context, tenant string, paymentID id.PaymentID) (*models.PaymentRecord, error) {
	store, err := s.stores.StoreFor(ctx, tenant)
	if err != nil {
		return nil, err
	}
	record, err := store.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "payment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load payment record")
	}
	return record, nil
}

// RecordApproval moves a PENDING record to APPROVED or REJECTED per the
// evaluator's decision. When a network client is configured and the decision
// approves, the network is asked to confirm first; an unconfirmed call leaves
// the record untouched.
func (s *Service) RecordApproval(ctx context.Context, tenant string, paymentID id.PaymentID, externalPaymentID string, approval models.Approval) (*models.PaymentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "payment.record_approval",
		trace.WithAttributes(attribute.String("tenant", tenant), attribute.String("payment_id", paymentID.String())))
	defer span.End()

	if s.network != nil && approval.Approved && externalPaymentID != "" {
		if err := s.network.Approve(ctx, externalPaymentID); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "payment network approval unconfirmed")
		}
	}

	meta := map[string]any{
		"riskLevel":      approval.RiskLevel,
		"approvalReason": approval.Reason,
	}
	if externalPaymentID != "" {
		meta["externalPaymentId"] = externalPaymentID
	}
	if approval.AuditLogID != "" {
		meta["auditLogId"] = approval.AuditLogID
		meta["auditHash"] = approval.AuditHash
	}

	target := models.StateApproved
	if !approval.Approved {
		target = models.StateRejected
	}
	return s.transition(ctx, tenant, paymentID, target, meta,
		func(p *models.PaymentRecord) error { return p.CanApprove(approval.Approved) },
		func(p *models.PaymentRecord, now time.Time) {
			if p.ExternalPaymentID == "" {
				p.ExternalPaymentID = externalPaymentID
			}
			p.ApplyApproval(approval.Approved, now)
		},
	)
}

// RecordCompletion moves an APPROVED record to COMPLETED and binds the
// external transaction ID. Replaying the completion with the same txid is a
// no-op success; a different txid is a conflict.
func (s *Service) RecordCompletion(ctx context.Context, tenant string, paymentID id.PaymentID, externalPaymentID, txid string) (*models.PaymentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "payment.record_completion",
		trace.WithAttributes(attribute.String("tenant", tenant), attribute.String("payment_id", paymentID.String())))
	defer span.End()

	if txid == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "txid is required")
	}

	if s.network != nil && externalPaymentID != "" {
		if err := s.network.Complete(ctx, externalPaymentID, txid); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "payment network completion unconfirmed")
		}
	}

	return s.transition(ctx, tenant, paymentID, models.StateCompleted,
		map[string]any{"txid": txid},
		func(p *models.PaymentRecord) error { return p.CanComplete(txid) },
		func(p *models.PaymentRecord, now time.Time) { p.ApplyCompletion(txid, now) },
	)
}

// RecordCancellation moves a non-terminal record to CANCELLED.
func (s *Service) RecordCancellation(ctx context.Context, tenant string, paymentID id.PaymentID) (*models.PaymentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "payment.record_cancellation",
		trace.WithAttributes(attribute.String("tenant", tenant), attribute.String("payment_id", paymentID.String())))
	defer span.End()

	return s.transition(ctx, tenant, paymentID, models.StateCancelled, nil,
		func(p *models.PaymentRecord) error { return p.CanCancel() },
		func(p *models.PaymentRecord, now time.Time) { p.ApplyCancellation(now) },
	)
}

// RecordFailure moves a non-terminal record to FAILED with the given detail.
// Replaying the same detail is a no-op; a different detail is a conflict
// rather than a silent overwrite.
func (s *Service) RecordFailure(ctx context.Context, tenant string, paymentID id.PaymentID, detail string) (*models.PaymentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "payment.record_failure",
		trace.WithAttributes(attribute.String("tenant", tenant), attribute.String("payment_id", paymentID.String())))
	defer span.End()

	if detail == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "error detail is required")
	}

	return s.transition(ctx, tenant, paymentID, models.StateFailed,
		map[string]any{"errorDetail": detail},
		func(p *models.PaymentRecord) error { return p.CanFail(detail) },
		func(p *models.PaymentRecord, now time.Time) { p.ApplyFailure(detail, now) },
	)
}

// transition runs one atomic state transition and maps store facts to domain
// errors. The metadata patch merges before apply so no earlier fields vanish.
func (s *Service) transition(ctx context.Context, tenant string, paymentID id.PaymentID, target models.State, meta map[string]any,
	validate func(*models.PaymentRecord) error,
	apply func(*models.PaymentRecord, time.Time)) (*models.PaymentRecord, error) {

	store, err := s.stores.StoreFor(ctx, tenant)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	record, err := store.Execute(ctx, paymentID, validate, func(p *models.PaymentRecord) {
		p.MergeMetadata(meta)
		apply(p, now)
	})

	switch {
	case err == nil:
		s.observe(string(target), "ok")
		s.logger.InfoContext(ctx, "payment transition recorded",
			"tenant", tenant,
			"payment_id", paymentID.String(),
			"state", string(record.State),
		)
		return record, nil

	case errors.Is(err, sentinel.ErrAlreadyApplied):
		s.observe(string(target), "replayed")
		s.logger.InfoContext(ctx, "payment transition replayed",
			"tenant", tenant,
			"payment_id", paymentID.String(),
			"state", string(record.State),
		)
		return record, nil

	case errors.Is(err, sentinel.ErrNotFound):
		s.observe(string(target), "error")
		return nil, dErrors.New(dErrors.CodeNotFound, "payment not found")

	case dErrors.HasCode(err, dErrors.CodeInvariantViolation):
		s.observe(string(target), "conflict")
		return nil, dErrors.Wrap(err, dErrors.CodeConflict, "transition not allowed from current state")

	default:
		s.observe(string(target), "error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist payment transition")
	}
}

func (s *Service) observe(state, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementTransition(state, outcome)
	}
}
