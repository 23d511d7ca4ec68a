package audit

import (
	"context"
	"log/slog"

	id "polydom/pkg/domain"
	dErrors "polydom/pkg/domain-errors"
)

// Store persists audit entries. Implementations are append-only; Append with
// an entry ID already present must be a no-op so retried emissions stay safe.
type Store interface {
	Append(ctx context.Context, entry Entry) error
}

// Emitter turns decisions into persisted entries. It never fails silently:
// when the store is unreachable the caller gets a distinguishable error and
// must not proceed as if audited.
type Emitter struct {
	store  Store
	logger *slog.Logger
}

// NewEmitter constructs an emitter over the given store.
func NewEmitter(store Store, logger *slog.Logger) *Emitter {
	return &Emitter{store: store, logger: logger}
}

// Record persists the decision as a new hashed entry and returns it.
func (e *Emitter) Record(ctx context.Context, d Decision) (*Entry, error) {
	entry := Entry{
		ID:        id.NewAuditEntryID(),
		Hash:      HashDecision(d),
		Timestamp: d.Timestamp,
		Decision:  d,
	}

	if err := e.store.Append(ctx, entry); err != nil {
		e.logger.ErrorContext(ctx, "audit append failed",
			"tenant", d.Tenant,
			"operation_type", d.OperationType,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit store unreachable")
	}

	return &entry, nil
}
