package approval_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydom/internal/approval"
	dErrors "polydom/pkg/domain-errors"
	"polydom/pkg/platform/audit"
	auditmemory "polydom/pkg/platform/audit/store/memory"
	"polydom/pkg/requestcontext"
)

type failingAuditStore struct{}

func (failingAuditStore) Append(context.Context, audit.Entry) error {
	return assert.AnError
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func paymentRequest() approval.Request {
	return approval.Request{
		OperationType: "payment",
		OperationData: map[string]any{"paymentId": "pi-ext-1"},
		Domain:        "fundx",
	}
}

func TestStaticEvaluate(t *testing.T) {
	store := auditmemory.NewInMemoryStore()
	evaluator := approval.NewStatic(false, audit.NewEmitter(store, discardLogger()), nil)

	decision, err := evaluator.Evaluate(context.Background(), paymentRequest())
	require.NoError(t, err)

	assert.True(t, decision.Approved)
	assert.Equal(t, "low", decision.RiskLevel)
	assert.Equal(t, "Approved", decision.Reason)
	assert.False(t, decision.Sandbox)
	assert.True(t, decision.Checks.IdentityVerified)
	assert.True(t, decision.Checks.OperationValid)
	assert.True(t, decision.Checks.NoSuspiciousActivity)
	assert.False(t, decision.AuditLogID.IsNil())
	assert.NotEmpty(t, decision.AuditHash)
}

func TestStaticEvaluateSandbox(t *testing.T) {
	store := auditmemory.NewInMemoryStore()
	evaluator := approval.NewStatic(true, audit.NewEmitter(store, discardLogger()), nil)

	decision, err := evaluator.Evaluate(context.Background(), paymentRequest())
	require.NoError(t, err)

	assert.True(t, decision.Approved)
	assert.True(t, decision.Sandbox)
	assert.Equal(t, "Sandbox auto-approved", decision.Reason)
}

func TestStaticEvaluateWritesAuditEntry(t *testing.T) {
	store := auditmemory.NewInMemoryStore()
	evaluator := approval.NewStatic(false, audit.NewEmitter(store, discardLogger()), nil)

	pinned := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), pinned)

	decision, err := evaluator.Evaluate(ctx, paymentRequest())
	require.NoError(t, err)

	entries, err := store.ListByTenant(ctx, "fundx")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, decision.AuditLogID, entry.ID)
	assert.Equal(t, decision.AuditHash, entry.Hash)
	assert.Equal(t, "payment", entry.Decision.OperationType)
	assert.Equal(t, pinned, entry.Timestamp)
	assert.Equal(t, audit.HashDecision(entry.Decision), entry.Hash)
}

func TestStaticEvaluateFailsClosedOnAuditError(t *testing.T) {
	evaluator := approval.NewStatic(false, audit.NewEmitter(failingAuditStore{}, discardLogger()), nil)

	decision, err := evaluator.Evaluate(context.Background(), paymentRequest())
	require.Error(t, err)
	assert.Nil(t, decision, "an unaudited approval must not be returned")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}
