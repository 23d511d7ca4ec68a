package audit_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "polydom/pkg/domain-errors"
	"polydom/pkg/platform/audit"
	auditmemory "polydom/pkg/platform/audit/store/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleDecision() audit.Decision {
	return audit.Decision{
		OperationType: "payment",
		OperationData: map[string]any{"paymentId": "pi-ext-1"},
		Tenant:        "fundx",
		Approved:      true,
		RiskLevel:     "low",
		Reason:        "Approved",
		Timestamp:     time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestHashDecision(t *testing.T) {
	d := sampleDecision()

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, audit.HashDecision(d), audit.HashDecision(d))
	})

	t.Run("hex encoded sha256", func(t *testing.T) {
		assert.Len(t, audit.HashDecision(d), 64)
	})

	t.Run("changes with outcome", func(t *testing.T) {
		rejected := d
		rejected.Approved = false
		assert.NotEqual(t, audit.HashDecision(d), audit.HashDecision(rejected))
	})

	t.Run("changes with tenant", func(t *testing.T) {
		other := d
		other.Tenant = "estatia"
		assert.NotEqual(t, audit.HashDecision(d), audit.HashDecision(other))
	})

	t.Run("changes with timestamp", func(t *testing.T) {
		later := d
		later.Timestamp = d.Timestamp.Add(time.Nanosecond)
		assert.NotEqual(t, audit.HashDecision(d), audit.HashDecision(later))
	})

	t.Run("timezone does not matter", func(t *testing.T) {
		shifted := d
		shifted.Timestamp = d.Timestamp.In(time.FixedZone("X", 3600))
		assert.Equal(t, audit.HashDecision(d), audit.HashDecision(shifted))
	})
}

func TestEmitterRecord(t *testing.T) {
	store := auditmemory.NewInMemoryStore()
	emitter := audit.NewEmitter(store, discardLogger())
	ctx := context.Background()

	entry, err := emitter.Record(ctx, sampleDecision())
	require.NoError(t, err)

	assert.False(t, entry.ID.IsNil())
	assert.Equal(t, audit.HashDecision(entry.Decision), entry.Hash)
	assert.Equal(t, sampleDecision().Timestamp, entry.Timestamp)

	entries, err := store.ListByTenant(ctx, "fundx")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Entry) error { return assert.AnError }

func TestEmitterRecordStoreFailure(t *testing.T) {
	emitter := audit.NewEmitter(failingStore{}, discardLogger())

	entry, err := emitter.Record(context.Background(), sampleDecision())
	require.Error(t, err)
	assert.Nil(t, entry)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}
