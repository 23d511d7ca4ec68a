package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "polydom/pkg/domain-errors"
)

func TestNewPaymentID(t *testing.T) {
	a := NewPaymentID()
	b := NewPaymentID()

	assert.False(t, a.IsNil())
	assert.NotEqual(t, a, b)
}

func TestParsePaymentID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := NewPaymentID()
		parsed, err := ParsePaymentID(original.String())
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParsePaymentID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParsePaymentID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("nil uuid", func(t *testing.T) {
		_, err := ParsePaymentID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestParseAuditEntryID(t *testing.T) {
	original := NewAuditEntryID()
	parsed, err := ParseAuditEntryID(original.String())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)

	_, err = ParseAuditEntryID("nope")
	require.Error(t, err)
}
