package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydom/internal/tenantstore"
)

type recordingQueryLogger struct {
	queries []string
}

func (r *recordingQueryLogger) LogQuery(_ context.Context, query string) {
	r.queries = append(r.queries, query)
}

func TestPostgresLogQuery(t *testing.T) {
	t.Run("forwards to the query logger", func(t *testing.T) {
		logger := &recordingQueryLogger{}
		s := NewPostgres(nil, logger)

		s.logQuery(context.Background(), "SELECT 1")

		require.Len(t, logger.queries, 1)
		assert.Equal(t, "SELECT 1", logger.queries[0])
	})

	t.Run("nil logger is a no-op", func(t *testing.T) {
		s := NewPostgres(nil, nil)
		s.logQuery(context.Background(), "SELECT 1")
	})
}

func TestTenantProviderWiresHandleAsQueryLogger(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://shared")

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := tenantstore.NewResolver(
		func(string) bool { return true },
		slogger,
		tenantstore.WithOpener(func(_ context.Context, tenant, _ string) (*tenantstore.Handle, error) {
			return &tenantstore.Handle{}, nil
		}),
		tenantstore.WithDebug(true),
	)
	provider := NewTenantProvider(resolver)

	s, err := provider.StoreFor(context.Background(), "fundx")
	require.NoError(t, err)

	pg, ok := s.(*Postgres)
	require.True(t, ok)
	assert.NotNil(t, pg.log, "store must log queries through the tenant handle")
}
