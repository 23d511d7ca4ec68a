package tenantstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "polydom/pkg/domain-errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func anyTenant(string) bool { return true }

func fakeOpener(opened *atomic.Int64) Opener {
	return func(_ context.Context, tenant, dsn string) (*Handle, error) {
		if opened != nil {
			opened.Add(1)
		}
		return &Handle{tenant: tenant}, nil
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "FUNDX_DATABASE_URL", EnvKey("fundx"))
	assert.Equal(t, "GATEWAY24_DATABASE_URL", EnvKey("gateway24"))
	assert.Equal(t, "PORT_OF_CALL_DATABASE_URL", EnvKey("port-of-call"))
}

func TestDSNFromEnv(t *testing.T) {
	t.Run("tenant variable wins over shared", func(t *testing.T) {
		t.Setenv("FUNDX_DATABASE_URL", "postgres://fundx")
		t.Setenv("DATABASE_URL", "postgres://shared")

		dsn, err := DSNFromEnv("fundx")
		require.NoError(t, err)
		assert.Equal(t, "postgres://fundx", dsn)
	})

	t.Run("shared fallback", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://shared")

		dsn, err := DSNFromEnv("estatia")
		require.NoError(t, err)
		assert.Equal(t, "postgres://shared", dsn)
	})

	t.Run("nothing configured is a config error", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("FUNDX_DATABASE_URL", "")

		_, err := DSNFromEnv("fundx")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConfig))
	})
}

func TestResolverGet(t *testing.T) {
	ctx := context.Background()

	t.Run("same tenant gets the same handle", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://shared")
		var opened atomic.Int64
		r := NewResolver(anyTenant, discardLogger(), WithOpener(fakeOpener(&opened)))

		first, err := r.Get(ctx, "fundx")
		require.NoError(t, err)
		second, err := r.Get(ctx, "fundx")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int64(1), opened.Load())
	})

	t.Run("different tenants get different handles", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://shared")
		r := NewResolver(anyTenant, discardLogger(), WithOpener(fakeOpener(nil)))

		fundx, err := r.Get(ctx, "fundx")
		require.NoError(t, err)
		estatia, err := r.Get(ctx, "estatia")
		require.NoError(t, err)

		assert.NotSame(t, fundx, estatia)
		assert.Equal(t, "fundx", fundx.Tenant())
		assert.Equal(t, "estatia", estatia.Tenant())
	})

	t.Run("unknown tenant is not found before env lookup", func(t *testing.T) {
		r := NewResolver(func(slug string) bool { return slug == "fundx" }, discardLogger(), WithOpener(fakeOpener(nil)))

		_, err := r.Get(ctx, "bogus")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("missing configuration surfaces config error", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		r := NewResolver(anyTenant, discardLogger(), WithOpener(fakeOpener(nil)))

		_, err := r.Get(ctx, "fundx")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConfig))
	})

	t.Run("opener failure is unavailable and not cached", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://shared")
		var calls atomic.Int64
		failing := func(context.Context, string, string) (*Handle, error) {
			calls.Add(1)
			return nil, errors.New("connection refused")
		}
		r := NewResolver(anyTenant, discardLogger(), WithOpener(failing))

		_, err := r.Get(ctx, "fundx")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))

		_, err = r.Get(ctx, "fundx")
		require.Error(t, err)
		assert.Equal(t, int64(2), calls.Load(), "failed opens must be retried")
	})
}

func TestResolverConcurrentFirstAccess(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://shared")
	var opened atomic.Int64
	r := NewResolver(anyTenant, discardLogger(), WithOpener(fakeOpener(&opened)))

	const workers = 32
	handles := make([]*Handle, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			h, err := r.Get(context.Background(), "fundx")
			if err != nil {
				t.Error(err)
				return
			}
			handles[i] = h
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), opened.Load(), "concurrent first accesses must collapse to one open")
	for i := 1; i < workers; i++ {
		assert.Same(t, handles[0], handles[i])
	}
}

func TestResolverClose(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://shared")
	var opened atomic.Int64
	r := NewResolver(anyTenant, discardLogger(), WithOpener(fakeOpener(&opened)))

	_, err := r.Get(context.Background(), "fundx")
	require.NoError(t, err)

	r.Close()

	_, err = r.Get(context.Background(), "fundx")
	require.NoError(t, err)
	assert.Equal(t, int64(2), opened.Load(), "closed handles must be reopened on next access")
}
