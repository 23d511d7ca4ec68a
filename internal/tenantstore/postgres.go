package tenantstore

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver for database/sql (needed by goose)
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const openTimeout = 5 * time.Second

// Handle is the opaque handle to one tenant's isolated store. It wraps the
// tenant's own connection pool; the resolver is its only producer and the
// only party allowed to close it.
type Handle struct {
	tenant string
	pool   *pgxpool.Pool
	logger *slog.Logger
	debug  bool
}

// Tenant returns the slug this handle is bound to.
func (h *Handle) Tenant() string { return h.tenant }

// Pool exposes the underlying connection pool for store implementations.
func (h *Handle) Pool() *pgxpool.Pool { return h.pool }

// LogQuery records a query when debug logging is enabled. Diagnostic only.
func (h *Handle) LogQuery(ctx context.Context, query string) {
	if h.debug && h.logger != nil {
		h.logger.DebugContext(ctx, "tenant store query", "tenant", h.tenant, "query", query)
	}
}

func (h *Handle) close() {
	if h.pool != nil {
		h.pool.Close()
	}
}

// PgxOpener is the production Opener: it builds the tenant's pgx pool, pings
// it within a bounded timeout, and applies pending schema migrations.
func PgxOpener(ctx context.Context, tenant, dsn string) (*Handle, error) {
	ctx, cancel := context.WithTimeout(ctx, openTimeout)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if err := runMigrations(ctx, dsn); err != nil {
		pool.Close()
		return nil, err
	}

	return &Handle{pool: pool}, nil
}

// runMigrations applies all pending goose migrations from the embedded SQL
// files. Each tenant database carries the full schema.
func runMigrations(ctx context.Context, dsn string) error {
	goose.SetBaseFS(migrations)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
