// Package tenantstore owns the per-tenant data-store handles.
//
// Data sovereignty is enforced here: one handle per tenant per process, each
// handle bound to the tenant's own connection target, and no code path ever
// receives another tenant's handle. Callers never construct or close handles.
package tenantstore

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	dErrors "polydom/pkg/domain-errors"
)

// Opener creates a tenant's handle from its resolved DSN. Production wiring
// uses PgxOpener; tests inject a fake.
type Opener func(ctx context.Context, tenant, dsn string) (*Handle, error)

// Resolver hands out per-tenant store handles. The first access for a tenant
// creates and caches the handle; every later access returns the identical
// instance for the rest of the process lifetime.
type Resolver struct {
	mu      sync.RWMutex
	handles map[string]*Handle
	group   singleflight.Group

	open   Opener
	valid  func(slug string) bool
	logger *slog.Logger
	debug  bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOpener replaces the production opener. Tests use this to avoid real
// database connections.
func WithOpener(open Opener) Option {
	return func(r *Resolver) { r.open = open }
}

// WithDebug enables per-query logging on handles created by this resolver.
// Diagnostic only; never changes resolution or caching behavior.
func WithDebug(debug bool) Option {
	return func(r *Resolver) { r.debug = debug }
}

// NewResolver builds a resolver. valid is the registry membership test; it
// runs before any environment lookup so unknown tenants fail as not-found,
// not as configuration errors.
func NewResolver(valid func(slug string) bool, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		handles: make(map[string]*Handle),
		valid:   valid,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.open == nil {
		r.open = PgxOpener
	}
	return r
}

// Get resolves the handle for tenant, creating it on first access.
// Concurrent first accesses for the same tenant are collapsed by a
// single-flight group so exactly one handle is ever created.
func (r *Resolver) Get(ctx context.Context, tenant string) (*Handle, error) {
	if !r.valid(tenant) {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown domain: "+tenant)
	}

	r.mu.RLock()
	h, ok := r.handles[tenant]
	r.mu.RUnlock()
	if ok {
		return h, nil
	}

	v, err, _ := r.group.Do(tenant, func() (any, error) {
		// Recheck under the flight: a previous winner may have filled the cache.
		r.mu.RLock()
		h, ok := r.handles[tenant]
		r.mu.RUnlock()
		if ok {
			return h, nil
		}

		dsn, err := DSNFromEnv(tenant)
		if err != nil {
			return nil, err
		}

		h, err = r.open(ctx, tenant, dsn)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "open store for "+tenant)
		}
		h.tenant = tenant
		h.logger = r.logger
		h.debug = r.debug

		r.mu.Lock()
		r.handles[tenant] = h
		r.mu.Unlock()

		r.logger.Info("tenant store opened", "tenant", tenant)
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Handle), nil
}

// Close closes every cached handle. Called once at process shutdown.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tenant, h := range r.handles {
		h.close()
		delete(r.handles, tenant)
	}
}

// DSNFromEnv resolves a tenant's connection target: the tenant-specific
// variable first, the shared fallback second. Neither set is a configuration
// error; the resolver must not connect to an unintended default.
func DSNFromEnv(tenant string) (string, error) {
	key := EnvKey(tenant)
	if dsn := os.Getenv(key); dsn != "" {
		return dsn, nil
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn, nil
	}
	return "", dErrors.New(dErrors.CodeConfig, "no store configured for "+tenant+" ("+key+" and DATABASE_URL unset)")
}

// EnvKey returns the tenant-specific environment variable name, e.g.
// "port-of-call" -> "PORT_OF_CALL_DATABASE_URL".
func EnvKey(tenant string) string {
	return strings.ToUpper(strings.ReplaceAll(tenant, "-", "_")) + "_DATABASE_URL"
}
