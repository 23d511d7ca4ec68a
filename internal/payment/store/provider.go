package store

import (
	"context"
	"sync"

	"polydom/internal/payment/service"
	"polydom/internal/tenantstore"
	dErrors "polydom/pkg/domain-errors"
)

// TenantProvider resolves a tenant's postgres store through the tenant store
// resolver. Isolation follows from the resolver: each store wraps the pool of
// exactly one tenant's handle.
type TenantProvider struct {
	resolver *tenantstore.Resolver

	mu     sync.Mutex
	stores map[string]*Postgres
}

func NewTenantProvider(resolver *tenantstore.Resolver) *TenantProvider {
	return &TenantProvider{
		resolver: resolver,
		stores:   make(map[string]*Postgres),
	}
}

func (p *TenantProvider) StoreFor(ctx context.Context, tenant string) (service.Store, error) {
	handle, err := p.resolver.Get(ctx, tenant)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.stores[tenant]; ok {
		return s, nil
	}
	s := NewPostgres(handle.Pool(), handle)
	p.stores[tenant] = s
	return s, nil
}

// MemoryProvider hands out one in-memory store per tenant. Used by tests and
// by deployments without databases. valid may be nil to accept any tenant.
type MemoryProvider struct {
	valid func(slug string) bool

	mu     sync.Mutex
	stores map[string]*Memory
}

func NewMemoryProvider(valid func(slug string) bool) *MemoryProvider {
	return &MemoryProvider{
		valid:  valid,
		stores: make(map[string]*Memory),
	}
}

func (p *MemoryProvider) StoreFor(_ context.Context, tenant string) (service.Store, error) {
	if p.valid != nil && !p.valid(tenant) {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown domain: "+tenant)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.stores[tenant]
	if !ok {
		s = NewMemory()
		p.stores[tenant] = s
	}
	return s, nil
}
