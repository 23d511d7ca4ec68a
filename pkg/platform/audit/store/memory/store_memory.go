package memory

import (
	"context"
	"sync"

	audit "polydom/pkg/platform/audit"
)

// InMemoryStore keeps audit entries in process memory. Used in tests and in
// deployments without a shared database.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []audit.Entry
	seen    map[string]bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{seen: make(map[string]bool)}
}

// Append stores the entry. Re-appending an entry ID already present is a
// no-op, mirroring the idempotent insert of the postgres store.
func (s *InMemoryStore) Append(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entry.ID.String()
	if s.seen[key] {
		return nil
	}
	s.seen[key] = true
	s.entries = append(s.entries, entry)
	return nil
}

// ListByTenant returns entries for one tenant in append order.
func (s *InMemoryStore) ListByTenant(_ context.Context, tenant string) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Entry
	for _, e := range s.entries {
		if e.Decision.Tenant == tenant {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll returns every entry in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Entry{}, s.entries...), nil
}
