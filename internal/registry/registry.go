// Package registry holds the static catalogue of portal domains (tenants).
//
// The catalogue is compiled in: every slug a request can legitimately carry is
// known at build time, and the registry is read-only after construction. Truly
// dynamic inputs (URLs, headers) go through Resolve, which signals absence
// instead of erroring so routing fallbacks stay cheap.
package registry

import (
	"fmt"
)

// Category groups domains by business vertical. The set is closed.
type Category string

const (
	CategoryFinance    Category = "finance"
	CategoryRealEstate Category = "realestate"
	CategoryTravel     Category = "travel"
	CategoryCommerce   Category = "commerce"
	CategoryNetwork    Category = "network"
	CategoryTech       Category = "tech"
	CategoryElite      Category = "elite"
	CategoryHub        Category = "hub"
)

// Categories lists all valid categories in display order.
var Categories = []Category{
	CategoryFinance,
	CategoryRealEstate,
	CategoryTravel,
	CategoryCommerce,
	CategoryNetwork,
	CategoryTech,
	CategoryElite,
	CategoryHub,
}

// Status is the lifecycle state of a domain.
type Status string

const (
	StatusActive      Status = "active"
	StatusComingSoon  Status = "coming-soon"
	StatusMaintenance Status = "maintenance"
)

// Config is one domain's immutable configuration.
//
// Invariants:
//   - Slug is globally unique across all categories
//   - every entry in Related resolves to a catalogue slug
//   - Config values never change after process start
type Config struct {
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Category    Category          `json:"category"`
	Status      Status            `json:"status"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Theme       string            `json:"theme"`
	Strings     map[string]string `json:"strings,omitempty"`
	Routes      []string          `json:"routes"`
	Related     []string          `json:"related,omitempty"`
}

// Registry resolves slugs against the static catalogue. Construct once at
// startup with New; all methods are safe for concurrent use because the
// underlying maps are never written after construction.
type Registry struct {
	bySlug     map[string]Config
	byCategory map[Category][]string
}

// New builds the registry from the compiled-in catalogue and verifies its
// invariants. A broken catalogue is a programming error and fails the boot.
func New() (*Registry, error) {
	r := &Registry{
		bySlug:     make(map[string]Config, len(catalog)),
		byCategory: make(map[Category][]string),
	}
	valid := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		valid[c] = true
	}

	for _, cfg := range catalog {
		if cfg.Slug == "" || cfg.Name == "" {
			return nil, fmt.Errorf("registry: domain with empty slug or name")
		}
		if !valid[cfg.Category] {
			return nil, fmt.Errorf("registry: domain %q has unknown category %q", cfg.Slug, cfg.Category)
		}
		if _, dup := r.bySlug[cfg.Slug]; dup {
			return nil, fmt.Errorf("registry: duplicate slug %q", cfg.Slug)
		}
		r.bySlug[cfg.Slug] = cfg
		r.byCategory[cfg.Category] = append(r.byCategory[cfg.Category], cfg.Slug)
	}

	for _, cfg := range catalog {
		for _, rel := range cfg.Related {
			if _, ok := r.bySlug[rel]; !ok {
				return nil, fmt.Errorf("registry: domain %q relates to unknown slug %q", cfg.Slug, rel)
			}
		}
	}
	return r, nil
}

// MustNew is New for wiring paths where a catalogue error is unrecoverable.
func MustNew() *Registry {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve looks up a domain by exact slug. The second return value reports
// presence; unknown slugs are not an error.
func (r *Registry) Resolve(slug string) (Config, bool) {
	cfg, ok := r.bySlug[slug]
	return cfg, ok
}

// ListByCategory returns the slugs of one category in catalogue order.
// Unknown categories yield an empty slice.
func (r *Registry) ListByCategory(c Category) []string {
	slugs := r.byCategory[c]
	out := make([]string, len(slugs))
	copy(out, slugs)
	return out
}

// IsValid reports membership of slug in the union of all categories.
func (r *Registry) IsValid(slug string) bool {
	_, ok := r.bySlug[slug]
	return ok
}

// Slugs returns every catalogue slug in catalogue order.
func (r *Registry) Slugs() []string {
	out := make([]string, 0, len(catalog))
	for _, cfg := range catalog {
		out = append(out, cfg.Slug)
	}
	return out
}
