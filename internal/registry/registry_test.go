package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestResolveRoundTrip(t *testing.T) {
	r := MustNew()

	for _, slug := range r.Slugs() {
		cfg, ok := r.Resolve(slug)
		require.True(t, ok, "slug %q must resolve", slug)
		assert.Equal(t, slug, cfg.Slug)
		assert.NotEmpty(t, cfg.Name)
		assert.NotEmpty(t, cfg.Title)
	}
}

func TestResolveUnknownSlug(t *testing.T) {
	r := MustNew()

	for _, slug := range []string{"", "nope", "FUNDX", "fundx "} {
		_, ok := r.Resolve(slug)
		assert.False(t, ok, "slug %q must not resolve", slug)
	}
}

func TestResolveKnownDomains(t *testing.T) {
	r := MustNew()

	cfg, ok := r.Resolve("fundx")
	require.True(t, ok)
	assert.Equal(t, CategoryFinance, cfg.Category)

	cfg, ok = r.Resolve("gateway24")
	require.True(t, ok)
	assert.Equal(t, CategoryHub, cfg.Category)
}

func TestEveryCategoryPopulated(t *testing.T) {
	r := MustNew()

	total := 0
	for _, c := range Categories {
		slugs := r.ListByCategory(c)
		assert.NotEmpty(t, slugs, "category %q must have domains", c)
		total += len(slugs)
	}
	assert.Equal(t, len(r.Slugs()), total)
}

func TestListByCategoryReturnsCopy(t *testing.T) {
	r := MustNew()

	first := r.ListByCategory(CategoryFinance)
	require.NotEmpty(t, first)
	first[0] = "mutated"

	again := r.ListByCategory(CategoryFinance)
	assert.NotEqual(t, "mutated", again[0])
}

func TestListByCategoryUnknown(t *testing.T) {
	r := MustNew()
	assert.Empty(t, r.ListByCategory(Category("bogus")))
}

func TestIsValid(t *testing.T) {
	r := MustNew()

	assert.True(t, r.IsValid("fundx"))
	assert.False(t, r.IsValid("bogus"))
	assert.False(t, r.IsValid(""))
}

func TestRelatedClosure(t *testing.T) {
	r := MustNew()

	for _, slug := range r.Slugs() {
		cfg, _ := r.Resolve(slug)
		for _, rel := range cfg.Related {
			assert.True(t, r.IsValid(rel), "domain %q relates to unknown slug %q", slug, rel)
		}
	}
}
