package polyglot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	reg := newCountingRegistry(false)
	loader := NewLoader(reg.Registry)

	catalog, err := NewCatalog(context.Background(), loader, English)
	require.NoError(t, err)
	assert.Equal(t, English, catalog.Language())

	// Every namespace was loaded eagerly.
	assert.Equal(t, int64(len(Namespaces())), reg.calls.Load())
}

func TestCatalogT(t *testing.T) {
	reg := newCountingRegistry(false)
	loader := NewLoader(reg.Registry)
	catalog, err := NewCatalog(context.Background(), loader, Hebrew)
	require.NoError(t, err)

	assert.Equal(t, "billing/he", catalog.T("billing.title", nil))
	assert.Equal(t, "common/he", catalog.T("title", nil))
	assert.Equal(t, "billing.missing", catalog.T("billing.missing", nil))
	assert.Equal(t, "nothing.here", catalog.T("nothing.here", nil))
}

func TestCatalogHas(t *testing.T) {
	reg := newCountingRegistry(false)
	loader := NewLoader(reg.Registry)
	catalog, err := NewCatalog(context.Background(), loader, English)
	require.NoError(t, err)

	assert.True(t, catalog.Has("dashboard.title"))
	assert.False(t, catalog.Has("dashboard.missing"))
}

func TestNewCatalogFailsOnMissingNamespace(t *testing.T) {
	// Registry with one namespace missing for the requested language.
	registry := NewRegistry()
	for _, ns := range Namespaces() {
		if ns == NamespaceHelp {
			continue
		}
		registry.Register(ns, English, func(ctx context.Context) (*Bundle, error) {
			return NewBundle(map[string]any{}), nil
		})
	}

	_, err := NewCatalog(context.Background(), NewLoader(registry), English)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotRegistered))
}
