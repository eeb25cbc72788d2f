package polyglot

import (
	"context"
	"fmt"
	"strings"
)

// Catalog is the legacy synchronous translation API: every namespace for a
// single language, loaded eagerly and addressed by keys prefixed with the
// namespace ("dashboard.widgets.title"). New code should prefer the
// namespaced lazy path (Loader/Store); the catalog exists for callers that
// need the full language up front.
type Catalog struct {
	lang    Language
	bundles map[Namespace]*Bundle
}

// NewCatalog loads every namespace for lang through the loader and returns
// the merged view. It fails if any namespace cannot be loaded.
func NewCatalog(ctx context.Context, loader *Loader, lang Language) (*Catalog, error) {
	if err := loader.Preload(ctx, lang, Namespaces()...); err != nil {
		return nil, fmt.Errorf("build catalog for %q: %w", lang, err)
	}

	bundles := make(map[Namespace]*Bundle, len(Namespaces()))
	for _, ns := range Namespaces() {
		bundles[ns] = loader.Cached(lang, ns)
	}
	return &Catalog{lang: lang, bundles: bundles}, nil
}

// Language returns the language this catalog was built for.
func (c *Catalog) Language() Language {
	return c.lang
}

// T translates a namespace-prefixed key path with interpolation. Keys with
// no namespace prefix fall back to the common namespace. Unresolvable keys
// are returned verbatim.
func (c *Catalog) T(key string, params map[string]any) string {
	ns, rest, found := strings.Cut(key, ".")
	if found && ValidNamespace(ns) {
		if b := c.bundles[Namespace(ns)]; b != nil {
			if v, ok := b.Lookup(rest); ok {
				return Interpolate(v, params)
			}
		}
		return key
	}

	if b := c.bundles[NamespaceCommon]; b != nil {
		if v, ok := b.Lookup(key); ok {
			return Interpolate(v, params)
		}
	}
	return key
}

// Has reports whether the key resolves in this catalog.
func (c *Catalog) Has(key string) bool {
	return c.T(key, nil) != key
}
