package polyglot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Loader loads translation bundles through a Registry and caches them for the
// lifetime of the process. Concurrent callers for the same
// (language, namespace) pair share exactly one underlying fetch, and all of
// them receive the same bundle reference. A failed fetch is not cached, so
// the next call retries.
//
// Loaders are explicit values rather than package state so that tests can
// build isolated instances instead of resetting globals.
type Loader struct {
	registry *Registry

	mu      sync.Mutex
	cache   map[string]*Bundle
	loading map[string]bool
	gen     uint64

	group singleflight.Group
}

// NewLoader creates a loader over the given registry.
func NewLoader(registry *Registry) *Loader {
	return &Loader{
		registry: registry,
		cache:    make(map[string]*Bundle),
		loading:  make(map[string]bool),
	}
}

func pairKey(lang Language, ns Namespace) string {
	return string(lang) + ":" + string(ns)
}

// Load returns the bundle for the pair, fetching it on first use.
func (l *Loader) Load(ctx context.Context, lang Language, ns Namespace) (*Bundle, error) {
	key := pairKey(lang, ns)

	l.mu.Lock()
	if b, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return b, nil
	}
	gen := l.gen
	l.mu.Unlock()

	v, err, shared := l.group.Do(key, func() (any, error) {
		l.setLoading(key, true)
		defer l.setLoading(key, false)

		return l.fetch(ctx, lang, ns, gen)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("translation load deduplicated", "pair", key)
	}
	return v.(*Bundle), nil
}

func (l *Loader) fetch(ctx context.Context, lang Language, ns Namespace, gen uint64) (*Bundle, error) {
	key := pairKey(lang, ns)

	// Re-check under the flight: another caller may have completed the load
	// between the cache probe and the singleflight entry.
	l.mu.Lock()
	if b, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return b, nil
	}
	l.mu.Unlock()

	fn, ok := l.registry.Lookup(ns, lang)
	if !ok {
		return nil, fmt.Errorf("%w for namespace %q language %q", ErrNotRegistered, ns, lang)
	}

	ctx, span := otel.GetTracerProvider().Tracer("polyglot").Start(ctx, "loader.fetch")
	span.SetAttributes(
		attribute.String("polyglot.language", string(lang)),
		attribute.String("polyglot.namespace", string(ns)),
	)
	defer span.End()

	b, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load translations %s: %w", key, err)
	}

	l.mu.Lock()
	// A cache clear during the fetch invalidates this result; don't
	// resurrect it into the fresh cache.
	if l.gen == gen {
		l.cache[key] = b
	}
	l.mu.Unlock()

	return b, nil
}

func (l *Loader) setLoading(key string, v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v {
		l.loading[key] = true
	} else {
		delete(l.loading, key)
	}
}

// Preload warms the cache for all the given namespaces in parallel. It fails
// fast on the first namespace that cannot be loaded; callers warming caches
// should treat that as best-effort and log rather than crash.
func (l *Loader) Preload(ctx context.Context, lang Language, namespaces ...Namespace) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, ns := range namespaces {
		g.Go(func() error {
			_, err := l.Load(ctx, lang, ns)
			return err
		})
	}
	return g.Wait()
}

// Cached returns the bundle for the pair if it is already loaded, without
// ever triggering a fetch.
func (l *Loader) Cached(lang Language, ns Namespace) *Bundle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache[pairKey(lang, ns)]
}

// IsCached reports whether the pair's bundle is in the cache.
func (l *Loader) IsCached(lang Language, ns Namespace) bool {
	return l.Cached(lang, ns) != nil
}

// IsLoading reports whether a fetch for the pair is currently in flight.
func (l *Loader) IsLoading(lang Language, ns Namespace) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading[pairKey(lang, ns)]
}

// ClearCache empties the bundle cache and detaches any in-flight loads so
// their results are not committed. Intended for hot reload and tests, not
// the normal production flow.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	l.cache = make(map[string]*Bundle)
	l.gen++
	inflight := make([]string, 0, len(l.loading))
	for key := range l.loading {
		inflight = append(inflight, key)
	}
	l.mu.Unlock()

	for _, key := range inflight {
		l.group.Forget(key)
	}
}
