package polyglot

import (
	"context"
	"sync"
)

// Store mirrors the Loader's cache as a subscribable state container, for
// consumers that want to react to load completion instead of awaiting
// individual loads. The "loaded" bookkeeping is only ever set together with
// a retrievable bundle.
type Store struct {
	loader *Loader

	mu      sync.RWMutex
	bundles map[Language]map[Namespace]*Bundle
	loading map[string]bool
	failed  map[string]error

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewStore creates a store over the given loader.
func NewStore(loader *Loader) *Store {
	return &Store{
		loader:  loader,
		bundles: make(map[Language]map[Namespace]*Bundle),
		loading: make(map[string]bool),
		failed:  make(map[string]error),
		subs:    make(map[int]func()),
	}
}

// Subscribe registers fn to run after every state change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// LoadNamespace loads the pair through the Loader and commits the resolved
// bundle into the store. Already-loaded pairs return immediately.
func (s *Store) LoadNamespace(ctx context.Context, lang Language, ns Namespace) error {
	key := pairKey(lang, ns)

	s.mu.Lock()
	if s.bundles[lang][ns] != nil {
		s.mu.Unlock()
		return nil
	}
	s.loading[key] = true
	delete(s.failed, key)
	s.mu.Unlock()
	s.notify()

	b, err := s.loader.Load(ctx, lang, ns)

	s.mu.Lock()
	delete(s.loading, key)
	if err != nil {
		s.failed[key] = err
	} else {
		s.commit(lang, ns, b)
	}
	s.mu.Unlock()
	s.notify()

	return err
}

// commit requires s.mu to be held.
func (s *Store) commit(lang Language, ns Namespace, b *Bundle) {
	if s.bundles[lang] == nil {
		s.bundles[lang] = make(map[Namespace]*Bundle)
	}
	s.bundles[lang][ns] = b
	delete(s.failed, pairKey(lang, ns))
}

// SetTranslations injects a bundle directly, bypassing the fetch path.
// Used for server-rendering hand-off and tests.
func (s *Store) SetTranslations(lang Language, ns Namespace, b *Bundle) {
	s.mu.Lock()
	s.commit(lang, ns, b)
	s.mu.Unlock()
	s.notify()
}

// Get returns the loaded bundle for the pair, or nil.
func (s *Store) Get(lang Language, ns Namespace) *Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundles[lang][ns]
}

// GetMultiple returns the already-loaded bundles among the given namespaces.
func (s *Store) GetMultiple(lang Language, namespaces []Namespace) map[Namespace]*Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Namespace]*Bundle)
	for _, ns := range namespaces {
		if b := s.bundles[lang][ns]; b != nil {
			out[ns] = b
		}
	}
	return out
}

// IsLoaded reports whether the pair's bundle has been committed.
func (s *Store) IsLoaded(lang Language, ns Namespace) bool {
	return s.Get(lang, ns) != nil
}

// IsLoading reports whether a load for the pair is in progress.
func (s *Store) IsLoading(lang Language, ns Namespace) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading[pairKey(lang, ns)]
}

// Result returns the tagged load state for the pair. Pairs that were never
// requested report as loading, matching the first render of a consumer that
// triggers the load on mount.
func (s *Store) Result(lang Language, ns Namespace) Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b := s.bundles[lang][ns]; b != nil {
		return LoadedResult(b)
	}
	if err := s.failed[pairKey(lang, ns)]; err != nil && !s.loading[pairKey(lang, ns)] {
		return FailedResult(err)
	}
	return LoadingResult()
}

// ClearCache empties the store state and the underlying loader cache.
func (s *Store) ClearCache() {
	s.loader.ClearCache()

	s.mu.Lock()
	s.bundles = make(map[Language]map[Namespace]*Bundle)
	s.loading = make(map[string]bool)
	s.failed = make(map[string]error)
	s.mu.Unlock()
	s.notify()
}
