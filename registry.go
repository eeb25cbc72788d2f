package polyglot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"
)

// ErrNotRegistered indicates that no loader function exists for a
// (namespace, language) pair. This is a configuration error: every namespace
// must have a translation source registered for every language.
var ErrNotRegistered = errors.New("polyglot: no translation loader registered")

// LoadFunc fetches the bundle for a single (namespace, language) pair. It is
// the seam across which the actual transport (embedded files, disk, HTTP)
// operates.
type LoadFunc func(ctx context.Context) (*Bundle, error)

// Registry is a two-level lookup table from (namespace, language) to the
// function that loads that pair's bundle.
type Registry struct {
	mu      sync.RWMutex
	loaders map[Namespace]map[Language]LoadFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		loaders: make(map[Namespace]map[Language]LoadFunc),
	}
}

// Register installs the loader function for a (namespace, language) pair,
// replacing any previous registration.
func (r *Registry) Register(ns Namespace, lang Language, fn LoadFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaders[ns] == nil {
		r.loaders[ns] = make(map[Language]LoadFunc)
	}
	r.loaders[ns][lang] = fn
}

// Lookup returns the loader function for a pair.
func (r *Registry) Lookup(ns Namespace, lang Language) (LoadFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byLang, ok := r.loaders[ns]
	if !ok {
		return nil, false
	}
	fn, ok := byLang[lang]
	return fn, ok
}

// RegisterFS registers a loader for every translation file found at
// dir/<namespace>/<language>.json in fsys. Files are read lazily, on first
// demand, not at registration time.
func (r *Registry) RegisterFS(fsys fs.FS, dir string) error {
	for _, ns := range Namespaces() {
		for _, lang := range Languages() {
			p := path.Join(dir, string(ns), string(lang)+".json")
			if _, err := fs.Stat(fsys, p); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return fmt.Errorf("stat %s: %w", p, err)
			}
			r.Register(ns, lang, func(ctx context.Context) (*Bundle, error) {
				data, err := fs.ReadFile(fsys, p)
				if err != nil {
					return nil, err
				}
				return ParseBundle(data)
			})
		}
	}
	return nil
}

// Validate checks that every (namespace, language) combination has a loader
// registered. A missing combination is an error, never a silent fallback to
// another language.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []string
	for _, ns := range Namespaces() {
		for _, lang := range Languages() {
			if _, ok := r.loaders[ns][lang]; !ok {
				missing = append(missing, string(ns)+":"+string(lang))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w for pairs %v", ErrNotRegistered, missing)
	}
	return nil
}
