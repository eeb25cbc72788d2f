package polyglot

import (
	"context"
	"strings"
)

type contextKey string

const (
	langKey  contextKey = "language"
	storeKey contextKey = "store"
)

// WithLanguage adds a language to the context.
func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, langKey, lang)
}

// LanguageFromContext gets the language from the context, falling back to
// DefaultLanguage.
func LanguageFromContext(ctx context.Context) Language {
	if lang, ok := ctx.Value(langKey).(Language); ok {
		return lang
	}
	return DefaultLanguage
}

// WithStore adds a translation store to the context.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// StoreFromContext gets the translation store from the context.
func StoreFromContext(ctx context.Context) *Store {
	if s, ok := ctx.Value(storeKey).(*Store); ok {
		return s
	}
	return nil
}

// T translates a namespace-prefixed key using the store and language found
// in the context. Keys without a namespace prefix resolve against the common
// namespace. Missing store, unloaded namespace or unknown key all degrade to
// returning the key itself.
func T(ctx context.Context, key string, params map[string]any) string {
	s := StoreFromContext(ctx)
	if s == nil {
		return key
	}
	lang := LanguageFromContext(ctx)

	ns, rest := splitKey(key)
	b := s.Get(lang, ns)
	if b == nil {
		return key
	}
	if v, ok := b.Lookup(rest); ok {
		return Interpolate(v, params)
	}
	return key
}

// splitKey separates the namespace prefix from a dotted key path. Keys that
// don't start with a known namespace belong to the common namespace.
func splitKey(key string) (Namespace, string) {
	if ns, rest, found := strings.Cut(key, "."); found && ValidNamespace(ns) {
		return Namespace(ns), rest
	}
	return NamespaceCommon, key
}
