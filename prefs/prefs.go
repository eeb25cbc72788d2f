// Package prefs holds the durable per-client application preferences:
// language and theme. Every mutation persists the new state and applies its
// observable side effects (text direction, language attribute, dark mode)
// synchronously, before the mutation returns. Direction is always derived
// from the language, never stored.
package prefs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tmeire/polyglot"
)

// Theme is the presentation theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ValidTheme reports whether t is a known theme.
func ValidTheme(t string) bool {
	return Theme(t) == Light || Theme(t) == Dark
}

// Preferences is the persisted state. The JSON field names are a stable
// storage contract; renaming one silently resets that preference.
type Preferences struct {
	Language polyglot.Language `json:"language"`
	Theme    Theme             `json:"theme"`
}

// Defaults returns the boot-time preferences.
func Defaults() Preferences {
	return Preferences{Language: polyglot.DefaultLanguage, Theme: Light}
}

// sanitize replaces unknown values with defaults so that corrupt stored
// state never propagates.
func sanitize(p Preferences) Preferences {
	if !polyglot.ValidLanguage(string(p.Language)) {
		p.Language = polyglot.DefaultLanguage
	}
	if !ValidTheme(string(p.Theme)) {
		p.Theme = Light
	}
	return p
}

// Applier receives the observable side effects of a preference change: the
// document direction, the language code and the dark-mode toggle. It is
// invoked synchronously on every mutation and once at rehydration, since the
// side effects themselves are never persisted.
type Applier interface {
	Apply(dir polyglot.Direction, lang polyglot.Language, dark bool)
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(dir polyglot.Direction, lang polyglot.Language, dark bool)

func (f ApplierFunc) Apply(dir polyglot.Direction, lang polyglot.Language, dark bool) {
	f(dir, lang, dark)
}

// LogApplier writes preference side effects to the log.
type LogApplier struct{}

func (LogApplier) Apply(dir polyglot.Direction, lang polyglot.Language, dark bool) {
	slog.Info("preferences applied", "direction", dir, "language", lang, "dark", dark)
}

// Store persists preferences under a stable client id.
type Store interface {
	// Load returns the stored preferences for clientID. The second return
	// value is false when nothing is stored yet.
	Load(ctx context.Context, clientID string) (Preferences, bool, error)
	// Save stores the preferences for clientID.
	Save(ctx context.Context, clientID string, p Preferences) error
}

// Service holds the current preferences of one client and keeps storage and
// side effects in sync with every mutation.
type Service struct {
	store    Store
	applier  Applier
	clientID string

	mu      sync.RWMutex
	current Preferences
}

// New rehydrates the preferences for clientID from the store and applies the
// side effects once. Unreadable or corrupt state falls back to defaults; a
// broken preference store must not prevent boot.
func New(ctx context.Context, store Store, applier Applier, clientID string) *Service {
	p, ok, err := store.Load(ctx, clientID)
	if err != nil {
		slog.Warn("failed to load preferences, using defaults", "client", clientID, "error", err)
		p = Defaults()
	} else if !ok {
		p = Defaults()
	}

	s := &Service{
		store:    store,
		applier:  applier,
		clientID: clientID,
		current:  sanitize(p),
	}
	s.apply()
	return s
}

// Preferences returns a snapshot of the current state.
func (s *Service) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Language returns the current language.
func (s *Service) Language() polyglot.Language {
	return s.Preferences().Language
}

// Theme returns the current theme.
func (s *Service) Theme() Theme {
	return s.Preferences().Theme
}

// Direction returns the text direction derived from the current language.
func (s *Service) Direction() polyglot.Direction {
	return s.Language().Direction()
}

// SetLanguage updates the language, applies the direction side effect and
// persists the new state before returning.
func (s *Service) SetLanguage(ctx context.Context, lang polyglot.Language) error {
	if !polyglot.ValidLanguage(string(lang)) {
		return fmt.Errorf("prefs: unsupported language %q", lang)
	}

	s.mu.Lock()
	s.current.Language = lang
	s.mu.Unlock()

	s.apply()
	return s.persist(ctx)
}

// SetTheme updates the theme, applies the dark-mode side effect and persists
// the new state before returning.
func (s *Service) SetTheme(ctx context.Context, theme Theme) error {
	if !ValidTheme(string(theme)) {
		return fmt.Errorf("prefs: unsupported theme %q", theme)
	}

	s.mu.Lock()
	s.current.Theme = theme
	s.mu.Unlock()

	s.apply()
	return s.persist(ctx)
}

// ToggleTheme switches between light and dark.
func (s *Service) ToggleTheme(ctx context.Context) error {
	next := Dark
	if s.Theme() == Dark {
		next = Light
	}
	return s.SetTheme(ctx, next)
}

func (s *Service) apply() {
	if s.applier == nil {
		return
	}
	p := s.Preferences()
	s.applier.Apply(p.Language.Direction(), p.Language, p.Theme == Dark)
}

func (s *Service) persist(ctx context.Context) error {
	return s.store.Save(ctx, s.clientID, s.Preferences())
}
