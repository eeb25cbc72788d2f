// Package polyglot delivers translation bundles to an application that is
// split into feature namespaces. Bundles are loaded lazily per
// (language, namespace) pair, cached for the lifetime of the process and
// deduplicated so that concurrent requests for the same pair share a single
// underlying fetch.
package polyglot

import "strings"

// Language is a supported UI language code.
type Language string

const (
	Hebrew  Language = "he"
	English Language = "en"
	Arabic  Language = "ar"
)

// DefaultLanguage is used when no explicit preference is known.
const DefaultLanguage = Hebrew

// Direction is the text direction of a language.
type Direction string

const (
	RTL Direction = "rtl"
	LTR Direction = "ltr"
)

// LanguageConfig is the static configuration of a language.
type LanguageConfig struct {
	Name      string
	Direction Direction
	Locale    string
}

var languageConfigs = map[Language]LanguageConfig{
	Hebrew:  {Name: "עברית", Direction: RTL, Locale: "he-IL"},
	English: {Name: "English", Direction: LTR, Locale: "en-US"},
	Arabic:  {Name: "العربية", Direction: RTL, Locale: "ar-SA"},
}

// Languages returns all supported languages.
func Languages() []Language {
	return []Language{Hebrew, English, Arabic}
}

// ValidLanguage reports whether lang is a supported language code.
func ValidLanguage(lang string) bool {
	_, ok := languageConfigs[Language(strings.ToLower(lang))]
	return ok
}

// ParseLanguage normalizes a language string, accepting region-qualified
// codes like "he-IL". Unknown codes resolve to DefaultLanguage.
func ParseLanguage(lang string) Language {
	l := strings.ToLower(strings.TrimSpace(lang))
	if base, _, found := strings.Cut(l, "-"); found {
		l = base
	}
	if _, ok := languageConfigs[Language(l)]; ok {
		return Language(l)
	}
	return DefaultLanguage
}

// Config returns the static configuration for the language.
func (l Language) Config() LanguageConfig {
	return languageConfigs[l]
}

// Direction returns the text direction for the language. Direction is always
// derived from the language and never stored on its own.
func (l Language) Direction() Direction {
	if c, ok := languageConfigs[l]; ok {
		return c.Direction
	}
	return DefaultLanguage.Direction()
}

// Locale returns the full locale identifier, e.g. "he-IL".
func (l Language) Locale() string {
	return languageConfigs[l].Locale
}
