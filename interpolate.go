package polyglot

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Interpolate replaces every occurrence of {key} in text with the stringified
// value from params. Placeholders without a matching param are left verbatim.
// A nil or empty params returns text unchanged.
func Interpolate(text string, params map[string]any) string {
	if len(params) == 0 {
		return text
	}
	for key, value := range params {
		text = strings.ReplaceAll(text, "{"+key+"}", fmt.Sprintf("%v", value))
	}
	return text
}

// HasPlaceholders reports whether text contains at least one {placeholder}.
func HasPlaceholders(text string) bool {
	return placeholderPattern.MatchString(text)
}

// ExtractPlaceholders returns the placeholder names found in text, in order
// of appearance, duplicates included.
func ExtractPlaceholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
