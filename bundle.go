package polyglot

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Bundle holds the resolved translations for one (language, namespace) pair.
// Values are a nested mapping of string keys to string leaves, addressed by
// dotted key paths. Legacy files with flat dotted keys resolve the same way.
// A Bundle is immutable once created.
type Bundle struct {
	values map[string]any
	flat   map[string]string
}

// NewBundle creates a bundle from a nested translation mapping.
func NewBundle(values map[string]any) *Bundle {
	b := &Bundle{
		values: values,
		flat:   make(map[string]string),
	}
	b.flatten(values, "")
	return b
}

// ParseBundle decodes a JSON translation document into a bundle.
func ParseBundle(data []byte) (*Bundle, error) {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse translation bundle: %w", err)
	}
	return NewBundle(values), nil
}

// flatten recursively flattens nested translations into dot notation,
// e.g. {"widgets":{"title":"..."}} becomes {"widgets.title":"..."}.
func (b *Bundle) flatten(nested map[string]any, prefix string) {
	for key, value := range nested {
		newKey := key
		if prefix != "" {
			newKey = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			b.flatten(v, newKey)
		case string:
			b.flat[newKey] = v
		default:
			if v != nil {
				b.flat[newKey] = fmt.Sprintf("%v", v)
			}
		}
	}
}

// Lookup resolves a dotted key path to its string value.
func (b *Bundle) Lookup(key string) (string, bool) {
	if b == nil {
		return "", false
	}
	if v, ok := b.flat[key]; ok {
		return v, true
	}
	return nestedValue(b.values, key)
}

// Has reports whether the key path resolves to a string value.
func (b *Bundle) Has(key string) bool {
	_, ok := b.Lookup(key)
	return ok
}

// T resolves the key path and interpolates params into the value. A key that
// does not resolve to a string is returned verbatim; T never fails.
func (b *Bundle) T(key string, params map[string]any) string {
	v, ok := b.Lookup(key)
	if !ok {
		return key
	}
	return Interpolate(v, params)
}

// Keys returns all flattened key paths in the bundle, sorted.
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.flat))
	for k := range b.flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of string leaves in the bundle.
func (b *Bundle) Len() int {
	return len(b.flat)
}

// MarshalJSON encodes the bundle back to its nested JSON form.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.values)
}

// nestedValue retrieves a value from a nested structure using dot notation.
func nestedValue(nested map[string]any, key string) (string, bool) {
	parts := strings.Split(key, ".")
	current := nested

	for i, part := range parts {
		if i == len(parts)-1 {
			value, ok := current[part]
			if !ok {
				return "", false
			}
			if s, isString := value.(string); isString {
				return s, true
			}
			if value != nil {
				if _, isMap := value.(map[string]any); !isMap {
					return fmt.Sprintf("%v", value), true
				}
			}
			return "", false
		}

		next, ok := current[part]
		if !ok {
			return "", false
		}
		nextMap, isMap := next.(map[string]any)
		if !isMap {
			return "", false
		}
		current = nextMap
	}

	return "", false
}
