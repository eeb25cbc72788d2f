package polyglot

import (
	"testing"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		params map[string]any
		want   string
	}{
		{
			name:   "single placeholder",
			text:   "Hello, {name}!",
			params: map[string]any{"name": "Dana"},
			want:   "Hello, Dana!",
		},
		{
			name:   "multiple placeholders",
			text:   "{used} of {limit} submissions used",
			params: map[string]any{"used": 3, "limit": 100},
			want:   "3 of 100 submissions used",
		},
		{
			name:   "repeated placeholder",
			text:   "{name} and {name}",
			params: map[string]any{"name": "x"},
			want:   "x and x",
		},
		{
			name:   "missing param leaves placeholder",
			text:   "Hello, {name}!",
			params: map[string]any{"other": "y"},
			want:   "Hello, {name}!",
		},
		{
			name:   "nil params",
			text:   "Hello, {name}!",
			params: nil,
			want:   "Hello, {name}!",
		},
		{
			name:   "empty params",
			text:   "Hello, {name}!",
			params: map[string]any{},
			want:   "Hello, {name}!",
		},
		{
			name:   "no placeholders",
			text:   "plain text",
			params: map[string]any{"name": "x"},
			want:   "plain text",
		},
		{
			name:   "non-string values",
			text:   "{n} items, {b}",
			params: map[string]any{"n": 42, "b": true},
			want:   "42 items, true",
		},
		{
			name:   "float value",
			text:   "total {amount}",
			params: map[string]any{"amount": 9.5},
			want:   "total 9.5",
		},
		{
			name:   "empty text",
			text:   "",
			params: map[string]any{"name": "x"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.text, tt.params)
			if got != tt.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasPlaceholders(t *testing.T) {
	if !HasPlaceholders("Hello, {name}!") {
		t.Error("expected placeholder to be detected")
	}
	if HasPlaceholders("plain text") {
		t.Error("expected no placeholder in plain text")
	}
	if HasPlaceholders("unbalanced {") {
		t.Error("unbalanced brace is not a placeholder")
	}
	if HasPlaceholders("{}") {
		t.Error("empty braces are not a placeholder")
	}
}

func TestExtractPlaceholders(t *testing.T) {
	got := ExtractPlaceholders("{used} of {limit}, again {used}")
	want := []string{"used", "limit", "used"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placeholder %d = %q, want %q", i, got[i], want[i])
		}
	}

	if ExtractPlaceholders("no placeholders here") != nil {
		t.Error("expected nil for text without placeholders")
	}
}
