package voucher

import "testing"

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"integer string", "42", true},
		{"negative decimal", "-3.25", true},
		{"explicit plus", "+7", true},
		{"leading dot", ".5", true},
		{"trailing dot", "5.", true},
		{"exponent", "1e3", true},
		{"negative exponent", "2.5E-4", true},
		{"surrounding whitespace", "  42\n", true},
		{"only whitespace", "   ", true},
		{"no-break space and line separator", "\u00a042\u2028", true},
		{"byte order mark", "\uFEFF42", true},
		{"hex", "0x1F", true},
		{"octal", "0o17", true},
		{"binary", "0b101", true},
		{"infinity", "Infinity", true},
		{"negative infinity", "-Infinity", true},
		{"overflow", "1e400", true},
		{"json number", 42.0, true},
		{"true", true, true},
		{"single element array", []any{"7"}, true},
		{"empty array", []any{}, true},

		{"letters", "abc", false},
		{"next line is not trimmed", "\u008542", false},
		{"trailing garbage", "42abc", false},
		{"inner whitespace", "4 2", false},
		{"underscore separator", "1_000", false},
		{"signed hex", "-0x1F", false},
		{"hex float", "0x1p3", false},
		{"go inf spelling", "inf", false},
		{"nan", "NaN", false},
		{"lowercase infinity", "infinity", false},
		{"lone dot", ".", false},
		{"lone exponent", "e5", false},
		{"two element array", []any{"1", "2"}, false},
		{"object", map[string]any{"a": 1.0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNumeric(tt.value); got != tt.want {
				t.Errorf("IsNumeric(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatClaim(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"ssgw", "ssgw"},
		{42.0, "42"},
		{1.5, "1.5"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{true, "true"},
		{nil, ""},
		{[]any{"a", "b"}, "a,b"},
		{map[string]any{"k": "v"}, `{"k":"v"}`},
	}
	for _, tt := range tests {
		if got := FormatClaim(tt.value); got != tt.want {
			t.Errorf("FormatClaim(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestPresent(t *testing.T) {
	for _, v := range []any{nil, false, 0.0, ""} {
		if Present(v) {
			t.Errorf("Present(%#v) = true, want false", v)
		}
	}
	for _, v := range []any{true, 1.0, "0", []any{}, map[string]any{}} {
		if !Present(v) {
			t.Errorf("Present(%#v) = false, want true", v)
		}
	}
}
