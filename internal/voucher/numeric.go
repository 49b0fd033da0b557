package voucher

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	prefixedInt    = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// IsNumeric reports whether a claim value coerces to a number.
//
// JSON numbers are numbers and true counts as 1. Strings are trimmed of
// surrounding whitespace; the empty string is zero, and otherwise the string must
// be a decimal literal (optionally signed, with optional fraction and exponent),
// an unsigned 0x/0o/0b integer, or a signed "Infinity". Arrays are joined with
// commas and treated as a string. Objects never coerce.
func IsNumeric(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return true
	case float64:
		return true
	case string:
		return numericString(t)
	case []any:
		return numericString(FormatClaim(t))
	default:
		return false
	}
}

// isNumberSpace reports whether r is trimmed before parsing a number: Unicode
// white space and line separators plus the byte order mark, but not NEL.
func isNumberSpace(r rune) bool {
	return (unicode.IsSpace(r) && r != '\u0085') || r == '\uFEFF'
}

func numericString(s string) bool {
	s = strings.TrimFunc(s, isNumberSpace)
	switch s {
	case "":
		return true
	case "Infinity", "+Infinity", "-Infinity":
		return true
	}
	if prefixedInt.MatchString(s) {
		return true
	}
	if !decimalLiteral.MatchString(s) {
		return false
	}
	// out of range values saturate to infinity, which still counts as a number
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}
