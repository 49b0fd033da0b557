package voucher

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Present reports whether a decoded JSON value counts as present.
// Absent values, null, false, 0 and the empty string do not.
func Present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// FormatClaim renders a decoded JSON value the way it would be printed in a
// diagnostic: strings verbatim, numbers in their shortest form, arrays joined
// with commas, objects as JSON.
func FormatClaim(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = FormatClaim(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	// 1e-07 -> 1e-7
	if i := strings.IndexByte(s, 'e'); i >= 0 && i+2 < len(s) {
		mantissa, sign, exp := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
		if exp == "" {
			exp = "0"
		}
		s = mantissa + "e" + string(sign) + exp
	}
	return s
}
