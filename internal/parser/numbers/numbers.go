// Package numbers provides tolerant numeric parsing for leaderboard exports.
//
// Exports from tournament platforms are dirty: blank cells, "-" placeholders,
// thousands separators and trailing asterisks ("45*" for a not-out highest
// score) all appear in numeric columns. The helpers here never fail; callers
// choose a default for values that do not parse.
package numbers

import (
	"math"
	"strconv"
	"strings"
)

// Float converts v to a float64. It accepts Go numeric types and strings.
// The boolean result is false when v is missing or not numeric; NaN and
// infinities are rejected as well.
func Float(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case string:
		parsed, ok := parseString(n)
		if !ok {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FloatOr returns Float(v) or def when v does not parse.
func FloatOr(v any, def float64) float64 {
	if f, ok := Float(v); ok {
		return f
	}
	return def
}

// Round rounds x to the given number of decimal places. Exact halves go to
// the even neighbour, so 2.125 becomes 2.12 and 2.135 becomes 2.14.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(x*p) / p
}

func parseString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "*")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
