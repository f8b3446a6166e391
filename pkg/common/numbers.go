package common

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var (
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	priceNoise   = regexp.MustCompile(`[^0-9.,-]`)
)

// ParseFloat reads the leading decimal number of v the way a lenient form
// field parser would: "12.5 USD" is 12.5, "abc" is not a number.
// Only finite results are reported as ok.
func ParseFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case string:
		m := leadingFloat.FindString(strings.TrimSpace(val))
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case bool:
		return 0, false
	default:
		f, err := cast.ToFloat64E(val)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
}

// ParseInt reads the leading base-10 integer of v. Floats are truncated.
func ParseInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		m := leadingInt.FindString(strings.TrimSpace(val))
		if m == "" {
			return 0, false
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		f, ok := ParseFloat(val)
		if !ok {
			return 0, false
		}
		return int(math.Trunc(f)), true
	}
}

// ParsePrice extracts a price from display text such as "35 USD" or "$ 1.234,50".
// Everything except digits, dots, commas and minus signs is dropped and the
// first comma becomes a decimal point.
func ParsePrice(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	sanitised := strings.Replace(priceNoise.ReplaceAllString(raw, ""), ",", ".", 1)
	return ParseFloat(sanitised)
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
