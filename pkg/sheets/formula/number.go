package formula

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var numberPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseNumber reads the longest numeric prefix of s after leading whitespace,
// the way browsers' parseFloat does: "12px" is 12, "abc" and "" are not numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
	lit := numberPrefix.FindString(s)
	if lit == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// Out-of-range literals saturate to ±Inf or 0.
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// formatNumber renders v in shortest round-trip form, switching to exponent
// notation outside [1e-6, 1e21).
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFixed renders v with exactly digits decimals, rounding ties away from
// zero on the exact binary value (so 2.125 gives "2.13" but 1.005 gives "1.00").
func formatFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1e21 {
		return formatNumber(v)
	}
	neg := v < 0
	v = math.Abs(v)
	// A float64 has at most 1074 fractional binary digits, so this expansion is exact.
	exact := new(big.Float).SetFloat64(v).Text('f', 1100)
	intPart, frac, _ := strings.Cut(exact, ".")
	b := []byte(intPart + frac[:digits])
	if frac[digits] >= '5' {
		i := len(b) - 1
		for ; i >= 0; i-- {
			if b[i] != '9' {
				b[i]++
				break
			}
			b[i] = '0'
		}
		if i < 0 {
			b = append([]byte{'1'}, b...)
		}
	}
	split := len(b) - digits
	out := string(b[:split])
	if digits > 0 {
		out += "." + string(b[split:])
	}
	if neg {
		out = "-" + out
	}
	return out
}
