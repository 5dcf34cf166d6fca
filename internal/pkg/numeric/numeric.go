// Package numeric implements lenient parsing of free-text numeric input.
//
// Input never fails to parse: anything that cannot be read as a number degrades
// to the supplied default.
package numeric

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Sanitize strips everything except digits and separators, treats comma as a decimal
// separator and keeps only the last separator when several are present, so that
// "1,234.5abc" becomes "1234.5".
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == ',':
			b.WriteByte('.')
		}
	}
	s := b.String()
	if last := strings.LastIndexByte(s, '.'); last >= 0 {
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}
	return s
}

// Parse returns the numeric value of raw or def when raw holds no number.
func Parse(raw string, def float64) float64 {
	s := Sanitize(raw)
	if s == "" || s == "." {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseDecimal is the money counterpart of Parse; it never goes through float64.
func ParseDecimal(raw string, def decimal.Decimal) decimal.Decimal {
	s := Sanitize(raw)
	if s == "" || s == "." {
		return def
	}
	if strings.HasSuffix(s, ".") {
		s = strings.TrimSuffix(s, ".")
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return v
}

// Fixed formats an amount as a fixed-point string with two decimals.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
