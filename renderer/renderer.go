// Package renderer turns collection data structures into markdown reports.
// It is purely presentational: all figures are computed upstream.
package renderer

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent formats a ratio as a signed percentage, e.g. 0.1234 -> "+12.34%".
func Percent(ratio decimal.Decimal) string {
	s := ratio.Mul(hundred).StringFixed(2)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}
