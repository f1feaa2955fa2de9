package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatGBP formats a decimal amount as a string like "£1,234.50".
// Uses comma as thousands separator and always shows two decimal places.
func FormatGBP(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	// Pre-allocate: digits + separators + £ + decimals
	b.Grow(len(s) + len(whole)/3 + 3)
	if neg {
		b.WriteString("-£")
	} else {
		b.WriteString("£")
	}

	if len(whole) <= 3 {
		b.WriteString(whole)
	} else {
		// Insert separators from the left.
		rem := len(whole) % 3
		if rem == 0 {
			rem = 3
		}
		b.WriteString(whole[:rem])
		for i := rem; i < len(whole); i += 3 {
			b.WriteByte(',')
			b.WriteString(whole[i : i+3])
		}
	}

	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent formats a decimal percentage like "12.5%".
func FormatPercent(p decimal.Decimal) string {
	return p.Round(2).String() + "%"
}
