package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatKRW renders a won amount with thousands separators, e.g.
// "₩12,345,678". Amounts are rendered to whole won.
func FormatKRW(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "₩" + b.String()
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPercent renders a fraction as a percentage with two decimals,
// e.g. 0.0925 → "9.25%".
func FormatPercent(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatRate renders a rate already expressed in percent, e.g. 8 → "8.00%".
func FormatRate(rate decimal.Decimal) string {
	return rate.StringFixed(2) + "%"
}
