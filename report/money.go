package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money rounds an amount to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Rand formats an amount as Rands with thousands separators, e.g. R26,197.00.
func Rand(v float64) string {
	s := Money(v).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, cents, _ := strings.Cut(s, ".")

	return sign + "R" + group(whole) + "." + cents
}

// Percent formats a percentage with two decimals.
func Percent(v float64) string {
	return Money(v).StringFixed(2) + "%"
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder

	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}

	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
