// Package money provides currency formatting and identifier-digit helpers
// shared by every component that displays an amount. Amounts are represented
// as decimal values (github.com/shopspring/decimal) to avoid binary
// floating-point drift in balances.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero returns the zero amount.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// FromFloat converts a float (e.g. parsed console input) into an amount.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// FromString parses a textual amount such as "1234.56".
// Returns an error for anything that is not a plain decimal number.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// Format renders an amount as "R$ 1.234,56":
// - always two decimal places
// - "." as the thousands separator
// - "," as the decimal separator
// - negative amounts as "R$ -1.234,56"
func Format(v decimal.Decimal) string {
	s := v.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-2:]

	var b strings.Builder
	b.WriteString("R$ ")
	b.WriteString(sign)

	// Group the integer digits in threes from the right.
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte('.')
		}
	}

	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// Digits strips everything but ASCII digits from s.
// Used to normalize identifiers such as "123.456.789-00" to "12345678900".
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
