package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formats an amount as Brazilian currency, e.g. "R$ 1.234,56".
// Uses dot as thousands separator and comma for cents.
func FormatBRL(amount decimal.Decimal) string {
	s := amount.Round(2).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	// Pre-allocate: digits + separators + prefix
	b.Grow(len(intPart) + len(intPart)/3 + len(frac) + 5)
	if neg && !amount.Round(2).IsZero() {
		b.WriteString("-R$ ")
	} else {
		b.WriteString("R$ ")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte(',')
	b.WriteString(frac)

	return b.String()
}

// FormatPercent formats a percentage with one decimal place and a comma, e.g. "22,9%"
func FormatPercent(p decimal.Decimal) string {
	return strings.Replace(p.Round(1).StringFixed(1), ".", ",", 1) + "%"
}

// ParseBRL reads a user-formatted Brazilian amount such as "R$ 1.234,56", "-R$ 5,00"
// or "12,5". Everything except digits, the comma and a minus sign is dropped; the
// comma is the decimal separator.
func ParseBRL(s string) (decimal.Decimal, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" || strings.Trim(clean, ",-") == "" {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	neg := strings.Contains(clean, "-")
	clean = strings.ReplaceAll(clean, "-", "")
	if strings.Count(clean, ",") > 1 {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	clean = strings.Replace(clean, ",", ".", 1)
	if neg {
		clean = "-" + clean
	}

	val, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return val, nil
}
