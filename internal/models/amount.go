package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCurrencyAmount parses a printed statement amount into an exact
// decimal. Currency symbols and thousands separators are stripped; a
// leading minus or enclosing parentheses denote a negative amount.
// Decimal arithmetic keeps cent precision with no floating-point drift.
func ParseCurrencyAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, "-") {
		negative = true
		cleaned = cleaned[1:]
	}

	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if negative {
		dec = dec.Neg()
	}
	return dec, nil
}
