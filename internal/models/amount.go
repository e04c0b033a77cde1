package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyTokens = []string{"CHF", "EUR", "USD", "GBP", "$", "€", "£"}

// ParseAmount parses a statement cell into a decimal amount. It tolerates
// currency symbols, thousand separators (comma or apostrophe), and
// accountant-style parentheses for negative values.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	for _, tok := range currencyTokens {
		cleaned = strings.ReplaceAll(cleaned, tok, "")
	}
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "'", "")

	switch {
	case strings.Contains(cleaned, ",") && strings.Contains(cleaned, "."):
		// US style: commas are thousand separators
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case strings.Count(cleaned, ",") == 1 && len(cleaned)-strings.Index(cleaned, ",") == 3:
		// European decimal comma, e.g. "45,99"
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	default:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
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
