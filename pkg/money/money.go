// Package money provides precision-safe parsing and formatting of monetary
// amounts using shopspring/decimal. Amounts stay full-precision through every
// aggregation and are rounded only at the reporting boundary.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ReportScale is the number of fractional digits reported to callers.
// Accumulation never rounds; only the reporting boundary does.
const ReportScale = 4

// ParseAmount parses a thousands-separated amount string such as "1,234.56"
// into a decimal. Currency symbols and surrounding whitespace are tolerated.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	for _, sym := range []string{"$", "€", "£"} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// RoundReport rounds an amount to the reporting scale. Used only when a
// value crosses the reporting boundary, never inside an accumulation.
func RoundReport(d decimal.Decimal) decimal.Decimal {
	return d.Round(ReportScale)
}

// FormatReport renders an amount the way report rows carry it.
func FormatReport(d decimal.Decimal) string {
	return RoundReport(d).String()
}
