package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "1234.56", "1234.56", false},
		{"thousands separated", "1,234.56", "1234.56", false},
		{"millions", "1,234,567.89", "1234567.89", false},
		{"no decimals", "500,000", "500000", false},
		{"currency symbol", "$1,000.00", "1000", false},
		{"leading whitespace", "  42.10 ", "42.1", false},
		{"zero", "0.00", "0", false},
		{"malformed", "abc", "", true},
		{"empty", "", "", true},
		{"double decimal point", "1.2.3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestRoundReport(t *testing.T) {
	d := decimal.RequireFromString("1234.56789")
	assert.Equal(t, "1234.5679", RoundReport(d).String())

	// Values already at scale pass through unchanged.
	d = decimal.RequireFromString("10.5")
	assert.Equal(t, "10.5", FormatReport(d))
}
