package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() RawRow {
	return RawRow{
		"01/03/2024 10023",
		"501",
		"Acme Broking",
		"Refinance of existing facility",
		"JOHN SMITH re Acme Pty Ltd",
		"120,000.00",
		"0.55",
		"660.00",
		"726.00",
	}
}

func TestSplit_CompoundColumnYieldsTwoFields(t *testing.T) {
	split, err := Split(0, validRow())
	require.NoError(t, err)

	assert.Equal(t, "01/03/2024", split.SettlementDate)
	assert.Equal(t, "10023", split.AppID)
	assert.Equal(t, "501", split.Xref)
	assert.Equal(t, "Acme Broking", split.Broker)
	assert.Equal(t, "120,000.00", split.TotalLoanAmount)
}

func TestSplit_SplitsOnFirstWhitespaceRunOnly(t *testing.T) {
	r := validRow()
	r[0] = "01/03/2024   10023 44"
	split, err := Split(0, r)
	require.NoError(t, err)
	assert.Equal(t, "01/03/2024", split.SettlementDate)
	assert.Equal(t, "10023 44", split.AppID)
}

func TestSplit_CompoundWithoutWhitespaceIsParseError(t *testing.T) {
	r := validRow()
	r[0] = "01/03/2024"

	_, err := Split(3, r)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Row)
	assert.Equal(t, "settlement_date/app_id", parseErr.Column)
}

func TestSplit_WrongWidthIsSchemaError(t *testing.T) {
	_, err := Split(0, RawRow{"01/03/2024 10023", "501"})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}
