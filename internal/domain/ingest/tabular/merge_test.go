package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settleline/broker-settlements/internal/extract"
)

func row(cells ...string) []string { return cells }

func TestMerge_ReinsertsHeaderAsData(t *testing.T) {
	tables := []extract.RawTable{
		{
			Header: row("01/03/2024 10023", "501", "Acme Broking", "Refi", "JOHN SMITH", "120,000.00", "0.55", "660.00", "726.00"),
			Rows: [][]string{
				row("02/03/2024 10024", "502", "Acme Broking", "Purchase", "JANE DOE", "80,000.00", "0.55", "440.00", "484.00"),
			},
		},
	}

	merged, err := Merge(tables)
	require.NoError(t, err)
	require.Len(t, merged, 2)

	// The misidentified header is the first data row, in order.
	assert.Equal(t, "01/03/2024 10023", merged[0][0])
	assert.Equal(t, "02/03/2024 10024", merged[1][0])
}

func TestMerge_DropsAllEmptyColumns(t *testing.T) {
	// A spurious empty column in the middle must vanish; a column that is
	// only sometimes empty must survive.
	tables := []extract.RawTable{
		{
			Header: row("01/03/2024 10023", "501", "", "Acme Broking", "Refi", "JOHN SMITH", "120,000.00", "0.55", "660.00", "726.00"),
			Rows: [][]string{
				row("02/03/2024 10024", "502", "", "Acme Broking", "", "JANE DOE", "80,000.00", "0.55", "440.00", "484.00"),
			},
		},
	}

	merged, err := Merge(tables)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	for _, m := range merged {
		assert.Len(t, m, PreSplitColumns)
	}
	// Partially-empty column kept as empty cell.
	assert.Equal(t, "", merged[1][3])
}

func TestMerge_PadsRaggedRows(t *testing.T) {
	tables := []extract.RawTable{
		{
			Header: row("01/03/2024 10023", "501", "Acme Broking", "Refi", "JOHN SMITH", "120,000.00", "0.55", "660.00", "726.00"),
			Rows: [][]string{
				// Trailing cell missing from the extraction.
				row("02/03/2024 10024", "502", "Acme Broking", "Purchase", "JANE DOE", "80,000.00", "0.55", "440.00"),
			},
		},
	}

	merged, err := Merge(tables)
	require.NoError(t, err)
	assert.Equal(t, "", merged[1][8])
}

func TestMerge_StacksMultipleTables(t *testing.T) {
	one := extract.RawTable{
		Header: row("01/03/2024 10023", "501", "Acme Broking", "Refi", "JOHN SMITH", "120,000.00", "0.55", "660.00", "726.00"),
	}
	two := extract.RawTable{
		Header: row("08/03/2024 10030", "510", "Beta Finance", "Purchase", "ANA LIMA", "45,000.00", "0.50", "225.00", "247.50"),
		Rows: [][]string{
			row("09/03/2024 10031", "511", "Beta Finance", "Refi", "KIM LEE", "60,000.00", "0.50", "300.00", "330.00"),
		},
	}

	merged, err := Merge([]extract.RawTable{one, two})
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, "501", merged[0][1])
	assert.Equal(t, "510", merged[1][1])
	assert.Equal(t, "511", merged[2][1])
}

func TestMerge_WrongColumnCountIsSchemaError(t *testing.T) {
	tables := []extract.RawTable{
		{Header: row("01/03/2024 10023", "501", "Acme Broking", "120,000.00")},
	}

	_, err := Merge(tables)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, PreSplitColumns, schemaErr.Want)
	assert.Equal(t, 4, schemaErr.Got)
}
