// Package tabular reconstructs canonical loan-settlement records from the
// noisy, column-misaligned tables a PDF extractor produces. The pipeline is
// Merge -> Split -> borrower extraction -> Coerce, with each stage handing
// the next a named, typed shape rather than a dynamically indexed map.
package tabular

import "github.com/settleline/broker-settlements/internal/extract"

// PreSplitColumns is the fixed positional width of the merged table before
// the compound date+id column is split:
//
//	0 settlement date + app id (compound)
//	1 xref
//	2 broker
//	3 description
//	4 sub broker
//	5 total loan amount
//	6 commission rate
//	7 upfront
//	8 upfront incl. GST
const PreSplitColumns = 9

// RawRow is one positional row of the merged table.
type RawRow []string

// Merge stacks the extracted tables into one logical table, in row order.
// Per table it drops any column that is empty in every row and re-inserts the
// table's own header as the first data row: the extractor misreads a true
// data row as column labels, so discarding it would lose the first record of
// each physical table. Rows that do not normalize to PreSplitColumns cells
// produce a SchemaError.
func Merge(tables []extract.RawTable) ([]RawRow, error) {
	var merged []RawRow
	for _, t := range tables {
		rows := make([][]string, 0, len(t.Rows)+1)
		if len(t.Header) > 0 {
			rows = append(rows, t.Header)
		}
		rows = append(rows, t.Rows...)

		for _, row := range dropEmptyColumns(rows) {
			if len(row) != PreSplitColumns {
				return nil, &SchemaError{Row: len(merged), Got: len(row), Want: PreSplitColumns}
			}
			merged = append(merged, RawRow(row))
		}
	}
	return merged, nil
}

// dropEmptyColumns removes every column that is empty across all rows of one
// table. Ragged rows are padded to the table's widest row first, so a missing
// trailing cell and an empty cell are treated the same.
func dropEmptyColumns(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil
	}

	keep := make([]bool, width)
	for _, row := range rows {
		for i, cell := range row {
			if cell != "" {
				keep[i] = true
			}
		}
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cleaned := make([]string, 0, width)
		for i := 0; i < width; i++ {
			if !keep[i] {
				continue
			}
			if i < len(row) {
				cleaned = append(cleaned, row[i])
			} else {
				cleaned = append(cleaned, "")
			}
		}
		out = append(out, cleaned)
	}
	return out
}
