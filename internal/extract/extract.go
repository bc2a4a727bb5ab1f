// Package extract defines the table-extraction collaborator boundary. The
// reconstruction pipeline consumes RawTable values and assumes nothing about
// how they were produced.
package extract

import "context"

// RawTable is one extractor-provided table: rows of free-text cells, possibly
// ragged and possibly containing columns that are empty in every row. The
// extractor misidentifies the first data row of each physical table as a
// column-label header, so Header is spurious data, not schema.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Extractor turns a stored document into its sequence of raw tables, one per
// physical page-group. No contract is assumed about partial results.
type Extractor interface {
	ExtractTables(ctx context.Context, path string) ([]RawTable, error)
}
