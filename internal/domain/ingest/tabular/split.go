package tabular

import (
	"fmt"
	"regexp"
	"strings"
)

// compoundSplit matches the first whitespace run of the compound column,
// which joins the settlement date and the application id.
var compoundSplit = regexp.MustCompile(`\s+`)

// SplitRow is the staged record after the compound date+id column has been
// split in two and removed. Every field is still free text; coercion to
// typed values happens in Coerce.
type SplitRow struct {
	SettlementDate  string
	AppID           string
	Xref            string
	Broker          string
	Description     string
	SubBroker       string
	TotalLoanAmount string
	CommissionRate  string
	Upfront         string
	UpfrontInclGST  string
}

// Split turns a merged positional row into its named staged form. The
// compound column is split on the first whitespace run; a compound cell with
// no whitespace cannot yield both fields and is a ParseError.
func Split(rowIdx int, row RawRow) (SplitRow, error) {
	if len(row) != PreSplitColumns {
		return SplitRow{}, &SchemaError{Row: rowIdx, Got: len(row), Want: PreSplitColumns}
	}

	parts := compoundSplit.Split(strings.TrimSpace(row[0]), 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return SplitRow{}, &ParseError{
			Row:    rowIdx,
			Column: "settlement_date/app_id",
			Value:  row[0],
			Err:    fmt.Errorf("compound column does not contain a date and an id"),
		}
	}

	return SplitRow{
		SettlementDate:  parts[0],
		AppID:           parts[1],
		Xref:            row[1],
		Broker:          row[2],
		Description:     row[3],
		SubBroker:       row[4],
		TotalLoanAmount: row[5],
		CommissionRate:  row[6],
		Upfront:         row[7],
		UpfrontInclGST:  row[8],
	}, nil
}
