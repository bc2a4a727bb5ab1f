package tabular

import (
	"github.com/settleline/broker-settlements/internal/domain/ingest/normalizer"
	"github.com/settleline/broker-settlements/internal/domain/loan"
	"github.com/settleline/broker-settlements/internal/extract"
)

// Reconstruct runs the whole record-reconstruction pipeline over the
// extracted tables: merge, split, borrower-name extraction, type coercion
// and tier classification. It is all-or-nothing per document: the first
// ParseError or SchemaError aborts the run with no records emitted.
func Reconstruct(tables []extract.RawTable, names normalizer.BorrowerExtractor) ([]loan.Record, error) {
	rows, err := Merge(tables)
	if err != nil {
		return nil, err
	}

	records := make([]loan.Record, 0, len(rows))
	for i, row := range rows {
		split, err := Split(i, row)
		if err != nil {
			return nil, err
		}

		staged := StagedRecord{SplitRow: split}
		staged.BorrowerName, staged.Description, staged.SubBroker =
			names.Extract(split.Description, split.SubBroker)

		rec, err := Coerce(i, staged)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
