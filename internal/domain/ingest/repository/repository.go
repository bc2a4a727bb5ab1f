// Package repository persists reconstructed loan records.
package repository

import (
	"context"
	"fmt"

	"github.com/settleline/broker-settlements/internal/domain/loan"
)

// DuplicateKeyError reports an xref collision during bulk insertion. The
// insert is atomic: on collision nothing is persisted.
type DuplicateKeyError struct {
	Xref int64
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate xref %d", e.Xref)
}

// LoanRepository is the persistence collaborator for the ingest pipeline.
type LoanRepository interface {
	// BulkInsert stores every record or none: an xref uniqueness violation
	// rolls the whole batch back and surfaces as a DuplicateKeyError.
	BulkInsert(ctx context.Context, records []loan.Record) error
}
