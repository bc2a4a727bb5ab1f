package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settleline/broker-settlements/internal/domain/ingest/normalizer"
	"github.com/settleline/broker-settlements/internal/domain/ingest/repository"
	"github.com/settleline/broker-settlements/internal/domain/loan"
	"github.com/settleline/broker-settlements/internal/extract"
	"github.com/settleline/broker-settlements/pkg/storage"
)

type fakeStorage struct {
	saved []string
}

func (f *fakeStorage) Save(ctx context.Context, filename string, r io.Reader) (*storage.FileInfo, error) {
	f.saved = append(f.saved, filename)
	return &storage.FileInfo{Name: filename, Path: "/tmp/" + filename}, nil
}

type fakeExtractor struct {
	tables []extract.RawTable
	err    error
	paths  []string
}

func (f *fakeExtractor) ExtractTables(ctx context.Context, path string) ([]extract.RawTable, error) {
	f.paths = append(f.paths, path)
	return f.tables, f.err
}

type fakeLoanRepo struct {
	inserted []loan.Record
	err      error
}

func (f *fakeLoanRepo) BulkInsert(ctx context.Context, records []loan.Record) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, records...)
	return nil
}

func statementRow(compound, xref string) []string {
	return []string{
		compound, xref, "Acme Broking", "Refinance", "JOHN SMITH North",
		"250,000.00", "0.0066", "1650.00", "1815.00",
	}
}

func newTestService(ex *fakeExtractor, repo repository.LoanRepository) (*IngestService, *fakeStorage) {
	store := &fakeStorage{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewIngestService(store, ex, normalizer.NewUppercaseRunExtractor(), repo, logger), store
}

func TestIngestUpload(t *testing.T) {
	// The extractor misreads the first data row of each table as the header;
	// the merger re-inserts it, so both rows below come back as records.
	ex := &fakeExtractor{tables: []extract.RawTable{{
		Header: statementRow("15/03/2024 900100", "1001"),
		Rows:   [][]string{statementRow("16/03/2024 900101", "1002")},
	}}}
	repo := &fakeLoanRepo{}
	svc, store := newTestService(ex, repo)

	res, err := svc.IngestUpload(context.Background(), "march.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "march.pdf", res.FileName)
	assert.Equal(t, 2, res.Records)
	assert.Equal(t, []string{"march.pdf"}, store.saved)
	assert.Equal(t, []string{"/tmp/march.pdf"}, ex.paths)

	require.Len(t, repo.inserted, 2)
	assert.Equal(t, int64(1001), repo.inserted[0].Xref)
	assert.Equal(t, "JOHN SMITH", repo.inserted[0].BorrowerName)
	assert.Equal(t, loan.Tier1, repo.inserted[0].Tier)
}

func TestIngest_ExtractFailure(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("not a pdf")}
	repo := &fakeLoanRepo{}
	svc, _ := newTestService(ex, repo)

	_, err := svc.IngestFile(context.Background(), "/tmp/broken.pdf")
	require.Error(t, err)
	assert.Empty(t, repo.inserted)
}

func TestIngest_ReconstructFailureAbortsDocument(t *testing.T) {
	// Second row has a malformed date; nothing from the document may persist.
	ex := &fakeExtractor{tables: []extract.RawTable{{
		Header: statementRow("15/03/2024 900100", "1001"),
		Rows:   [][]string{statementRow("2024-03-16 900101", "1002")},
	}}}
	repo := &fakeLoanRepo{}
	svc, _ := newTestService(ex, repo)

	_, err := svc.IngestFile(context.Background(), "/tmp/march.pdf")
	require.Error(t, err)
	assert.Empty(t, repo.inserted)
}

func TestIngest_InsertFailure(t *testing.T) {
	ex := &fakeExtractor{tables: []extract.RawTable{{
		Header: statementRow("15/03/2024 900100", "1001"),
	}}}
	repo := &fakeLoanRepo{err: &repository.DuplicateKeyError{Xref: 1001}}
	svc, _ := newTestService(ex, repo)

	_, err := svc.IngestFile(context.Background(), "/tmp/march.pdf")

	var dup *repository.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(1001), dup.Xref)
}
