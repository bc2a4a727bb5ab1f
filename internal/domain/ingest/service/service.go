// Package service orchestrates document ingestion: store the upload, extract
// its tables, reconstruct loan records and persist them atomically.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/settleline/broker-settlements/internal/domain/ingest/normalizer"
	"github.com/settleline/broker-settlements/internal/domain/ingest/repository"
	"github.com/settleline/broker-settlements/internal/domain/ingest/tabular"
	"github.com/settleline/broker-settlements/internal/extract"
	"github.com/settleline/broker-settlements/pkg/metrics"
	"github.com/settleline/broker-settlements/pkg/storage"
)

// Result summarizes one completed ingest run.
type Result struct {
	DocumentID uuid.UUID `json:"document_id"`
	FileName   string    `json:"file_name"`
	Records    int       `json:"records"`
}

// IngestService runs the reconstruction pipeline over stored documents. Each
// run is synchronous and all-or-nothing: a failing record aborts the whole
// document with nothing persisted.
type IngestService struct {
	storage   storage.Storage
	extractor extract.Extractor
	names     normalizer.BorrowerExtractor
	repo      repository.LoanRepository
	logger    *slog.Logger
}

// NewIngestService creates an ingest service.
func NewIngestService(
	store storage.Storage,
	extractor extract.Extractor,
	names normalizer.BorrowerExtractor,
	repo repository.LoanRepository,
	logger *slog.Logger,
) *IngestService {
	return &IngestService{
		storage:   store,
		extractor: extractor,
		names:     names,
		repo:      repo,
		logger:    logger,
	}
}

// IngestUpload stores an uploaded document and ingests it.
func (s *IngestService) IngestUpload(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	info, err := s.storage.Save(ctx, filename, r)
	if err != nil {
		return nil, fmt.Errorf("store upload %s: %w", filename, err)
	}
	return s.ingest(ctx, info.ID, info.Name, info.Path)
}

// IngestFile ingests a document already on disk (the inbox sweeper path).
func (s *IngestService) IngestFile(ctx context.Context, path string) (*Result, error) {
	return s.ingest(ctx, uuid.New(), path, path)
}

func (s *IngestService) ingest(ctx context.Context, docID uuid.UUID, name, path string) (*Result, error) {
	tables, err := s.extractor.ExtractTables(ctx, path)
	if err != nil {
		metrics.DocumentsIngested.WithLabelValues("extract_failed").Inc()
		return nil, fmt.Errorf("extract tables from %s: %w", name, err)
	}

	records, err := tabular.Reconstruct(tables, s.names)
	if err != nil {
		metrics.DocumentsIngested.WithLabelValues("reconstruct_failed").Inc()
		s.logger.Error("record reconstruction failed",
			slog.String("document", name),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := s.repo.BulkInsert(ctx, records); err != nil {
		metrics.DocumentsIngested.WithLabelValues("insert_failed").Inc()
		return nil, fmt.Errorf("persist %d records from %s: %w", len(records), name, err)
	}

	metrics.DocumentsIngested.WithLabelValues("ok").Inc()
	metrics.RecordsReconstructed.Add(float64(len(records)))
	s.logger.Info("document ingested",
		slog.String("document_id", docID.String()),
		slog.String("document", name),
		slog.Int("records", len(records)),
	)

	return &Result{DocumentID: docID, FileName: name, Records: len(records)}, nil
}
