// Package handler exposes the document-upload endpoint. Transport stays
// thin: everything interesting happens in the ingest service.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "github.com/settleline/broker-settlements/internal/errors"

	"github.com/settleline/broker-settlements/internal/domain/ingest/repository"
	"github.com/settleline/broker-settlements/internal/domain/ingest/service"
	"github.com/settleline/broker-settlements/internal/domain/ingest/tabular"
)

// maxUploadBytes bounds the multipart form held in memory per upload.
const maxUploadBytes = 32 << 20

// IngestHandler handles settlement-document uploads.
type IngestHandler struct {
	ingestSvc *service.IngestService
	logger    *slog.Logger
}

// NewIngestHandler creates an ingest handler.
func NewIngestHandler(ingestSvc *service.IngestService, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{ingestSvc: ingestSvc, logger: logger}
}

// UploadDocument accepts a multipart "file" field, runs the ingest pipeline
// and reports how many records were reconstructed.
func (h *IngestHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Render(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "MISSING_PARAMETER", "Please upload a valid file first", err.Error()))
		return
	}
	defer file.Close()

	result, err := h.ingestSvc.IngestUpload(r.Context(), header.Filename, file)
	if err != nil {
		h.renderIngestError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"status":  "Pass",
		"details": result,
	})
}

// renderIngestError maps pipeline failures to their HTTP shapes: malformed
// documents are unprocessable, xref collisions are conflicts, everything
// else is a server error.
func (h *IngestHandler) renderIngestError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		parseErr  *tabular.ParseError
		schemaErr *tabular.SchemaError
		dupErr    *repository.DuplicateKeyError
	)
	switch {
	case errors.As(err, &parseErr), errors.As(err, &schemaErr):
		render.Render(w, r, apierrors.UnprocessableDocument(err))
	case errors.As(err, &dupErr):
		render.Render(w, r, apierrors.DuplicateRecord(err))
	default:
		h.logger.Error("document ingest failed", slog.Any("error", err))
		render.Render(w, r, apierrors.ErrInternalServer)
	}
}
