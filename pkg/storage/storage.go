// Package storage provides file storage for uploaded settlement documents.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// FileInfo describes a stored document. Path is absolute so collaborators
// that work on filesystem paths (the table extractor) can reach the file.
type FileInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// Storage is the document-storage collaborator.
type Storage interface {
	// Save stores a document and returns its metadata.
	Save(ctx context.Context, filename string, r io.Reader) (*FileInfo, error)
}

// Config holds storage configuration.
type Config struct {
	BasePath string
}

// New creates the configured Storage implementation.
func New(cfg Config) (Storage, error) {
	return NewLocalStorage(cfg.BasePath)
}
