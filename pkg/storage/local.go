package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorage implements Storage on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a local filesystem storage rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	return &LocalStorage{basePath: abs}, nil
}

// Save stores a document under a UUID-prefixed, sanitized name and returns
// its metadata.
func (s *LocalStorage) Save(ctx context.Context, filename string, r io.Reader) (*FileInfo, error) {
	fileID := uuid.New()
	storedName := fmt.Sprintf("%s_%s", fileID.String()[:8], sanitizeFilename(filename))
	path := filepath.Join(s.basePath, storedName)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path) // Cleanup on error
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &FileInfo{
		ID:        fileID,
		Name:      filename,
		Size:      size,
		Path:      path,
		CreatedAt: time.Now(),
	}, nil
}

// sanitizeFilename strips path separators and other characters that have no
// business in a stored filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", "..", "_",
		" ", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_",
		">", "_", "|", "_",
	)
	name = replacer.Replace(name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
