package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/repository"
)

// FileRepository stores the document as a single JSON file on disk.
type FileRepository struct {
	path   string
	logger *zap.Logger
}

// NewFileRepository builds a file backed repository. The parent directory is
// created on demand.
func NewFileRepository(path string, logger *zap.Logger) (*FileRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("data file path must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileRepository{path: path, logger: logger}, nil
}

// Load reads and decodes the document. A missing or malformed file yields
// repository.ErrNotFound so the caller can fall back to the seed document.
func (r *FileRepository) Load(_ context.Context) (models.Document, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, repository.ErrNotFound
		}
		return models.Document{}, fmt.Errorf("read data file %s: %w", r.path, err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.logger.Warn("stored document is malformed, falling back to seed", zap.String("path", r.path), zap.Error(err))
		return models.Document{}, repository.ErrNotFound
	}

	return doc, nil
}

// Save overwrites the slot wholesale. The write goes through a temp file and
// a rename so a crash never leaves a half-written document behind.
func (r *FileRepository) Save(_ context.Context, doc models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write data file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace data file %s: %w", r.path, err)
	}

	r.logger.Debug("document saved", zap.String("path", r.path), zap.Int("bytes", len(raw)))
	return nil
}
