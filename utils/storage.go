package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"warrantyhub/config"

	"github.com/google/uuid"
)

// StoredFile is a reference to an uploaded document: a URL to show and an id to delete by.
type StoredFile struct {
	URL    string `json:"url"`
	FileID string `json:"file_id"`
}

// FileStorage uploads customer documents and removes them by id.
type FileStorage interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (StoredFile, error)
	Delete(ctx context.Context, fileID string) error
}

// Storage is the process-wide file store, set up in main.
var Storage FileStorage

// NewFileStorage builds the configured storage backend.
func NewFileStorage(ctx context.Context, cfg *config.Config) (FileStorage, error) {
	switch cfg.StorageDriver {
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "local", "":
		return NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL+"/uploads"), nil
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// objectKey builds "<folder>/<uuid><ext>" with a lowercased extension.
func objectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.Trim(folder, "/") + "/" + uuid.NewString() + ext
}

// DeleteFilesBestEffort removes already uploaded files after a failed write.
func DeleteFilesBestEffort(ctx context.Context, files ...StoredFile) {
	if Storage == nil {
		return
	}
	for _, f := range files {
		if f.FileID == "" {
			continue
		}
		if err := Storage.Delete(ctx, f.FileID); err != nil {
			logFileCleanupFailure(f.FileID, err)
		}
	}
}
