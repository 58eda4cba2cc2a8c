package utils

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStorage writes uploads under a directory that the app serves statically.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Upload(_ context.Context, file *multipart.FileHeader, folder string) (StoredFile, error) {
	key := objectKey(folder, file.Filename)
	if _, err := SaveUploadedFile(file, filepath.Join(s.dir, filepath.FromSlash(key))); err != nil {
		return StoredFile{}, err
	}
	return StoredFile{URL: s.baseURL + "/" + key, FileID: key}, nil
}

func (s *LocalStorage) Delete(_ context.Context, fileID string) error {
	path, err := s.resolve(fileID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve maps a file id back to a path, refusing ids that escape the upload dir.
func (s *LocalStorage) resolve(fileID string) (string, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return "", err
	}
	path, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(fileID)))
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid file id %q", fileID)
	}
	return path, nil
}

// SaveUploadedFile copies a multipart upload to filePath, creating parent directories.
func SaveUploadedFile(file *multipart.FileHeader, filePath string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", err
	}

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

func logFileCleanupFailure(fileID string, err error) {
	logrus.WithError(err).WithField("file_id", fileID).Warn("Failed to delete orphaned upload")
}
