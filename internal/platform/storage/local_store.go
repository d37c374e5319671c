package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
)

// LocalStore keeps document contents on the local filesystem. It is the
// development fallback when no bucket is configured.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		baseDir = "documents"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{baseDir: baseDir}, nil
}

var _ DocumentStore = (*LocalStore)(nil)

// path maps a storage key onto the base directory, rejecting traversal.
func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", errors.New("invalid storage key: " + key)
	}
	return filepath.Join(s.baseDir, clean), nil
}

func (s *LocalStore) Put(ctx context.Context, key string, contentType string, body io.Reader, size int64) error {
	p, err := s.path(key)
	if err != nil {
		return apperrors.NewAppError(400, "invalid document key", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return apperrors.NewAppError(500, "failed to prepare document directory", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return apperrors.NewAppError(500, "failed to create document file "+key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return apperrors.NewAppError(500, "failed to write document file "+key, err)
	}
	return nil
}

func (s *LocalStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, apperrors.NewAppError(400, "invalid document key", err)
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to open document file "+key, err)
	}
	return f, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return apperrors.NewAppError(400, "invalid document key", err)
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to delete document file "+key, err)
	}
	return nil
}
