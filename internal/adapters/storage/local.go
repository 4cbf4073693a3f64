// Package storage stores question attachments and returns their public url.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxFileSize caps a single attachment
const maxFileSize = 10 << 20

// LocalStorage writes files under dir and serves them from baseURL
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates dir if needed
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory files are written to
func (s *LocalStorage) Dir() string {
	return s.dir
}

// SaveFile stores content under a random name keeping the original extension
func (s *LocalStorage) SaveFile(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(content) == 0 {
		return "", fmt.Errorf("empty file %q", name)
	}
	if len(content) > maxFileSize {
		return "", fmt.Errorf("file %q exceeds %d bytes", name, maxFileSize)
	}

	stored := uuid.NewString() + strings.ToLower(filepath.Ext(name))
	if err := os.WriteFile(filepath.Join(s.dir, stored), content, 0o644); err != nil {
		return "", fmt.Errorf("write %q: %w", name, err)
	}
	return s.baseURL + "/" + stored, nil
}
