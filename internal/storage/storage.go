// Package storage keeps uploaded bill documents and receipts. Files are
// addressed by a generated pathname; bills reference them by URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type UploadedFile struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (*UploadedFile, error)
}

// DiskStore writes files under a local directory and serves them from
// baseURL. Swapping in a bucket-backed Store is a constructor change.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *DiskStore) Save(_ context.Context, filename, contentType string, r io.Reader) (*UploadedFile, error) {
	pathname := uuid.New().String() + sanitizeExt(filename)

	f, err := os.Create(filepath.Join(s.dir, pathname))
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &UploadedFile{
		URL:         s.baseURL + "/" + pathname,
		Pathname:    pathname,
		ContentType: contentType,
	}, nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".pdf":
		return ext
	}
	return ""
}
