package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"icando-go/app/models"
)

// FileStore saves the tree as a JSON document on disk.
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the tree from disk. A missing file is not an error.
func (s *FileStore) Load(ctx context.Context) (*models.Mission, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read mission file: %w", err)
	}
	root, err := models.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Path, err)
	}
	return root, nil
}

// Save writes the tree through a temporary file so readers never see a partial document.
func (s *FileStore) Save(ctx context.Context, root *models.Mission) error {
	data, err := models.EncodeJSON(root)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create mission dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".icando-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write mission file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close mission file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace mission file: %w", err)
	}
	return nil
}

func (s *FileStore) Close(ctx context.Context) error {
	return nil
}
