package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store keeps rendered payslip documents.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Read(ctx context.Context, path string) ([]byte, error)
}

type fileStore struct {
	dir string
}

func NewFileStore(dir string) Store {
	return &fileStore{dir: dir}
}

// Save writes through a temp file so readers never see a partial document.
func (s *fileStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create payslip dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *fileStore) Read(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}
