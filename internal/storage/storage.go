package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage is the object-store collaborator the pipeline downloads upload
// bytes from. The upload-acceptance flow is expected to have written the file
// under a path scoped to the owning user before the pipeline is triggered.
type Storage interface {
	Download(ctx context.Context, path string) ([]byte, error)
}

// FSStorage serves a local directory as the upload bucket.
type FSStorage struct {
	root string
}

func NewFSStorage(root string) *FSStorage {
	return &FSStorage{root: root}
}

func (s *FSStorage) Download(_ context.Context, path string) ([]byte, error) {
	clean := filepath.Clean(path)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid storage path: %s", path)
	}
	data, err := os.ReadFile(filepath.Join(s.root, clean))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	return data, nil
}
