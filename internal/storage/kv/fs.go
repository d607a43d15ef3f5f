package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemStore keeps each key as a single JSON file under a root
// directory. Writes go through a temp file and rename so a crash mid-write
// leaves the previous snapshot intact.
type FilesystemStore struct {
	root string
}

// NewFilesystem creates the root directory if needed and returns a
// filesystem-backed store.
func NewFilesystem(root string) (*FilesystemStore, error) {
	if root == "" {
		root = "./data"
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", root, err)
	}

	return &FilesystemStore{root: root}, nil
}

// Load reads the blob stored for key, or (nil, nil) when the file does not exist.
func (s *FilesystemStore) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return data, nil
}

// Save replaces the blob stored for key.
func (s *FilesystemStore) Save(_ context.Context, key string, data []byte) error {
	target := s.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the filesystem driver.
func (s *FilesystemStore) Close(context.Context) error {
	return nil
}

func (s *FilesystemStore) path(key string) string {
	return filepath.Join(s.root, key+".json")
}
