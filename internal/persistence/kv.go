// Package persistence synchronizes the mutable storefront state with a
// local key-value snapshot. Faults at this boundary are logged and
// masked; store logic never sees them.
package persistence

import (
	"fmt"
	"os"
	"path/filepath"
)

// KV is a minimal local key-value store. Keys are independent: writing
// one never touches another.
type KV interface {
	// Get returns the value for key. The second return value reports
	// whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Set writes the value for key, creating it if absent.
	Set(key string, value []byte) error

	// Delete removes the key if present.
	Delete(key string) error
}

// fileKV stores each key as a file in a directory.
type fileKV struct {
	dir string
}

// NewFileKV creates a KV backed by one file per key under dir.
// The directory is created on first write.
func NewFileKV(dir string) KV {
	return &fileKV{dir: dir}
}

func (s *fileKV) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return data, true, nil
}

func (s *fileKV) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state dir %q: %w", s.dir, err)
	}
	if err := os.WriteFile(s.path(key), value, 0o644); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *fileKV) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *fileKV) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
