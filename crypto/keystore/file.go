package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// BackendFile is the default backend: identifiers are file paths.
const BackendFile = "file"

func init() {
	RegisterKeystore(BackendFile, NewFileKeystore)
}

// FileKeystore reads and writes key files on disk.
type FileKeystore struct {
	dir string
}

// NewFileKeystore creates a file keystore rooted at cfg.Dir.
func NewFileKeystore(cfg Config) (Keystore, error) {
	return &FileKeystore{dir: cfg.Dir}, nil
}

func (f *FileKeystore) path(id string) string {
	if f.dir == "" || filepath.IsAbs(id) {
		return id
	}
	return filepath.Join(f.dir, id)
}

// Get reads the whole file at id.
func (f *FileKeystore) Get(id string) ([]byte, error) {
	data, err := os.ReadFile(f.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, f.path(id))
		}
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return data, nil
}

// Set writes data to id with owner-only permissions, creating parent
// directories as needed.
func (f *FileKeystore) Set(id string, data []byte) error {
	p := f.path(id)
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// ListKeys returns the regular files in the keystore directory.
func (f *FileKeystore) ListKeys() ([]string, error) {
	dir := f.dir
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list key directory: %w", err)
	}

	var keys []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			keys = append(keys, e.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}
