// Package file provides a storage.Store that keeps each collection in a JSON
// file inside a data directory (menu.json, orders.json).
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mmynk/canteen/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on the local filesystem.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the file backing collection c.
func (s *Store) Path(c storage.Collection) string {
	return filepath.Join(s.dir, string(c)+".json")
}

// Load reads the collection file. A missing file means the collection was never written.
func (s *Store) Load(_ context.Context, c storage.Collection) ([]byte, error) {
	data, err := os.ReadFile(s.Path(c))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, storage.Wrap("read", c, err)
	}
	return data, nil
}

// Save writes data to a temporary file in the same directory and renames it
// over the collection file, so readers never observe a truncated file.
func (s *Store) Save(_ context.Context, c storage.Collection, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+string(c)+"-*.tmp")
	if err != nil {
		return storage.Wrap("create temp", c, err)
	}
	tmpName := tmp.Name()

	// Remove the temp file on any failure path; after a successful rename
	// this is a no-op.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return storage.Wrap("write", c, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return storage.Wrap("sync", c, err)
	}
	if err := tmp.Close(); err != nil {
		return storage.Wrap("close", c, err)
	}
	if err := os.Rename(tmpName, s.Path(c)); err != nil {
		return storage.Wrap("commit", c, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *Store) Close() error {
	return nil
}
