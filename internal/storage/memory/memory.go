// Package memory provides an in-process implementation of the storage.Store interface.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/canteen/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps collections in memory. Contents are lost when the process exits.
type Store struct {
	mu   sync.RWMutex
	data map[storage.Collection][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[storage.Collection][]byte)}
}

// Load returns a copy of the stored bytes, or nil if c was never saved.
func (s *Store) Load(_ context.Context, c storage.Collection) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[c]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save stores a copy of data.
func (s *Store) Save(_ context.Context, c storage.Collection, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.data[c] = buf
	s.mu.Unlock()
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
