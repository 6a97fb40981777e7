// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Collection names one of the persisted collections.
type Collection string

const (
	CollectionMenu   Collection = "menu"
	CollectionOrders Collection = "orders"

	// CollectionMenuSeq holds the highest menu id ever assigned.
	CollectionMenuSeq Collection = "menu_seq"
)

// AllCollections lists every collection a backend must be able to hold.
var AllCollections = []Collection{CollectionMenu, CollectionOrders, CollectionMenuSeq}

// ErrStorage is wrapped by every error a backend returns.
var ErrStorage = errors.New("storage failure")

// Store defines the interface for collection persistence.
// This abstraction allows swapping storage backends (files, SQLite,
// PostgreSQL, Redis, memory) without changing the service layer.
type Store interface {
	// Load returns the encoded collection.
	// It returns nil and no error if the collection has never been written.
	Load(ctx context.Context, c Collection) ([]byte, error)

	// Save replaces the whole collection. Readers either see the previous
	// contents or the new ones, never a partial write.
	Save(ctx context.Context, c Collection, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// Wrap marks err as a storage failure while keeping it inspectable.
func Wrap(op string, c Collection, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s %s: %w", ErrStorage, op, c, err)
}
