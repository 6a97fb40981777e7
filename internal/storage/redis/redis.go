// Package redis provides a storage.Store that keeps each collection under a
// named key, the server-side counterpart of the browser's local storage keys.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/canteen/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// KeyPrefix is prepended to collection names to form keys (canteen_menu, canteen_orders).
const KeyPrefix = "canteen_"

// Store implements storage.Store on a Redis server.
type Store struct {
	client *redis.Client
}

// New connects to the Redis server at addr and verifies it is reachable.
func New(ctx context.Context, addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Store{client: client}, nil
}

// Key returns the Redis key holding collection c.
func Key(c storage.Collection) string {
	return KeyPrefix + string(c)
}

// Load returns the stored value, or nil when the key does not exist.
func (s *Store) Load(ctx context.Context, c storage.Collection) ([]byte, error) {
	data, err := s.client.Get(ctx, Key(c)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, storage.Wrap("get", c, err)
	}
	return data, nil
}

// Save replaces the key's value. A single SET is atomic for readers.
func (s *Store) Save(ctx context.Context, c storage.Collection, data []byte) error {
	if err := s.client.Set(ctx, Key(c), data, 0).Err(); err != nil {
		return storage.Wrap("set", c, err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
