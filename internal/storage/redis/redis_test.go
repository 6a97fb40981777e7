package redis

import (
	"context"
	"os"
	"testing"

	"github.com/mmynk/canteen/internal/storage"
	"github.com/mmynk/canteen/internal/storage/storagetest"
)

func TestKey(t *testing.T) {
	if got := Key(storage.CollectionMenu); got != "canteen_menu" {
		t.Errorf("Key(menu) = %s", got)
	}
	if got := Key(storage.CollectionOrders); got != "canteen_orders" {
		t.Errorf("Key(orders) = %s", got)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	store, err := New(ctx, addr)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	// The contract expects an empty store
	for _, c := range storage.AllCollections {
		if err := store.client.Del(ctx, Key(c)).Err(); err != nil {
			t.Fatalf("Failed to reset %s: %v", c, err)
		}
	}

	storagetest.Run(t, store)
}
