package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/canteen/internal/storage"
	"github.com/mmynk/canteen/internal/storage/storagetest"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "canteen-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	storagetest.Run(t, store)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "canteen.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Save(ctx, storage.CollectionOrders, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx, storage.CollectionOrders)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Errorf("Load = %s", got)
	}
}

func TestSQLiteStoreClosed(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	store.Close()

	_, err = store.Load(context.Background(), storage.CollectionMenu)
	if err == nil {
		t.Fatal("expected Load on closed store to fail")
	}
	storagetest.AssertStorageError(t, err)
}
