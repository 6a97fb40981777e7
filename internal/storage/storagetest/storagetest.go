// Package storagetest holds the behaviour every storage.Store must share.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mmynk/canteen/internal/models"
	"github.com/mmynk/canteen/internal/storage"
)

// Run exercises store against the storage.Store contract.
// The store must start empty.
func Run(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load of unwritten collection returns nil", func(t *testing.T) {
		for _, c := range storage.AllCollections {
			data, err := store.Load(ctx, c)
			if err != nil {
				t.Fatalf("Load(%s) failed: %v", c, err)
			}
			if data != nil {
				t.Errorf("Load(%s) = %q, want nil", c, data)
			}
		}
	})

	t.Run("Save then Load round trips", func(t *testing.T) {
		want := `[{"id":1,"name":"Dosa","price":25}]`
		if err := store.Save(ctx, storage.CollectionMenu, []byte(want)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := store.Load(ctx, storage.CollectionMenu)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(got) != want {
			t.Errorf("Load = %s, want %s", got, want)
		}
	})

	t.Run("Save replaces whole collection", func(t *testing.T) {
		if err := store.Save(ctx, storage.CollectionMenu, []byte(`[{"id":1,"name":"A","price":1},{"id":2,"name":"B","price":2}]`)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := store.Save(ctx, storage.CollectionMenu, []byte(`[]`)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := store.Load(ctx, storage.CollectionMenu)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(got) != `[]` {
			t.Errorf("Load = %s, want []", got)
		}
	})

	t.Run("Collections are independent", func(t *testing.T) {
		if err := store.Save(ctx, storage.CollectionOrders, []byte(`[{"id":7}]`)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		menu, err := store.Load(ctx, storage.CollectionMenu)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(menu) != `[]` {
			t.Errorf("menu changed by orders save: %s", menu)
		}
	})

	t.Run("Typed collections", func(t *testing.T) {
		cols := storage.NewCollections(store)
		items := []models.MenuItem{{ID: 3, Name: "Vada", Price: 15}}
		if err := cols.SaveMenu(ctx, items); err != nil {
			t.Fatalf("SaveMenu failed: %v", err)
		}
		got, err := cols.Menu(ctx)
		if err != nil {
			t.Fatalf("Menu failed: %v", err)
		}
		if len(got) != 1 || got[0] != items[0] {
			t.Errorf("Menu = %+v, want %+v", got, items)
		}
	})

	t.Run("Concurrent saves leave a readable collection", func(t *testing.T) {
		cols := storage.NewCollections(store)
		var wg sync.WaitGroup
		for i := 1; i <= 8; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				items := make([]models.MenuItem, n)
				for j := range items {
					items[j] = models.MenuItem{ID: j + 1, Name: "Item", Price: float64(j)}
				}
				if err := cols.SaveMenu(ctx, items); err != nil {
					t.Errorf("SaveMenu failed: %v", err)
				}
			}(i)
		}
		wg.Wait()

		got, err := cols.Menu(ctx)
		if err != nil {
			t.Fatalf("Menu after concurrent saves failed: %v", err)
		}
		if len(got) < 1 || len(got) > 8 {
			t.Errorf("Menu has %d items, want 1..8", len(got))
		}
	})
}

// AssertStorageError fails the test unless err wraps storage.ErrStorage.
func AssertStorageError(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, storage.ErrStorage) {
		t.Errorf("error %v does not wrap storage.ErrStorage", err)
	}
}
