package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/canteen/internal/storage"
	"github.com/mmynk/canteen/internal/storage/memory"
)

var errDiskFull = errors.New("disk full")

// flakyStore wraps a memory store and fails saves while failSaves is set.
type flakyStore struct {
	*memory.Store
	failSaves bool
}

func (f *flakyStore) Save(ctx context.Context, c storage.Collection, data []byte) error {
	if f.failSaves {
		return storage.Wrap("save", c, errDiskFull)
	}
	return f.Store.Save(ctx, c, data)
}

type fixture struct {
	store  *flakyStore
	cols   *storage.Collections
	menu   *MenuService
	orders *OrderService
	now    time.Time
}

// newFixture creates services over an empty in-memory store with a fixed clock.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: &flakyStore{Store: memory.New()},
		now:   time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	f.cols = storage.NewCollections(f.store)
	f.menu = NewMenuService(f.cols, nil)
	f.orders = NewOrderService(f.cols, WithClock(func() time.Time { return f.now }))
	return f
}

func (f *fixture) addItem(t *testing.T, name string, price float64) int {
	t.Helper()
	item, err := f.menu.Add(context.Background(), name, price)
	require.NoError(t, err)
	return item.ID
}
