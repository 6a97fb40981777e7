package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/canteen/internal/models"
	"github.com/mmynk/canteen/internal/storage"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestMenuService_AddAssignsIncreasingIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var prev int
	for i, name := range []string{"Dosa", "Idli", "Vada", "Poori", "Upma"} {
		item, err := f.menu.Add(ctx, name, float64(10+i))
		require.NoError(t, err)
		assert.Equal(t, i+1, item.ID)
		assert.Greater(t, item.ID, prev)
		prev = item.ID
	}

	items, err := f.menu.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestMenuService_Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dosa, err := f.menu.Add(ctx, "Dosa", 25)
	require.NoError(t, err)
	assert.Equal(t, models.MenuItem{ID: 1, Name: "Dosa", Price: 25}, dosa)

	idli, err := f.menu.Add(ctx, "Idli", 20)
	require.NoError(t, err)
	assert.Equal(t, 2, idli.ID)

	require.NoError(t, f.menu.Delete(ctx, 1))
	items, err := f.menu.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.MenuItem{{ID: 2, Name: "Idli", Price: 20}}, items)

	// Ids come from the historical max, never from the count
	vada, err := f.menu.Add(ctx, "Vada", 15)
	require.NoError(t, err)
	assert.Equal(t, 3, vada.ID)
}

func TestMenuService_DeleteHighestThenAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addItem(t, "Dosa", 25)
	id := f.addItem(t, "Idli", 20)
	require.NoError(t, f.menu.Delete(ctx, id))

	item, err := f.menu.Add(ctx, "Vada", 15)
	require.NoError(t, err)
	assert.Equal(t, 3, item.ID)

	// The sequence survives a restart over the same store
	require.NoError(t, f.menu.Delete(ctx, item.ID))
	restarted := NewMenuService(storage.NewCollections(f.store), nil)
	next, err := restarted.Add(ctx, "Pongal", 30)
	require.NoError(t, err)
	assert.Equal(t, 4, next.ID)
}

func TestMenuService_DeleteHighestWithoutRecordedSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Menu written directly, as by a store that predates the sequence
	require.NoError(t, f.cols.SaveMenu(ctx, []models.MenuItem{
		{ID: 1, Name: "Dosa", Price: 25},
		{ID: 2, Name: "Idli", Price: 20},
	}))

	require.NoError(t, f.menu.Delete(ctx, 2))
	item, err := f.menu.Add(ctx, "Vada", 15)
	require.NoError(t, err)
	assert.Equal(t, 3, item.ID)
}

func TestMenuService_DeletedIDNotReusedAcrossOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addItem(t, "Dosa", 25)
	idli := f.addItem(t, "Idli", 20)
	order, err := f.orders.PlaceOrder(ctx, []models.CartLine{{ID: idli, Quantity: 1}}, "Asha")
	require.NoError(t, err)

	require.NoError(t, f.menu.Delete(ctx, idli))
	vada, err := f.menu.Add(ctx, "Vada", 15)
	require.NoError(t, err)
	assert.NotEqual(t, order.Items[0].ID, vada.ID)

	// The historical line no longer resolves to a live item
	_, err = f.menu.Get(ctx, order.Items[0].ID)
	var nerr *NotFoundError
	assert.ErrorAs(t, err, &nerr)
}

func TestMenuService_AddValidation(t *testing.T) {
	tests := []struct {
		name  string
		item  string
		price float64
	}{
		{name: "empty name", item: "", price: 10},
		{name: "blank name", item: "   ", price: 10},
		{name: "negative price", item: "Dosa", price: -1},
		{name: "NaN price", item: "Dosa", price: math.NaN()},
		{name: "infinite price", item: "Dosa", price: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.menu.Add(context.Background(), tt.item, tt.price)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)

			items, err := f.menu.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestMenuService_AddTrimsNameAndAllowsFree(t *testing.T) {
	f := newFixture(t)
	item, err := f.menu.Add(context.Background(), "  Water  ", 0)
	require.NoError(t, err)
	assert.Equal(t, "Water", item.Name)
	assert.Zero(t, item.Price)
}

func TestMenuService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("name only", func(t *testing.T) {
		f := newFixture(t)
		id := f.addItem(t, "Dosa", 25)

		item, err := f.menu.Update(ctx, id, MenuUpdate{Name: strPtr(" Masala Dosa ")})
		require.NoError(t, err)
		assert.Equal(t, models.MenuItem{ID: id, Name: "Masala Dosa", Price: 25}, item)
	})

	t.Run("price only", func(t *testing.T) {
		f := newFixture(t)
		id := f.addItem(t, "Dosa", 25)

		item, err := f.menu.Update(ctx, id, MenuUpdate{Price: floatPtr(30)})
		require.NoError(t, err)
		assert.Equal(t, models.MenuItem{ID: id, Name: "Dosa", Price: 30}, item)

		stored, err := f.menu.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, item, stored)
	})

	t.Run("no fields leaves item unchanged", func(t *testing.T) {
		f := newFixture(t)
		id := f.addItem(t, "Dosa", 25)

		item, err := f.menu.Update(ctx, id, MenuUpdate{})
		require.NoError(t, err)
		assert.Equal(t, models.MenuItem{ID: id, Name: "Dosa", Price: 25}, item)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.menu.Update(ctx, 42, MenuUpdate{Price: floatPtr(1)})

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, 42, nf.ID)
	})

	t.Run("invalid values", func(t *testing.T) {
		f := newFixture(t)
		id := f.addItem(t, "Dosa", 25)

		_, err := f.menu.Update(ctx, id, MenuUpdate{Name: strPtr("  ")})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)

		_, err = f.menu.Update(ctx, id, MenuUpdate{Price: floatPtr(-5)})
		require.ErrorAs(t, err, &verr)

		stored, err := f.menu.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.MenuItem{ID: id, Name: "Dosa", Price: 25}, stored)
	})
}

func TestMenuService_DeleteUnknown(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "Dosa", 25)

	err := f.menu.Delete(context.Background(), 7)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	items, _ := f.menu.List(context.Background())
	assert.Len(t, items, 1)
}

func TestMenuService_StorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "Dosa", 25)

	f.store.failSaves = true
	_, err := f.menu.Add(ctx, "Idli", 20)
	require.ErrorIs(t, err, storage.ErrStorage)
	require.ErrorIs(t, err, errDiskFull)

	f.store.failSaves = false
	items, err := f.menu.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.MenuItem{{ID: 1, Name: "Dosa", Price: 25}}, items)
}
