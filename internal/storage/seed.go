package storage

import (
	"context"
	"log/slog"

	"github.com/mmynk/canteen/internal/models"
)

// DefaultMenu is written by SeedMenu on a fresh store.
var DefaultMenu = []models.MenuItem{
	{ID: 1, Name: "Dosa", Price: 25},
	{ID: 2, Name: "Idli", Price: 20},
	{ID: 3, Name: "Vada", Price: 15},
}

// SeedMenu writes DefaultMenu if the menu collection has never been written.
// An existing menu, even an empty one, is left alone.
func SeedMenu(ctx context.Context, c *Collections) error {
	unlock := c.LockMenu()
	defer unlock()

	data, err := c.store.Load(ctx, CollectionMenu)
	if err != nil {
		return err
	}
	if data != nil {
		return nil
	}

	items := make([]models.MenuItem, len(DefaultMenu))
	copy(items, DefaultMenu)
	if err := c.SaveMenu(ctx, items); err != nil {
		return err
	}
	slog.Info("Seeded default menu", "items", len(items))
	return nil
}
