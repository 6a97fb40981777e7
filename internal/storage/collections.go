package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mmynk/canteen/internal/models"
)

// Collections gives typed access to the menu and orders collections of a Store.
// Each collection has its own mutex; callers hold it for the duration of a
// read-modify-write cycle so concurrent writers cannot lose updates.
type Collections struct {
	store Store

	menuMu   sync.Mutex
	ordersMu sync.Mutex
}

// NewCollections wraps store.
func NewCollections(store Store) *Collections {
	return &Collections{store: store}
}

// Store returns the underlying backend.
func (c *Collections) Store() Store {
	return c.store
}

// LockMenu acquires the menu collection and returns its release func.
func (c *Collections) LockMenu() (unlock func()) {
	c.menuMu.Lock()
	return c.menuMu.Unlock
}

// LockOrders acquires the orders collection and returns its release func.
func (c *Collections) LockOrders() (unlock func()) {
	c.ordersMu.Lock()
	return c.ordersMu.Unlock
}

// Menu loads all menu items. An unwritten collection yields an empty slice.
func (c *Collections) Menu(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if err := c.load(ctx, CollectionMenu, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveMenu replaces the menu collection.
func (c *Collections) SaveMenu(ctx context.Context, items []models.MenuItem) error {
	if items == nil {
		items = []models.MenuItem{}
	}
	return c.save(ctx, CollectionMenu, items)
}

// menuSeq is the stored form of CollectionMenuSeq.
type menuSeq struct {
	Last int `json:"last"`
}

// MenuSeq returns the highest menu id ever assigned, or 0 if none was recorded.
// Callers hold the menu lock.
func (c *Collections) MenuSeq(ctx context.Context) (int, error) {
	var seq menuSeq
	if err := c.load(ctx, CollectionMenuSeq, &seq); err != nil {
		return 0, err
	}
	return seq.Last, nil
}

// SaveMenuSeq records last as the highest menu id ever assigned.
func (c *Collections) SaveMenuSeq(ctx context.Context, last int) error {
	return c.save(ctx, CollectionMenuSeq, menuSeq{Last: last})
}

// Orders loads all orders. An unwritten collection yields an empty slice.
func (c *Collections) Orders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := c.load(ctx, CollectionOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SaveOrders replaces the orders collection.
func (c *Collections) SaveOrders(ctx context.Context, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	return c.save(ctx, CollectionOrders, orders)
}

func (c *Collections) load(ctx context.Context, name Collection, v any) error {
	data, err := c.store.Load(ctx, name)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return Wrap("decode", name, err)
	}
	return nil
}

func (c *Collections) save(ctx context.Context, name Collection, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Wrap("encode", name, fmt.Errorf("marshal: %w", err))
	}
	return c.store.Save(ctx, name, data)
}
