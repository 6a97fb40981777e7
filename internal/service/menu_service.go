package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/mmynk/canteen/internal/metrics"
	"github.com/mmynk/canteen/internal/models"
	"github.com/mmynk/canteen/internal/storage"
)

// MenuService manages the menu catalog.
type MenuService struct {
	cols    *storage.Collections
	metrics *metrics.Metrics
}

// NewMenuService creates a new MenuService over the given collections.
// m may be nil.
func NewMenuService(cols *storage.Collections, m *metrics.Metrics) *MenuService {
	return &MenuService{cols: cols, metrics: m}
}

// MenuUpdate carries the fields of a partial menu item update.
// Nil fields are left unchanged.
type MenuUpdate struct {
	Name  *string
	Price *float64
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationErrorf("name must not be empty")
	}
	return name, nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return validationErrorf("price must be a finite number")
	}
	if price < 0 {
		return validationErrorf("price must be >= 0")
	}
	return nil
}

// maxMenuID returns the highest id in items, 0 when empty.
func maxMenuID(items []models.MenuItem) int {
	maxID := 0
	for _, item := range items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID
}

// highWater returns the highest menu id ever assigned: the recorded
// sequence or, for stores written before it existed, the highest live id.
func (s *MenuService) highWater(ctx context.Context, items []models.MenuItem) (int, error) {
	last, err := s.cols.MenuSeq(ctx)
	if err != nil {
		return 0, err
	}
	return max(last, maxMenuID(items)), nil
}

func findMenuItem(items []models.MenuItem, id int) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// List returns every menu item in stored order.
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.cols.Menu(ctx)
	if err != nil {
		slog.Error("List menu failed", "error", err)
		return nil, err
	}
	return items, nil
}

// Get returns a single menu item.
func (s *MenuService) Get(ctx context.Context, id int) (models.MenuItem, error) {
	items, err := s.cols.Menu(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}
	idx := findMenuItem(items, id)
	if idx == -1 {
		return models.MenuItem{}, &NotFoundError{Resource: "menu item", ID: id}
	}
	return items[idx], nil
}

// Add validates and appends a new menu item.
func (s *MenuService) Add(ctx context.Context, name string, price float64) (models.MenuItem, error) {
	name, err := validateName(name)
	if err != nil {
		return models.MenuItem{}, err
	}
	if err := validatePrice(price); err != nil {
		return models.MenuItem{}, err
	}

	unlock := s.cols.LockMenu()
	defer unlock()

	items, err := s.cols.Menu(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}

	last, err := s.highWater(ctx, items)
	if err != nil {
		return models.MenuItem{}, err
	}

	item := models.MenuItem{
		ID:    last + 1,
		Name:  name,
		Price: price,
	}
	items = append(items, item)

	// Sequence first: a failed menu save then skips an id instead of reusing one
	if err := s.cols.SaveMenuSeq(ctx, item.ID); err != nil {
		slog.Error("Add menu item failed", "name", name, "error", err)
		return models.MenuItem{}, err
	}
	if err := s.cols.SaveMenu(ctx, items); err != nil {
		slog.Error("Add menu item failed", "name", name, "error", err)
		return models.MenuItem{}, err
	}

	s.metrics.SetMenuItems(len(items))
	slog.Info("Menu item added", "id", item.ID, "name", item.Name, "price", item.Price)
	return item, nil
}

// Update applies the supplied fields to an existing item.
func (s *MenuService) Update(ctx context.Context, id int, upd MenuUpdate) (models.MenuItem, error) {
	var name string
	if upd.Name != nil {
		var err error
		if name, err = validateName(*upd.Name); err != nil {
			return models.MenuItem{}, err
		}
	}
	if upd.Price != nil {
		if err := validatePrice(*upd.Price); err != nil {
			return models.MenuItem{}, err
		}
	}

	unlock := s.cols.LockMenu()
	defer unlock()

	items, err := s.cols.Menu(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}

	idx := findMenuItem(items, id)
	if idx == -1 {
		return models.MenuItem{}, &NotFoundError{Resource: "menu item", ID: id}
	}

	if upd.Name != nil {
		items[idx].Name = name
	}
	if upd.Price != nil {
		items[idx].Price = *upd.Price
	}

	if err := s.cols.SaveMenu(ctx, items); err != nil {
		slog.Error("Update menu item failed", "id", id, "error", err)
		return models.MenuItem{}, err
	}

	slog.Info("Menu item updated", "id", id, "name", items[idx].Name, "price", items[idx].Price)
	return items[idx], nil
}

// Delete removes an item from the catalog. Orders that reference it keep
// their snapshot, and its id is never handed out again.
func (s *MenuService) Delete(ctx context.Context, id int) error {
	unlock := s.cols.LockMenu()
	defer unlock()

	items, err := s.cols.Menu(ctx)
	if err != nil {
		return err
	}

	idx := findMenuItem(items, id)
	if idx == -1 {
		return &NotFoundError{Resource: "menu item", ID: id}
	}

	// Record the high-water mark before the id disappears from the menu
	last, err := s.cols.MenuSeq(ctx)
	if err != nil {
		return err
	}
	if top := maxMenuID(items); top > last {
		if err := s.cols.SaveMenuSeq(ctx, top); err != nil {
			slog.Error("Delete menu item failed", "id", id, "error", err)
			return err
		}
	}
	items = append(items[:idx], items[idx+1:]...)

	if err := s.cols.SaveMenu(ctx, items); err != nil {
		slog.Error("Delete menu item failed", "id", id, "error", err)
		return err
	}

	s.metrics.SetMenuItems(len(items))
	slog.Info("Menu item deleted", "id", id)
	return nil
}
