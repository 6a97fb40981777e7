package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/canteen/internal/calculator"
	"github.com/mmynk/canteen/internal/metrics"
	"github.com/mmynk/canteen/internal/models"
	"github.com/mmynk/canteen/internal/storage"
)

// OrderService places orders and tracks their status.
// It is the sole authority on pricing: order lines are always priced from
// the catalog at the moment the order is placed.
type OrderService struct {
	cols    *storage.Collections
	metrics *metrics.Metrics
	now     func() time.Time
}

// OrderOption configures an OrderService.
type OrderOption func(*OrderService)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) OrderOption {
	return func(s *OrderService) {
		s.now = now
	}
}

// WithMetrics records placed orders and status changes on m.
func WithMetrics(m *metrics.Metrics) OrderOption {
	return func(s *OrderService) {
		s.metrics = m
	}
}

// NewOrderService creates a new OrderService over the given collections.
func NewOrderService(cols *storage.Collections, opts ...OrderOption) *OrderService {
	s := &OrderService{cols: cols, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func findOrder(orders []models.Order, id int) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func nextOrderID(orders []models.Order) int {
	maxID := 0
	for _, o := range orders {
		if o.ID > maxID {
			maxID = o.ID
		}
	}
	return maxID + 1
}

// priceLines resolves every cart line against menu and returns the priced
// order items with their total. Any unknown id fails the whole cart.
func priceLines(lines []models.CartLine, menu []models.MenuItem) ([]models.OrderItem, float64, error) {
	byID := make(map[int]models.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}

	resolved := make([]models.MenuItem, len(lines))
	calcLines := make([]calculator.Line, len(lines))
	for i, line := range lines {
		item, ok := byID[line.ID]
		if !ok {
			return nil, 0, &InvalidReferenceError{ItemID: line.ID}
		}
		resolved[i] = item
		calcLines[i] = calculator.Line{Price: item.Price, Quantity: line.Quantity}
	}

	totals, total, err := calculator.CalculateTotal(calcLines)
	if err != nil {
		return nil, 0, validationErrorf("%v", err)
	}

	items := make([]models.OrderItem, len(lines))
	for i, t := range totals {
		items[i] = models.OrderItem{
			ID:       resolved[i].ID,
			Name:     resolved[i].Name,
			Price:    t.Price,
			Quantity: t.Quantity,
			Subtotal: t.Subtotal,
		}
	}
	return items, total, nil
}

// PlaceOrder builds an order from the cart lines using current catalog
// prices, assigns the next order id and persists it.
// Nothing is persisted unless every line resolves.
func (s *OrderService) PlaceOrder(ctx context.Context, lines []models.CartLine, customerName string) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, validationErrorf("Items array is required")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return models.Order{}, validationErrorf("quantity for item %d must be positive", line.ID)
		}
	}

	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		customerName = models.DefaultCustomerName
	}

	unlock := s.cols.LockOrders()
	defer unlock()

	// Menu saves are atomic, so reading without the menu lock still yields a whole snapshot
	menu, err := s.cols.Menu(ctx)
	if err != nil {
		return models.Order{}, err
	}

	items, total, err := priceLines(lines, menu)
	if err != nil {
		slog.Warn("PlaceOrder rejected", "customer", customerName, "error", err)
		return models.Order{}, err
	}

	orders, err := s.cols.Orders(ctx)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		ID:           nextOrderID(orders),
		CustomerName: customerName,
		Items:        items,
		Total:        total,
		Status:       models.StatusPending,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	orders = append(orders, order)

	if err := s.cols.SaveOrders(ctx, orders); err != nil {
		slog.Error("PlaceOrder failed", "customer", customerName, "error", err)
		return models.Order{}, err
	}

	s.metrics.OrderPlaced(order.Total)
	slog.Info("Order placed",
		"id", order.ID,
		"customer", order.CustomerName,
		"items_count", len(order.Items),
		"total", order.Total,
	)
	return order, nil
}

// SetStatus moves an order to status. Both directions between pending and
// completed are allowed.
func (s *OrderService) SetStatus(ctx context.Context, id int, status models.Status) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, validationErrorf("invalid status %q: must be %q or %q",
			status, models.StatusPending, models.StatusCompleted)
	}

	unlock := s.cols.LockOrders()
	defer unlock()

	orders, err := s.cols.Orders(ctx)
	if err != nil {
		return models.Order{}, err
	}

	idx := findOrder(orders, id)
	if idx == -1 {
		return models.Order{}, &NotFoundError{Resource: "order", ID: id}
	}

	previous := orders[idx].Status
	orders[idx].Status = status

	if err := s.cols.SaveOrders(ctx, orders); err != nil {
		slog.Error("SetStatus failed", "id", id, "error", err)
		return models.Order{}, err
	}

	if previous != status {
		s.metrics.StatusChanged(status)
	}
	slog.Info("Order status updated", "id", id, "from", previous, "to", status)
	return orders[idx], nil
}

// List returns all orders in stored order. Callers wanting the most recent
// first sort by CreatedAt themselves.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.cols.Orders(ctx)
	if err != nil {
		slog.Error("List orders failed", "error", err)
		return nil, err
	}
	return orders, nil
}

// Get returns a single order.
func (s *OrderService) Get(ctx context.Context, id int) (models.Order, error) {
	orders, err := s.cols.Orders(ctx)
	if err != nil {
		return models.Order{}, err
	}
	idx := findOrder(orders, id)
	if idx == -1 {
		return models.Order{}, &NotFoundError{Resource: "order", ID: id}
	}
	return orders[idx], nil
}
