package models

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// DefaultCustomerName is used when an order is placed without a name.
const DefaultCustomerName = "Customer"

// OrderItem is a line of an order, captured at the moment the order was placed.
type OrderItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Order represents a placed order.
// Only Status changes after creation.
type Order struct {
	// ID comes from a sequence independent of menu item ids.
	ID int `json:"id"`

	CustomerName string      `json:"customerName"`
	Items        []OrderItem `json:"items"`

	// Total is the sum of all item subtotals.
	Total float64 `json:"total"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
