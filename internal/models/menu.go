package models

// MenuItem represents a purchasable item in the catalog.
type MenuItem struct {
	// ID is assigned by the catalog as max(existing ids)+1 and never reused.
	ID int `json:"id"`

	// Name is the display name, stored trimmed.
	Name string `json:"name"`

	// Price is the unit price. Never negative.
	Price float64 `json:"price"`
}

// CartLine is a requested quantity of one menu item.
// It only exists while an order is being composed.
type CartLine struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}
