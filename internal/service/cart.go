package service

import (
	"github.com/mmynk/canteen/internal/models"
)

// Cart is the caller-owned list of items a customer intends to order.
// Lines keep the order in which items were first added.
type Cart struct {
	lines []models.CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) index(id int) int {
	for i, l := range c.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Add changes the quantity of item id by delta. A line whose quantity
// drops to zero or below is removed.
func (c *Cart) Add(id, delta int) {
	c.SetQuantity(id, c.Quantity(id)+delta)
}

// SetQuantity sets the quantity of item id. Zero or less removes the line.
func (c *Cart) SetQuantity(id, quantity int) {
	idx := c.index(id)
	switch {
	case quantity <= 0:
		if idx != -1 {
			c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
		}
	case idx == -1:
		c.lines = append(c.lines, models.CartLine{ID: id, Quantity: quantity})
	default:
		c.lines[idx].Quantity = quantity
	}
}

// Remove drops item id from the cart.
func (c *Cart) Remove(id int) {
	c.SetQuantity(id, 0)
}

// Quantity returns the quantity of item id, zero if absent.
func (c *Cart) Quantity(id int) int {
	if idx := c.index(id); idx != -1 {
		return c.lines[idx].Quantity
	}
	return 0
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct items.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
