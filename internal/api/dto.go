package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price accepts a JSON number or a numeric string such as "25.50".
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("price %q is not a number", s)
		}
		*p = Price(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("price must be a number")
	}
	*p = Price(v)
	return nil
}

// CreateMenuItemRequest is the body of POST /api/menu.
type CreateMenuItemRequest struct {
	Name  *string `json:"name"`
	Price *Price  `json:"price"`
}

// UpdateMenuItemRequest is the body of PUT /api/menu/{id}. Omitted fields are left unchanged.
type UpdateMenuItemRequest struct {
	Name  *string `json:"name"`
	Price *Price  `json:"price"`
}

// CartLineDTO is one requested item of an order.
type CartLineDTO struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	Items        []CartLineDTO `json:"items"`
	CustomerName string        `json:"customerName"`
}

// UpdateOrderRequest is the body of PUT /api/orders/{id}.
type UpdateOrderRequest struct {
	Status *string `json:"status"`
}

// MessageResponse acknowledges a mutation that returns no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// QRCodeResponse carries the customer page URL and its QR code as a PNG data URI.
type QRCodeResponse struct {
	URL    string `json:"url"`
	QRCode string `json:"qrCode"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
