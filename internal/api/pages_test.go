package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/canteen/internal/models"
	"github.com/mmynk/canteen/internal/storage/memory"
)

func TestDashboardPage(t *testing.T) {
	s := newTestServer(t, memory.New(), "")

	rec := s.form(t, "/dashboard/menu", url.Values{"name": {"Dosa"}, "price": {"25"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Dosa"`)
	assert.Contains(t, rec.Body.String(), "data:image/png;base64,")

	rec = s.form(t, "/dashboard/menu/1", url.Values{"name": {""}, "price": {"30"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/menu", "")
	assert.JSONEq(t, `[{"id":1,"name":"Dosa","price":30}]`, rec.Body.String())

	rec = s.form(t, "/dashboard/menu", url.Values{"name": {"Idli"}, "price": {"cheap"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Price must be a number")

	rec = s.form(t, "/dashboard/menu/1/delete", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.form(t, "/dashboard/menu/1/delete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerPage(t *testing.T) {
	s := newTestServer(t, memory.New(), "")
	s.do(t, http.MethodPost, "/api/menu", `{"name":"Dosa","price":25}`)
	s.do(t, http.MethodPost, "/api/menu", `{"name":"Idli","price":20}`)

	rec := s.do(t, http.MethodGet, "/customer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your cart is empty.")

	rec = s.form(t, "/customer", url.Values{"qty_1": {"2"}, "qty_2": {"0"}, "action": {"review"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Total: ₹50.00")

	rec = s.form(t, "/customer", url.Values{"action": {"order"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.form(t, "/customer", url.Values{
		"qty_1":        {"1"},
		"qty_2":        {"2"},
		"customerName": {"Asha"},
		"action":       {"order"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order #1 placed")

	orders, err := s.orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Asha", orders[0].CustomerName)
	assert.Equal(t, 65.0, orders[0].Total)
}

func TestOrdersPage(t *testing.T) {
	s := newTestServer(t, memory.New(), "")
	s.do(t, http.MethodPost, "/api/menu", `{"name":"Dosa","price":25}`)
	s.do(t, http.MethodPost, "/api/orders", `{"items":[{"id":1,"quantity":1}],"customerName":"Ravi"}`)

	rec := s.do(t, http.MethodGet, "/orders?status=pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ravi")

	rec = s.form(t, "/orders/1/status", url.Values{"status": {"completed"}, "filter": {"pending"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders?status=pending", rec.Header().Get("Location"))

	order, err := s.orders.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, order.Status)

	rec = s.do(t, http.MethodGet, "/orders?status=pending", "")
	assert.Contains(t, rec.Body.String(), "No orders found.")

	rec = s.form(t, "/orders/1/status", url.Values{"status": {"archived"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
