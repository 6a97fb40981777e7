package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/canteen/internal/middleware"
	"github.com/mmynk/canteen/internal/models"
	"github.com/mmynk/canteen/internal/qrcode"
	"github.com/mmynk/canteen/internal/service"
	"github.com/mmynk/canteen/internal/views"
)

// Handler serves the JSON API and the HTML pages.
type Handler struct {
	menu      *service.MenuService
	orders    *service.OrderService
	renderer  *views.Renderer
	publicURL string
}

// NewHandler creates a Handler. publicURL, when set, is the externally
// reachable base URL used for the customer QR code; otherwise it is derived
// from each request.
func NewHandler(menu *service.MenuService, orders *service.OrderService, renderer *views.Renderer, publicURL string) *Handler {
	return &Handler{
		menu:      menu,
		orders:    orders,
		renderer:  renderer,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// ListMenu returns every menu item.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to read menu")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateMenuItem adds a menu item.
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == nil || *req.Name == "" || req.Price == nil {
		writeError(w, http.StatusBadRequest, "Name and price are required")
		return
	}

	item, err := h.menu.Add(r.Context(), *req.Name, float64(*req.Price))
	if err != nil {
		h.fail(w, r, err, "Failed to add menu item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateMenuItem applies a partial update to a menu item.
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	var req UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	upd := service.MenuUpdate{Name: req.Name}
	if req.Price != nil {
		price := float64(*req.Price)
		upd.Price = &price
	}

	item, err := h.menu.Update(r.Context(), id, upd)
	if err != nil {
		h.fail(w, r, err, "Failed to update menu item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteMenuItem removes a menu item.
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if err := h.menu.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete menu item")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Menu item deleted successfully"})
}

// ListOrders returns every order in stored order.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to read orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// CreateOrder places an order from the submitted cart.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines := make([]models.CartLine, len(req.Items))
	for i, it := range req.Items {
		lines[i] = models.CartLine{ID: it.ID, Quantity: it.Quantity}
	}

	order, err := h.orders.PlaceOrder(r.Context(), lines, req.CustomerName)
	if err != nil {
		h.fail(w, r, err, "Failed to create order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateOrder changes an order's status. A request without a status returns
// the order unchanged.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		order models.Order
		err   error
	)
	if req.Status == nil || *req.Status == "" {
		order, err = h.orders.Get(r.Context(), id)
	} else {
		order, err = h.orders.SetStatus(r.Context(), id, models.Status(*req.Status))
	}
	if err != nil {
		h.fail(w, r, err, "Failed to update order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// QRCode returns the customer page URL and its QR code.
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	url := h.customerURL(r)
	uri, err := qrcode.DataURI(url, qrcode.DefaultSize)
	if err != nil {
		h.fail(w, r, err, "Failed to generate QR code")
		return
	}
	writeJSON(w, http.StatusOK, QRCodeResponse{URL: url, QRCode: uri})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) customerURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL + "/customer"
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + "/customer"
}

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	var (
		verr *service.ValidationError
		rerr *service.InvalidReferenceError
		nerr *service.NotFoundError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &rerr):
		return http.StatusBadRequest
	case errors.As(err, &nerr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error response for err. Domain errors carry their own
// message; anything else is logged and reported with fallback.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(fallback,
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		writeError(w, status, fallback)
		return
	}
	writeError(w, status, err.Error())
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
