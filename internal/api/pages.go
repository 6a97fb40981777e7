package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmynk/canteen/internal/models"
	"github.com/mmynk/canteen/internal/qrcode"
	"github.com/mmynk/canteen/internal/service"
	"github.com/mmynk/canteen/internal/views"
)

// Dashboard renders the owner dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, http.StatusOK, "")
}

func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	menu, err := h.menu.List(r.Context())
	if err != nil {
		h.failPage(w, r, err)
		return
	}
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.failPage(w, r, err)
		return
	}

	v := views.Dashboard(menu, orders)
	v.Error = errMsg
	v.CustomerURL = h.customerURL(r)
	if uri, err := qrcode.DataURI(v.CustomerURL, qrcode.DefaultSize); err == nil {
		v.QRCode = template.URL(uri)
	} else {
		slog.Warn("QR code unavailable", "error", err)
	}

	h.render(w, r, status, views.PageDashboard, v)
}

// AddMenuItemForm handles the dashboard's add form.
func (h *Handler) AddMenuItemForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderDashboard(w, r, http.StatusBadRequest, err.Error())
		return
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(r.PostForm.Get("price")), 64)
	if err != nil {
		h.renderDashboard(w, r, http.StatusBadRequest, "Price must be a number")
		return
	}

	if _, err := h.menu.Add(r.Context(), r.PostForm.Get("name"), price); err != nil {
		h.formError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdateMenuItemForm handles a dashboard row's save form. Empty fields are left unchanged.
func (h *Handler) UpdateMenuItemForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.renderDashboard(w, r, http.StatusNotFound, "Menu item not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderDashboard(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var upd service.MenuUpdate
	if name := r.PostForm.Get("name"); strings.TrimSpace(name) != "" {
		upd.Name = &name
	}
	if raw := strings.TrimSpace(r.PostForm.Get("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.renderDashboard(w, r, http.StatusBadRequest, "Price must be a number")
			return
		}
		upd.Price = &price
	}

	if _, err := h.menu.Update(r.Context(), id, upd); err != nil {
		h.formError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteMenuItemForm handles a dashboard row's delete button.
func (h *Handler) DeleteMenuItemForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.renderDashboard(w, r, http.StatusNotFound, "Menu item not found")
		return
	}
	if err := h.menu.Delete(r.Context(), id); err != nil {
		h.formError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CustomerPage renders the ordering page with an empty cart.
func (h *Handler) CustomerPage(w http.ResponseWriter, r *http.Request) {
	menu, err := h.menu.List(r.Context())
	if err != nil {
		h.failPage(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, views.PageCustomer, views.Customer(menu, nil))
}

// CustomerSubmit recomputes the cart from the submitted quantities and,
// when action=order, places the order.
func (h *Handler) CustomerSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	menu, err := h.menu.List(r.Context())
	if err != nil {
		h.failPage(w, r, err)
		return
	}

	cart := cartFromForm(menu, r.PostForm)
	name := r.PostForm.Get("customerName")

	if r.PostForm.Get("action") != "order" {
		v := views.Customer(menu, cart.Lines())
		v.CustomerName = name
		h.render(w, r, http.StatusOK, views.PageCustomer, v)
		return
	}

	if cart.Len() == 0 {
		v := views.Customer(menu, nil)
		v.CustomerName = name
		v.Error = "Please add items to your cart"
		h.render(w, r, http.StatusBadRequest, views.PageCustomer, v)
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), cart.Lines(), name)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.failPage(w, r, err)
			return
		}
		v := views.Customer(menu, cart.Lines())
		v.CustomerName = name
		v.Error = err.Error()
		h.render(w, r, status, views.PageCustomer, v)
		return
	}

	v := views.Customer(menu, nil)
	v.Placed = &order
	h.render(w, r, http.StatusOK, views.PageCustomer, v)
}

// OrdersPage renders the orders board, filtered by ?status=.
func (h *Handler) OrdersPage(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.failPage(w, r, err)
		return
	}
	filter := views.ParseFilter(r.URL.Query().Get("status"))
	h.render(w, r, http.StatusOK, views.PageOrders, views.OrdersBoard(orders, filter))
}

// SetOrderStatusForm handles the complete / reopen buttons on the orders board.
func (h *Handler) SetOrderStatusForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.orders.SetStatus(r.Context(), id, models.Status(r.PostForm.Get("status"))); err != nil {
		h.fail(w, r, err, "Failed to update order")
		return
	}

	filter := views.ParseFilter(r.PostForm.Get("filter"))
	http.Redirect(w, r, "/orders?status="+url.QueryEscape(string(filter)), http.StatusSeeOther)
}

// cartFromForm reads qty_<id> fields in menu order.
func cartFromForm(menu []models.MenuItem, form url.Values) *service.Cart {
	cart := service.NewCart()
	for _, item := range menu {
		raw := strings.TrimSpace(form.Get("qty_" + strconv.Itoa(item.ID)))
		if raw == "" {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		cart.SetQuantity(item.ID, qty)
	}
	return cart
}

func (h *Handler) formError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.failPage(w, r, err)
		return
	}
	h.renderDashboard(w, r, status, err.Error())
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page, data); err != nil {
		h.failPage(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) failPage(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("Page failed", "path", r.URL.Path, "error", err)
	http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
}
