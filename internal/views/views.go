// Package views builds the view models behind the dashboard, customer and
// orders pages. Builders are pure: data in, view model out. Rendering lives
// in render.go.
package views

import (
	"html/template"
	"sort"

	"github.com/mmynk/canteen/internal/calculator"
	"github.com/mmynk/canteen/internal/models"
)

// MenuRow is one catalog entry as displayed.
type MenuRow struct {
	ID    int
	Name  string
	Price float64
}

// DashboardView backs the owner dashboard.
type DashboardView struct {
	Menu            []MenuRow
	ItemCount       int
	PendingOrders   int
	CompletedOrders int

	// Revenue sums the totals of completed orders.
	Revenue float64

	CustomerURL string

	// QRCode is a data URI produced by the qrcode package.
	QRCode template.URL
	Error  string
}

// Dashboard builds the owner dashboard view.
func Dashboard(menu []models.MenuItem, orders []models.Order) DashboardView {
	v := DashboardView{
		Menu:      menuRows(menu),
		ItemCount: len(menu),
	}
	v.PendingOrders, v.CompletedOrders, v.Revenue = orderStats(orders)
	return v
}

// CustomerRow is a menu entry with the quantity currently in the cart.
type CustomerRow struct {
	MenuRow
	Quantity int
}

// CartRow is a priced cart line.
type CartRow struct {
	ID       int
	Name     string
	Price    float64
	Quantity int
	Subtotal float64
}

// CustomerView backs the customer ordering page.
type CustomerView struct {
	Menu         []CustomerRow
	Cart         []CartRow
	Total        float64
	CustomerName string

	// Placed is set once an order has been accepted.
	Placed *models.Order
	Error  string
}

// Customer builds the ordering page from the menu and the customer's cart.
// Cart lines whose item has left the menu are not shown; the order engine
// rejects them if submitted.
func Customer(menu []models.MenuItem, cart []models.CartLine) CustomerView {
	byID := make(map[int]models.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}
	qty := make(map[int]int, len(cart))

	var known []models.MenuItem
	var lines []calculator.Line
	for _, line := range cart {
		item, ok := byID[line.ID]
		if !ok || line.Quantity <= 0 {
			continue
		}
		qty[line.ID] = line.Quantity
		known = append(known, item)
		lines = append(lines, calculator.Line{Price: item.Price, Quantity: line.Quantity})
	}

	v := CustomerView{Menu: make([]CustomerRow, len(menu))}
	for i, item := range menu {
		v.Menu[i] = CustomerRow{
			MenuRow:  MenuRow{ID: item.ID, Name: item.Name, Price: item.Price},
			Quantity: qty[item.ID],
		}
	}

	// Inputs were filtered above, so the calculator cannot reject them
	totals, total, err := calculator.CalculateTotal(lines)
	if err != nil {
		return v
	}
	v.Total = total
	v.Cart = make([]CartRow, len(totals))
	for i, t := range totals {
		v.Cart[i] = CartRow{
			ID:       known[i].ID,
			Name:     known[i].Name,
			Price:    t.Price,
			Quantity: t.Quantity,
			Subtotal: t.Subtotal,
		}
	}
	return v
}

// Filter selects which orders the board shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = Filter(models.StatusPending)
	FilterCompleted Filter = Filter(models.StatusCompleted)
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

// ParseFilter maps a query value to a Filter, defaulting to FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterPending, FilterCompleted:
		return Filter(s)
	default:
		return FilterAll
	}
}

// OrdersView backs the orders and billing page.
type OrdersView struct {
	Orders    []models.Order
	Filter    Filter
	Filters   []Filter
	Pending   int
	Completed int
	Revenue   float64

	// RefreshSeconds is how often the page reloads itself, matching the
	// meta refresh in orders.html.
	RefreshSeconds int
}

// OrdersBoard returns the orders matching f, most recent first. Counts and
// revenue always cover every order.
func OrdersBoard(orders []models.Order, f Filter) OrdersView {
	v := OrdersView{
		Filter:         f,
		Filters:        Filters,
		RefreshSeconds: 5,
	}
	v.Pending, v.Completed, v.Revenue = orderStats(orders)

	for _, o := range orders {
		if f == FilterAll || Filter(o.Status) == f {
			v.Orders = append(v.Orders, o)
		}
	}
	sort.SliceStable(v.Orders, func(i, j int) bool {
		a, b := v.Orders[i], v.Orders[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return v
}

func menuRows(menu []models.MenuItem) []MenuRow {
	rows := make([]MenuRow, len(menu))
	for i, item := range menu {
		rows[i] = MenuRow{ID: item.ID, Name: item.Name, Price: item.Price}
	}
	return rows
}

func orderStats(orders []models.Order) (pending, completed int, revenue float64) {
	for _, o := range orders {
		switch o.Status {
		case models.StatusPending:
			pending++
		case models.StatusCompleted:
			completed++
			revenue += o.Total
		}
	}
	return pending, completed, revenue
}
