package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/canteen/internal/metrics"
	"github.com/mmynk/canteen/internal/middleware"
)

// NewRouter wires the JSON API, the HTML pages and the operational endpoints.
// m may be nil; gatherer may be nil to disable /metrics.
func NewRouter(handler *Handler, m *metrics.Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics(m))
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", handler.ListMenu)
		r.Post("/menu", handler.CreateMenuItem)
		r.Put("/menu/{id}", handler.UpdateMenuItem)
		r.Delete("/menu/{id}", handler.DeleteMenuItem)

		r.Get("/orders", handler.ListOrders)
		r.Post("/orders", handler.CreateOrder)
		r.Put("/orders/{id}", handler.UpdateOrder)

		r.Get("/qrcode", handler.QRCode)
	})

	r.Get("/", handler.Dashboard)
	r.Post("/dashboard/menu", handler.AddMenuItemForm)
	r.Post("/dashboard/menu/{id}", handler.UpdateMenuItemForm)
	r.Post("/dashboard/menu/{id}/delete", handler.DeleteMenuItemForm)

	r.Get("/customer", handler.CustomerPage)
	r.Post("/customer", handler.CustomerSubmit)

	r.Get("/orders", handler.OrdersPage)
	r.Post("/orders/{id}/status", handler.SetOrderStatusForm)

	r.Get("/healthz", handler.Health)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
