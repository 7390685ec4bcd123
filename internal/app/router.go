package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aleamz/salespoint/internal/catalog/products"
	"github.com/aleamz/salespoint/internal/reports"
	"github.com/aleamz/salespoint/internal/sales/checkout"
	"github.com/aleamz/salespoint/internal/sales/customers"
	"github.com/aleamz/salespoint/internal/sales/orders"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	ProductsHandler  *products.Handler
	CustomersHandler *customers.Handler
	CheckoutHandler  *checkout.Handler
	OrdersHandler    *orders.Handler
	ReportsHandler   *reports.Handler
}

// NewRouter constructs the chi.Router with Salespoint defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/catalog", params.ProductsHandler.MountRoutes)
	r.Route("/customers", params.CustomersHandler.MountRoutes)
	r.Route("/checkout", params.CheckoutHandler.MountRoutes)
	r.Route("/orders", params.OrdersHandler.MountRoutes)
	if params.ReportsHandler != nil {
		r.Route("/reports", params.ReportsHandler.MountRoutes)
	}

	return r
}
