package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rmedinah/crm-backend/internal/crm/httpx/middlewares"
)

// NewRouter builds the CRM HTTP surface.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.Tracing)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Post("/customers", handler.CreateCustomer)
	r.Post("/customers/bulk", handler.BulkCreateCustomers)
	r.Get("/customers", handler.ListCustomers)
	r.Get("/customers/{id}", handler.GetCustomer)

	r.Post("/products", handler.CreateProduct)
	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)

	r.Post("/orders", handler.CreateOrder)
	r.Get("/orders", handler.ListOrders)
	r.Get("/orders/{id}", handler.GetOrder)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
