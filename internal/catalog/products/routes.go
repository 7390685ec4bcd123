package products

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.List)
	r.Post("/products", h.Create)
	r.Post("/products/serials", h.Serials)
	r.Get("/products/{id}", h.Show)
	r.Put("/products/{id}", h.Update)
	r.Delete("/products/{id}", h.Delete)
	r.Get("/products/{id}/variants", h.Variants)
}
