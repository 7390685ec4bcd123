package checkout

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/bills", h.Open)
	r.Route("/bills/{billID}", func(r chi.Router) {
		r.Get("/", h.Show)
		r.Delete("/", h.Close)
		r.Post("/lines", h.AddLine)
		r.Patch("/lines/{lineID}", h.UpdateLine)
		r.Put("/lines/{lineID}/discount", h.UpdateLineDiscount)
		r.Put("/lines/{lineID}/serials", h.ReplaceSerials)
		r.Delete("/lines/{lineID}", h.RemoveLine)
		r.Put("/discount", h.Discount)
		r.Put("/customer", h.AttachCustomer)
		r.Post("/submit", h.Submit)
	})
}
