package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r, h)
}

func applyRoutes(r chi.Router, h *Handler) chi.Router {
	r.Route("/tramites", func(r chi.Router) {
		r.Get("/", h.listDocuments)
		r.Post("/", h.appendDocument)
		r.Put("/{index}/celda", h.editDocumentCell)
		r.Post("/{index}/derivaciones", h.addDerivation)
		r.Put("/{index}/derivaciones", h.editDerivation)
		r.Delete("/{index}/derivaciones", h.deleteDerivation)
		r.Post("/{index}/documento", h.uploadDocumentFile)
	})

	r.Route("/eventos", func(r chi.Router) {
		r.Get("/", h.listEvents)
		r.Get("/expandido", h.listExpandedEvents)
		r.Post("/", h.appendEvent)
		r.Put("/{row}/celda", h.editEventCell)
		r.Delete("/{row}", h.deleteEvent)
	})

	return r
}
