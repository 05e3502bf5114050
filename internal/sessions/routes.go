package sessions

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/v1/sessions/{id}/messages", h.Messages)
	r.Get("/api/v1/sessions/{id}/summary", h.Summary)
	r.Post("/api/v1/sessions/search", h.Search)
}
