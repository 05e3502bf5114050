package requests

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/v1/requests/{id}", h.Detail)
	r.Get("/api/v1/requests/{id}/messages", h.Conversation)
}
