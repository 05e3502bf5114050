package analytics

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/v1/analytics/overview", h.Overview)
	r.Get("/api/v1/analytics/agents", h.Agents)
	r.Get("/api/v1/analytics/models", h.Models)
	r.Get("/api/v1/analytics/usage-trends", h.Trends)
	r.Get("/api/v1/analytics/cost-breakdown", h.CostBreakdown)
}
