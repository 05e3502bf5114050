// Package server wires the HTTP surface: router, middleware stack, and the
// per-feature handlers over one shared event-log store.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/llmtrace/internal/analytics"
	"github.com/emiliopalmerini/llmtrace/internal/requests"
	"github.com/emiliopalmerini/llmtrace/internal/sessions"
	sharedmw "github.com/emiliopalmerini/llmtrace/internal/shared/middleware"
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

func NewHTTPHandler(store *tracelog.Store, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(sharedmw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := store.Ping(req.Context()); err != nil {
			log.Error().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"healthy","database":"connected"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	sessions.RegisterRoutes(r, sessions.NewHandler(store, log))
	analytics.RegisterRoutes(r, analytics.NewHandler(store, log))
	requests.RegisterRoutes(r, requests.NewHandler(store, log))

	return r
}
