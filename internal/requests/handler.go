package requests

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/llmtrace/internal/shared/httpx"
)

type Handler struct {
	repo Repository
	log  zerolog.Logger
}

func NewHandler(repo Repository, log zerolog.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

// Detail serves one decoded request record.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	ev, err := h.repo.EventByRequestID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, BuildDetail(ev))
}

// Conversation serves just the messages and response of one request.
func (h *Handler) Conversation(w http.ResponseWriter, r *http.Request) {
	ev, err := h.repo.EventByRequestID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, BuildConversation(ev))
}
