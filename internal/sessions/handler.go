package sessions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/llmtrace/internal/query"
	"github.com/emiliopalmerini/llmtrace/internal/shared/httpx"
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

type Handler struct {
	repo Repository
	log  zerolog.Logger
}

func NewHandler(repo Repository, log zerolog.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

// Messages serves the ordered per-message trace of one session.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	events, err := h.repo.EventsBySession(ctx, sessionID)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	if len(events) == 0 {
		httpx.Error(w, h.log, fmt.Errorf("session %s: %w", sessionID, tracelog.ErrNotFound))
		return
	}

	httpx.JSON(w, http.StatusOK, Trace(events))
}

// Summary serves the aggregated view of one session.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	events, err := h.repo.EventsBySession(ctx, sessionID)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	if len(events) == 0 {
		httpx.Error(w, h.log, fmt.Errorf("session %s: %w", sessionID, tracelog.ErrNotFound))
		return
	}

	httpx.JSON(w, http.StatusOK, Summarize(events))
}

// Search serves filtered session summaries. The body is the filter criteria;
// offset/limit travel as query parameters. The result may be empty, which is
// a 200 with an empty list, not a 404.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var criteria query.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil && !errors.Is(err, io.EOF) {
		httpx.Error(w, h.log, query.Validationf("invalid search criteria: %v", err))
		return
	}

	page, err := parsePage(r)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}

	ids, err := h.repo.SearchSessionIDs(ctx, criteria, page)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}

	events, err := h.repo.EventsForSessions(ctx, ids)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}

	summaries := SummarizeAll(ids, events)
	if summaries == nil {
		summaries = []Summary{}
	}
	httpx.JSON(w, http.StatusOK, summaries)
}

func parsePage(r *http.Request) (query.Page, error) {
	var offset, limit int64
	var err error

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return query.Page{}, query.Validationf("invalid offset %q", raw)
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return query.Page{}, query.Validationf("invalid limit %q", raw)
		}
	}
	return query.NewPage(offset, limit)
}
