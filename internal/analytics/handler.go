package analytics

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/llmtrace/internal/query"
	"github.com/emiliopalmerini/llmtrace/internal/shared/httpx"
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

const defaultWindowDays = 30

type Handler struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewHandler(repo Repository, log zerolog.Logger) *Handler {
	return &Handler{repo: repo, log: log, now: time.Now}
}

// window validates the days parameter and loads the qualifying records.
// Validation failures never touch the store.
func (h *Handler) window(r *http.Request) ([]tracelog.EventRecord, error) {
	days, err := query.ParseDays(r.URL.Query().Get("days"), defaultWindowDays)
	if err != nil {
		return nil, err
	}
	cutoff := h.now().UTC().AddDate(0, 0, -days)
	return h.repo.EventsSince(r.Context(), cutoff)
}

// Overview serves the window totals. The three independent folds share the
// immutable window slice, so they run concurrently without coordination.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	events, err := h.window(r)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}

	var (
		overview Overview
		agents   []AgentPerformance
		models   []ModelUsage
	)
	var g errgroup.Group
	g.Go(func() error {
		overview = BuildOverview(events)
		return nil
	})
	g.Go(func() error {
		agents = BuildAgentPerformance(events)
		return nil
	})
	g.Go(func() error {
		models = BuildModelUsage(events)
		return nil
	})
	_ = g.Wait()

	httpx.JSON(w, http.StatusOK, map[string]any{
		"total_requests":       overview.TotalRequests,
		"unique_sessions":      overview.UniqueSessions,
		"unique_users":         overview.UniqueUsers,
		"total_tokens":         overview.TotalTokens,
		"total_cost":           overview.TotalCost,
		"avg_response_time":    overview.AvgResponseTime,
		"cache_hits":           overview.CacheHits,
		"cache_hit_rate":       overview.CacheHitRate,
		"total_function_calls": overview.TotalFunctionCalls,
		"active_agents":        len(agents),
		"active_models":        len(models),
	})
}

// Agents serves the per-agent performance rollup.
func (h *Handler) Agents(w http.ResponseWriter, r *http.Request) {
	events, err := h.window(r)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	rows := BuildAgentPerformance(events)
	if rows == nil {
		rows = []AgentPerformance{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

// Models serves the per-model usage rollup.
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	events, err := h.window(r)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	rows := BuildModelUsage(events)
	if rows == nil {
		rows = []ModelUsage{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

// Trends serves the time-bucketed usage series.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	granularity, err := query.ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	events, err := h.window(r)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	rows := BuildTrends(events, granularity)
	if rows == nil {
		rows = []TrendBucket{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

// CostBreakdown serves per-category cost shares for one window.
func (h *Handler) CostBreakdown(w http.ResponseWriter, r *http.Request) {
	dim, err := query.ParseDimension(r.URL.Query().Get("group_by"))
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	events, err := h.window(r)
	if err != nil {
		httpx.Error(w, h.log, err)
		return
	}
	rows := BuildCostBreakdown(events, dim)
	if rows == nil {
		rows = []CostBucket{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}
