package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

func newTestRouter(repo Repository) *chi.Mux {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(repo, zerolog.Nop()))
	return r
}

func TestHandler_WindowValidation(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
	}{
		{"default days", "/api/v1/analytics/overview", http.StatusOK},
		{"explicit days", "/api/v1/analytics/overview?days=7", http.StatusOK},
		{"days too large", "/api/v1/analytics/overview?days=366", http.StatusBadRequest},
		{"days zero", "/api/v1/analytics/overview?days=0", http.StatusBadRequest},
		{"days not a number", "/api/v1/analytics/overview?days=week", http.StatusBadRequest},
		{"unknown granularity", "/api/v1/analytics/usage-trends?granularity=month", http.StatusBadRequest},
		{"unknown group_by", "/api/v1/analytics/cost-breakdown?group_by=provider", http.StatusBadRequest},
		{"valid group_by", "/api/v1/analytics/cost-breakdown?group_by=user", http.StatusOK},
		{"valid granularity", "/api/v1/analytics/usage-trends?granularity=hour", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			touched := false
			repo := &MockRepository{
				EventsSinceFunc: func(ctx context.Context, cutoff time.Time) ([]tracelog.EventRecord, error) {
					touched = true
					return nil, nil
				},
			}

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			newTestRouter(repo).ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedStatus == http.StatusBadRequest && touched {
				t.Error("store must not be touched on validation failure")
			}
		})
	}
}

func TestHandler_CutoffMatchesDays(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	var gotCutoff time.Time
	repo := &MockRepository{
		EventsSinceFunc: func(ctx context.Context, cutoff time.Time) ([]tracelog.EventRecord, error) {
			gotCutoff = cutoff
			return nil, nil
		},
	}
	h := NewHandler(repo, zerolog.Nop())
	h.now = func() time.Time { return now }

	r := chi.NewRouter()
	RegisterRoutes(r, h)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/overview?days=7", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if want := now.AddDate(0, 0, -7); !gotCutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", gotCutoff, want)
	}
}

func TestHandler_Overview_EmptyWindowIsZeroes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/overview", nil)
	w := httptest.NewRecorder()
	newTestRouter(&MockRepository{}).ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["total_requests"].(float64) != 0 {
		t.Errorf("total_requests = %v, want 0", body["total_requests"])
	}
	if body["cache_hit_rate"].(float64) != 0 {
		t.Errorf("cache_hit_rate = %v, want 0", body["cache_hit_rate"])
	}
}

func TestHandler_Agents_EmptyListNotNull(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/agents", nil)
	w := httptest.NewRecorder()
	newTestRouter(&MockRepository{}).ServeHTTP(w, req)

	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("empty rollup body = %q, want []", got)
	}
}

func TestHandler_Trends_ServesBuckets(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := &MockRepository{
		EventsSinceFunc: func(ctx context.Context, cutoff time.Time) ([]tracelog.EventRecord, error) {
			return []tracelog.EventRecord{
				windowEvent("req-1", "S1", "u", "", "gpt-4o", start, 0.1, 10, false),
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/usage-trends?granularity=day", nil)
	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, req)

	var rows []TrendBucket
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(rows) != 1 || rows[0].TimePeriod != "2024-06-01" {
		t.Errorf("rows = %+v", rows)
	}
}
