package requests

import (
	"context"
	"database/sql"
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

func sampleEvent() tracelog.EventRecord {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Second)
	firstToken := start.Add(500 * time.Millisecond)
	return tracelog.EventRecord{
		RequestID:           "req-1",
		SessionID:           sql.NullString{String: "S1", Valid: true},
		Model:               "gpt-4o",
		Provider:            "openai",
		CallType:            "completion",
		StartTime:           start,
		EndTime:             &end,
		CompletionStartTime: &firstToken,
		PromptTokens:        10,
		CompletionTokens:    20,
		TotalTokens:         30,
		Cost:                0.05,
		CacheHitRaw:         sql.NullString{String: "True", Valid: true},
		Metadata:            sql.NullString{String: `{"agent_name":"helper"}`, Valid: true},
		Messages:            sql.NullString{String: `[{"role":"user","content":"hi"}]`, Valid: true},
		Response:            sql.NullString{String: `{"content":"hello"}`, Valid: true},
	}
}

func TestHandler_Detail(t *testing.T) {
	repo := &MockRepository{
		EventByRequestIDFunc: func(ctx context.Context, requestID string) (tracelog.EventRecord, error) {
			if requestID != "req-1" {
				t.Errorf("requestID = %q, want req-1", requestID)
			}
			return sampleEvent(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests/req-1", nil)
	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["total_time"].(float64) != 3 {
		t.Errorf("total_time = %v, want 3", body["total_time"])
	}
	if body["time_to_first_token"].(float64) != 0.5 {
		t.Errorf("time_to_first_token = %v, want 0.5", body["time_to_first_token"])
	}
	if body["cache_hit"].(bool) != true {
		t.Error("cache_hit not normalized to true")
	}
	// Valid JSON payloads re-serialize structured, not as quoted strings.
	if _, ok := body["metadata"].(map[string]any); !ok {
		t.Errorf("metadata not decoded: %T", body["metadata"])
	}
	if _, ok := body["messages"].([]any); !ok {
		t.Errorf("messages not decoded: %T", body["messages"])
	}
}

func TestHandler_Detail_MalformedPayloadReturnedRaw(t *testing.T) {
	ev := sampleEvent()
	ev.Metadata = sql.NullString{String: `{"broken": `, Valid: true}
	repo := &MockRepository{
		EventByRequestIDFunc: func(ctx context.Context, requestID string) (tracelog.EventRecord, error) {
			return ev, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests/req-1", nil)
	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("malformed payload must not fail the lookup, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["metadata"] != `{"broken": ` {
		t.Errorf("metadata = %v, want raw original form", body["metadata"])
	}
	if _, ok := body["messages"].([]any); !ok {
		t.Error("intact payloads should still decode when one is malformed")
	}
}

func TestHandler_Detail_NotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests/nope", nil)
	w := httptest.NewRecorder()
	newTestRouter(&MockRepository{}).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandler_Conversation(t *testing.T) {
	repo := &MockRepository{
		EventByRequestIDFunc: func(ctx context.Context, requestID string) (tracelog.EventRecord, error) {
			return sampleEvent(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests/req-1/messages", nil)
	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, req)

	var payload ConversationPayload
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.RequestID != "req-1" {
		t.Errorf("request_id = %q", payload.RequestID)
	}
	if payload.Messages == nil || payload.Response == nil {
		t.Error("conversation payloads missing")
	}
}

func TestBuildDetail_NullTimingsStayNull(t *testing.T) {
	ev := sampleEvent()
	ev.EndTime = nil
	ev.CompletionStartTime = nil

	d := BuildDetail(ev)

	if d.TotalTime != nil {
		t.Errorf("TotalTime = %v, want nil", *d.TotalTime)
	}
	if d.TimeToFirstToken != nil {
		t.Errorf("TimeToFirstToken = %v, want nil", *d.TimeToFirstToken)
	}
}
