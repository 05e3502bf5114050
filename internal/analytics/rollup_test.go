package analytics

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/emiliopalmerini/llmtrace/internal/query"
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

func windowEvent(id, session, user, agent, model string, start time.Time, cost float64, tokens int64, cacheHit bool) tracelog.EventRecord {
	end := start.Add(time.Second)
	ev := tracelog.EventRecord{
		RequestID:   id,
		Model:       model,
		Provider:    "openai",
		StartTime:   start,
		EndTime:     &end,
		TotalTokens: tokens,
		Cost:        cost,
	}
	if session != "" {
		ev.SessionID = sql.NullString{String: session, Valid: true}
	}
	if user != "" {
		ev.UserID = sql.NullString{String: user, Valid: true}
	}
	if agent != "" {
		ev.AgentName = sql.NullString{String: agent, Valid: true}
	}
	if cacheHit {
		ev.CacheHitRaw = sql.NullString{String: "True", Valid: true}
	}
	return ev
}

func sampleWindow() []tracelog.EventRecord {
	day1 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 2, 15, 30, 0, 0, time.UTC)
	return []tracelog.EventRecord{
		windowEvent("req-1", "S1", "alice", "helper", "gpt-4o", day1, 0.10, 100, true),
		windowEvent("req-2", "S1", "alice", "helper", "gpt-4o", day1.Add(time.Hour), 0.20, 200, false),
		windowEvent("req-3", "S2", "bob", "", "claude-sonnet", day2, 0.30, 300, false),
		windowEvent("req-4", "", "bob", "", "claude-sonnet", day2.Add(time.Minute), 0.40, 400, true),
	}
}

func TestBuildOverview(t *testing.T) {
	o := BuildOverview(sampleWindow())

	if o.TotalRequests != 4 {
		t.Errorf("TotalRequests = %d, want 4", o.TotalRequests)
	}
	if o.UniqueSessions != 2 {
		t.Errorf("UniqueSessions = %d, want 2", o.UniqueSessions)
	}
	if o.UniqueUsers != 2 {
		t.Errorf("UniqueUsers = %d, want 2", o.UniqueUsers)
	}
	if o.TotalTokens != 1000 {
		t.Errorf("TotalTokens = %d, want 1000", o.TotalTokens)
	}
	if o.CacheHits != 2 || o.CacheHitRate != 50.0 {
		t.Errorf("cache stats = %d hits, %v rate", o.CacheHits, o.CacheHitRate)
	}
	if o.AvgResponseTime != 1 {
		t.Errorf("AvgResponseTime = %v, want 1", o.AvgResponseTime)
	}
}

func TestBuildOverview_EmptyWindow(t *testing.T) {
	o := BuildOverview(nil)
	if o.CacheHitRate != 0.0 {
		t.Errorf("empty window cache hit rate = %v, want 0.0", o.CacheHitRate)
	}
	if o.TotalRequests != 0 || o.AvgResponseTime != 0 {
		t.Errorf("empty window overview not zero: %+v", o)
	}
}

func TestBuildAgentPerformance(t *testing.T) {
	rows := BuildAgentPerformance(sampleWindow())

	// req-4 has no session id and is excluded; the remaining rows split into
	// "helper" (2 interactions) and the unknown sentinel (1).
	if len(rows) != 2 {
		t.Fatalf("expected 2 agent rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].AgentName != "helper" || rows[0].TotalInteractions != 2 {
		t.Errorf("top agent = %+v", rows[0])
	}
	if rows[1].AgentName != tracelog.UnknownSentinel || rows[1].TotalInteractions != 1 {
		t.Errorf("sentinel agent = %+v", rows[1])
	}
	if rows[0].UniqueSessions != 1 {
		t.Errorf("helper UniqueSessions = %d, want 1", rows[0].UniqueSessions)
	}
	if rows[0].CacheHitRate != 50.0 {
		t.Errorf("helper CacheHitRate = %v, want 50.0", rows[0].CacheHitRate)
	}
}

func TestBuildModelUsage(t *testing.T) {
	rows := BuildModelUsage(sampleWindow())

	if len(rows) != 2 {
		t.Fatalf("expected 2 model rows, got %d", len(rows))
	}
	// Ties on request count break by model name ascending.
	if rows[0].Model != "claude-sonnet" || rows[1].Model != "gpt-4o" {
		t.Errorf("order = %s, %s", rows[0].Model, rows[1].Model)
	}
	if rows[1].TotalRequests != 2 || rows[1].TotalTokens != 300 {
		t.Errorf("gpt-4o row = %+v", rows[1])
	}
	if rows[0].MinResponseTime != 1 || rows[0].MaxResponseTime != 1 {
		t.Errorf("response bounds = %v..%v, want 1..1", rows[0].MinResponseTime, rows[0].MaxResponseTime)
	}
}

func TestBuildModelUsage_SkipsEmptyModel(t *testing.T) {
	ev := windowEvent("req-1", "S1", "u", "", "", time.Now().UTC(), 0.1, 10, false)
	if rows := BuildModelUsage([]tracelog.EventRecord{ev}); len(rows) != 0 {
		t.Errorf("expected no rows for empty model, got %+v", rows)
	}
}

func TestBuildTrends_DailyBucketsOmitEmpty(t *testing.T) {
	rows := BuildTrends(sampleWindow(), query.GranularityDay)

	if len(rows) != 2 {
		t.Fatalf("expected 2 non-empty buckets, got %d", len(rows))
	}
	if rows[0].TimePeriod != "2024-06-01" || rows[1].TimePeriod != "2024-06-02" {
		t.Errorf("bucket order = %s, %s", rows[0].TimePeriod, rows[1].TimePeriod)
	}
	if rows[0].TotalRequests != 2 || rows[0].UniqueSessions != 1 {
		t.Errorf("day1 bucket = %+v", rows[0])
	}
}

func TestBuildTrends_HourlyGranularity(t *testing.T) {
	rows := BuildTrends(sampleWindow(), query.GranularityHour)

	if len(rows) != 3 {
		t.Fatalf("expected 3 hourly buckets, got %d: %+v", len(rows), rows)
	}
	if rows[0].TimePeriod != "2024-06-01 09:00:00" {
		t.Errorf("first hourly bucket = %s", rows[0].TimePeriod)
	}
	// req-3 and req-4 land in the same 15:00 hour.
	if rows[2].TotalRequests != 2 {
		t.Errorf("15:00 bucket requests = %d, want 2", rows[2].TotalRequests)
	}
}

func TestBuildTrends_ReconcilesWithOverview(t *testing.T) {
	events := sampleWindow()
	overview := BuildOverview(events)
	buckets := BuildTrends(events, query.GranularityDay)

	var requests int
	var tokens int64
	var cost float64
	for _, b := range buckets {
		requests += b.TotalRequests
		tokens += b.TotalTokens
		cost += b.TotalCost
	}
	if requests != overview.TotalRequests {
		t.Errorf("bucketed requests = %d, overview = %d", requests, overview.TotalRequests)
	}
	if tokens != overview.TotalTokens {
		t.Errorf("bucketed tokens = %d, overview = %d", tokens, overview.TotalTokens)
	}
	if math.Abs(cost-overview.TotalCost) > 1e-9 {
		t.Errorf("bucketed cost = %v, overview = %v", cost, overview.TotalCost)
	}
}

func TestBuildCostBreakdown_PercentagesSumToHundred(t *testing.T) {
	for _, dim := range []query.Dimension{query.DimensionModel, query.DimensionAgent, query.DimensionUser} {
		rows := BuildCostBreakdown(sampleWindow(), dim)
		if len(rows) == 0 {
			t.Fatalf("dimension %s produced no rows", dim)
		}
		var pct float64
		for _, row := range rows {
			if row.CostPercentage < 0 || row.CostPercentage > 100 {
				t.Errorf("%s: percentage out of range: %+v", dim, row)
			}
			pct += row.CostPercentage
		}
		if math.Abs(pct-100) > 0.1 {
			t.Errorf("%s: percentages sum to %v, want 100 ±0.1", dim, pct)
		}
	}
}

func TestBuildCostBreakdown_SentinelGrouping(t *testing.T) {
	rows := BuildCostBreakdown(sampleWindow(), query.DimensionAgent)

	var sentinelCost float64
	for _, row := range rows {
		if row.Category == tracelog.UnknownSentinel {
			sentinelCost = row.TotalCost
		}
	}
	// req-3 and req-4 both lack agent metadata and collapse into one bucket.
	if math.Abs(sentinelCost-0.70) > 1e-9 {
		t.Errorf("unknown-agent cost = %v, want 0.70", sentinelCost)
	}
}

func TestBuildCostBreakdown_SkipsZeroCostRows(t *testing.T) {
	events := append(sampleWindow(),
		windowEvent("req-5", "S3", "carol", "", "gpt-4o", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), 0, 50, false))

	rows := BuildCostBreakdown(events, query.DimensionUser)

	for _, row := range rows {
		if row.Category == "carol" {
			t.Errorf("zero-cost-only category emitted: %+v", row)
		}
	}
}
