// Package analytics folds request-log rows inside a rolling window into
// dimension-grouped and time-bucketed aggregates. Every rollup is a pure
// function of its input slice; nothing is cached between calls, and
// percentage denominators are recomputed per window.
package analytics

import (
	"sort"

	"github.com/emiliopalmerini/llmtrace/internal/query"
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
	"github.com/emiliopalmerini/llmtrace/internal/util"
)

// meanAcc accumulates a mean over records that actually carry a duration.
type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v float64) { m.sum += v; m.n++ }

func (m meanAcc) mean() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

func hitRate(hits, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return util.Round2(100 * float64(hits) / float64(total))
}

// BuildOverview folds the whole window into one totals row.
func BuildOverview(events []tracelog.EventRecord) Overview {
	o := Overview{TotalRequests: len(events)}
	sessionSet := map[string]struct{}{}
	userSet := map[string]struct{}{}
	var rt meanAcc

	for _, ev := range events {
		if ev.SessionID.Valid {
			sessionSet[ev.SessionID.String] = struct{}{}
		}
		userSet[ev.User()] = struct{}{}
		o.TotalTokens += ev.TotalTokens
		o.TotalCost += ev.Cost
		if secs, ok := ev.ResponseSeconds(); ok {
			rt.add(secs)
		}
		if ev.CacheHit() {
			o.CacheHits++
		}
		if ev.IsFunctionCall() {
			o.TotalFunctionCalls++
		}
	}

	o.UniqueSessions = len(sessionSet)
	o.UniqueUsers = len(userSet)
	o.AvgResponseTime = rt.mean()
	o.CacheHitRate = hitRate(o.CacheHits, o.TotalRequests)
	return o
}

// BuildAgentPerformance groups the window by agent. Rows without a session
// id are excluded: they are one-shot calls, not agent conversations. Absent
// agent metadata collapses into the unknown sentinel bucket.
func BuildAgentPerformance(events []tracelog.EventRecord) []AgentPerformance {
	type acc struct {
		row      AgentPerformance
		sessions map[string]struct{}
		rt       meanAcc
		convLen  meanAcc
		hits     int
	}
	byAgent := map[string]*acc{}

	for _, ev := range events {
		if !ev.SessionID.Valid {
			continue
		}
		agent := ev.Agent()
		a, ok := byAgent[agent]
		if !ok {
			a = &acc{row: AgentPerformance{AgentName: agent}, sessions: map[string]struct{}{}}
			byAgent[agent] = a
		}
		a.sessions[ev.SessionID.String] = struct{}{}
		a.row.TotalInteractions++
		a.row.TotalTokensUsed += ev.TotalTokens
		a.row.TotalCost += ev.Cost
		if secs, ok := ev.ResponseSeconds(); ok {
			a.rt.add(secs)
		}
		a.convLen.add(float64(len(ev.Messages.String) + len(ev.Response.String)))
		if ev.IsFunctionCall() {
			a.row.FunctionCalls++
		}
		if ev.CacheHit() {
			a.hits++
		}
	}

	rows := make([]AgentPerformance, 0, len(byAgent))
	for _, a := range byAgent {
		a.row.UniqueSessions = len(a.sessions)
		a.row.AvgResponseTime = a.rt.mean()
		a.row.AvgConversationLength = a.convLen.mean()
		a.row.CacheHitRate = hitRate(a.hits, a.row.TotalInteractions)
		rows = append(rows, a.row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalInteractions != rows[j].TotalInteractions {
			return rows[i].TotalInteractions > rows[j].TotalInteractions
		}
		return rows[i].AgentName < rows[j].AgentName
	})
	return rows
}

// BuildModelUsage groups the window by (model, provider). Rows with an empty
// model name are skipped.
func BuildModelUsage(events []tracelog.EventRecord) []ModelUsage {
	type key struct{ model, provider string }
	type acc struct {
		row  ModelUsage
		rt   meanAcc
		hits int
	}
	byModel := map[key]*acc{}

	for _, ev := range events {
		if ev.Model == "" {
			continue
		}
		k := key{model: ev.Model, provider: ev.Provider}
		a, ok := byModel[k]
		if !ok {
			a = &acc{row: ModelUsage{Model: ev.Model, Provider: ev.Provider}}
			byModel[k] = a
		}
		a.row.TotalRequests++
		a.row.TotalPromptTokens += ev.PromptTokens
		a.row.TotalCompletionTokens += ev.CompletionTokens
		a.row.TotalTokens += ev.TotalTokens
		a.row.TotalCost += ev.Cost
		if secs, ok := ev.ResponseSeconds(); ok {
			if a.rt.n == 0 || secs < a.row.MinResponseTime {
				a.row.MinResponseTime = secs
			}
			if secs > a.row.MaxResponseTime {
				a.row.MaxResponseTime = secs
			}
			a.rt.add(secs)
		}
		if ev.CacheHit() {
			a.hits++
		}
	}

	rows := make([]ModelUsage, 0, len(byModel))
	for _, a := range byModel {
		a.row.AvgResponseTime = a.rt.mean()
		a.row.CacheHits = a.hits
		a.row.CacheHitRate = hitRate(a.hits, a.row.TotalRequests)
		rows = append(rows, a.row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRequests != rows[j].TotalRequests {
			return rows[i].TotalRequests > rows[j].TotalRequests
		}
		return rows[i].Model < rows[j].Model
	})
	return rows
}

// BuildTrends partitions the window into half-open [start, start+granularity)
// buckets. Only buckets with at least one record are emitted, in ascending
// time order.
func BuildTrends(events []tracelog.EventRecord, g query.Granularity) []TrendBucket {
	type acc struct {
		row      TrendBucket
		sessions map[string]struct{}
		rt       meanAcc
	}
	byBucket := map[string]*acc{}

	for _, ev := range events {
		label := g.Label(g.Bucket(ev.StartTime))
		a, ok := byBucket[label]
		if !ok {
			a = &acc{row: TrendBucket{TimePeriod: label}, sessions: map[string]struct{}{}}
			byBucket[label] = a
		}
		a.row.TotalRequests++
		if ev.SessionID.Valid {
			a.sessions[ev.SessionID.String] = struct{}{}
		}
		a.row.TotalTokens += ev.TotalTokens
		a.row.TotalCost += ev.Cost
		if secs, ok := ev.ResponseSeconds(); ok {
			a.rt.add(secs)
		}
		if ev.IsFunctionCall() {
			a.row.FunctionCalls++
		}
	}

	rows := make([]TrendBucket, 0, len(byBucket))
	for _, a := range byBucket {
		a.row.UniqueSessions = len(a.sessions)
		a.row.AvgResponseTime = a.rt.mean()
		rows = append(rows, a.row)
	}
	// Bucket labels sort chronologically as strings.
	sort.Slice(rows, func(i, j int) bool { return rows[i].TimePeriod < rows[j].TimePeriod })
	return rows
}

// BuildCostBreakdown groups window cost by the given dimension. Zero-cost
// records are excluded from the category rows; the percentage denominator is
// the total cost of this same filtered window, recomputed per call.
func BuildCostBreakdown(events []tracelog.EventRecord, dim query.Dimension) []CostBucket {
	var windowTotal float64
	byCategory := map[string]*CostBucket{}

	for _, ev := range events {
		windowTotal += ev.Cost
		if ev.Cost <= 0 {
			continue
		}
		category := categoryOf(ev, dim)
		b, ok := byCategory[category]
		if !ok {
			b = &CostBucket{Category: category}
			byCategory[category] = b
		}
		b.TotalRequests++
		b.TotalTokens += ev.TotalTokens
		b.TotalCost += ev.Cost
	}

	rows := make([]CostBucket, 0, len(byCategory))
	for _, b := range byCategory {
		b.AvgCostPerRequest = b.TotalCost / float64(b.TotalRequests)
		if windowTotal > 0 {
			b.CostPercentage = util.Round2(100 * b.TotalCost / windowTotal)
		}
		rows = append(rows, *b)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalCost != rows[j].TotalCost {
			return rows[i].TotalCost > rows[j].TotalCost
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func categoryOf(ev tracelog.EventRecord, dim query.Dimension) string {
	switch dim {
	case query.DimensionAgent:
		return ev.Agent()
	case query.DimensionUser:
		return ev.User()
	default:
		return ev.Model
	}
}
