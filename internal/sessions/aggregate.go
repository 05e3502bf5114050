// Package sessions folds flat request-log rows into per-session views: the
// ordered message trace and the aggregate summary.
package sessions

import (
	"sort"

	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
	"github.com/emiliopalmerini/llmtrace/internal/util"
)

const (
	responseTypeFunctionCall = "function_call"
	responseTypeRegular      = "regular_response"
)

// Trace builds the per-message view of one session. Sequence numbers are the
// 1-based rank by ascending start_time, ties broken by request_id, so the
// numbering is a deterministic total order.
func Trace(events []tracelog.EventRecord) []Message {
	tracelog.SortEvents(events)

	messages := make([]Message, 0, len(events))
	for i, ev := range events {
		msg := Message{
			RequestID:        ev.RequestID,
			MessageSequence:  i + 1,
			Timestamp:        ev.StartTime,
			Model:            ev.Model,
			PromptTokens:     ev.PromptTokens,
			CompletionTokens: ev.CompletionTokens,
			TotalTokens:      ev.TotalTokens,
			Cost:             ev.Cost,
			MessagesLength:   len(ev.Messages.String),
			ResponseLength:   len(ev.Response.String),
			ResponseType:     responseTypeRegular,
			CacheHit:         ev.CacheHit(),
		}
		if secs, ok := ev.ResponseSeconds(); ok {
			msg.ResponseTimeSeconds = &secs
		}
		if ev.IsFunctionCall() {
			msg.ResponseType = responseTypeFunctionCall
		}
		messages = append(messages, msg)
	}
	return messages
}

// Summarize folds all records of one session into a Summary. The caller
// guarantees at least one record: a session exists only by having records,
// so "empty session" is a NotFound at the lookup layer, not a zero summary.
func Summarize(events []tracelog.EventRecord) Summary {
	tracelog.SortEvents(events)

	first := events[0]
	s := Summary{
		SessionID:        first.SessionID.String,
		UserID:           first.User(),
		AgentName:        first.Agent(),
		ConversationName: first.Conversation(),
		TotalMessages:    len(events),
		SessionStart:     first.StartTime,
		SessionEnd:       first.StartTime,
	}

	var (
		durationSum float64
		durationN   int
		cacheHits   int
		models      = map[string]struct{}{}
	)
	for _, ev := range events {
		s.TotalTokens += ev.TotalTokens
		s.TotalCost += ev.Cost

		if ev.EndTime != nil && ev.EndTime.After(s.SessionEnd) {
			s.SessionEnd = *ev.EndTime
		}
		if secs, ok := ev.ResponseSeconds(); ok {
			durationSum += secs
			durationN++
		}
		if ev.CacheHit() {
			cacheHits++
		}
		if ev.IsFunctionCall() {
			s.FunctionCallsCount++
		}
		if ev.Model != "" {
			models[ev.Model] = struct{}{}
		}
	}

	// A single-message session has no elapsed span between messages.
	if len(events) > 1 {
		s.TotalDurationSeconds = s.SessionEnd.Sub(s.SessionStart).Seconds()
	}
	if durationN > 0 {
		s.AvgResponseTime = durationSum / float64(durationN)
	}
	s.CacheHitRate = util.Round2(100 * float64(cacheHits) / float64(len(events)))

	s.ModelsUsed = make([]string, 0, len(models))
	for m := range models {
		s.ModelsUsed = append(s.ModelsUsed, m)
	}
	sort.Strings(s.ModelsUsed)

	return s
}

// SummarizeAll groups mixed-session records by session identity and folds
// each group, returning summaries in the order sessionIDs lists them.
func SummarizeAll(sessionIDs []string, events []tracelog.EventRecord) []Summary {
	grouped := make(map[string][]tracelog.EventRecord, len(sessionIDs))
	for _, ev := range events {
		if !ev.SessionID.Valid {
			continue
		}
		grouped[ev.SessionID.String] = append(grouped[ev.SessionID.String], ev)
	}

	summaries := make([]Summary, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		if group, ok := grouped[id]; ok {
			summaries = append(summaries, Summarize(group))
		}
	}
	return summaries
}
