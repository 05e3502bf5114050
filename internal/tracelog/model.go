// Package tracelog models the append-only LLM request log this service
// queries. One EventRecord is one resolved call, written once by the serving
// proxy and never mutated here.
package tracelog

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/emiliopalmerini/llmtrace/internal/util"
)

// Sentinel values substituted for absent identity metadata, so rows with
// missing agent/user collapse into one group instead of being dropped.
const (
	UnknownSentinel     = "unknown"
	DefaultConversation = "default"
)

// EventRecord is one logged LLM call. Payload columns (messages, response,
// metadata, tags) stay in their raw serialized form until a caller asks for
// them decoded. AgentName and ConversationName are extracted from the
// metadata JSON at scan time.
type EventRecord struct {
	RequestID           string
	SessionID           sql.NullString
	UserID              sql.NullString
	AgentName           sql.NullString
	ConversationName    sql.NullString
	Model               string
	Provider            string
	CallType            string
	APIBase             sql.NullString
	StartTime           time.Time
	EndTime             *time.Time
	CompletionStartTime *time.Time
	PromptTokens        int64
	CompletionTokens    int64
	TotalTokens         int64
	Cost                float64
	CacheHitRaw         sql.NullString
	CacheKey            sql.NullString
	Messages            sql.NullString
	Response            sql.NullString
	Metadata            sql.NullString
	Tags                sql.NullString
}

// CacheHit normalizes the stored cache flag. The proxy writes it as a
// string; "True", "true" and "1" all count as a hit.
func (e EventRecord) CacheHit() bool {
	if !e.CacheHitRaw.Valid {
		return false
	}
	switch e.CacheHitRaw.String {
	case "True", "true", "1":
		return true
	default:
		return false
	}
}

// ResponseSeconds is the wall-clock duration of the call. Records without an
// end_time report ok=false and must be excluded from means, never counted
// as zero.
func (e EventRecord) ResponseSeconds() (float64, bool) {
	if e.EndTime == nil {
		return 0, false
	}
	return e.EndTime.Sub(e.StartTime).Seconds(), true
}

// IsFunctionCall classifies the response as a tool/function call. This is a
// substring heuristic over the raw response payload, not a schema check; it
// matches what the upstream proxy serializes today and is documented as an
// approximation.
func (e EventRecord) IsFunctionCall() bool {
	if !e.Response.Valid {
		return false
	}
	return strings.Contains(e.Response.String, "tool_call") ||
		strings.Contains(e.Response.String, "function_call")
}

// Agent returns the agent name, or the unknown sentinel when absent.
func (e EventRecord) Agent() string {
	return util.NullStringOr(e.AgentName, UnknownSentinel)
}

// User returns the user id, or the unknown sentinel when absent.
func (e EventRecord) User() string {
	return util.NullStringOr(e.UserID, UnknownSentinel)
}

// Conversation returns the conversation name, or its default sentinel.
func (e EventRecord) Conversation() string {
	return util.NullStringOr(e.ConversationName, DefaultConversation)
}

// SortEvents orders records by ascending start_time, breaking timestamp ties
// by request_id so every caller sees the same total order.
func SortEvents(events []EventRecord) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].RequestID < events[j].RequestID
		}
		return events[i].StartTime.Before(events[j].StartTime)
	})
}
