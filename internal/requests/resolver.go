// Package requests resolves single records out of the request log, decoding
// their embedded payloads for inspection.
package requests

import (
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
	"github.com/emiliopalmerini/llmtrace/internal/util"
)

// BuildDetail decodes one event record into its response shape. Derived
// timings stay null when the underlying timestamps are absent, never zero.
func BuildDetail(ev tracelog.EventRecord) Detail {
	d := Detail{
		RequestID:        ev.RequestID,
		SessionID:        util.NullStringToPtr(ev.SessionID),
		UserID:           util.NullStringToPtr(ev.UserID),
		Model:            ev.Model,
		Provider:         ev.Provider,
		CallType:         ev.CallType,
		APIBase:          util.NullStringToPtr(ev.APIBase),
		RequestStart:     ev.StartTime,
		RequestEnd:       ev.EndTime,
		CompletionStart:  ev.CompletionStartTime,
		PromptTokens:     ev.PromptTokens,
		CompletionTokens: ev.CompletionTokens,
		TotalTokens:      ev.TotalTokens,
		Cost:             ev.Cost,
		CacheHit:         ev.CacheHit(),
		CacheKey:         util.NullStringToPtr(ev.CacheKey),
		Metadata:         tracelog.DecodePayload(ev.Metadata),
		Messages:         tracelog.DecodePayload(ev.Messages),
		Response:         tracelog.DecodePayload(ev.Response),
		Tags:             tracelog.DecodePayload(ev.Tags),
	}
	if secs, ok := ev.ResponseSeconds(); ok {
		d.TotalTime = &secs
	}
	if ev.CompletionStartTime != nil {
		ttft := ev.CompletionStartTime.Sub(ev.StartTime).Seconds()
		d.TimeToFirstToken = &ttft
	}
	return d
}

// BuildConversation extracts just the conversation payloads of one record.
func BuildConversation(ev tracelog.EventRecord) ConversationPayload {
	return ConversationPayload{
		RequestID: ev.RequestID,
		Messages:  tracelog.DecodePayload(ev.Messages),
		Response:  tracelog.DecodePayload(ev.Response),
	}
}
