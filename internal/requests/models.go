package requests

import "time"

// Detail is one fully resolved request, with payload columns decoded
// best-effort: a malformed payload comes back in its raw serialized form
// instead of failing the lookup.
type Detail struct {
	RequestID        string     `json:"request_id"`
	SessionID        *string    `json:"session_id"`
	UserID           *string    `json:"user_id"`
	Model            string     `json:"model"`
	Provider         string     `json:"provider"`
	CallType         string     `json:"call_type"`
	APIBase          *string    `json:"api_base"`
	RequestStart     time.Time  `json:"request_start"`
	RequestEnd       *time.Time `json:"request_end"`
	CompletionStart  *time.Time `json:"completion_start"`
	TotalTime        *float64   `json:"total_time"`
	TimeToFirstToken *float64   `json:"time_to_first_token"`
	PromptTokens     int64      `json:"prompt_tokens"`
	CompletionTokens int64      `json:"completion_tokens"`
	TotalTokens      int64      `json:"total_tokens"`
	Cost             float64    `json:"cost"`
	CacheHit         bool       `json:"cache_hit"`
	CacheKey         *string    `json:"cache_key"`
	Metadata         any        `json:"metadata"`
	Messages         any        `json:"messages"`
	Response         any        `json:"response"`
	Tags             any        `json:"tags"`
}

// ConversationPayload is the messages-only view of one request.
type ConversationPayload struct {
	RequestID string `json:"request_id"`
	Messages  any    `json:"messages"`
	Response  any    `json:"response"`
}
