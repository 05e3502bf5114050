package sessions

import "time"

// Message is one row of the per-session trace view.
type Message struct {
	RequestID           string    `json:"request_id"`
	MessageSequence     int       `json:"message_sequence"`
	Timestamp           time.Time `json:"timestamp"`
	Model               string    `json:"model"`
	PromptTokens        int64     `json:"prompt_tokens"`
	CompletionTokens    int64     `json:"completion_tokens"`
	TotalTokens         int64     `json:"total_tokens"`
	Cost                float64   `json:"cost"`
	ResponseTimeSeconds *float64  `json:"response_time_seconds"`
	MessagesLength      int       `json:"messages_length"`
	ResponseLength      int       `json:"response_length"`
	ResponseType        string    `json:"response_type"`
	CacheHit            bool      `json:"cache_hit"`
}

// Summary is the session-level aggregate. It is derived on demand, never
// stored.
type Summary struct {
	SessionID            string    `json:"session_id"`
	UserID               string    `json:"user_id"`
	AgentName            string    `json:"agent_name"`
	ConversationName     string    `json:"conversation_name"`
	TotalMessages        int       `json:"total_messages"`
	SessionStart         time.Time `json:"session_start"`
	SessionEnd           time.Time `json:"session_end"`
	TotalDurationSeconds float64   `json:"total_duration_seconds"`
	TotalTokens          int64     `json:"total_tokens"`
	TotalCost            float64   `json:"total_cost"`
	AvgResponseTime      float64   `json:"avg_response_time"`
	FunctionCallsCount   int       `json:"function_calls_count"`
	CacheHitRate         float64   `json:"cache_hit_rate"`
	ModelsUsed           []string  `json:"models_used"`
}
