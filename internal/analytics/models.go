package analytics

// Overview is the high-level totals view of one time window.
type Overview struct {
	TotalRequests      int     `json:"total_requests"`
	UniqueSessions     int     `json:"unique_sessions"`
	UniqueUsers        int     `json:"unique_users"`
	TotalTokens        int64   `json:"total_tokens"`
	TotalCost          float64 `json:"total_cost"`
	AvgResponseTime    float64 `json:"avg_response_time"`
	CacheHits          int     `json:"cache_hits"`
	CacheHitRate       float64 `json:"cache_hit_rate"`
	TotalFunctionCalls int     `json:"total_function_calls"`
}

// AgentPerformance is one per-agent rollup row.
type AgentPerformance struct {
	AgentName             string  `json:"agent_name"`
	UniqueSessions        int     `json:"unique_sessions"`
	TotalInteractions     int     `json:"total_interactions"`
	AvgResponseTime       float64 `json:"avg_response_time"`
	TotalTokensUsed       int64   `json:"total_tokens_used"`
	TotalCost             float64 `json:"total_cost"`
	AvgConversationLength float64 `json:"avg_conversation_length"`
	FunctionCalls         int     `json:"function_calls"`
	CacheHitRate          float64 `json:"cache_hit_rate"`
}

// ModelUsage is one per-(model, provider) rollup row.
type ModelUsage struct {
	Model                 string  `json:"model"`
	Provider              string  `json:"provider"`
	TotalRequests         int     `json:"total_requests"`
	TotalPromptTokens     int64   `json:"total_prompt_tokens"`
	TotalCompletionTokens int64   `json:"total_completion_tokens"`
	TotalTokens           int64   `json:"total_tokens"`
	TotalCost             float64 `json:"total_cost"`
	AvgResponseTime       float64 `json:"avg_response_time"`
	MinResponseTime       float64 `json:"min_response_time"`
	MaxResponseTime       float64 `json:"max_response_time"`
	CacheHits             int     `json:"cache_hits"`
	CacheHitRate          float64 `json:"cache_hit_rate"`
}

// TrendBucket is one non-empty time bucket of the usage trend. Buckets with
// no records are omitted, so the series is not necessarily contiguous.
type TrendBucket struct {
	TimePeriod      string  `json:"time_period"`
	TotalRequests   int     `json:"total_requests"`
	UniqueSessions  int     `json:"unique_sessions"`
	TotalTokens     int64   `json:"total_tokens"`
	TotalCost       float64 `json:"total_cost"`
	AvgResponseTime float64 `json:"avg_response_time"`
	FunctionCalls   int     `json:"function_calls"`
}

// CostBucket is one category row of the cost breakdown.
type CostBucket struct {
	Category          string  `json:"category"`
	TotalRequests     int     `json:"total_requests"`
	TotalTokens       int64   `json:"total_tokens"`
	TotalCost         float64 `json:"total_cost"`
	AvgCostPerRequest float64 `json:"avg_cost_per_request"`
	CostPercentage    float64 `json:"cost_percentage"`
}
