package query

import (
	"fmt"
	"strconv"
	"time"
)

// Criteria is the optional predicate bag for a session search. A zero-valued
// field contributes no predicate; it never means "match empty or null".
// Present fields are combined with logical AND.
type Criteria struct {
	AgentName string     `json:"agent_name,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	Model     string     `json:"model,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	MinCost   *float64   `json:"min_cost,omitempty"`
	MaxCost   *float64   `json:"max_cost,omitempty"`
}

// ValidationError reports a malformed or out-of-range filter or parameter.
// It is rejected before any store access.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// FormatTime normalizes a timestamp to the store's convention: UTC wall
// clock, RFC3339. Criteria carrying an explicit offset are converted, so
// local-time semantics never leak into predicates.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseDays validates an analytics window size. The raw value comes from an
// HTTP query parameter; empty means the default.
func ParseDays(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Validationf("invalid days %q", raw)
	}
	if n < 1 || n > 365 {
		return 0, Validationf("days must be between 1 and 365, got %d", n)
	}
	return n, nil
}
