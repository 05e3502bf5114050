package analytics

import (
	"context"
	"time"

	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

// MockRepository is a mock implementation of Repository for testing.
type MockRepository struct {
	EventsSinceFunc func(ctx context.Context, cutoff time.Time) ([]tracelog.EventRecord, error)
}

func (m *MockRepository) EventsSince(ctx context.Context, cutoff time.Time) ([]tracelog.EventRecord, error) {
	if m.EventsSinceFunc != nil {
		return m.EventsSinceFunc(ctx, cutoff)
	}
	return nil, nil
}
