package requests

import (
	"context"

	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

// MockRepository is a mock implementation of Repository for testing.
type MockRepository struct {
	EventByRequestIDFunc func(ctx context.Context, requestID string) (tracelog.EventRecord, error)
}

func (m *MockRepository) EventByRequestID(ctx context.Context, requestID string) (tracelog.EventRecord, error) {
	if m.EventByRequestIDFunc != nil {
		return m.EventByRequestIDFunc(ctx, requestID)
	}
	return tracelog.EventRecord{}, tracelog.ErrNotFound
}
