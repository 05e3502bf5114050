package sessions

import (
	"context"

	"github.com/emiliopalmerini/llmtrace/internal/query"
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

// MockRepository is a mock implementation of Repository for testing.
type MockRepository struct {
	EventsBySessionFunc   func(ctx context.Context, sessionID string) ([]tracelog.EventRecord, error)
	SearchSessionIDsFunc  func(ctx context.Context, c query.Criteria, page query.Page) ([]string, error)
	EventsForSessionsFunc func(ctx context.Context, sessionIDs []string) ([]tracelog.EventRecord, error)
}

func (m *MockRepository) EventsBySession(ctx context.Context, sessionID string) ([]tracelog.EventRecord, error) {
	if m.EventsBySessionFunc != nil {
		return m.EventsBySessionFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *MockRepository) SearchSessionIDs(ctx context.Context, c query.Criteria, page query.Page) ([]string, error) {
	if m.SearchSessionIDsFunc != nil {
		return m.SearchSessionIDsFunc(ctx, c, page)
	}
	return nil, nil
}

func (m *MockRepository) EventsForSessions(ctx context.Context, sessionIDs []string) ([]tracelog.EventRecord, error) {
	if m.EventsForSessionsFunc != nil {
		return m.EventsForSessionsFunc(ctx, sessionIDs)
	}
	return nil, nil
}
