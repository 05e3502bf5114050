package sessions

import (
	"context"

	"github.com/emiliopalmerini/llmtrace/internal/query"
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

// Repository defines the data access this feature needs from the event log.
// tracelog.Store satisfies it.
type Repository interface {
	EventsBySession(ctx context.Context, sessionID string) ([]tracelog.EventRecord, error)
	SearchSessionIDs(ctx context.Context, c query.Criteria, page query.Page) ([]string, error)
	EventsForSessions(ctx context.Context, sessionIDs []string) ([]tracelog.EventRecord, error)
}
