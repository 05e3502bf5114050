package requests

import (
	"context"

	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

// Repository defines the data access this feature needs from the event log.
// tracelog.Store satisfies it.
type Repository interface {
	EventByRequestID(ctx context.Context, requestID string) (tracelog.EventRecord, error)
}
