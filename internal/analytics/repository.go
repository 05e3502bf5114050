package analytics

import (
	"context"
	"time"

	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

// Repository defines the data access this feature needs from the event log.
// tracelog.Store satisfies it.
type Repository interface {
	EventsSince(ctx context.Context, cutoff time.Time) ([]tracelog.EventRecord, error)
}
