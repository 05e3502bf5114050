package tracelog

import "errors"

// Caller-actionable failures. Anything else is flattened to an opaque
// internal error at the HTTP boundary while the full cause is logged.
var (
	// ErrNotFound means no request or session matched the given id.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable means the event log could not be reached or the
	// connection pool timed out. Surfaced as service-unavailable, not retried
	// beyond the client's short stream-error retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
