package tracelog

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emiliopalmerini/llmtrace/internal/database"
	"github.com/emiliopalmerini/llmtrace/internal/query"
)

const maxRetries = 2

// eventColumns is the one column list every event SELECT uses, so scanning
// stays aligned with selection. agent_name and conversation_name are pulled
// out of the metadata JSON here instead of per-row in Go.
const eventColumns = `request_id, session_id, user_id,
	json_extract(metadata, '$.agent_name') AS agent_name,
	json_extract(metadata, '$.conversation_name') AS conversation_name,
	model, provider, call_type, api_base,
	start_time, end_time, completion_start_time,
	prompt_tokens, completion_tokens, total_tokens,
	cost, cache_hit, cache_key, messages, response, metadata, tags`

// Store reads the append-only request log. It is stateless: every method is
// a pure function of its arguments plus the database, acquires one pooled
// connection for the duration of the call, and releases it on every path.
type Store struct {
	db      *database.Client
	timeout time.Duration
}

// NewStore wraps a database client. timeout bounds every store access; the
// caller's context can cancel earlier.
func NewStore(db *database.Client, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Ping verifies the event log is reachable.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return classify("ping", err)
	}
	return nil
}

// EventsBySession loads the full ordered trace of one session.
func (s *Store) EventsBySession(ctx context.Context, sessionID string) ([]EventRecord, error) {
	q := `SELECT ` + eventColumns + `
	FROM request_logs
	WHERE session_id = ?
	ORDER BY start_time, request_id`
	return s.selectEvents(ctx, "events by session", q, sessionID)
}

// EventByRequestID loads a single record, or ErrNotFound.
func (s *Store) EventByRequestID(ctx context.Context, requestID string) (EventRecord, error) {
	q := `SELECT ` + eventColumns + `
	FROM request_logs
	WHERE request_id = ?`
	events, err := s.selectEvents(ctx, "event by request id", q, requestID)
	if err != nil {
		return EventRecord{}, err
	}
	if len(events) == 0 {
		return EventRecord{}, ErrNotFound
	}
	return events[0], nil
}

// EventsSince loads every record whose start_time falls in [cutoff, now].
func (s *Store) EventsSince(ctx context.Context, cutoff time.Time) ([]EventRecord, error) {
	q := `SELECT ` + eventColumns + `
	FROM request_logs
	WHERE start_time >= ?
	ORDER BY start_time, request_id`
	return s.selectEvents(ctx, "events since", q, query.FormatTime(cutoff))
}

// SearchSessionIDs returns one page of session ids matching the criteria,
// newest session first. Row predicates go in WHERE, aggregate cost bounds in
// HAVING, pagination last; arguments are appended in exactly that order.
func (s *Store) SearchSessionIDs(ctx context.Context, c query.Criteria, page query.Page) ([]string, error) {
	compiled := query.Compile(c)

	where := append([]string{"session_id IS NOT NULL"}, compiled.Where...)
	q := `SELECT session_id
	FROM request_logs
	WHERE ` + query.Join(where) + `
	GROUP BY session_id`
	args := append([]any{}, compiled.WhereArgs...)

	if len(compiled.Having) > 0 {
		q += `
	HAVING ` + query.Join(compiled.Having)
		args = append(args, compiled.HavingArgs...)
	}

	q += `
	ORDER BY MIN(start_time) DESC
	LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset)

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return database.WithRetry(ctx, maxRetries, func() ([]string, error) {
		rows, err := s.db.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, classify("search sessions", err)
		}
		defer rows.Close()

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return nil, classify("search sessions", err)
			}
			ids = append(ids, id)
		}
		return ids, classify("search sessions", rows.Err())
	})
}

// EventsForSessions loads all records belonging to the given sessions.
func (s *Store) EventsForSessions(ctx context.Context, sessionIDs []string) ([]EventRecord, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sessionIDs)), ",")
	q := `SELECT ` + eventColumns + `
	FROM request_logs
	WHERE session_id IN (` + placeholders + `)
	ORDER BY start_time, request_id`
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}
	return s.selectEvents(ctx, "events for sessions", q, args...)
}

func (s *Store) selectEvents(ctx context.Context, op, q string, args ...any) ([]EventRecord, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return database.WithRetry(ctx, maxRetries, func() ([]EventRecord, error) {
		rows, err := s.db.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, classify(op, err)
		}
		defer rows.Close()

		var events []EventRecord
		for rows.Next() {
			ev, err := scanEvent(rows)
			if err != nil {
				return nil, classify(op, err)
			}
			events = append(events, ev)
		}
		return events, classify(op, rows.Err())
	})
}

func scanEvent(rows *sql.Rows) (EventRecord, error) {
	var (
		ev                  EventRecord
		start               string
		end, completionTime sql.NullString
	)
	err := rows.Scan(
		&ev.RequestID, &ev.SessionID, &ev.UserID,
		&ev.AgentName, &ev.ConversationName,
		&ev.Model, &ev.Provider, &ev.CallType, &ev.APIBase,
		&start, &end, &completionTime,
		&ev.PromptTokens, &ev.CompletionTokens, &ev.TotalTokens,
		&ev.Cost, &ev.CacheHitRaw, &ev.CacheKey,
		&ev.Messages, &ev.Response, &ev.Metadata, &ev.Tags,
	)
	if err != nil {
		return EventRecord{}, err
	}
	if ev.StartTime, err = parseTime(start); err != nil {
		return EventRecord{}, fmt.Errorf("bad start_time for %s: %w", ev.RequestID, err)
	}
	if ev.EndTime, err = parseNullTime(end); err != nil {
		return EventRecord{}, fmt.Errorf("bad end_time for %s: %w", ev.RequestID, err)
	}
	if ev.CompletionStartTime, err = parseNullTime(completionTime); err != nil {
		return EventRecord{}, fmt.Errorf("bad completion_start_time for %s: %w", ev.RequestID, err)
	}
	return ev, nil
}

// Timestamps are stored as UTC RFC3339 text; older writers used the naive
// space-separated form.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// classify maps driver-level failures onto the store taxonomy. Connection
// loss and pool timeouts surface as ErrStoreUnavailable; everything else
// keeps its cause for operator logs.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		database.IsStreamError(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
