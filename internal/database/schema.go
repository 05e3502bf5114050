package database

import "context"

// The request_logs table is written by the serving proxy; this service only
// reads it. The DDL lives here so the seed command and local development can
// bootstrap an empty database.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS request_logs (
    request_id             TEXT PRIMARY KEY,
    session_id             TEXT,
    user_id                TEXT,
    model                  TEXT NOT NULL DEFAULT '',
    provider               TEXT NOT NULL DEFAULT '',
    call_type              TEXT NOT NULL DEFAULT '',
    api_base               TEXT,
    start_time             TEXT NOT NULL,
    end_time               TEXT,
    completion_start_time  TEXT,
    prompt_tokens          INTEGER NOT NULL DEFAULT 0,
    completion_tokens      INTEGER NOT NULL DEFAULT 0,
    total_tokens           INTEGER NOT NULL DEFAULT 0,
    cost                   REAL NOT NULL DEFAULT 0,
    cache_hit              TEXT,
    cache_key              TEXT,
    messages               TEXT,
    response               TEXT,
    metadata               TEXT,
    tags                   TEXT
);

CREATE INDEX IF NOT EXISTS idx_request_logs_session ON request_logs(session_id);
CREATE INDEX IF NOT EXISTS idx_request_logs_start ON request_logs(start_time);
`

// EnsureSchema creates the request_logs table and its indexes if missing.
func (c *Client) EnsureSchema(ctx context.Context) error {
	_, err := c.ExecContext(ctx, schemaSQL)
	return err
}
