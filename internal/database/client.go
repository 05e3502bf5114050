// Package database holds the libsql client the event-log store reads through.
package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

// Client wraps the shared *sql.DB. The request log lives in a Turso (libsql)
// database; all access goes through the pooled handle here.
type Client struct {
	*sql.DB
}

// Options configures client construction.
type Options struct {
	Ping bool
}

// New opens a client and verifies connectivity.
func New(databaseURL, authToken string) (*Client, error) {
	return NewWithOptions(databaseURL, authToken, Options{Ping: true})
}

// NewWithOptions opens a client. Pool limits are tuned for Turso's Hrana
// protocol: idle connections are not kept, since the server drops idle
// streams and a stale connection surfaces as "stream not found" on next use.
func NewWithOptions(databaseURL, authToken string, opts Options) (*Client, error) {
	db, err := sql.Open("libsql", databaseURL+"?authToken="+authToken)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(0)

	if opts.Ping {
		if err := db.Ping(); err != nil {
			return nil, err
		}
	}

	return &Client{DB: db}, nil
}

// IsStreamError reports whether err is Turso dropping a stale Hrana stream.
// The driver exposes no typed error for it, so this matches on the message.
func IsStreamError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "stream not found")
}

// WithRetry runs fn, retrying up to maxRetries times on stream errors. Any
// other failure returns immediately; a retried call waits briefly so the pool
// can discard the dead connection first.
func WithRetry[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !IsStreamError(err) || attempt == maxRetries {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}

	return result, err
}
