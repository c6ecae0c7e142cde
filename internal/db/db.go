package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const defaultBusyTimeout = 5 * time.Second

type openOptions struct {
	busyTimeout time.Duration
}

// Option customizes OpenDB.
type Option func(*openOptions)

// WithBusyTimeout sets how long a connection waits on a locked database
// before failing with SQLITE_BUSY.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *openOptions) {
		if d > 0 {
			o.busyTimeout = d
		}
	}
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database pinned to a single
// connection so every caller sees the same schema.
// Sets WAL mode, enables foreign keys and makes every transaction take the
// write lock up front (BEGIN IMMEDIATE). Runs migrations automatically.
func OpenDB(path string, opts ...Option) (*sql.DB, error) {
	o := openOptions{busyTimeout: defaultBusyTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path, o))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// dsn appends per-connection pragmas so that pooled connections all share
// the same settings.
func dsn(path string, o openOptions) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", o.busyTimeout.Milliseconds()))
	q.Set("_txlock", "immediate")
	return path + "?" + q.Encode()
}
