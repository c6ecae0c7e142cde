package db

import (
	"database/sql"
	"fmt"
)

// schema holds one entry per schema version. Entry i upgrades a database at
// user_version i to i+1. Append only; never edit a released step.
var schema = [][]string{
	{
		`CREATE TABLE menus (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL CHECK(length(name) BETWEEN 1 AND 255),
			url         TEXT CHECK(url IS NULL OR length(url) <= 500),
			icon        TEXT CHECK(icon IS NULL OR length(icon) <= 100),
			parent_id   TEXT REFERENCES menus(id),
			sort_order  INTEGER NOT NULL DEFAULT 0 CHECK(sort_order >= 0),
			is_active   INTEGER NOT NULL DEFAULT 1,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL,
			deleted_at  TEXT
		)`,
		`CREATE INDEX idx_menus_parent ON menus(parent_id)`,
		`CREATE INDEX idx_menus_scope_order ON menus(parent_id, sort_order) WHERE deleted_at IS NULL`,
	},
}

// SchemaVersion is the user_version a fully migrated database reports.
var SchemaVersion = len(schema)

// Migrate brings the database up to SchemaVersion. Each pending step runs in
// its own transaction together with the user_version bump, so a failed step
// leaves the previous version intact.
func Migrate(db *sql.DB) error {
	var current int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if current > len(schema) {
		return fmt.Errorf("schema version %d is newer than this binary supports (%d)", current, len(schema))
	}

	for v := current; v < len(schema); v++ {
		if err := applyStep(db, v); err != nil {
			return fmt.Errorf("migrating to version %d: %w", v+1, err)
		}
	}
	return nil
}

func applyStep(db *sql.DB, v int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	for _, stmt := range schema[v] {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, v+1)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
