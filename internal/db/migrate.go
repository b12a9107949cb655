package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	return runMigrations(db, migrations)
}

func runMigrations(db *sql.DB, stmts []string) error {
	for i, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS session_reports (
		id               TEXT PRIMARY KEY,
		course           TEXT NOT NULL DEFAULT '',
		student_email    TEXT NOT NULL DEFAULT '',
		topics           TEXT NOT NULL DEFAULT '',
		total_cards      INTEGER NOT NULL DEFAULT 0,
		dont_know        INTEGER NOT NULL DEFAULT 0,
		somewhat         INTEGER NOT NULL DEFAULT 0,
		know_well        INTEGER NOT NULL DEFAULT 0,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		recorded_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_reports_recorded ON session_reports(recorded_at)`,

	// Card rows are written independently of their session row, so there is
	// no foreign key on session_id.
	`CREATE TABLE IF NOT EXISTS card_ratings (
		session_id  TEXT NOT NULL,
		seq         INTEGER NOT NULL,
		course      TEXT NOT NULL DEFAULT '',
		unit        TEXT NOT NULL,
		sub         TEXT NOT NULL,
		term        TEXT NOT NULL,
		rating      TEXT NOT NULL,
		box         INTEGER NOT NULL CHECK(box BETWEEN 0 AND 3),
		recorded_at TEXT NOT NULL,
		PRIMARY KEY (session_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_card_ratings_term ON card_ratings(unit, sub, term)`,
}
