package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so it
// runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS menus (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		slug       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// parent_id carries no foreign key: records imported from older stores
	// may point at parents that no longer exist, and the tree builder
	// excludes those rather than the database rejecting them.
	`CREATE TABLE IF NOT EXISTS menu_items (
		id          TEXT PRIMARY KEY,
		menu_id     TEXT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
		parent_id   TEXT,
		title       TEXT NOT NULL,
		url         TEXT NOT NULL DEFAULT '',
		target      TEXT NOT NULL DEFAULT '_self'
		            CHECK(target IN ('_self','_blank')),
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_menu_items_menu ON menu_items(menu_id)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_items_parent ON menu_items(parent_id)`,

	`CREATE TABLE IF NOT EXISTS slides (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		image_url   TEXT NOT NULL,
		link_url    TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0,
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS calendar_events (
		id          TEXT PRIMARY KEY,
		uid         TEXT NOT NULL UNIQUE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		location    TEXT NOT NULL DEFAULT '',
		starts_at   TEXT NOT NULL,
		ends_at     TEXT NOT NULL,
		all_day     INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_calendar_events_start ON calendar_events(starts_at)`,

	// Per-locale menu titles, JSON object text.
	`ALTER TABLE menu_items ADD COLUMN translations TEXT NOT NULL DEFAULT '{}'`,
}
