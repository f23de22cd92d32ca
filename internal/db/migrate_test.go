package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"menus", "menu_items", "slides", "calendar_events"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_menu_items_menu", "idx_menu_items_parent", "idx_calendar_events_start"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddsTranslationsColumn(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(menu_items)`)
	require.NoError(t, err)
	defer rows.Close()

	found := false
	for rows.Next() {
		var cid, notNull, pk int
		var name, typ string
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		if name == "translations" {
			found = true
		}
	}
	require.NoError(t, rows.Err())
	assert.True(t, found)
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpenDB_FileDatabase(t *testing.T) {
	path := t.TempDir() + "/nested/cms.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpenDB_PragmasOnEveryConnection(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "cms.db"))
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(4)

	ctx := context.Background()
	conns := make([]*sql.Conn, 0, 3)
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()
	// Holding each conn forces the pool to open a fresh one for the next.
	for range 3 {
		c, err := db.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, c)

		var fk, timeout int
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout))
		assert.Equal(t, 1, fk)
		assert.Equal(t, 5000, timeout)
	}
}

func TestOpenDB_CascadeOnSecondConnection(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "cms.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	first, err := db.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := db.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	_, err = second.ExecContext(ctx,
		`INSERT INTO menus (id, name, slug, created_at, updated_at) VALUES ('m1', 'Main', 'main', '', '')`)
	require.NoError(t, err)
	_, err = second.ExecContext(ctx,
		`INSERT INTO menu_items (id, menu_id, title, created_at, updated_at) VALUES ('i1', 'm1', 'Home', '', '')`)
	require.NoError(t, err)
	_, err = second.ExecContext(ctx, `DELETE FROM menus WHERE id = 'm1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, second.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&n))
	assert.Zero(t, n)
}
