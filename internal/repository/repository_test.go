package repository

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pixelplaque/pixelplaque/internal/db"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTestDB returns a migrated in-memory sqlite database.
// A single connection keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))
	return conn
}
