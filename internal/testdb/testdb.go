// Package testdb opens migrated in-memory SQLite stores for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"pharmstore/m/internal/database"
	"pharmstore/m/internal/migrations"
)

// New returns a fresh, migrated in-memory database closed at test cleanup.
func New(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.Connect(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Run(context.Background(), db))
	return db
}
