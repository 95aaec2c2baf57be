package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmstore/m/internal/migrations"
	"pharmstore/m/internal/testdb"
)

func TestRunIsIdempotent(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, migrations.Run(context.Background(), db))

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	assert.Equal(t, []string{"drugs", "pharmacies", "purchases", "requests"}, tables)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := testdb.New(t)

	_, err := db.Exec(`INSERT INTO requests (date, pharmacy_id) VALUES ('20240101', 42)`)
	assert.Error(t, err)
}
