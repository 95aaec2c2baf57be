package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmstore/m/domain"
)

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", withForeignKeys(":memory:"))
	assert.Equal(t, "file:x.db?cache=shared&_pragma=foreign_keys(1)", withForeignKeys("file:x.db?cache=shared"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(0)", withForeignKeys("x.db?_pragma=foreign_keys(0)"))
}

func TestConnectSQLite(t *testing.T) {
	db, err := Connect(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var on int
	require.NoError(t, db.Get(&on, `PRAGMA foreign_keys`))
	assert.Equal(t, 1, on)
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestConstraintKindSQLite(t *testing.T) {
	db, err := Connect(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	db.MustExec(`CREATE TABLE parent (id INTEGER PRIMARY KEY, code TEXT UNIQUE)`)
	db.MustExec(`CREATE TABLE child (id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL REFERENCES parent(id) ON DELETE RESTRICT, n INTEGER CHECK (n > 0))`)
	db.MustExec(`INSERT INTO parent (id, code) VALUES (1, 'a')`)

	_, err = db.Exec(`INSERT INTO parent (code) VALUES ('a')`)
	kind, ok := ConstraintKind(err)
	assert.True(t, ok)
	assert.Equal(t, domain.ConstraintUnique, kind)

	_, err = db.Exec(`INSERT INTO child (parent_id, n) VALUES (9, 1)`)
	kind, ok = ConstraintKind(fmt.Errorf("wrapped: %w", err))
	assert.True(t, ok)
	assert.Equal(t, domain.ConstraintForeignKey, kind)

	db.MustExec(`INSERT INTO child (parent_id, n) VALUES (1, 1)`)
	_, err = db.Exec(`DELETE FROM parent WHERE id = 1`)
	kind, ok = ConstraintKind(err)
	assert.True(t, ok)
	assert.Equal(t, domain.ConstraintForeignKey, kind, "restricted delete")

	_, err = db.Exec(`INSERT INTO child (parent_id, n) VALUES (1, 0)`)
	kind, ok = ConstraintKind(err)
	assert.True(t, ok)
	assert.Equal(t, domain.ConstraintCheck, kind)

	_, err = db.Exec(`INSERT INTO child (parent_id) VALUES (NULL)`)
	kind, ok = ConstraintKind(err)
	assert.True(t, ok)
	assert.Equal(t, domain.ConstraintNotNull, kind)

	_, err = db.Exec(`SELECT * FROM missing`)
	_, ok = ConstraintKind(err)
	assert.False(t, ok)
}

func TestConstraintKindPostgres(t *testing.T) {
	cases := map[string]string{
		"23505": domain.ConstraintUnique,
		"23503": domain.ConstraintForeignKey,
		"23001": domain.ConstraintForeignKey,
		"23502": domain.ConstraintNotNull,
		"23514": domain.ConstraintCheck,
		"23P01": domain.ConstraintOther,
	}
	for code, want := range cases {
		kind, ok := ConstraintKind(&pgconn.PgError{Code: code})
		assert.True(t, ok, code)
		assert.Equal(t, want, kind, code)
	}

	_, ok := ConstraintKind(&pgconn.PgError{Code: "42P01"})
	assert.False(t, ok)
	_, ok = ConstraintKind(errors.New("boom"))
	assert.False(t, ok)
}
