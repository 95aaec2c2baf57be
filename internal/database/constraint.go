package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"pharmstore/m/domain"
)

// ConstraintKind reports which integrity rule err violated. The second result
// is false when err is not a constraint failure from either supported driver.
func ConstraintKind(err error) (string, bool) {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return sqliteKind(se.Code())
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return postgresKind(pe.Code)
	}
	return "", false
}

func sqliteKind(code int) (string, bool) {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return domain.ConstraintUnique, true
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_TRIGGER:
		// ON DELETE RESTRICT fires as a trigger constraint.
		return domain.ConstraintForeignKey, true
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return domain.ConstraintNotNull, true
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return domain.ConstraintCheck, true
	}
	// primary result code lives in the low byte
	if code&0xff == sqlite3.SQLITE_CONSTRAINT {
		return domain.ConstraintOther, true
	}
	return "", false
}

// postgresKind maps SQLSTATE class 23 (integrity_constraint_violation).
func postgresKind(code string) (string, bool) {
	switch code {
	case "23505":
		return domain.ConstraintUnique, true
	case "23503", "23001":
		return domain.ConstraintForeignKey, true
	case "23502":
		return domain.ConstraintNotNull, true
	case "23514":
		return domain.ConstraintCheck, true
	}
	if strings.HasPrefix(code, "23") {
		return domain.ConstraintOther, true
	}
	return "", false
}
