package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pharmstore/m/domain"
	"pharmstore/m/internal/database"
)

// transact runs fn inside one transaction. The transaction is rolled back on
// error or panic and committed otherwise; it never outlives the call.
func transact(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// translate maps driver errors onto the domain taxonomy for entity.
func translate(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	if kind, ok := database.ConstraintKind(err); ok {
		return &domain.ConstraintViolationError{Entity: entity, Kind: kind, Err: err}
	}
	return err
}
