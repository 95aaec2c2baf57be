package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"pharmstore/m/domain"
	"pharmstore/m/internal/validation"
)

// Page selects rows by offset and limit, in ascending id order.
type Page struct {
	Skip  int
	Limit int
}

// Table is the CRUD repository for one entity type T with create shape C.
// Every method is a single transaction.
type Table[T any, C any] struct {
	db     *sqlx.DB
	entity string
	name   string
	// values lists C's fields in column order.
	values func(C) []any

	columns   string
	insertSQL string
	getSQL    string
	listSQL   string
	updateSQL string
	deleteSQL string
}

func newTable[T any, C any](db *sqlx.DB, entity, name string, columns []string, values func(C) []any) *Table[T, C] {
	all := "id, " + strings.Join(columns, ", ")
	set := make([]string, len(columns))
	for i, c := range columns {
		set[i] = c + " = ?"
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	return &Table[T, C]{
		db:        db,
		entity:    entity,
		name:      name,
		values:    values,
		columns:   all,
		insertSQL: db.Rebind(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`, name, strings.Join(columns, ", "), marks, all)),
		getSQL:    db.Rebind(fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, all, name)),
		listSQL:   db.Rebind(fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC LIMIT ? OFFSET ?`, all, name)),
		updateSQL: db.Rebind(fmt.Sprintf(`UPDATE %s SET %s WHERE id = ? RETURNING %s`, name, strings.Join(set, ", "), all)),
		deleteSQL: db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ? RETURNING %s`, name, all)),
	}
}

// Create inserts a row and returns it with its assigned id.
func (t *Table[T, C]) Create(ctx context.Context, in C) (T, error) {
	var out T
	err := transact(ctx, t.db, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, t.insertSQL, t.values(in)...).StructScan(&out)
	})
	return out, translate(err, t.entity, 0)
}

// Get returns the row with id or a NotFoundError.
func (t *Table[T, C]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := transact(ctx, t.db, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &out, t.getSQL, id)
	})
	return out, translate(err, t.entity, id)
}

// List returns at most page.Limit rows after skipping page.Skip, by id.
func (t *Table[T, C]) List(ctx context.Context, page Page) ([]T, error) {
	if err := validation.Page(page.Skip, page.Limit, 0); err != nil {
		return nil, err
	}
	out := make([]T, 0)
	err := transact(ctx, t.db, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &out, t.listSQL, page.Limit, page.Skip)
	})
	if err != nil {
		return nil, translate(err, t.entity, 0)
	}
	return out, nil
}

// Update overwrites every column of row id with in and returns the stored row.
func (t *Table[T, C]) Update(ctx context.Context, id int64, in C) (T, error) {
	var out T
	args := append(t.values(in), id)
	err := transact(ctx, t.db, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, t.updateSQL, args...).StructScan(&out)
	})
	return out, translate(err, t.entity, id)
}

// Delete removes row id and returns it as it was before removal.
func (t *Table[T, C]) Delete(ctx context.Context, id int64) (T, error) {
	var out T
	err := transact(ctx, t.db, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, t.deleteSQL, id).StructScan(&out)
	})
	return out, translate(err, t.entity, id)
}

type parent struct {
	table  string
	entity string
}

func (t *Table[T, C]) parent() parent { return parent{table: t.name, entity: t.entity} }

// listBy pages the rows whose column references parent row id. The parent
// must exist.
func (t *Table[T, C]) listBy(ctx context.Context, column string, p parent, id int64, page Page) ([]T, error) {
	if err := validation.Page(page.Skip, page.Limit, 0); err != nil {
		return nil, err
	}
	existsSQL := t.db.Rebind(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, p.table))
	listSQL := t.db.Rebind(fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY id ASC LIMIT ? OFFSET ?`, t.columns, t.name, column))

	out := make([]T, 0)
	err := transact(ctx, t.db, func(tx *sqlx.Tx) error {
		var n int
		if err := tx.GetContext(ctx, &n, existsSQL, id); err != nil {
			return err
		}
		if n == 0 {
			return &domain.NotFoundError{Entity: p.entity, ID: id}
		}
		return tx.SelectContext(ctx, &out, listSQL, id, page.Limit, page.Skip)
	})
	if err != nil {
		return nil, translate(err, t.entity, 0)
	}
	return out, nil
}
