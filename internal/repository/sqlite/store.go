package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"docit/internal/domain"
	"docit/internal/domain/repositories"
)

// timeLayout is fixed-width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// execer is implemented by *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getExecutor returns the transaction in ctx, or db
func getExecutor(ctx context.Context, db *sql.DB) execer {
	if tx, ok := repositories.TxFrom[*sql.Tx](ctx); ok {
		return tx
	}
	return db
}

func wrapGetError(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

func wrapWriteError(err error, op, what string) error {
	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%s %s: parent %w", op, what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, what, err)
}

// requireRow maps a zero-row write to domain.ErrNotFound
func requireRow(result sql.Result, what, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
	}
	return nil
}

// TransactionManager runs functions inside a *sql.Tx
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *sql.DB) repositories.TransactionManager {
	return &TransactionManager{db: db}
}

// ExecTx executes fn within a transaction. Nested calls join the outer one.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if _, ok := repositories.TxFrom[*sql.Tx](ctx); ok {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(repositories.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// updateBuilder collects SET and WHERE clauses with ? placeholders
type updateBuilder struct {
	sets     []string
	setArgs  []interface{}
	conds    []string
	condArgs []interface{}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.sets = append(b.sets, column+" = ?")
	b.setArgs = append(b.setArgs, value)
}

func (b *updateBuilder) where(column string, value interface{}) {
	b.conds = append(b.conds, column+" = ?")
	b.condArgs = append(b.condArgs, value)
}

// args returns placeholders in statement order: SET values, then WHERE values
func (b *updateBuilder) args() []interface{} {
	return append(append([]interface{}{}, b.setArgs...), b.condArgs...)
}

func (b *updateBuilder) describe(name, description *string, clear bool, modified time.Time) {
	if name != nil {
		b.set("name", *name)
	}
	if clear {
		b.set("description", nil)
	} else if description != nil {
		b.set("description", *description)
	}
	b.set("date_modified", formatTime(modified))
}

func (b *updateBuilder) sql(table string) string {
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(b.sets, ", "), strings.Join(b.conds, " AND "))
}
