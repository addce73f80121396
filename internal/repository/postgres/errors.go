package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"docit/internal/domain"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

// wrapGetError maps a missing row to domain.ErrNotFound
func wrapGetError(err error, what, id string) error {
	if IsPgNoRowsError(err) {
		return fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

// wrapWriteError maps foreign key and duplicate violations to domain errors
func wrapWriteError(err error, op, what string) error {
	switch {
	case IsPgForeignKeyError(err):
		return fmt.Errorf("%s %s: parent %w", op, what, domain.ErrNotFound)
	case IsPgDuplicateError(err):
		return fmt.Errorf("%s %s: %w", op, what, domain.ErrConflict)
	default:
		return fmt.Errorf("%s %s: %w", op, what, err)
	}
}
