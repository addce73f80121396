// Package sqlite is the single-file store used for local development and
// repository tests. It implements the same repository interfaces as the
// postgres and firestore backends.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// Open opens (creating if needed) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}

	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// one writer; also keeps ":memory:" on a single shared connection
	db.SetMaxOpenConns(1)

	if err := applySchema(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func applySchema(ctx context.Context, db *sql.DB) error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schemaSQL)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	return nil
}

// ClearData deletes every row, children first.
func ClearData(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{
		"items", "lists", "folders", "profiles",
		"subscriptions", "checkout_sessions", "prices", "products",
	} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// DropTables drops every table, children first.
func DropTables(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{
		"items", "lists", "folders", "profiles",
		"subscriptions", "checkout_sessions", "prices", "products",
	} {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ApplySchema creates any missing tables
func ApplySchema(ctx context.Context, db *sql.DB) error {
	return applySchema(ctx, db)
}
