// Package repository opens the configured storage backend and hands out
// its repositories behind the domain interfaces.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"docit/internal/config"
	"docit/internal/domain/repositories"
	"docit/internal/repository/firestore"
	"docit/internal/repository/postgres"
	"docit/internal/repository/sqlite"
)

// Backend names accepted by STORE_BACKEND
const (
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

// Backend is an open storage backend
type Backend struct {
	Name    string
	Folders repositories.FolderRepository
	Lists   repositories.ListRepository
	Items   repositories.ItemRepository
	Users   repositories.UserRepository
	Billing repositories.BillingRepository
	Tx      repositories.TransactionManager

	// FirebaseApp is set for the firestore backend so firebase auth can
	// share it
	FirebaseApp *firebase.App

	pool   *pgxpool.Pool
	prefix string
	tables *postgres.TableNames
	db     *sql.DB
	store  *firestore.Store
}

// Open connects to the backend named by cfg.StoreBackend
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.StoreBackend {
	case BackendPostgres:
		return openPostgres(ctx, cfg, logger)
	case BackendSQLite:
		return openSQLite(cfg, logger)
	case BackendFirestore:
		return openFirestore(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	logger.Info("database connected", "backend", BackendPostgres, "table_prefix", cfg.TablePrefix)

	return &Backend{
		Name:    BackendPostgres,
		Folders: postgres.NewFolderRepository(repoConfig),
		Lists:   postgres.NewListRepository(repoConfig),
		Items:   postgres.NewItemRepository(repoConfig),
		Users:   postgres.NewUserRepository(repoConfig),
		Billing: postgres.NewBillingRepository(repoConfig),
		Tx:      postgres.NewTransactionManager(repoConfig),
		pool:    pool,
		prefix:  cfg.TablePrefix,
		tables:  tables,
	}, nil
}

func openSQLite(cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	logger.Info("database connected", "backend", BackendSQLite, "path", cfg.SQLitePath)

	return &Backend{
		Name:    BackendSQLite,
		Folders: sqlite.NewFolderRepository(db),
		Lists:   sqlite.NewListRepository(db),
		Items:   sqlite.NewItemRepository(db),
		Users:   sqlite.NewUserRepository(db),
		Billing: sqlite.NewBillingRepository(db),
		Tx:      sqlite.NewTransactionManager(db),
		db:      db,
	}, nil
}

func openFirestore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	app, err := firestore.NewApp(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredsFile)
	if err != nil {
		return nil, err
	}
	client, err := firestore.NewClient(ctx, app, logger)
	if err != nil {
		return nil, err
	}
	store := firestore.NewStore(client, logger)

	return &Backend{
		Name:        BackendFirestore,
		Folders:     firestore.NewFolderRepository(store),
		Lists:       firestore.NewListRepository(store),
		Items:       firestore.NewItemRepository(store),
		Users:       firestore.NewUserRepository(store),
		Billing:     firestore.NewBillingRepository(store),
		Tx:          firestore.NewTransactionManager(),
		FirebaseApp: app,
		store:       store,
	}, nil
}

// Ping checks the backend is reachable
func (b *Backend) Ping(ctx context.Context) error {
	switch {
	case b.pool != nil:
		return b.pool.Ping(ctx)
	case b.db != nil:
		return b.db.PingContext(ctx)
	case b.store != nil:
		return b.store.Ping(ctx)
	}
	return nil
}

// ApplySchema creates missing tables. Firestore is schemaless.
func (b *Backend) ApplySchema(ctx context.Context) error {
	switch {
	case b.pool != nil:
		return postgres.ApplySchema(ctx, b.pool, b.prefix)
	case b.db != nil:
		return sqlite.ApplySchema(ctx, b.db)
	}
	return nil
}

// DropTables removes every table of the backend
func (b *Backend) DropTables(ctx context.Context) error {
	switch {
	case b.pool != nil:
		return postgres.DropTables(ctx, b.pool, b.tables)
	case b.db != nil:
		return sqlite.DropTables(ctx, b.db)
	}
	return fmt.Errorf("drop tables is not supported for the %s backend", b.Name)
}

// ClearData deletes every row but keeps the schema
func (b *Backend) ClearData(ctx context.Context) error {
	switch {
	case b.pool != nil:
		return postgres.ClearData(ctx, b.pool, b.tables)
	case b.db != nil:
		return sqlite.ClearData(ctx, b.db)
	}
	return fmt.Errorf("clear data is not supported for the %s backend", b.Name)
}

// Close releases the backend's connections
func (b *Backend) Close() error {
	switch {
	case b.pool != nil:
		b.pool.Close()
	case b.db != nil:
		return b.db.Close()
	case b.store != nil:
		return b.store.Close()
	}
	return nil
}
