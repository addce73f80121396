package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// PostgresListRepository implements the ListRepository interface
type PostgresListRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewListRepository creates a new list repository
func NewListRepository(config *RepositoryConfig) repositories.ListRepository {
	return &PostgresListRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const listColumns = "id, user_id, folder_id, name, description, date_created, date_modified"

func scanList(row pgx.Row) (*models.List, error) {
	var list models.List
	err := row.Scan(
		&list.ID,
		&list.UserID,
		&list.FolderID,
		&list.Name,
		&list.Description,
		&list.DateCreated,
		&list.DateModified,
	)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *PostgresListRepository) Create(ctx context.Context, list *models.List) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, folder_id, name, description, date_created)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.Lists)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		list.UserID,
		list.FolderID,
		list.Name,
		list.Description,
		list.DateCreated,
	).Scan(&list.ID)
	if err != nil {
		return wrapWriteError(err, "create", "list")
	}
	return nil
}

func (r *PostgresListRepository) Get(ctx context.Context, path models.ListPath) (*models.List, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND folder_id = $2 AND user_id = $3
	`, listColumns, r.tables.Lists)

	executor := GetExecutor(ctx, r.pool)
	list, err := scanList(executor.QueryRow(ctx, query, path.ListID, path.FolderID, path.UserID))
	if err != nil {
		return nil, wrapGetError(err, "list", path.ListID)
	}
	return list, nil
}

func (r *PostgresListRepository) ListByFolder(ctx context.Context, folder models.FolderPath) ([]models.List, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = $1 AND user_id = $2
		ORDER BY date_created ASC, id ASC
	`, listColumns, r.tables.Lists)
	return r.query(ctx, query, folder.FolderID, folder.UserID)
}

func (r *PostgresListRepository) ListByUser(ctx context.Context, userID string) ([]models.List, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY date_created ASC, id ASC
	`, listColumns, r.tables.Lists)
	return r.query(ctx, query, userID)
}

func (r *PostgresListRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.List, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	lists := []models.List{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}
	return lists, nil
}

func (r *PostgresListRepository) Update(ctx context.Context, path models.ListPath, changes *models.ListChanges) error {
	var b updateBuilder
	b.describe(changes.Name, changes.Description, changes.ClearDescription, changes.DateModified)
	b.where("id", path.ListID)
	b.where("folder_id", path.FolderID)
	b.where("user_id", path.UserID)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, b.sql(r.tables.Lists), b.args...)
	if err != nil {
		return wrapWriteError(err, "update", "list")
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("list %s: %w", path.ListID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresListRepository) Delete(ctx context.Context, path models.ListPath) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND folder_id = $2 AND user_id = $3
	`, r.tables.Lists)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, path.ListID, path.FolderID, path.UserID)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("list %s: %w", path.ListID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresListRepository) DeleteByFolder(ctx context.Context, folder models.FolderPath) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = $1 AND user_id = $2
	`, r.tables.Lists)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, folder.FolderID, folder.UserID); err != nil {
		return fmt.Errorf("delete folder lists: %w", err)
	}
	return nil
}
