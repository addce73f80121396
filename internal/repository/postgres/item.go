package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// PostgresItemRepository implements the ItemRepository interface
type PostgresItemRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewItemRepository creates a new item repository
func NewItemRepository(config *RepositoryConfig) repositories.ItemRepository {
	return &PostgresItemRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const itemColumns = "id, user_id, folder_id, list_id, name, description, count, content, content_saved_at, date_created, date_modified"

// itemKey is the WHERE clause matching a full item path ($1..$4)
const itemKey = "id = $1 AND list_id = $2 AND folder_id = $3 AND user_id = $4"

func itemKeyArgs(path models.ItemPath) []interface{} {
	return []interface{}{path.ItemID, path.ListID, path.FolderID, path.UserID}
}

func scanItem(row pgx.Row) (*models.Item, error) {
	var item models.Item
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.FolderID,
		&item.ListID,
		&item.Name,
		&item.Description,
		&item.Count,
		&item.Content,
		&item.ContentSavedAt,
		&item.DateCreated,
		&item.DateModified,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresItemRepository) Create(ctx context.Context, item *models.Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, folder_id, list_id, name, description, count, content, date_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, r.tables.Items)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		item.UserID,
		item.FolderID,
		item.ListID,
		item.Name,
		item.Description,
		item.Count,
		item.Content,
		item.DateCreated,
	).Scan(&item.ID)
	if err != nil {
		return wrapWriteError(err, "create", "item")
	}
	return nil
}

func (r *PostgresItemRepository) Get(ctx context.Context, path models.ItemPath) (*models.Item, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", itemColumns, r.tables.Items, itemKey)

	executor := GetExecutor(ctx, r.pool)
	item, err := scanItem(executor.QueryRow(ctx, query, itemKeyArgs(path)...))
	if err != nil {
		return nil, wrapGetError(err, "item", path.ItemID)
	}
	return item, nil
}

func (r *PostgresItemRepository) ListByList(ctx context.Context, list models.ListPath) ([]models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE list_id = $1 AND folder_id = $2 AND user_id = $3
		ORDER BY date_created ASC, id ASC
	`, itemColumns, r.tables.Items)
	return r.query(ctx, query, list.ListID, list.FolderID, list.UserID)
}

func (r *PostgresItemRepository) ListByUser(ctx context.Context, userID string) ([]models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY date_created ASC, id ASC
	`, itemColumns, r.tables.Items)
	return r.query(ctx, query, userID)
}

func (r *PostgresItemRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Item, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (r *PostgresItemRepository) Update(ctx context.Context, path models.ItemPath, changes *models.ItemChanges) error {
	var b updateBuilder
	b.describe(changes.Name, changes.Description, changes.ClearDescription, changes.DateModified)
	if changes.Count != nil {
		b.set("count", *changes.Count)
	}
	b.where("id", path.ItemID)
	b.where("list_id", path.ListID)
	b.where("folder_id", path.FolderID)
	b.where("user_id", path.UserID)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, b.sql(r.tables.Items), b.args...)
	if err != nil {
		return wrapWriteError(err, "update", "item")
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", path.ItemID, domain.ErrNotFound)
	}
	return nil
}

// AdjustCount applies the delta server-side so concurrent increments
// from two tabs both land.
func (r *PostgresItemRepository) AdjustCount(ctx context.Context, path models.ItemPath, delta int64, floor models.CountFloor, modified time.Time) (int64, error) {
	expr := "count + $5"
	if floor == models.CountFloorClamp {
		expr = "GREATEST(count + $5, 0)"
	}
	query := fmt.Sprintf(`
		UPDATE %s
		SET count = %s, date_modified = $6
		WHERE %s
		RETURNING count
	`, r.tables.Items, expr, itemKey)

	args := append(itemKeyArgs(path), delta, modified)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		if IsPgNoRowsError(err) {
			return 0, fmt.Errorf("item %s: %w", path.ItemID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("adjust item count: %w", err)
	}
	return count, nil
}

func (r *PostgresItemRepository) SaveContent(ctx context.Context, path models.ItemPath, content string, savedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $5, content_saved_at = $6, date_modified = $6
		WHERE %s
	`, r.tables.Items, itemKey)

	args := append(itemKeyArgs(path), content, savedAt)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save item content: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", path.ItemID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresItemRepository) Delete(ctx context.Context, path models.ItemPath) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", r.tables.Items, itemKey)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, itemKeyArgs(path)...)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", path.ItemID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresItemRepository) DeleteByList(ctx context.Context, list models.ListPath) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE list_id = $1 AND folder_id = $2 AND user_id = $3
	`, r.tables.Items)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, list.ListID, list.FolderID, list.UserID); err != nil {
		return fmt.Errorf("delete list items: %w", err)
	}
	return nil
}

func (r *PostgresItemRepository) DeleteByFolder(ctx context.Context, folder models.FolderPath) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = $1 AND user_id = $2
	`, r.tables.Items)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, folder.FolderID, folder.UserID); err != nil {
		return fmt.Errorf("delete folder items: %w", err)
	}
	return nil
}
