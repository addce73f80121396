package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// ItemRepository implements repositories.ItemRepository
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sql.DB) repositories.ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = "id, user_id, folder_id, list_id, name, description, count, content, content_saved_at, date_created, date_modified"

const itemKey = "id = ? AND list_id = ? AND folder_id = ? AND user_id = ?"

func itemKeyArgs(path models.ItemPath) []any {
	return []any{path.ItemID, path.ListID, path.FolderID, path.UserID}
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item        models.Item
		description sql.NullString
		savedAt     sql.NullString
		created     string
		modified    sql.NullString
	)
	err := row.Scan(&item.ID, &item.UserID, &item.FolderID, &item.ListID, &item.Name,
		&description, &item.Count, &item.Content, &savedAt, &created, &modified)
	if err != nil {
		return nil, err
	}

	item.Description = nullString(description)
	if item.ContentSavedAt, err = parseNullTime(savedAt); err != nil {
		return nil, err
	}
	if item.DateCreated, err = parseTime(created); err != nil {
		return nil, err
	}
	if item.DateModified, err = parseNullTime(modified); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	item.ID = uuid.NewString()
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO items (id, user_id, folder_id, list_id, name, description, count, content, date_created)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.FolderID, item.ListID, item.Name, item.Description,
		item.Count, item.Content, formatTime(item.DateCreated),
	)
	if err != nil {
		return wrapWriteError(err, "create", "item")
	}
	return nil
}

func (r *ItemRepository) Get(ctx context.Context, path models.ItemPath) (*models.Item, error) {
	row := getExecutor(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE "+itemKey, itemKeyArgs(path)...)
	item, err := scanItem(row)
	if err != nil {
		return nil, wrapGetError(err, "item", path.ItemID)
	}
	return item, nil
}

func (r *ItemRepository) ListByList(ctx context.Context, list models.ListPath) ([]models.Item, error) {
	return r.query(ctx,
		"SELECT "+itemColumns+" FROM items WHERE list_id = ? AND folder_id = ? AND user_id = ? ORDER BY date_created, rowid",
		list.ListID, list.FolderID, list.UserID,
	)
}

func (r *ItemRepository) ListByUser(ctx context.Context, userID string) ([]models.Item, error) {
	return r.query(ctx,
		"SELECT "+itemColumns+" FROM items WHERE user_id = ? ORDER BY date_created, rowid",
		userID,
	)
}

func (r *ItemRepository) query(ctx context.Context, query string, args ...any) ([]models.Item, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
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
	return items, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, path models.ItemPath, changes *models.ItemChanges) error {
	var b updateBuilder
	b.describe(changes.Name, changes.Description, changes.ClearDescription, changes.DateModified)
	if changes.Count != nil {
		b.set("count", *changes.Count)
	}
	b.where("id", path.ItemID)
	b.where("list_id", path.ListID)
	b.where("folder_id", path.FolderID)
	b.where("user_id", path.UserID)

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, b.sql("items"), b.args()...)
	if err != nil {
		return wrapWriteError(err, "update", "item")
	}
	return requireRow(result, "item", path.ItemID)
}

func (r *ItemRepository) AdjustCount(ctx context.Context, path models.ItemPath, delta int64, floor models.CountFloor, modified time.Time) (int64, error) {
	expr := "count + ?"
	if floor == models.CountFloorClamp {
		expr = "MAX(count + ?, 0)"
	}
	query := fmt.Sprintf("UPDATE items SET count = %s, date_modified = ? WHERE %s RETURNING count", expr, itemKey)
	args := append([]any{delta, formatTime(modified)}, itemKeyArgs(path)...)

	var count int64
	if err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("item %s: %w", path.ItemID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("adjust item count: %w", err)
	}
	return count, nil
}

func (r *ItemRepository) SaveContent(ctx context.Context, path models.ItemPath, content string, savedAt time.Time) error {
	ts := formatTime(savedAt)
	args := append([]any{content, ts, ts}, itemKeyArgs(path)...)
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"UPDATE items SET content = ?, content_saved_at = ?, date_modified = ? WHERE "+itemKey, args...)
	if err != nil {
		return fmt.Errorf("save item content: %w", err)
	}
	return requireRow(result, "item", path.ItemID)
}

func (r *ItemRepository) Delete(ctx context.Context, path models.ItemPath) error {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx, "DELETE FROM items WHERE "+itemKey, itemKeyArgs(path)...)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return requireRow(result, "item", path.ItemID)
}

func (r *ItemRepository) DeleteByList(ctx context.Context, list models.ListPath) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"DELETE FROM items WHERE list_id = ? AND folder_id = ? AND user_id = ?",
		list.ListID, list.FolderID, list.UserID,
	)
	if err != nil {
		return fmt.Errorf("delete list items: %w", err)
	}
	return nil
}

func (r *ItemRepository) DeleteByFolder(ctx context.Context, folder models.FolderPath) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"DELETE FROM items WHERE folder_id = ? AND user_id = ?", folder.FolderID, folder.UserID)
	if err != nil {
		return fmt.Errorf("delete folder items: %w", err)
	}
	return nil
}
