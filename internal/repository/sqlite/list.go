package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// ListRepository implements repositories.ListRepository
type ListRepository struct {
	db *sql.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *sql.DB) repositories.ListRepository {
	return &ListRepository{db: db}
}

const listColumns = "id, user_id, folder_id, name, description, date_created, date_modified"

func scanList(row rowScanner) (*models.List, error) {
	var (
		list        models.List
		description sql.NullString
		created     string
		modified    sql.NullString
	)
	if err := row.Scan(&list.ID, &list.UserID, &list.FolderID, &list.Name, &description, &created, &modified); err != nil {
		return nil, err
	}

	var err error
	list.Description = nullString(description)
	if list.DateCreated, err = parseTime(created); err != nil {
		return nil, err
	}
	if list.DateModified, err = parseNullTime(modified); err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *ListRepository) Create(ctx context.Context, list *models.List) error {
	list.ID = uuid.NewString()
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO lists (id, user_id, folder_id, name, description, date_created) VALUES (?, ?, ?, ?, ?, ?)`,
		list.ID, list.UserID, list.FolderID, list.Name, list.Description, formatTime(list.DateCreated),
	)
	if err != nil {
		return wrapWriteError(err, "create", "list")
	}
	return nil
}

func (r *ListRepository) Get(ctx context.Context, path models.ListPath) (*models.List, error) {
	row := getExecutor(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+listColumns+" FROM lists WHERE id = ? AND folder_id = ? AND user_id = ?",
		path.ListID, path.FolderID, path.UserID,
	)
	list, err := scanList(row)
	if err != nil {
		return nil, wrapGetError(err, "list", path.ListID)
	}
	return list, nil
}

func (r *ListRepository) ListByFolder(ctx context.Context, folder models.FolderPath) ([]models.List, error) {
	return r.query(ctx,
		"SELECT "+listColumns+" FROM lists WHERE folder_id = ? AND user_id = ? ORDER BY date_created, rowid",
		folder.FolderID, folder.UserID,
	)
}

func (r *ListRepository) ListByUser(ctx context.Context, userID string) ([]models.List, error) {
	return r.query(ctx,
		"SELECT "+listColumns+" FROM lists WHERE user_id = ? ORDER BY date_created, rowid",
		userID,
	)
}

func (r *ListRepository) query(ctx context.Context, query string, args ...any) ([]models.List, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
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
	return lists, rows.Err()
}

func (r *ListRepository) Update(ctx context.Context, path models.ListPath, changes *models.ListChanges) error {
	var b updateBuilder
	b.describe(changes.Name, changes.Description, changes.ClearDescription, changes.DateModified)
	b.where("id", path.ListID)
	b.where("folder_id", path.FolderID)
	b.where("user_id", path.UserID)

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, b.sql("lists"), b.args()...)
	if err != nil {
		return wrapWriteError(err, "update", "list")
	}
	return requireRow(result, "list", path.ListID)
}

func (r *ListRepository) Delete(ctx context.Context, path models.ListPath) error {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"DELETE FROM lists WHERE id = ? AND folder_id = ? AND user_id = ?",
		path.ListID, path.FolderID, path.UserID,
	)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return requireRow(result, "list", path.ListID)
}

func (r *ListRepository) DeleteByFolder(ctx context.Context, folder models.FolderPath) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"DELETE FROM lists WHERE folder_id = ? AND user_id = ?", folder.FolderID, folder.UserID)
	if err != nil {
		return fmt.Errorf("delete folder lists: %w", err)
	}
	return nil
}
