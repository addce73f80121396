package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// FolderRepository implements repositories.FolderRepository
type FolderRepository struct {
	db *sql.DB
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(db *sql.DB) repositories.FolderRepository {
	return &FolderRepository{db: db}
}

const folderColumns = "id, user_id, name, description, date_created, date_modified"

func scanFolder(row rowScanner) (*models.Folder, error) {
	var (
		folder      models.Folder
		description sql.NullString
		created     string
		modified    sql.NullString
	)
	if err := row.Scan(&folder.ID, &folder.UserID, &folder.Name, &description, &created, &modified); err != nil {
		return nil, err
	}

	var err error
	folder.Description = nullString(description)
	if folder.DateCreated, err = parseTime(created); err != nil {
		return nil, err
	}
	if folder.DateModified, err = parseNullTime(modified); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = uuid.NewString()
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO folders (id, user_id, name, description, date_created) VALUES (?, ?, ?, ?, ?)`,
		folder.ID, folder.UserID, folder.Name, folder.Description, formatTime(folder.DateCreated),
	)
	if err != nil {
		return wrapWriteError(err, "create", "folder")
	}
	return nil
}

func (r *FolderRepository) Get(ctx context.Context, path models.FolderPath) (*models.Folder, error) {
	row := getExecutor(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+folderColumns+" FROM folders WHERE id = ? AND user_id = ?",
		path.FolderID, path.UserID,
	)
	folder, err := scanFolder(row)
	if err != nil {
		return nil, wrapGetError(err, "folder", path.FolderID)
	}
	return folder, nil
}

func (r *FolderRepository) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx,
		"SELECT "+folderColumns+" FROM folders WHERE user_id = ? ORDER BY date_created, rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}
	return folders, rows.Err()
}

func (r *FolderRepository) Update(ctx context.Context, path models.FolderPath, changes *models.FolderChanges) error {
	var b updateBuilder
	b.describe(changes.Name, changes.Description, changes.ClearDescription, changes.DateModified)
	b.where("id", path.FolderID)
	b.where("user_id", path.UserID)

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, b.sql("folders"), b.args()...)
	if err != nil {
		return wrapWriteError(err, "update", "folder")
	}
	return requireRow(result, "folder", path.FolderID)
}

func (r *FolderRepository) Delete(ctx context.Context, path models.FolderPath) error {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"DELETE FROM folders WHERE id = ? AND user_id = ?", path.FolderID, path.UserID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return requireRow(result, "folder", path.FolderID)
}
