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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = "id, user_id, name, description, date_created, date_modified"

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.Description,
		&folder.DateCreated,
		&folder.DateModified,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, description, date_created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.UserID,
		folder.Name,
		folder.Description,
		folder.DateCreated,
	).Scan(&folder.ID)
	if err != nil {
		return wrapWriteError(err, "create", "folder")
	}

	return nil
}

// Get retrieves a folder by path
func (r *PostgresFolderRepository) Get(ctx context.Context, path models.FolderPath) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, folderColumns, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, path.FolderID, path.UserID))
	if err != nil {
		return nil, wrapGetError(err, "folder", path.FolderID)
	}
	return folder, nil
}

// ListByUser lists a user's folders ordered by creation time
func (r *PostgresFolderRepository) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY date_created ASC, id ASC
	`, folderColumns, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
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

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// Update writes only the changed fields
func (r *PostgresFolderRepository) Update(ctx context.Context, path models.FolderPath, changes *models.FolderChanges) error {
	var b updateBuilder
	b.describe(changes.Name, changes.Description, changes.ClearDescription, changes.DateModified)
	b.where("id", path.FolderID)
	b.where("user_id", path.UserID)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, b.sql(r.tables.Folders), b.args...)
	if err != nil {
		return wrapWriteError(err, "update", "folder")
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", path.FolderID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a folder
func (r *PostgresFolderRepository) Delete(ctx context.Context, path models.FolderPath) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, path.FolderID, path.UserID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", path.FolderID, domain.ErrNotFound)
	}

	return nil
}
