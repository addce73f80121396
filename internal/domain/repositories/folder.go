package repositories

import (
	"context"

	"docit/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create stores a new folder and assigns its ID
	Create(ctx context.Context, folder *models.Folder) error

	// Get retrieves a folder by path
	Get(ctx context.Context, path models.FolderPath) (*models.Folder, error)

	// ListByUser lists a user's folders ordered by creation time
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)

	// Update writes only the fields set in changes
	Update(ctx context.Context, path models.FolderPath, changes *models.FolderChanges) error

	// Delete removes the folder document only
	Delete(ctx context.Context, path models.FolderPath) error
}
