package repositories

import (
	"context"

	"docit/internal/domain/models"
)

// ListRepository defines data access operations for lists
type ListRepository interface {
	Create(ctx context.Context, list *models.List) error
	Get(ctx context.Context, path models.ListPath) (*models.List, error)

	// ListByFolder lists a folder's lists ordered by creation time
	ListByFolder(ctx context.Context, folder models.FolderPath) ([]models.List, error)

	// ListByUser returns every list the user owns, across folders
	ListByUser(ctx context.Context, userID string) ([]models.List, error)

	Update(ctx context.Context, path models.ListPath, changes *models.ListChanges) error
	Delete(ctx context.Context, path models.ListPath) error

	// DeleteByFolder removes all lists under a folder
	DeleteByFolder(ctx context.Context, folder models.FolderPath) error
}
