package repositories

import (
	"context"
	"time"

	"docit/internal/domain/models"
)

// ItemRepository defines data access operations for items
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, path models.ItemPath) (*models.Item, error)

	// ListByList lists a list's items ordered by creation time
	ListByList(ctx context.Context, list models.ListPath) ([]models.Item, error)

	// ListByUser returns every item the user owns, across lists
	ListByUser(ctx context.Context, userID string) ([]models.Item, error)

	Update(ctx context.Context, path models.ItemPath, changes *models.ItemChanges) error

	// AdjustCount adds delta to the stored count in a single atomic write
	// and returns the new value. floor decides whether the result may go
	// below zero.
	AdjustCount(ctx context.Context, path models.ItemPath, delta int64, floor models.CountFloor, modified time.Time) (int64, error)

	// SaveContent replaces the item's rich-text content
	SaveContent(ctx context.Context, path models.ItemPath, content string, savedAt time.Time) error

	Delete(ctx context.Context, path models.ItemPath) error
	DeleteByList(ctx context.Context, list models.ListPath) error
	DeleteByFolder(ctx context.Context, folder models.FolderPath) error
}
