package services

import (
	"context"

	"docit/internal/domain/models"
)

// ResourceAuthorizer checks that the parent of an operation exists under
// the caller's own path before anything is written beneath it.
// Ownership is structural: every path starts with the user id.
type ResourceAuthorizer interface {
	CanAccessFolder(ctx context.Context, path models.FolderPath) error
	CanAccessList(ctx context.Context, path models.ListPath) error
	CanAccessItem(ctx context.Context, path models.ItemPath) error
}
