package auth

import (
	"context"
	"fmt"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
	"docit/internal/domain/services"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// Every path is rooted at the owner's user id, so a resource is accessible
// when it exists under the caller's own path. A foreign or missing parent
// reads as not found.
type OwnerBasedAuthorizer struct {
	folderRepo repositories.FolderRepository
	listRepo   repositories.ListRepository
	itemRepo   repositories.ItemRepository
}

var _ services.ResourceAuthorizer = (*OwnerBasedAuthorizer)(nil)

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	folderRepo repositories.FolderRepository,
	listRepo repositories.ListRepository,
	itemRepo repositories.ItemRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		folderRepo: folderRepo,
		listRepo:   listRepo,
		itemRepo:   itemRepo,
	}
}

// CanAccessFolder checks the folder exists under the user's path
func (a *OwnerBasedAuthorizer) CanAccessFolder(ctx context.Context, path models.FolderPath) error {
	if _, err := a.folderRepo.Get(ctx, path); err != nil {
		return fmt.Errorf("check folder access: %w", err)
	}
	return nil
}

// CanAccessList checks the list exists under the user's folder
func (a *OwnerBasedAuthorizer) CanAccessList(ctx context.Context, path models.ListPath) error {
	if _, err := a.listRepo.Get(ctx, path); err != nil {
		return fmt.Errorf("check list access: %w", err)
	}
	return nil
}

// CanAccessItem checks the item exists under the user's list
func (a *OwnerBasedAuthorizer) CanAccessItem(ctx context.Context, path models.ItemPath) error {
	if _, err := a.itemRepo.Get(ctx, path); err != nil {
		return fmt.Errorf("check item access: %w", err)
	}
	return nil
}
