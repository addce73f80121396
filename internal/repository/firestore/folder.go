package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// FolderRepository implements repositories.FolderRepository
type FolderRepository struct {
	*Store
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(store *Store) repositories.FolderRepository {
	return &FolderRepository{Store: store}
}

func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	ref := r.folders(folder.UserID).NewDoc()
	_, err := ref.Create(ctx, folderDoc{
		Name:        folder.Name,
		Description: folder.Description,
		DateCreated: folder.DateCreated,
		CreatedBy:   folder.UserID,
	})
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	folder.ID = ref.ID
	return nil
}

func (r *FolderRepository) Get(ctx context.Context, path models.FolderPath) (*models.Folder, error) {
	snap, err := r.folders(path.UserID).Doc(path.FolderID).Get(ctx)
	if err != nil {
		return nil, wrapGetError(err, "folder", path.FolderID)
	}
	return folderFromSnapshot(snap)
}

func (r *FolderRepository) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	iter := r.folders(userID).OrderBy(fieldDateCreated, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	folders := []models.Folder{}
	for {
		snap, err := iter.Next()
		if done(err) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list folders: %w", err)
		}
		folder, err := folderFromSnapshot(snap)
		if err != nil {
			return nil, fmt.Errorf("decode folder %s: %w", snap.Ref.ID, err)
		}
		folders = append(folders, *folder)
	}
	return folders, nil
}

func (r *FolderRepository) Update(ctx context.Context, path models.FolderPath, changes *models.FolderChanges) error {
	updates := describeUpdates(changes.Name, changes.Description, changes.ClearDescription, changes.DateModified)
	if _, err := r.folders(path.UserID).Doc(path.FolderID).Update(ctx, updates); err != nil {
		return wrapWriteError(err, "update", "folder", path.FolderID)
	}
	return nil
}

// Delete removes the folder document only. Subcollections are removed by
// the list and item repositories first.
func (r *FolderRepository) Delete(ctx context.Context, path models.FolderPath) error {
	if _, err := r.folders(path.UserID).Doc(path.FolderID).Delete(ctx, firestore.Exists); err != nil {
		return wrapWriteError(err, "delete", "folder", path.FolderID)
	}
	return nil
}
