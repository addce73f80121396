package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// ListRepository implements repositories.ListRepository
type ListRepository struct {
	*Store
}

// NewListRepository creates a new list repository
func NewListRepository(store *Store) repositories.ListRepository {
	return &ListRepository{Store: store}
}

func (r *ListRepository) Create(ctx context.Context, list *models.List) error {
	// firestore happily writes under a missing parent
	if _, err := r.folders(list.UserID).Doc(list.FolderID).Get(ctx); err != nil {
		return wrapGetError(err, "folder", list.FolderID)
	}

	ref := r.lists(list.UserID, list.FolderID).NewDoc()
	_, err := ref.Create(ctx, listDoc{
		Name:        list.Name,
		Description: list.Description,
		DateCreated: list.DateCreated,
		CreatedBy:   list.UserID,
	})
	if err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	list.ID = ref.ID
	return nil
}

func (r *ListRepository) Get(ctx context.Context, path models.ListPath) (*models.List, error) {
	snap, err := r.lists(path.UserID, path.FolderID).Doc(path.ListID).Get(ctx)
	if err != nil {
		return nil, wrapGetError(err, "list", path.ListID)
	}
	return listFromSnapshot(snap)
}

func (r *ListRepository) ListByFolder(ctx context.Context, folder models.FolderPath) ([]models.List, error) {
	return r.query(ctx, r.lists(folder.UserID, folder.FolderID).OrderBy(fieldDateCreated, firestore.Asc))
}

// ListByUser queries every lists collection for the user's documents
func (r *ListRepository) ListByUser(ctx context.Context, userID string) ([]models.List, error) {
	return r.query(ctx, r.client.CollectionGroup(listsCollection).
		Where(fieldCreatedBy, "==", userID).
		OrderBy(fieldDateCreated, firestore.Asc))
}

func (r *ListRepository) query(ctx context.Context, q firestore.Query) ([]models.List, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	lists := []models.List{}
	for {
		snap, err := iter.Next()
		if done(err) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list lists: %w", err)
		}
		list, err := listFromSnapshot(snap)
		if err != nil {
			return nil, fmt.Errorf("decode list %s: %w", snap.Ref.ID, err)
		}
		lists = append(lists, *list)
	}
	return lists, nil
}

func (r *ListRepository) Update(ctx context.Context, path models.ListPath, changes *models.ListChanges) error {
	updates := describeUpdates(changes.Name, changes.Description, changes.ClearDescription, changes.DateModified)
	if _, err := r.lists(path.UserID, path.FolderID).Doc(path.ListID).Update(ctx, updates); err != nil {
		return wrapWriteError(err, "update", "list", path.ListID)
	}
	return nil
}

func (r *ListRepository) Delete(ctx context.Context, path models.ListPath) error {
	if _, err := r.lists(path.UserID, path.FolderID).Doc(path.ListID).Delete(ctx, firestore.Exists); err != nil {
		return wrapWriteError(err, "delete", "list", path.ListID)
	}
	return nil
}

func (r *ListRepository) DeleteByFolder(ctx context.Context, folder models.FolderPath) error {
	return r.deleteCollection(ctx, r.lists(folder.UserID, folder.FolderID))
}
