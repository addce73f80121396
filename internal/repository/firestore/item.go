package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// ItemRepository implements repositories.ItemRepository
type ItemRepository struct {
	*Store
}

// NewItemRepository creates a new item repository
func NewItemRepository(store *Store) repositories.ItemRepository {
	return &ItemRepository{Store: store}
}

func (r *ItemRepository) ref(path models.ItemPath) *firestore.DocumentRef {
	return r.items(path.UserID, path.FolderID, path.ListID).Doc(path.ItemID)
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	if _, err := r.lists(item.UserID, item.FolderID).Doc(item.ListID).Get(ctx); err != nil {
		return wrapGetError(err, "list", item.ListID)
	}

	ref := r.items(item.UserID, item.FolderID, item.ListID).NewDoc()
	_, err := ref.Create(ctx, itemDoc{
		Name:        item.Name,
		Description: item.Description,
		Count:       item.Count,
		Content:     item.Content,
		DateCreated: item.DateCreated,
		CreatedBy:   item.UserID,
	})
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	item.ID = ref.ID
	return nil
}

func (r *ItemRepository) Get(ctx context.Context, path models.ItemPath) (*models.Item, error) {
	snap, err := r.ref(path).Get(ctx)
	if err != nil {
		return nil, wrapGetError(err, "item", path.ItemID)
	}
	return itemFromSnapshot(snap)
}

func (r *ItemRepository) ListByList(ctx context.Context, list models.ListPath) ([]models.Item, error) {
	return r.query(ctx, r.items(list.UserID, list.FolderID, list.ListID).OrderBy(fieldDateCreated, firestore.Asc))
}

func (r *ItemRepository) ListByUser(ctx context.Context, userID string) ([]models.Item, error) {
	return r.query(ctx, r.client.CollectionGroup(itemsCollection).
		Where(fieldCreatedBy, "==", userID).
		OrderBy(fieldDateCreated, firestore.Asc))
}

func (r *ItemRepository) query(ctx context.Context, q firestore.Query) ([]models.Item, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	items := []models.Item{}
	for {
		snap, err := iter.Next()
		if done(err) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		item, err := itemFromSnapshot(snap)
		if err != nil {
			return nil, fmt.Errorf("decode item %s: %w", snap.Ref.ID, err)
		}
		items = append(items, *item)
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, path models.ItemPath, changes *models.ItemChanges) error {
	updates := describeUpdates(changes.Name, changes.Description, changes.ClearDescription, changes.DateModified)
	if changes.Count != nil {
		updates = append(updates, firestore.Update{Path: fieldCount, Value: *changes.Count})
	}
	if _, err := r.ref(path).Update(ctx, updates); err != nil {
		return wrapWriteError(err, "update", "item", path.ItemID)
	}
	return nil
}

// AdjustCount reads and writes the count in one transaction so concurrent
// clicks are not lost.
func (r *ItemRepository) AdjustCount(ctx context.Context, path models.ItemPath, delta int64, floor models.CountFloor, modified time.Time) (int64, error) {
	ref := r.ref(path)
	var next int64

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		current, err := countOf(snap)
		if err != nil {
			return err
		}
		next = floor.Apply(current, delta)
		return tx.Update(ref, []firestore.Update{
			{Path: fieldCount, Value: next},
			{Path: fieldDateModified, Value: modified},
		})
	})
	if err != nil {
		return 0, wrapWriteError(err, "adjust count of", "item", path.ItemID)
	}
	return next, nil
}

// countOf tolerates counts written as doubles by older clients
func countOf(snap *firestore.DocumentSnapshot) (int64, error) {
	v, err := snap.DataAt(fieldCount)
	if err != nil {
		// missing field reads as zero
		return 0, nil
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("item %s: count has type %T", snap.Ref.ID, v)
	}
}

func (r *ItemRepository) SaveContent(ctx context.Context, path models.ItemPath, content string, savedAt time.Time) error {
	_, err := r.ref(path).Update(ctx, []firestore.Update{
		{Path: fieldContent, Value: content},
		{Path: fieldContentSaved, Value: savedAt},
		{Path: fieldDateModified, Value: savedAt},
	})
	if err != nil {
		return wrapWriteError(err, "save content of", "item", path.ItemID)
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, path models.ItemPath) error {
	if _, err := r.ref(path).Delete(ctx, firestore.Exists); err != nil {
		return wrapWriteError(err, "delete", "item", path.ItemID)
	}
	return nil
}

func (r *ItemRepository) DeleteByList(ctx context.Context, list models.ListPath) error {
	return r.deleteCollection(ctx, r.items(list.UserID, list.FolderID, list.ListID))
}

// DeleteByFolder walks the folder's lists and clears each items collection
func (r *ItemRepository) DeleteByFolder(ctx context.Context, folder models.FolderPath) error {
	listRefs, err := r.lists(folder.UserID, folder.FolderID).DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list folder lists: %w", err)
	}

	var refs []*firestore.DocumentRef
	for _, listRef := range listRefs {
		itemRefs, err := listRef.Collection(itemsCollection).DocumentRefs(ctx).GetAll()
		if err != nil {
			return fmt.Errorf("list items of %s: %w", listRef.ID, err)
		}
		refs = append(refs, itemRefs...)
	}
	return r.deleteRefs(ctx, refs)
}
