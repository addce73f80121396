package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// UserRepository stores profiles at users/{uid}
type UserRepository struct {
	*Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *Store) repositories.UserRepository {
	return &UserRepository{Store: store}
}

func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	snap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, wrapGetError(err, "profile", userID)
	}
	var profile models.Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	profile.UserID = userID
	return &profile, nil
}

func (r *UserRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	if _, err := r.client.Collection(usersCollection).Doc(profile.UserID).Set(ctx, profile); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// DeleteProfile removes users/{uid} and everything beneath it
func (r *UserRepository) DeleteProfile(ctx context.Context, userID string) error {
	userRef := r.client.Collection(usersCollection).Doc(userID)

	folderRefs, err := userRef.Collection(foldersCollection).DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}

	var refs []*firestore.DocumentRef
	for _, folderRef := range folderRefs {
		listRefs, err := folderRef.Collection(listsCollection).DocumentRefs(ctx).GetAll()
		if err != nil {
			return fmt.Errorf("list lists of %s: %w", folderRef.ID, err)
		}
		for _, listRef := range listRefs {
			itemRefs, err := listRef.Collection(itemsCollection).DocumentRefs(ctx).GetAll()
			if err != nil {
				return fmt.Errorf("list items of %s: %w", listRef.ID, err)
			}
			refs = append(refs, itemRefs...)
		}
		refs = append(refs, listRefs...)
	}
	refs = append(refs, folderRefs...)
	refs = append(refs, userRef)

	return r.deleteRefs(ctx, refs)
}
