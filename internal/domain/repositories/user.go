package repositories

import (
	"context"

	"docit/internal/domain/models"
)

// UserRepository stores the profile document written at registration
type UserRepository interface {
	// GetProfile returns domain.ErrNotFound when no profile was stored
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	DeleteProfile(ctx context.Context, userID string) error
}
