package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// UserRepository implements repositories.UserRepository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new profile repository
func NewUserRepository(db *sql.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var (
		p        models.Profile
		modified string
	)
	err := getExecutor(ctx, r.db).QueryRowContext(ctx,
		"SELECT user_id, first_name, last_name, email, date_modified FROM profiles WHERE user_id = ?", userID,
	).Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Email, &modified)
	if err != nil {
		return nil, wrapGetError(err, "profile", userID)
	}
	if p.DateModified, err = parseTime(modified); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO profiles (user_id, first_name, last_name, email, date_modified)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET first_name = excluded.first_name,
		    last_name = excluded.last_name,
		    email = excluded.email,
		    date_modified = excluded.date_modified`,
		profile.UserID, profile.FirstName, profile.LastName, profile.Email, formatTime(profile.DateModified),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *UserRepository) DeleteProfile(ctx context.Context, userID string) error {
	if _, err := getExecutor(ctx, r.db).ExecContext(ctx, "DELETE FROM profiles WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
