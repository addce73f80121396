package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// PostgresUserRepository stores registration profiles
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new profile repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{pool: config.Pool, tables: config.Tables}
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT user_id, first_name, last_name, email, date_modified
		FROM %s
		WHERE user_id = $1
	`, r.tables.Profiles)

	var p models.Profile
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.DateModified)
	if err != nil {
		return nil, wrapGetError(err, "profile", userID)
	}
	return &p, nil
}

func (r *PostgresUserRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, first_name, last_name, email, date_modified)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    email = EXCLUDED.email,
		    date_modified = EXCLUDED.date_modified
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, profile.UserID, profile.FirstName, profile.LastName, profile.Email, profile.DateModified)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) DeleteProfile(ctx context.Context, userID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
