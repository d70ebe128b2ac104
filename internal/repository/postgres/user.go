package postgres

import (
	"context"
	"fmt"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
	"cookshelf/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	db     repositories.DBTX
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

// Create inserts a new user record
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (external_id, display_name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, r.tables.Users)

	err := GetExecutor(ctx, r.db).QueryRow(ctx, query,
		user.ExternalID,
		user.DisplayName,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("user with external id '%s': %w", user.ExternalID, domain.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by internal ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, external_id, display_name, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	var user models.User
	err := GetExecutor(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.ExternalID,
		&user.DisplayName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetByExternalID retrieves a user by the identity provider's subject claim
func (r *PostgresUserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, external_id, display_name, created_at, updated_at
		FROM %s
		WHERE external_id = $1
	`, r.tables.Users)

	var user models.User
	err := GetExecutor(ctx, r.db).QueryRow(ctx, query, externalID).Scan(
		&user.ID,
		&user.ExternalID,
		&user.DisplayName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user with external id %s: %w", externalID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by external id: %w", err)
	}

	return &user, nil
}
