package repositories

import (
	"context"

	"cookshelf/internal/domain/models"
)

// UserRepository defines data access operations for users.
// Users are written only by the identity resolver; there is no update or
// delete path in this system.
type UserRepository interface {
	// Create inserts a new user record.
	// Returns domain.ErrConflict wrapped if the external ID is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by internal ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByExternalID retrieves a user by the identity provider's subject claim
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
}
