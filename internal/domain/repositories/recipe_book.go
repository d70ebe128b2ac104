package repositories

import (
	"context"

	"cookshelf/internal/domain/models"
)

// RecipeBookRepository defines data access operations for recipe books.
//
// GetByID is deliberately unscoped by user: the access guard fetches the
// document first and performs the ownership comparison itself, so the
// repository must return rows regardless of who owns them.
type RecipeBookRepository interface {
	// Create inserts a new recipe book and fills in store-generated fields
	Create(ctx context.Context, book *models.RecipeBook) error

	// GetByID retrieves a recipe book by ID, regardless of owner
	GetByID(ctx context.Context, id string) (*models.RecipeBook, error)

	// ListByUser retrieves all recipe books owned by a user, ordered by updated_at DESC
	ListByUser(ctx context.Context, userID string) ([]models.RecipeBook, error)

	// Update persists name, description and updated_at
	Update(ctx context.Context, book *models.RecipeBook) error

	// Delete removes a recipe book. Returns domain.ErrNotFound wrapped if
	// the row is already gone.
	Delete(ctx context.Context, id string) error
}
