package repositories

import (
	"context"

	"cookshelf/internal/domain/models"
)

// RecipeRepository defines data access operations for recipes.
// Like RecipeBookRepository, GetByID is unscoped; ownership is enforced by
// the access guard above this layer.
type RecipeRepository interface {
	// Create inserts a new recipe and fills in store-generated fields
	Create(ctx context.Context, recipe *models.Recipe) error

	// GetByID retrieves a recipe by ID, regardless of owner
	GetByID(ctx context.Context, id string) (*models.Recipe, error)

	// ListByRecipeBook retrieves all recipes in a book, ordered by updated_at DESC
	ListByRecipeBook(ctx context.Context, recipeBookID string) ([]models.Recipe, error)

	// Update persists all mutable fields and updated_at
	Update(ctx context.Context, recipe *models.Recipe) error

	// Delete removes a recipe. Returns domain.ErrNotFound wrapped if the
	// row is already gone.
	Delete(ctx context.Context, id string) error
}
