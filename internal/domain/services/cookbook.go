package services

import (
	"context"

	"cookshelf/internal/domain/models"
	"cookshelf/internal/httputil"
)

// CreateRecipeBookRequest represents a request to create a recipe book.
// The owner is always the resolved caller; there is deliberately no user
// field for the client to supply.
type CreateRecipeBookRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateRecipeBookRequest represents a partial update to a recipe book.
// Absent fields are left unchanged; an explicit null clears description.
type UpdateRecipeBookRequest struct {
	Name        httputil.OptionalString `json:"name"`
	Description httputil.OptionalString `json:"description"`
}

// RecipeBookService defines business logic operations for recipe books.
// Every operation resolves the caller itself; single-record reads and all
// writes go through the ownership guard first.
type RecipeBookService interface {
	// CreateRecipeBook creates a new recipe book owned by the caller
	CreateRecipeBook(ctx context.Context, req *CreateRecipeBookRequest) (*models.RecipeBook, error)

	// GetRecipeBook retrieves one of the caller's recipe books by ID
	GetRecipeBook(ctx context.Context, id string) (*models.RecipeBook, error)

	// ListRecipeBooks retrieves all recipe books owned by the caller
	ListRecipeBooks(ctx context.Context) ([]models.RecipeBook, error)

	// UpdateRecipeBook applies a partial update to one of the caller's books
	UpdateRecipeBook(ctx context.Context, id string, req *UpdateRecipeBookRequest) (*models.RecipeBook, error)

	// DeleteRecipeBook removes one of the caller's books. Recipes inside the
	// book are left in place.
	DeleteRecipeBook(ctx context.Context, id string) error
}

// CreateRecipeRequest represents a request to create a recipe.
// RecipeBookID names the containing book; ownership of that book is not
// cross-checked at creation time (observed behavior, pinned by test).
type CreateRecipeRequest struct {
	RecipeBookID string   `json:"recipe_book_id"`
	Name         string   `json:"name"`
	Ingredients  *string  `json:"ingredients,omitempty"`
	Directions   *string  `json:"directions,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	ActiveTime   *float64 `json:"active_time,omitempty"`
	TotalTime    *float64 `json:"total_time,omitempty"`
	Servings     *float64 `json:"servings,omitempty"`
	Calories     *float64 `json:"calories,omitempty"`
}

// UpdateRecipeRequest represents a partial update to a recipe.
// Absent fields are left unchanged; explicit nulls clear nullable fields.
// RecipeBookID moves the recipe to a different book when present.
type UpdateRecipeRequest struct {
	RecipeBookID httputil.OptionalString  `json:"recipe_book_id"`
	Name         httputil.OptionalString  `json:"name"`
	Ingredients  httputil.OptionalString  `json:"ingredients"`
	Directions   httputil.OptionalString  `json:"directions"`
	Rating       httputil.OptionalFloat64 `json:"rating"`
	ActiveTime   httputil.OptionalFloat64 `json:"active_time"`
	TotalTime    httputil.OptionalFloat64 `json:"total_time"`
	Servings     httputil.OptionalFloat64 `json:"servings"`
	Calories     httputil.OptionalFloat64 `json:"calories"`
}

// RecipeService defines business logic operations for recipes
type RecipeService interface {
	// CreateRecipe creates a new recipe owned by the caller
	CreateRecipe(ctx context.Context, req *CreateRecipeRequest) (*models.Recipe, error)

	// GetRecipe retrieves one of the caller's recipes by ID
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)

	// ListRecipesByBook retrieves all recipes in one of the caller's books
	ListRecipesByBook(ctx context.Context, recipeBookID string) ([]models.Recipe, error)

	// UpdateRecipe applies a partial update to one of the caller's recipes
	UpdateRecipe(ctx context.Context, id string, req *UpdateRecipeRequest) (*models.Recipe, error)

	// DeleteRecipe removes one of the caller's recipes
	DeleteRecipe(ctx context.Context, id string) error
}
