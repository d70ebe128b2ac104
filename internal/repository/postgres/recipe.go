package postgres

import (
	"context"
	"fmt"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
	"cookshelf/internal/domain/repositories"
)

// PostgresRecipeRepository implements the RecipeRepository interface
type PostgresRecipeRepository struct {
	db     repositories.DBTX
	tables *TableNames
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(config *RepositoryConfig) repositories.RecipeRepository {
	return &PostgresRecipeRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

// Create inserts a new recipe
func (r *PostgresRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, recipe_book_id, name, ingredients, directions,
			rating, active_time, total_time, servings, calories)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, r.tables.Recipes)

	err := GetExecutor(ctx, r.db).QueryRow(ctx, query,
		recipe.UserID,
		recipe.RecipeBookID,
		recipe.Name,
		recipe.Ingredients,
		recipe.Directions,
		recipe.Rating,
		recipe.ActiveTime,
		recipe.TotalTime,
		recipe.Servings,
		recipe.Calories,
	).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("recipe owner %s: %w", recipe.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("create recipe: %w", err)
	}

	return nil
}

// GetByID retrieves a recipe by ID, regardless of owner
func (r *PostgresRecipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, recipe_book_id, name, ingredients, directions,
			rating, active_time, total_time, servings, calories, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Recipes)

	var recipe models.Recipe
	err := GetExecutor(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.RecipeBookID,
		&recipe.Name,
		&recipe.Ingredients,
		&recipe.Directions,
		&recipe.Rating,
		&recipe.ActiveTime,
		&recipe.TotalTime,
		&recipe.Servings,
		&recipe.Calories,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	return &recipe, nil
}

// ListByRecipeBook retrieves all recipes in a book, newest update first
func (r *PostgresRecipeRepository) ListByRecipeBook(ctx context.Context, recipeBookID string) ([]models.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, recipe_book_id, name, ingredients, directions,
			rating, active_time, total_time, servings, calories, created_at, updated_at
		FROM %s
		WHERE recipe_book_id = $1
		ORDER BY updated_at DESC
	`, r.tables.Recipes)

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query, recipeBookID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var recipe models.Recipe
		err := rows.Scan(
			&recipe.ID,
			&recipe.UserID,
			&recipe.RecipeBookID,
			&recipe.Name,
			&recipe.Ingredients,
			&recipe.Directions,
			&recipe.Rating,
			&recipe.ActiveTime,
			&recipe.TotalTime,
			&recipe.Servings,
			&recipe.Calories,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	return recipes, nil
}

// Update persists all mutable fields and updated_at
func (r *PostgresRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET recipe_book_id = $1, name = $2, ingredients = $3, directions = $4,
			rating = $5, active_time = $6, total_time = $7, servings = $8,
			calories = $9, updated_at = now()
		WHERE id = $10
	`, r.tables.Recipes)

	result, err := GetExecutor(ctx, r.db).Exec(ctx, query,
		recipe.RecipeBookID,
		recipe.Name,
		recipe.Ingredients,
		recipe.Directions,
		recipe.Rating,
		recipe.ActiveTime,
		recipe.TotalTime,
		recipe.Servings,
		recipe.Calories,
		recipe.ID,
	)

	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("recipe %s: %w", recipe.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a recipe
func (r *PostgresRecipeRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Recipes)

	result, err := GetExecutor(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
