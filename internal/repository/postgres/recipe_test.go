package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
)

func sampleRecipe() *models.Recipe {
	rating := 4.5
	ingredients := "mascarpone, espresso, ladyfingers"
	return &models.Recipe{
		UserID:       "user-1",
		RecipeBookID: "book-1",
		Name:         "Tiramisu",
		Ingredients:  &ingredients,
		Rating:       &rating,
	}
}

func TestRecipeRepository_Create(t *testing.T) {
	config, mock := newMockConfig(t)
	defer mock.Close()
	r := NewRecipeRepository(config)
	ctx := context.Background()
	now := time.Now()

	recipe := sampleRecipe()

	mock.ExpectQuery(`INSERT INTO recipes \(user_id, recipe_book_id, name, ingredients, directions,`).
		WithArgs(recipe.UserID, recipe.RecipeBookID, recipe.Name, recipe.Ingredients, recipe.Directions,
			recipe.Rating, recipe.ActiveTime, recipe.TotalTime, recipe.Servings, recipe.Calories).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("recipe-1", now, now))
	require.NoError(t, r.Create(ctx, recipe))
	require.Equal(t, "recipe-1", recipe.ID)
}

func TestRecipeRepository_GetByID(t *testing.T) {
	config, mock := newMockConfig(t)
	defer mock.Close()
	r := NewRecipeRepository(config)
	ctx := context.Background()
	now := time.Now()

	rating := 4.5
	mock.ExpectQuery(`FROM recipes\s+WHERE id = \$1`).
		WithArgs("recipe-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "recipe_book_id", "name", "ingredients", "directions",
			"rating", "active_time", "total_time", "servings", "calories", "created_at", "updated_at",
		}).AddRow("recipe-1", "user-1", "book-1", "Tiramisu", nil, nil, &rating, nil, nil, nil, nil, now, now))
	recipe, err := r.GetByID(ctx, "recipe-1")
	require.NoError(t, err)
	require.Equal(t, "book-1", recipe.RecipeBookID)
	require.NotNil(t, recipe.Rating)
	require.Equal(t, 4.5, *recipe.Rating)

	mock.ExpectQuery(`FROM recipes\s+WHERE id = \$1`).
		WithArgs("recipe-2").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, "recipe-2")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipeRepository_ListByRecipeBook(t *testing.T) {
	config, mock := newMockConfig(t)
	defer mock.Close()
	r := NewRecipeRepository(config)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`FROM recipes\s+WHERE recipe_book_id = \$1\s+ORDER BY updated_at DESC`).
		WithArgs("book-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "recipe_book_id", "name", "ingredients", "directions",
			"rating", "active_time", "total_time", "servings", "calories", "created_at", "updated_at",
		}).
			AddRow("recipe-2", "user-1", "book-1", "Panna cotta", nil, nil, nil, nil, nil, nil, nil, now, now).
			AddRow("recipe-1", "user-1", "book-1", "Tiramisu", nil, nil, nil, nil, nil, nil, nil, now.Add(-time.Hour), now.Add(-time.Hour)))
	recipes, err := r.ListByRecipeBook(ctx, "book-1")
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	require.Equal(t, "recipe-2", recipes[0].ID)
}

func TestRecipeRepository_Update(t *testing.T) {
	config, mock := newMockConfig(t)
	defer mock.Close()
	r := NewRecipeRepository(config)
	ctx := context.Background()

	recipe := sampleRecipe()
	recipe.ID = "recipe-1"

	mock.ExpectExec(`UPDATE recipes\s+SET recipe_book_id = \$1`).
		WithArgs(recipe.RecipeBookID, recipe.Name, recipe.Ingredients, recipe.Directions,
			recipe.Rating, recipe.ActiveTime, recipe.TotalTime, recipe.Servings, recipe.Calories, recipe.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(ctx, recipe))

	mock.ExpectExec(`UPDATE recipes`).
		WithArgs(recipe.RecipeBookID, recipe.Name, recipe.Ingredients, recipe.Directions,
			recipe.Rating, recipe.ActiveTime, recipe.TotalTime, recipe.Servings, recipe.Calories, recipe.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(ctx, recipe), domain.ErrNotFound)
}

func TestRecipeRepository_Delete(t *testing.T) {
	config, mock := newMockConfig(t)
	defer mock.Close()
	r := NewRecipeRepository(config)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM recipes\s+WHERE id = \$1`).
		WithArgs("recipe-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, "recipe-1"))

	mock.ExpectExec(`DELETE FROM recipes\s+WHERE id = \$1`).
		WithArgs("recipe-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, "recipe-1"), domain.ErrNotFound)
}
