package postgres

import (
	"context"
	"fmt"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
	"cookshelf/internal/domain/repositories"
)

// PostgresRecipeBookRepository implements the RecipeBookRepository interface
type PostgresRecipeBookRepository struct {
	db     repositories.DBTX
	tables *TableNames
}

// NewRecipeBookRepository creates a new recipe book repository
func NewRecipeBookRepository(config *RepositoryConfig) repositories.RecipeBookRepository {
	return &PostgresRecipeBookRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

// Create inserts a new recipe book
func (r *PostgresRecipeBookRepository) Create(ctx context.Context, book *models.RecipeBook) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.RecipeBooks)

	err := GetExecutor(ctx, r.db).QueryRow(ctx, query,
		book.UserID,
		book.Name,
		book.Description,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("recipe book owner %s: %w", book.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("create recipe book: %w", err)
	}

	return nil
}

// GetByID retrieves a recipe book by ID, regardless of owner
func (r *PostgresRecipeBookRepository) GetByID(ctx context.Context, id string) (*models.RecipeBook, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, description, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.RecipeBooks)

	var book models.RecipeBook
	err := GetExecutor(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.UserID,
		&book.Name,
		&book.Description,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("recipe book %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get recipe book: %w", err)
	}

	return &book, nil
}

// ListByUser retrieves all recipe books owned by a user, newest update first
func (r *PostgresRecipeBookRepository) ListByUser(ctx context.Context, userID string) ([]models.RecipeBook, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, description, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, r.tables.RecipeBooks)

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipe books: %w", err)
	}
	defer rows.Close()

	var books []models.RecipeBook
	for rows.Next() {
		var book models.RecipeBook
		err := rows.Scan(
			&book.ID,
			&book.UserID,
			&book.Name,
			&book.Description,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recipe book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe books: %w", err)
	}

	return books, nil
}

// Update persists name, description and updated_at
func (r *PostgresRecipeBookRepository) Update(ctx context.Context, book *models.RecipeBook) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
	`, r.tables.RecipeBooks)

	result, err := GetExecutor(ctx, r.db).Exec(ctx, query,
		book.Name,
		book.Description,
		book.ID,
	)

	if err != nil {
		return fmt.Errorf("update recipe book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("recipe book %s: %w", book.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a recipe book. Recipes referencing it are left in place;
// there is no foreign key from recipes to recipe books.
func (r *PostgresRecipeBookRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.RecipeBooks)

	result, err := GetExecutor(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete recipe book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("recipe book %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
