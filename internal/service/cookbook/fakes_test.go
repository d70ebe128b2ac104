package cookbook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
)

// fakeResolver returns a fixed user, or an unauthenticated failure when nil.
type fakeResolver struct {
	user *models.User
}

func (f *fakeResolver) CurrentUser(ctx context.Context) (*models.User, error) {
	if f.user == nil {
		return nil, fmt.Errorf("no identity claims in request context: %w", domain.ErrUnauthorized)
	}
	return f.user, nil
}

// fakeBookRepo is an in-memory RecipeBookRepository.
type fakeBookRepo struct {
	books  map[string]models.RecipeBook
	nextID int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[string]models.RecipeBook{}}
}

func (f *fakeBookRepo) Create(ctx context.Context, book *models.RecipeBook) error {
	f.nextID++
	book.ID = fmt.Sprintf("book-%d", f.nextID)
	f.books[book.ID] = *book
	return nil
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id string) (*models.RecipeBook, error) {
	book, ok := f.books[id]
	if !ok {
		return nil, fmt.Errorf("recipe book %s: %w", id, domain.ErrNotFound)
	}
	return &book, nil
}

func (f *fakeBookRepo) ListByUser(ctx context.Context, userID string) ([]models.RecipeBook, error) {
	out := []models.RecipeBook{}
	for _, b := range f.books {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, book *models.RecipeBook) error {
	if _, ok := f.books[book.ID]; !ok {
		return fmt.Errorf("recipe book %s: %w", book.ID, domain.ErrNotFound)
	}
	f.books[book.ID] = *book
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.books[id]; !ok {
		return fmt.Errorf("recipe book %s: %w", id, domain.ErrNotFound)
	}
	delete(f.books, id)
	return nil
}

// fakeRecipeRepo is an in-memory RecipeRepository.
type fakeRecipeRepo struct {
	recipes map[string]models.Recipe
	nextID  int
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[string]models.Recipe{}}
}

func (f *fakeRecipeRepo) Create(ctx context.Context, recipe *models.Recipe) error {
	f.nextID++
	recipe.ID = fmt.Sprintf("recipe-%d", f.nextID)
	f.recipes[recipe.ID] = *recipe
	return nil
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	return &recipe, nil
}

func (f *fakeRecipeRepo) ListByRecipeBook(ctx context.Context, recipeBookID string) ([]models.Recipe, error) {
	out := []models.Recipe{}
	for _, r := range f.recipes {
		if r.RecipeBookID == recipeBookID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeRecipeRepo) Update(ctx context.Context, recipe *models.Recipe) error {
	if _, ok := f.recipes[recipe.ID]; !ok {
		return fmt.Errorf("recipe %s: %w", recipe.ID, domain.ErrNotFound)
	}
	f.recipes[recipe.ID] = *recipe
	return nil
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.recipes[id]; !ok {
		return fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	delete(f.recipes, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strptr(s string) *string { return &s }

func f64ptr(f float64) *float64 { return &f }
