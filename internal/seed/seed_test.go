package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
	"cookshelf/internal/domain/repositories"
)

type memUserRepo struct {
	byExternal map[string]*models.User
	nextID     int
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byExternal[user.ExternalID] = user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range r.byExternal {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func (r *memUserRepo) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	if u, ok := r.byExternal[externalID]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", externalID, domain.ErrNotFound)
}

type memBookRepo struct {
	books  []*models.RecipeBook
	nextID int
}

func (r *memBookRepo) Create(ctx context.Context, book *models.RecipeBook) error {
	r.nextID++
	book.ID = fmt.Sprintf("book-%d", r.nextID)
	r.books = append(r.books, book)
	return nil
}

func (r *memBookRepo) GetByID(ctx context.Context, id string) (*models.RecipeBook, error) {
	return nil, domain.ErrNotFound
}

func (r *memBookRepo) ListByUser(ctx context.Context, userID string) ([]models.RecipeBook, error) {
	return nil, nil
}

func (r *memBookRepo) Update(ctx context.Context, book *models.RecipeBook) error { return nil }
func (r *memBookRepo) Delete(ctx context.Context, id string) error               { return nil }

type memRecipeRepo struct {
	recipes []*models.Recipe
	nextID  int
}

func (r *memRecipeRepo) Create(ctx context.Context, recipe *models.Recipe) error {
	r.nextID++
	recipe.ID = fmt.Sprintf("recipe-%d", r.nextID)
	r.recipes = append(r.recipes, recipe)
	return nil
}

func (r *memRecipeRepo) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	return nil, domain.ErrNotFound
}

func (r *memRecipeRepo) ListByRecipeBook(ctx context.Context, recipeBookID string) ([]models.Recipe, error) {
	return nil, nil
}

func (r *memRecipeRepo) Update(ctx context.Context, recipe *models.Recipe) error { return nil }
func (r *memRecipeRepo) Delete(ctx context.Context, id string) error             { return nil }

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func newTestSeeder() (*Seeder, *memUserRepo, *memBookRepo, *memRecipeRepo) {
	users := &memUserRepo{byExternal: make(map[string]*models.User)}
	books := &memBookRepo{}
	recipes := &memRecipeRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSeeder(users, books, recipes, passthroughTx{}, logger), users, books, recipes
}

func TestLoad(t *testing.T) {
	fixtures, err := Load()
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	if len(fixtures.Users) == 0 {
		t.Fatal("no fixture users")
	}
	first := fixtures.Users[0]
	if first.ExternalID == "" {
		t.Error("fixture user missing external_id")
	}
	if len(first.RecipeBooks) == 0 {
		t.Error("fixture user has no recipe books")
	}
	if len(first.RecipeBooks[0].Recipes) == 0 {
		t.Error("fixture book has no recipes")
	}
}

func TestApply(t *testing.T) {
	seeder, users, books, recipes := newTestSeeder()
	fixtures, err := Load()
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}

	if err := seeder.Apply(context.Background(), fixtures); err != nil {
		t.Fatalf("apply fixtures: %v", err)
	}

	if len(users.byExternal) != len(fixtures.Users) {
		t.Errorf("seeded %d users, want %d", len(users.byExternal), len(fixtures.Users))
	}
	if len(books.books) == 0 || len(recipes.recipes) == 0 {
		t.Fatal("expected books and recipes to be seeded")
	}

	// Every seeded recipe belongs to a seeded book of the same owner
	ownerByBook := make(map[string]string)
	for _, b := range books.books {
		ownerByBook[b.ID] = b.UserID
	}
	for _, r := range recipes.recipes {
		owner, ok := ownerByBook[r.RecipeBookID]
		if !ok {
			t.Errorf("recipe %s references unknown book %s", r.Name, r.RecipeBookID)
			continue
		}
		if owner != r.UserID {
			t.Errorf("recipe %s owner %s does not match book owner %s", r.Name, r.UserID, owner)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	seeder, users, books, _ := newTestSeeder()
	fixtures, err := Load()
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}

	if err := seeder.Apply(context.Background(), fixtures); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	booksAfterFirst := len(books.books)

	if err := seeder.Apply(context.Background(), fixtures); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	if len(users.byExternal) != len(fixtures.Users) {
		t.Errorf("reseeding duplicated users: %d", len(users.byExternal))
	}
	if len(books.books) != booksAfterFirst {
		t.Errorf("reseeding duplicated books: %d, want %d", len(books.books), booksAfterFirst)
	}
}
