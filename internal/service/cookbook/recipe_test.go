package cookbook

import (
	"context"
	"errors"
	"testing"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
	"cookshelf/internal/domain/services"
	"cookshelf/internal/httputil"
	"cookshelf/internal/service/authz"
)

func newRecipeService(caller *models.User, recipes *fakeRecipeRepo, books *fakeBookRepo) services.RecipeService {
	resolver := &fakeResolver{user: caller}
	return NewRecipeService(recipes, books, resolver, authz.NewGuard(resolver), testLogger())
}

func seedBook(t *testing.T, repo *fakeBookRepo, userID, name string) *models.RecipeBook {
	t.Helper()
	book := &models.RecipeBook{UserID: userID, Name: name}
	if err := repo.Create(context.Background(), book); err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return book
}

func TestCreateRecipe_StampsCallerAsOwner(t *testing.T) {
	books := newFakeBookRepo()
	recipes := newFakeRecipeRepo()
	book := seedBook(t, books, "user-a", "Desserts")
	svc := newRecipeService(&models.User{ID: "user-a"}, recipes, books)

	recipe, err := svc.CreateRecipe(context.Background(), &services.CreateRecipeRequest{
		RecipeBookID: book.ID,
		Name:         "Tiramisu",
		Ingredients:  strptr("mascarpone, espresso, ladyfingers"),
		Rating:       f64ptr(4.5),
		Servings:     f64ptr(8),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if recipe.UserID != "user-a" {
		t.Errorf("owner = %s, want user-a", recipe.UserID)
	}
	if recipe.RecipeBookID != book.ID {
		t.Errorf("book = %s, want %s", recipe.RecipeBookID, book.ID)
	}
}

// The create payload has no owner field at all; the type system enforces
// the "never caller-supplied" property. This test pins the closest
// observable behavior: the stamped owner is the resolved caller even when
// the referenced book belongs to someone else.
func TestCreateRecipe_ForeignBookAccepted(t *testing.T) {
	books := newFakeBookRepo()
	recipes := newFakeRecipeRepo()
	foreignBook := seedBook(t, books, "user-b", "Bob's book")
	svc := newRecipeService(&models.User{ID: "user-a"}, recipes, books)

	recipe, err := svc.CreateRecipe(context.Background(), &services.CreateRecipeRequest{
		RecipeBookID: foreignBook.ID,
		Name:         "Cuckoo egg",
	})
	if err != nil {
		t.Fatalf("creating into a foreign book must be accepted (observed behavior): %v", err)
	}
	if recipe.UserID != "user-a" {
		t.Errorf("owner = %s, want the creating caller user-a", recipe.UserID)
	}
}

func TestCreateRecipe_Validation(t *testing.T) {
	books := newFakeBookRepo()
	book := seedBook(t, books, "user-a", "Desserts")
	svc := newRecipeService(&models.User{ID: "user-a"}, newFakeRecipeRepo(), books)

	cases := []struct {
		name string
		req  services.CreateRecipeRequest
	}{
		{"missing book", services.CreateRecipeRequest{Name: "X"}},
		{"empty name", services.CreateRecipeRequest{RecipeBookID: book.ID}},
		{"rating above max", services.CreateRecipeRequest{RecipeBookID: book.ID, Name: "X", Rating: f64ptr(7)}},
		{"negative servings", services.CreateRecipeRequest{RecipeBookID: book.ID, Name: "X", Servings: f64ptr(-2)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRecipe(context.Background(), &tc.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestGetRecipe_NonOwnerForbidden(t *testing.T) {
	books := newFakeBookRepo()
	recipes := newFakeRecipeRepo()
	book := seedBook(t, books, "user-a", "Desserts")
	owner := newRecipeService(&models.User{ID: "user-a"}, recipes, books)
	recipe, err := owner.CreateRecipe(context.Background(), &services.CreateRecipeRequest{
		RecipeBookID: book.ID,
		Name:         "Tiramisu",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other := newRecipeService(&models.User{ID: "user-b"}, recipes, books)
	if _, err := other.GetRecipe(context.Background(), recipe.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateRecipe_PatchSemantics(t *testing.T) {
	books := newFakeBookRepo()
	recipes := newFakeRecipeRepo()
	book := seedBook(t, books, "user-a", "Desserts")
	svc := newRecipeService(&models.User{ID: "user-a"}, recipes, books)
	recipe, err := svc.CreateRecipe(context.Background(), &services.CreateRecipeRequest{
		RecipeBookID: book.ID,
		Name:         "Tiramisu",
		Directions:   strptr("soak, layer, chill"),
		Rating:       f64ptr(4),
		Calories:     f64ptr(420),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateRecipe(context.Background(), recipe.ID, &services.UpdateRecipeRequest{
		Rating:   httputil.OptionalFloat64{Present: true, Value: f64ptr(5)},
		Calories: httputil.OptionalFloat64{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating == nil || *updated.Rating != 5 {
		t.Errorf("rating = %v, want 5", updated.Rating)
	}
	if updated.Calories != nil {
		t.Error("explicit null must clear calories")
	}
	if updated.Directions == nil || *updated.Directions != "soak, layer, chill" {
		t.Error("absent fields must stay unchanged")
	}
	if updated.Name != "Tiramisu" {
		t.Errorf("name = %s, want Tiramisu", updated.Name)
	}
}

func TestUpdateRecipe_MoveToAnotherBook(t *testing.T) {
	books := newFakeBookRepo()
	recipes := newFakeRecipeRepo()
	first := seedBook(t, books, "user-a", "Desserts")
	second := seedBook(t, books, "user-a", "Favorites")
	svc := newRecipeService(&models.User{ID: "user-a"}, recipes, books)
	recipe, _ := svc.CreateRecipe(context.Background(), &services.CreateRecipeRequest{
		RecipeBookID: first.ID,
		Name:         "Tiramisu",
	})

	updated, err := svc.UpdateRecipe(context.Background(), recipe.ID, &services.UpdateRecipeRequest{
		RecipeBookID: httputil.OptionalString{Present: true, Value: strptr(second.ID)},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.RecipeBookID != second.ID {
		t.Errorf("book = %s, want %s", updated.RecipeBookID, second.ID)
	}

	inSecond, err := svc.ListRecipesByBook(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(inSecond) != 1 || inSecond[0].ID != recipe.ID {
		t.Errorf("second book holds %+v, want the moved recipe", inSecond)
	}
}

func TestListRecipesByBook_GuardsTheBook(t *testing.T) {
	books := newFakeBookRepo()
	recipes := newFakeRecipeRepo()
	book := seedBook(t, books, "user-a", "Desserts")

	other := newRecipeService(&models.User{ID: "user-b"}, recipes, books)
	if _, err := other.ListRecipesByBook(context.Background(), book.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a foreign book, got %v", err)
	}

	none := newRecipeService(&models.User{ID: "user-a"}, recipes, books)
	if _, err := none.ListRecipesByBook(context.Background(), "no-such-book"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing book, got %v", err)
	}
}

func TestDeleteRecipe_Idempotence(t *testing.T) {
	books := newFakeBookRepo()
	recipes := newFakeRecipeRepo()
	book := seedBook(t, books, "user-a", "Desserts")
	svc := newRecipeService(&models.User{ID: "user-a"}, recipes, books)
	recipe, _ := svc.CreateRecipe(context.Background(), &services.CreateRecipeRequest{
		RecipeBookID: book.ID,
		Name:         "Tiramisu",
	})

	if err := svc.DeleteRecipe(context.Background(), recipe.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.DeleteRecipe(context.Background(), recipe.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

// Deleting a book leaves its recipes behind, still reachable by id.
func TestDeleteBook_LeavesOrphanRecipes(t *testing.T) {
	books := newFakeBookRepo()
	recipes := newFakeRecipeRepo()
	book := seedBook(t, books, "user-a", "Desserts")
	caller := &models.User{ID: "user-a"}
	bookSvc := NewRecipeBookService(books, &fakeResolver{user: caller}, authz.NewGuard(&fakeResolver{user: caller}), testLogger())
	recipeSvc := newRecipeService(caller, recipes, books)

	recipe, _ := recipeSvc.CreateRecipe(context.Background(), &services.CreateRecipeRequest{
		RecipeBookID: book.ID,
		Name:         "Tiramisu",
	})

	if err := bookSvc.DeleteRecipeBook(context.Background(), book.ID); err != nil {
		t.Fatalf("delete book: %v", err)
	}

	got, err := recipeSvc.GetRecipe(context.Background(), recipe.ID)
	if err != nil {
		t.Fatalf("orphan recipe must stay reachable: %v", err)
	}
	if got.RecipeBookID != book.ID {
		t.Errorf("orphan keeps dangling book reference %s, got %s", book.ID, got.RecipeBookID)
	}
}
