package cookbook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cookshelf/internal/config"
	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
	"cookshelf/internal/domain/repositories"
	"cookshelf/internal/domain/services"
	"cookshelf/internal/httputil"
	"cookshelf/internal/service/authz"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// recipeService implements the RecipeService interface
type recipeService struct {
	recipeRepo repositories.RecipeRepository
	bookRepo   repositories.RecipeBookRepository
	identity   services.IdentityResolver
	guard      *authz.Guard
	logger     *slog.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	bookRepo repositories.RecipeBookRepository,
	identity services.IdentityResolver,
	guard *authz.Guard,
	logger *slog.Logger,
) services.RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		bookRepo:   bookRepo,
		identity:   identity,
		guard:      guard,
		logger:     logger,
	}
}

// CreateRecipe creates a new recipe owned by the caller.
//
// The referenced book's ownership is intentionally not cross-checked here;
// a recipe can be filed into another user's book. The recipe itself still
// belongs to its creator and only the creator can touch it afterwards.
func (s *recipeService) CreateRecipe(ctx context.Context, req *services.CreateRecipeRequest) (*models.Recipe, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	recipe := &models.Recipe{
		UserID:       user.ID,
		RecipeBookID: req.RecipeBookID,
		Name:         strings.TrimSpace(req.Name),
		Ingredients:  req.Ingredients,
		Directions:   req.Directions,
		Rating:       req.Rating,
		ActiveTime:   req.ActiveTime,
		TotalTime:    req.TotalTime,
		Servings:     req.Servings,
		Calories:     req.Calories,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	s.logger.Info("recipe created",
		"id", recipe.ID,
		"name", recipe.Name,
		"recipe_book_id", recipe.RecipeBookID,
		"user_id", user.ID,
	)

	return recipe, nil
}

// GetRecipe retrieves one of the caller's recipes by ID
func (s *recipeService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	return authz.Document(ctx, s.guard, authz.TableRecipes, authz.ActionQuery, id, s.recipeRepo.GetByID)
}

// ListRecipesByBook retrieves all recipes in one of the caller's books.
// The book is the guarded document here; once the caller is confirmed as
// its owner the recipes are listed by the byRecipeBook index.
func (s *recipeService) ListRecipesByBook(ctx context.Context, recipeBookID string) ([]models.Recipe, error) {
	if _, err := authz.Document(ctx, s.guard, authz.TableRecipeBooks, authz.ActionQuery, recipeBookID, s.bookRepo.GetByID); err != nil {
		return nil, err
	}

	return s.recipeRepo.ListByRecipeBook(ctx, recipeBookID)
}

// UpdateRecipe applies a partial update to one of the caller's recipes
func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req *services.UpdateRecipeRequest) (*models.Recipe, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	recipe, err := authz.Document(ctx, s.guard, authz.TableRecipes, authz.ActionMutation, id, s.recipeRepo.GetByID)
	if err != nil {
		return nil, err
	}

	if req.Name.Present && req.Name.Value != nil {
		recipe.Name = strings.TrimSpace(*req.Name.Value)
	}
	if req.RecipeBookID.Present && req.RecipeBookID.Value != nil {
		recipe.RecipeBookID = *req.RecipeBookID.Value
	}
	if req.Ingredients.Present {
		recipe.Ingredients = req.Ingredients.Value
	}
	if req.Directions.Present {
		recipe.Directions = req.Directions.Value
	}
	if req.Rating.Present {
		recipe.Rating = req.Rating.Value
	}
	if req.ActiveTime.Present {
		recipe.ActiveTime = req.ActiveTime.Value
	}
	if req.TotalTime.Present {
		recipe.TotalTime = req.TotalTime.Value
	}
	if req.Servings.Present {
		recipe.Servings = req.Servings.Value
	}
	if req.Calories.Present {
		recipe.Calories = req.Calories.Value
	}
	recipe.UpdatedAt = time.Now()

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}

	s.logger.Info("recipe updated",
		"id", recipe.ID,
		"user_id", recipe.UserID,
	)

	return recipe, nil
}

// DeleteRecipe removes one of the caller's recipes
func (s *recipeService) DeleteRecipe(ctx context.Context, id string) error {
	recipe, err := authz.Document(ctx, s.guard, authz.TableRecipes, authz.ActionMutation, id, s.recipeRepo.GetByID)
	if err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("recipe deleted",
		"id", id,
		"user_id", recipe.UserID,
	)

	return nil
}

// validateCreateRequest validates a create recipe request
func (s *recipeService) validateCreateRequest(req *services.CreateRecipeRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.RecipeBookID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxRecipeNameLength),
			validation.By(validateTrimmedNonEmpty),
		),
		validation.Field(&req.Ingredients, validation.Length(0, config.MaxRecipeTextLength)),
		validation.Field(&req.Directions, validation.Length(0, config.MaxRecipeTextLength)),
		validation.Field(&req.Rating, validation.Min(0.0), validation.Max(float64(config.MaxRating))),
		validation.Field(&req.ActiveTime, validation.Min(0.0)),
		validation.Field(&req.TotalTime, validation.Min(0.0)),
		validation.Field(&req.Servings, validation.Min(0.0)),
		validation.Field(&req.Calories, validation.Min(0.0)),
	)
}

// validateUpdateRequest validates an update recipe request
func (s *recipeService) validateUpdateRequest(req *services.UpdateRecipeRequest) error {
	if req.Name.Present {
		if req.Name.Value == nil {
			return fmt.Errorf("name cannot be null")
		}
		if err := validation.Validate(*req.Name.Value,
			validation.Required,
			validation.Length(1, config.MaxRecipeNameLength),
			validation.By(validateTrimmedNonEmpty),
		); err != nil {
			return fmt.Errorf("name: %v", err)
		}
	}
	if req.RecipeBookID.Present && req.RecipeBookID.Value == nil {
		return fmt.Errorf("recipe_book_id cannot be null")
	}
	if req.Rating.Present && req.Rating.Value != nil {
		if err := validation.Validate(*req.Rating.Value,
			validation.Min(0.0), validation.Max(float64(config.MaxRating)),
		); err != nil {
			return fmt.Errorf("rating: %v", err)
		}
	}
	for name, field := range map[string]httputil.OptionalFloat64{
		"active_time": req.ActiveTime,
		"total_time":  req.TotalTime,
		"servings":    req.Servings,
		"calories":    req.Calories,
	} {
		if field.Present && field.Value != nil && *field.Value < 0 {
			return fmt.Errorf("%s: must be no less than 0", name)
		}
	}
	return nil
}
