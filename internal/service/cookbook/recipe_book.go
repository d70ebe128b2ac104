// Package cookbook implements the recipe book and recipe business logic.
// All operations resolve the caller through the identity resolver; reads
// and writes of existing records pass the ownership guard first.
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
	"cookshelf/internal/service/authz"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// recipeBookService implements the RecipeBookService interface
type recipeBookService struct {
	bookRepo repositories.RecipeBookRepository
	identity services.IdentityResolver
	guard    *authz.Guard
	logger   *slog.Logger
}

// NewRecipeBookService creates a new recipe book service
func NewRecipeBookService(
	bookRepo repositories.RecipeBookRepository,
	identity services.IdentityResolver,
	guard *authz.Guard,
	logger *slog.Logger,
) services.RecipeBookService {
	return &recipeBookService{
		bookRepo: bookRepo,
		identity: identity,
		guard:    guard,
		logger:   logger,
	}
}

// CreateRecipeBook creates a new recipe book owned by the caller.
// The owner is always the resolved caller, never a payload value.
func (s *recipeBookService) CreateRecipeBook(ctx context.Context, req *services.CreateRecipeBookRequest) (*models.RecipeBook, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	book := &models.RecipeBook{
		UserID:      user.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("recipe book created",
		"id", book.ID,
		"name", book.Name,
		"user_id", user.ID,
	)

	return book, nil
}

// GetRecipeBook retrieves one of the caller's recipe books by ID
func (s *recipeBookService) GetRecipeBook(ctx context.Context, id string) (*models.RecipeBook, error) {
	return authz.Document(ctx, s.guard, authz.TableRecipeBooks, authz.ActionQuery, id, s.bookRepo.GetByID)
}

// ListRecipeBooks retrieves all recipe books owned by the caller
func (s *recipeBookService) ListRecipeBooks(ctx context.Context) ([]models.RecipeBook, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	return s.bookRepo.ListByUser(ctx, user.ID)
}

// UpdateRecipeBook applies a partial update to one of the caller's books.
// Absent fields stay unchanged; a null description clears it.
func (s *recipeBookService) UpdateRecipeBook(ctx context.Context, id string, req *services.UpdateRecipeBookRequest) (*models.RecipeBook, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	book, err := authz.Document(ctx, s.guard, authz.TableRecipeBooks, authz.ActionMutation, id, s.bookRepo.GetByID)
	if err != nil {
		return nil, err
	}

	if req.Name.Present && req.Name.Value != nil {
		book.Name = strings.TrimSpace(*req.Name.Value)
	}
	if req.Description.Present {
		book.Description = req.Description.Value
	}
	book.UpdatedAt = time.Now()

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("recipe book updated",
		"id", book.ID,
		"user_id", book.UserID,
	)

	return book, nil
}

// DeleteRecipeBook removes one of the caller's books.
// Recipes referencing the book are left in place (see DESIGN.md).
func (s *recipeBookService) DeleteRecipeBook(ctx context.Context, id string) error {
	book, err := authz.Document(ctx, s.guard, authz.TableRecipeBooks, authz.ActionMutation, id, s.bookRepo.GetByID)
	if err != nil {
		return err
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("recipe book deleted",
		"id", id,
		"user_id", book.UserID,
	)

	return nil
}

// validateCreateRequest validates a create recipe book request
func (s *recipeBookService) validateCreateRequest(req *services.CreateRecipeBookRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxRecipeBookNameLength),
			validation.By(validateTrimmedNonEmpty),
		),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxDescriptionLength),
		),
	)
}

// validateUpdateRequest validates an update recipe book request
func (s *recipeBookService) validateUpdateRequest(req *services.UpdateRecipeBookRequest) error {
	if req.Name.Present {
		if req.Name.Value == nil {
			return fmt.Errorf("name cannot be null")
		}
		if err := validation.Validate(*req.Name.Value,
			validation.Required,
			validation.Length(1, config.MaxRecipeBookNameLength),
			validation.By(validateTrimmedNonEmpty),
		); err != nil {
			return fmt.Errorf("name: %v", err)
		}
	}
	if req.Description.Present && req.Description.Value != nil {
		if err := validation.Validate(*req.Description.Value,
			validation.Length(0, config.MaxDescriptionLength),
		); err != nil {
			return fmt.Errorf("description: %v", err)
		}
	}
	return nil
}

// validateTrimmedNonEmpty rejects values that are empty after trimming
func validateTrimmedNonEmpty(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}
