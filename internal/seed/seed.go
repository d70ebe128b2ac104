// Package seed loads demo fixture data into the database.
package seed

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
	"cookshelf/internal/domain/repositories"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

// RecipeFixture is one recipe entry in the fixture file.
type RecipeFixture struct {
	Name        string   `yaml:"name"`
	Ingredients *string  `yaml:"ingredients"`
	Directions  *string  `yaml:"directions"`
	Rating      *float64 `yaml:"rating"`
	ActiveTime  *float64 `yaml:"active_time"`
	TotalTime   *float64 `yaml:"total_time"`
	Servings    *float64 `yaml:"servings"`
	Calories    *float64 `yaml:"calories"`
}

// BookFixture is one recipe book with its recipes.
type BookFixture struct {
	Name        string          `yaml:"name"`
	Description *string         `yaml:"description"`
	Recipes     []RecipeFixture `yaml:"recipes"`
}

// UserFixture is one demo user with their books.
type UserFixture struct {
	ExternalID  string        `yaml:"external_id"`
	DisplayName string        `yaml:"display_name"`
	RecipeBooks []BookFixture `yaml:"recipe_books"`
}

// Fixtures is the root of the fixture file.
type Fixtures struct {
	Users []UserFixture `yaml:"users"`
}

// Load parses the embedded fixture file.
func Load() (*Fixtures, error) {
	data, err := fixtureFiles.ReadFile("fixtures/cookbooks.yaml")
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}

	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("unmarshal fixtures: %w", err)
	}

	return &fixtures, nil
}

// Seeder writes fixture data through the repository layer.
type Seeder struct {
	userRepo   repositories.UserRepository
	bookRepo   repositories.RecipeBookRepository
	recipeRepo repositories.RecipeRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(
	userRepo repositories.UserRepository,
	bookRepo repositories.RecipeBookRepository,
	recipeRepo repositories.RecipeRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		userRepo:   userRepo,
		bookRepo:   bookRepo,
		recipeRepo: recipeRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Apply inserts the fixtures. Each user's books and recipes are written in
// one transaction. Users that already exist keep their current data; their
// fixture books are skipped so reseeding does not duplicate rows.
func (s *Seeder) Apply(ctx context.Context, fixtures *Fixtures) error {
	for _, userFixture := range fixtures.Users {
		existing, err := s.userRepo.GetByExternalID(ctx, userFixture.ExternalID)
		if err == nil {
			s.logger.Info("seed user already present, skipping",
				"external_id", userFixture.ExternalID,
				"user_id", existing.ID,
			)
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("look up seed user %s: %w", userFixture.ExternalID, err)
		}

		if err := s.seedUser(ctx, userFixture); err != nil {
			return fmt.Errorf("seed user %s: %w", userFixture.ExternalID, err)
		}
	}

	return nil
}

func (s *Seeder) seedUser(ctx context.Context, fixture UserFixture) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		user := &models.User{
			ExternalID:  fixture.ExternalID,
			DisplayName: fixture.DisplayName,
		}
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}

		for _, bookFixture := range fixture.RecipeBooks {
			book := &models.RecipeBook{
				UserID:      user.ID,
				Name:        bookFixture.Name,
				Description: bookFixture.Description,
			}
			if err := s.bookRepo.Create(txCtx, book); err != nil {
				return err
			}

			for _, recipeFixture := range bookFixture.Recipes {
				recipe := &models.Recipe{
					UserID:       user.ID,
					RecipeBookID: book.ID,
					Name:         recipeFixture.Name,
					Ingredients:  recipeFixture.Ingredients,
					Directions:   recipeFixture.Directions,
					Rating:       recipeFixture.Rating,
					ActiveTime:   recipeFixture.ActiveTime,
					TotalTime:    recipeFixture.TotalTime,
					Servings:     recipeFixture.Servings,
					Calories:     recipeFixture.Calories,
				}
				if err := s.recipeRepo.Create(txCtx, recipe); err != nil {
					return err
				}
			}

			s.logger.Info("seeded recipe book",
				"user_id", user.ID,
				"book", book.Name,
				"recipes", len(bookFixture.Recipes),
			)
		}

		return nil
	})
}
