// Seeds demo users, recipe books and recipes into the configured database.
// Reseeding is safe: users that already exist are skipped.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"cookshelf/internal/config"
	"cookshelf/internal/migrate"
	"cookshelf/internal/repository/postgres"
	"cookshelf/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("seeding database",
		"environment", cfg.Environment,
		"table_prefix", cfg.TablePrefix,
	)

	ctx := context.Background()
	if err := migrate.Up(ctx, cfg.DatabaseURL, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		DB:     pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	bookRepo := postgres.NewRecipeBookRepository(repoConfig)
	recipeRepo := postgres.NewRecipeRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	fixtures, err := seed.Load()
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	seeder := seed.NewSeeder(userRepo, bookRepo, recipeRepo, txManager, logger)
	if err := seeder.Apply(ctx, fixtures); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	logger.Info("seeding complete")
}
