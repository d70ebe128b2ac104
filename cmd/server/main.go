package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"cookshelf/internal/auth"
	"cookshelf/internal/config"
	"cookshelf/internal/handler"
	"cookshelf/internal/metrics"
	"cookshelf/internal/middleware"
	"cookshelf/internal/migrate"
	"cookshelf/internal/repository/postgres"
	"cookshelf/internal/service/authz"
	"cookshelf/internal/service/cookbook"
	"cookshelf/internal/service/identity"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Clerk authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.ClerkJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Apply schema migrations before opening the pool
	ctx := context.Background()
	if err := migrate.Up(ctx, cfg.DatabaseURL, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	logger.Info("migrations applied")

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		DB:     pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	bookRepo := postgres.NewRecipeBookRepository(repoConfig)
	recipeRepo := postgres.NewRecipeRepository(repoConfig)

	// Create services
	resolver := identity.NewResolver(userRepo, logger)
	guard := authz.NewGuard(resolver)
	bookService := cookbook.NewRecipeBookService(bookRepo, resolver, guard, logger)
	recipeService := cookbook.NewRecipeService(recipeRepo, bookRepo, resolver, guard, logger)

	// Create handlers
	userHandler := handler.NewUserHandler(resolver, logger)
	bookHandler := handler.NewRecipeBookHandler(bookService, logger)
	recipeHandler := handler.NewRecipeHandler(recipeService, logger)

	// Metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check and metrics (no auth)
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", metrics.Handler(registry))

	// Identity routes
	mux.HandleFunc("GET /api/users/me", userHandler.Me)

	// Recipe book routes
	mux.HandleFunc("GET /api/recipe-books", bookHandler.ListRecipeBooks)
	mux.HandleFunc("POST /api/recipe-books", bookHandler.CreateRecipeBook)
	mux.HandleFunc("GET /api/recipe-books/{id}", bookHandler.GetRecipeBook)
	mux.HandleFunc("PATCH /api/recipe-books/{id}", bookHandler.UpdateRecipeBook)
	mux.HandleFunc("DELETE /api/recipe-books/{id}", bookHandler.DeleteRecipeBook)
	mux.HandleFunc("GET /api/recipe-books/{id}/recipes", recipeHandler.ListRecipesByBook)

	// Recipe routes
	mux.HandleFunc("POST /api/recipes", recipeHandler.CreateRecipe)
	mux.HandleFunc("GET /api/recipes/{id}", recipeHandler.GetRecipe)
	mux.HandleFunc("PATCH /api/recipes/{id}", recipeHandler.UpdateRecipe)
	mux.HandleFunc("DELETE /api/recipes/{id}", recipeHandler.DeleteRecipe)

	// Per-user rate limiter (sits after auth in the chain)
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		PerMinute: cfg.RateLimitPerMinute,
		Burst:     cfg.RateLimitBurst,
	}, collector, logger)
	defer rateLimiter.Stop()

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Metrics → Recovery → Auth → RateLimit → Routes
	h = rateLimiter.Middleware()(h)
	h = middleware.Auth(jwtVerifier, collector, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = collector.Middleware(mux)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
