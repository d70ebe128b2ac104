// Package identity resolves verified identity claims to internal user records.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"
	"cookshelf/internal/domain/repositories"
	"cookshelf/internal/domain/services"
	"cookshelf/internal/httputil"
)

// resolver implements the IdentityResolver interface.
//
// Users are provisioned lazily: the first authenticated request from an
// unseen external subject creates the internal user row. Two concurrent
// first requests may race on the insert; the loser hits the unique
// constraint on external_id and re-reads the winner's row.
type resolver struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewResolver creates a new identity resolver
func NewResolver(userRepo repositories.UserRepository, logger *slog.Logger) services.IdentityResolver {
	return &resolver{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CurrentUser returns the internal user for the caller's identity claims,
// creating the record on first sight.
func (r *resolver) CurrentUser(ctx context.Context) (*models.User, error) {
	claims := httputil.ClaimsFromContext(ctx)
	if claims == nil || claims.ExternalID() == "" {
		return nil, fmt.Errorf("no identity claims in request context: %w", domain.ErrUnauthorized)
	}

	externalID := claims.ExternalID()

	user, err := r.userRepo.GetByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	// First sight of this subject: provision an internal user record
	user = &models.User{
		ExternalID:  externalID,
		DisplayName: claims.Name,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := r.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the provisioning race; the row exists now
			return r.userRepo.GetByExternalID(ctx, externalID)
		}
		return nil, fmt.Errorf("provision user: %w", err)
	}

	r.logger.Info("user provisioned",
		"id", user.ID,
		"external_id", externalID,
	)

	return user, nil
}
