package services

import (
	"context"

	"cookshelf/internal/domain/models"
)

// IdentityResolver maps the verified identity claims attached to a request
// context onto the internal user record.
//
// Resolution happens on every call; nothing is cached across requests. When
// the external subject has never been seen before, the resolver provisions
// a user record for it (see DESIGN.md for the policy decision).
type IdentityResolver interface {
	// CurrentUser returns the internal user for the caller's identity claims.
	// Returns domain.ErrUnauthorized wrapped when the context carries no
	// verified claims.
	CurrentUser(ctx context.Context) (*models.User, error)
}
