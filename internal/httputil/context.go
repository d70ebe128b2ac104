package httputil

import (
	"context"
	"net/http"

	"cookshelf/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	claimsKey contextKey = "claims"
)

// WithClaims attaches the verified identity claims to the request context
func WithClaims(r *http.Request, claims *models.ClerkClaims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	return r.WithContext(ctx)
}

// ClaimsFromContext retrieves the verified identity claims from a context.
// Returns nil if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *models.ClerkClaims {
	claims, _ := ctx.Value(claimsKey).(*models.ClerkClaims)
	return claims
}

// ContextWithClaims attaches claims to a plain context.
// Used by tests and non-HTTP callers (e.g. the seeder).
func ContextWithClaims(ctx context.Context, claims *models.ClerkClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
