package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ClerkJWTVerifier implements JWTVerifier using JWKS from Clerk.
type ClerkJWTVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWTVerifier creates a new JWT verifier that fetches public keys from
// Clerk's JWKS endpoint. The JWKS keys are cached and automatically
// refreshed based on HTTP cache headers.
func NewJWTVerifier(jwksURL string, logger *slog.Logger) (JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx := context.Background()
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL)

	return &ClerkJWTVerifier{
		jwks:   jwks,
		logger: logger,
	}, nil
}

// VerifyToken validates a JWT token and extracts Clerk claims.
// Returns an error if the token is invalid, expired, or has incorrect claims.
func (v *ClerkJWTVerifier) VerifyToken(tokenString string) (*models.ClerkClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.ClerkClaims{}, v.jwks.Keyfunc)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	switch token.Method.Alg() {
	case "RS256", "ES256":
		// allowed
	default:
		v.logger.Warn("token uses unexpected algorithm",
			"algorithm", token.Method.Alg(),
			"allowed", []string{"RS256", "ES256"})
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.ClerkClaims)
	if !ok {
		v.logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	// The subject claim carries the external user ID; a token without one
	// cannot be resolved to a user
	if claims.Subject == "" {
		v.logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close releases resources held by the JWT verifier.
// keyfunc v3 manages its own resources based on HTTP cache headers, so this
// is a no-op for graceful shutdown compatibility.
func (v *ClerkJWTVerifier) Close() error {
	v.logger.Info("JWT verifier closed")
	return nil
}
