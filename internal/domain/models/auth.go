package models

import "github.com/golang-jwt/jwt/v5"

// ClerkClaims represents the JWT claims structure of a Clerk session token.
// See: https://clerk.com/docs/backend-requests/resources/session-tokens
type ClerkClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	SessionID            string `json:"sid"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
}

// ExternalID returns the identity provider's subject claim.
// This is the immutable external identifier for the authenticated user.
func (c *ClerkClaims) ExternalID() string {
	return c.Subject
}
