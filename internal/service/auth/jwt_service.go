package auth

import (
	"context"
	"slices"
	"strings"
	"time"
)

// JWTService defines operations for managing JWT bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for subject carrying the
	// given scopes, valid for lifetime from now.
	GenerateToken(ctx context.Context, subject string, scopes []string, lifetime time.Duration) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims holds the verified contents of an access token.
type Claims struct {
	Subject string `json:"sub,omitempty"`

	// Scope is the space-delimited list of granted scopes.
	Scope string `json:"scope,omitempty"`

	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Scopes returns the granted scopes in token order.
func (c *Claims) Scopes() []string {
	return ParseScopes(c.Scope)
}

// HasScope reports whether scope was granted.
func (c *Claims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.Scopes(), scope)
}

// NormalizeScopes trims every scope and drops blank entries, preserving order.
func NormalizeScopes(scopes []string) []string {
	normalized := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if s = strings.TrimSpace(s); s != "" {
			normalized = append(normalized, s)
		}
	}
	return normalized
}

// ParseScopes splits a space-delimited scope claim.
func ParseScopes(scope string) []string {
	return strings.Fields(scope)
}
