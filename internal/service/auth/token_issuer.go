package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/employee-api/internal/domain"
)

// TokenTypeBearer is the token type reported with every issued token.
const TokenTypeBearer = "Bearer"

// TokenRequest asks for a development access token. A missing or
// non-positive ExpiresInMinutes falls back to the default lifetime.
type TokenRequest struct {
	Subject          string   `json:"subject" validate:"notblank"`
	Scopes           []string `json:"scopes" validate:"min=1"`
	ExpiresInMinutes *int     `json:"expiresInMinutes"`
}

// TokenGrant is an issued access token.
type TokenGrant struct {
	AccessToken      string
	TokenType        string
	ExpiresInMinutes int
	Scope            string
}

// TokenIssuer mints tokens for local development and testing. It must not be
// exposed in production.
type TokenIssuer struct {
	jwtService      JWTService
	defaultLifetime int
	validate        *validator.Validate
}

// NewTokenIssuer creates a TokenIssuer that signs with jwtService and uses
// defaultLifetimeMinutes when a request does not name a lifetime.
func NewTokenIssuer(jwtService JWTService, defaultLifetimeMinutes int) *TokenIssuer {
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil")
	}
	return &TokenIssuer{
		jwtService:      jwtService,
		defaultLifetime: defaultLifetimeMinutes,
		validate:        domain.NewValidator(),
	}
}

// Issue validates req and signs a token for it. Scopes are trimmed and blank
// entries dropped before validation.
func (i *TokenIssuer) Issue(ctx context.Context, req TokenRequest) (*TokenGrant, error) {
	normalized := TokenRequest{
		Subject:          strings.TrimSpace(req.Subject),
		Scopes:           NormalizeScopes(req.Scopes),
		ExpiresInMinutes: req.ExpiresInMinutes,
	}

	if err := i.validate.Struct(normalized); err != nil {
		details, err := domain.FieldViolations(err)
		if err != nil {
			return nil, fmt.Errorf("failed to validate token request: %w", err)
		}
		return nil, domain.NewValidationError(details)
	}

	minutes := i.defaultLifetime
	if normalized.ExpiresInMinutes != nil && *normalized.ExpiresInMinutes >= 1 {
		minutes = *normalized.ExpiresInMinutes
	}

	token, err := i.jwtService.GenerateToken(
		ctx,
		normalized.Subject,
		normalized.Scopes,
		time.Duration(minutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &TokenGrant{
		AccessToken:      token,
		TokenType:        TokenTypeBearer,
		ExpiresInMinutes: minutes,
		Scope:            strings.Join(normalized.Scopes, " "),
	}, nil
}
