// Package middleware contains the HTTP middleware chain: correlation ids,
// request logging, panic recovery, and bearer-token authorization.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/authz"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/service/auth"
)

// Messages for rejected credentials.
const (
	MsgInvalidAuthFormat = "Invalid authorization format"
	MsgTokenExpired      = "Token expired"
	MsgInvalidToken      = "Invalid token"
)

// AuthMiddleware authenticates bearer tokens and enforces the route policy.
type AuthMiddleware struct {
	jwtService auth.JWTService
	policy     *authz.Policy
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, policy *authz.Policy) *AuthMiddleware {
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil")
	}
	if policy == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("policy cannot be nil")
	}
	return &AuthMiddleware{jwtService: jwtService, policy: policy}
}

// Authorize resolves what the route demands before any body is read. Public
// routes pass through. Every other route needs a valid bearer token, and the
// token must grant the route's scope when it has one. Verified claims are
// stored in the request context.
func (m *AuthMiddleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requirement, err := m.policy.Requirement(r.Method, r.URL.Path)
		if err != nil {
			shared.HandleAPIError(w, r, err)
			return
		}
		if requirement.Public() {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authenticate(r)
		if err != nil {
			shared.HandleAPIError(w, r, err)
			return
		}

		ctx := shared.WithClaims(r.Context(), claims)
		log := logger.FromContext(ctx).With(slog.String("subject", claims.Subject))
		ctx = logger.WithLogger(ctx, log)
		r = r.WithContext(ctx)

		if err := authz.Check(requirement, claims); err != nil {
			log.Debug("request denied",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("required_scope", requirement.Scope))
			shared.HandleAPIError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) authenticate(r *http.Request) (*auth.Claims, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return nil, domain.NewUnauthenticatedError(domain.MsgAuthRequired, auth.ErrMissingToken)
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, domain.NewUnauthenticatedError(MsgInvalidAuthFormat, auth.ErrInvalidToken)
	}

	claims, err := m.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, domain.NewUnauthenticatedError(MsgTokenExpired, err)
		}
		return nil, domain.NewUnauthenticatedError(MsgInvalidToken, err)
	}
	return claims, nil
}
