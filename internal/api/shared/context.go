package shared

import (
	"context"

	"github.com/phrazzld/employee-api/internal/service/auth"
)

// Key type for context values
type ContextKey string

// Context keys for request-scoped values
const (
	// CorrelationIDKey is the context key for the request correlation id
	CorrelationIDKey ContextKey = "correlationID"

	// ClaimsKey is the context key for verified token claims
	ClaimsKey ContextKey = "claims"
)

// CorrelationIDHeader carries the correlation id on requests and responses.
const CorrelationIDHeader = "X-Correlation-ID"

// WithCorrelationID returns a copy of ctx carrying id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// GetCorrelationID retrieves the correlation id from the context.
// If none exists, it returns an empty string.
func GetCorrelationID(ctx context.Context) string {
	id, ok := ctx.Value(CorrelationIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// WithClaims returns a copy of ctx carrying the verified claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims returns the verified claims, or nil for unauthenticated requests.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims
}
