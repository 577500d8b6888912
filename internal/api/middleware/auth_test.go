package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/authz"
	"github.com/phrazzld/employee-api/internal/mocks"
	"github.com/phrazzld/employee-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthMiddleware(t *testing.T, jwtService auth.JWTService) *AuthMiddleware {
	t.Helper()
	policy, err := authz.NewPolicy()
	require.NoError(t, err)
	return NewAuthMiddleware(jwtService, policy)
}

// claimsRecorder is a terminal handler that records the claims it was given.
type claimsRecorder struct {
	called bool
	claims *auth.Claims
}

func (c *claimsRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.called = true
	c.claims = shared.GetClaims(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestNewAuthMiddleware_NilDependencies(t *testing.T) {
	policy, err := authz.NewPolicy()
	require.NoError(t, err)

	assert.Panics(t, func() { NewAuthMiddleware(nil, policy) })
	assert.Panics(t, func() { NewAuthMiddleware(&mocks.MockJWTService{}, nil) })
}

func TestAuthMiddleware_Authorize(t *testing.T) {
	t.Parallel()

	readClaims := &auth.Claims{Subject: "ana", Scope: "employee.read"}
	writeClaims := &auth.Claims{Subject: "ana", Scope: "employee.read employee.write"}

	tests := []struct {
		name           string
		method         string
		path           string
		authHeader     string
		claims         *auth.Claims
		validateErr    error
		expectedStatus int
		expectedMsg    string
		expectCalled   bool
	}{
		{
			name:           "public health route",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "public token route ignores bad header",
			method:         http.MethodPost,
			path:           "/auth/token",
			authHeader:     "garbage",
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "missing header",
			method:         http.MethodGet,
			path:           "/employees",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Authentication required",
		},
		{
			name:           "wrong scheme",
			method:         http.MethodGet,
			path:           "/employees",
			authHeader:     "Basic YW5hOnB3",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgInvalidAuthFormat,
		},
		{
			name:           "expired token",
			method:         http.MethodGet,
			path:           "/employees",
			authHeader:     "Bearer expired",
			validateErr:    auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgTokenExpired,
		},
		{
			name:           "invalid token",
			method:         http.MethodGet,
			path:           "/employees/3",
			authHeader:     "Bearer forged",
			validateErr:    auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgInvalidToken,
		},
		{
			name:           "read scope on read route",
			method:         http.MethodGet,
			path:           "/employees/search",
			authHeader:     "Bearer ok",
			claims:         readClaims,
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "read scope on write route",
			method:         http.MethodDelete,
			path:           "/employees/3",
			authHeader:     "Bearer ok",
			claims:         readClaims,
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Insufficient scope",
		},
		{
			name:           "write scope on create",
			method:         http.MethodPost,
			path:           "/employees",
			authHeader:     "bearer ok",
			claims:         writeClaims,
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "unlisted route needs any valid token",
			method:         http.MethodGet,
			path:           "/metrics",
			authHeader:     "Bearer ok",
			claims:         &auth.Claims{Subject: "ana"},
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "unlisted route without token",
			method:         http.MethodGet,
			path:           "/metrics",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
					return tt.claims, tt.validateErr
				},
			}
			m := newAuthMiddleware(t, jwtService)
			next := &claimsRecorder{}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			m.Authorize(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectCalled, next.called)
			if tt.expectCalled && tt.claims != nil {
				assert.Same(t, tt.claims, next.claims)
			}
			if tt.expectedMsg != "" {
				var resp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "AUTH", resp.ErrorCode)
				assert.Equal(t, tt.expectedMsg, resp.Message)
			}
		})
	}
}

func TestAuthMiddleware_WithRealTokens(t *testing.T) {
	svc := auth.NewTestJWTService(auth.TestSecret, func() time.Time { return time.Now() })
	m := newAuthMiddleware(t, svc)
	next := &claimsRecorder{}

	bearer, err := auth.BearerForTesting(svc, "ana", "employee.write")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/employees/1", strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearer)
	rec := httptest.NewRecorder()
	m.Authorize(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, next.claims)
	assert.Equal(t, "ana", next.claims.Subject)
	assert.True(t, next.claims.HasScope("employee.write"))
}
