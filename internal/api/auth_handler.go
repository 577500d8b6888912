package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/service/auth"
)

// AuthHandler issues development tokens. It is only routed outside production.
type AuthHandler struct {
	issuer *auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(issuer *auth.TokenIssuer, logger *slog.Logger) *AuthHandler {
	if issuer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("issuer cannot be nil for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		issuer: issuer,
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /auth/token
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	body, err := shared.ReadJSONBody(w, r)
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}
	if shapeOf(body) != shapeObject {
		shared.HandleAPIError(w, r, domain.NewBadRequestError(domain.MsgInvalidPayload, nil))
		return
	}

	var req auth.TokenRequest
	if err := shared.DecodeJSON(body, &req); err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}

	grant, err := h.issuer.Issue(r.Context(), req)
	if err != nil {
		shared.HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("development token issued",
		slog.String("subject", req.Subject),
		slog.String("scope", grant.Scope),
		slog.Int("expires_in_minutes", grant.ExpiresInMinutes))
	shared.RespondWithJSON(w, r, http.StatusOK, grantToResponse(grant))
}
