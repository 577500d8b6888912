package shared

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
)

// Error codes carried in the errorCode field of every error response.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeBadRequest = "BAD_REQUEST"
	CodeAuth       = "AUTH"
	CodeInternal   = "INTERNAL"
)

// MsgUnexpected is the only message clients see for unclassified failures.
const MsgUnexpected = "Unexpected error"

// ErrorResponse is the envelope of every error response.
type ErrorResponse struct {
	Timestamp     string   `json:"timestamp"`
	Path          string   `json:"path"`
	ErrorCode     string   `json:"errorCode"`
	Message       string   `json:"message"`
	Details       []string `json:"details"`
	CorrelationID string   `json:"correlationId"`
}

// classification is the client-facing rendering of an error.
type classification struct {
	status  int
	code    string
	message string
	details []string
}

// now is replaced in tests.
var now = time.Now

// classify maps err to its status, code, message and details. Errors that are
// not a *domain.Error, and any kind without a mapping, are INTERNAL.
func classify(err error) classification {
	var de *domain.Error
	if !errors.As(err, &de) {
		return classification{status: http.StatusInternalServerError, code: CodeInternal, message: MsgUnexpected}
	}

	switch de.Kind {
	case domain.KindValidation:
		return classification{
			status:  http.StatusUnprocessableEntity,
			code:    CodeValidation,
			message: de.Message,
			details: de.Details,
		}
	case domain.KindNotFound:
		return classification{status: http.StatusNotFound, code: CodeNotFound, message: de.Message}
	case domain.KindBadRequest:
		return classification{status: http.StatusBadRequest, code: CodeBadRequest, message: de.Message}
	case domain.KindUnreadable:
		return classification{status: http.StatusBadRequest, code: CodeBadRequest, message: domain.MsgMalformedJSON}
	case domain.KindAuth:
		status := http.StatusUnauthorized
		if de.Forbidden {
			status = http.StatusForbidden
		}
		return classification{status: status, code: CodeAuth, message: de.Message}
	case domain.KindInternal:
		return classification{status: http.StatusInternalServerError, code: CodeInternal, message: MsgUnexpected}
	default:
		return classification{status: http.StatusInternalServerError, code: CodeInternal, message: MsgUnexpected}
	}
}

// StatusOf returns the HTTP status HandleAPIError would write for err.
func StatusOf(err error) int {
	return classify(err).status
}

// HandleAPIError classifies err, logs it and writes the error envelope.
//
// Log level strategy:
//   - 5xx errors: ERROR, with the redacted error, its type and a stack trace
//   - 4xx errors: DEBUG
//
// The raw error never reaches the response body.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	c := classify(err)
	correlationID := GetCorrelationID(r.Context())

	details := c.details
	if details == nil {
		details = []string{}
	}
	resp := ErrorResponse{
		Timestamp:     now().UTC().Format(time.RFC3339),
		Path:          r.URL.Path,
		ErrorCode:     c.code,
		Message:       c.message,
		Details:       details,
		CorrelationID: correlationID,
	}

	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("correlation_id", correlationID),
		slog.Int("status_code", c.status),
		slog.String("error_code", c.code),
	}
	level := slog.LevelDebug
	if c.status >= http.StatusInternalServerError {
		level = slog.LevelError
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)),
			slog.String("stack", string(debug.Stack())))
	} else {
		attrs = append(attrs, slog.String("message", c.message))
	}
	logger.FromContextOrDefault(r.Context(), slog.Default()).
		LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithJSON(w, r, c.status, resp)
}
