package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixClock(t *testing.T) {
	t.Helper()
	original := now
	now = func() time.Time { return time.Date(2025, 1, 15, 12, 30, 0, 0, time.FixedZone("CET", 3600)) }
	t.Cleanup(func() { now = original })
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		details []string
	}{
		{
			name:    "validation",
			err:     domain.NewValidationError([]string{"age: must be less than or equal to 150"}),
			status:  http.StatusUnprocessableEntity,
			code:    CodeValidation,
			message: "Validation failed",
			details: []string{"age: must be less than or equal to 150"},
		},
		{
			name:    "not found",
			err:     domain.NewNotFoundError(7),
			status:  http.StatusNotFound,
			code:    CodeNotFound,
			message: "Employee not found: 7",
		},
		{
			name:    "bad request",
			err:     domain.NewBadRequestError(domain.MsgInvalidShape, nil),
			status:  http.StatusBadRequest,
			code:    CodeBadRequest,
			message: domain.MsgInvalidShape,
		},
		{
			name:    "unreadable renders as bad request",
			err:     domain.NewUnreadableError(errors.New("unexpected EOF")),
			status:  http.StatusBadRequest,
			code:    CodeBadRequest,
			message: "Malformed JSON request",
		},
		{
			name:    "unauthenticated",
			err:     domain.NewUnauthenticatedError(domain.MsgAuthRequired, nil),
			status:  http.StatusUnauthorized,
			code:    CodeAuth,
			message: domain.MsgAuthRequired,
		},
		{
			name:    "forbidden",
			err:     domain.NewForbiddenError(domain.MsgInsufficientScope),
			status:  http.StatusForbidden,
			code:    CodeAuth,
			message: "Insufficient scope",
		},
		{
			name:    "wrapped domain error",
			err:     fmt.Errorf("handler: %w", domain.NewNotFoundError(3)),
			status:  http.StatusNotFound,
			code:    CodeNotFound,
			message: "Employee not found: 3",
		},
		{
			name:    "unknown error",
			err:     errors.New("pq: connection reset"),
			status:  http.StatusInternalServerError,
			code:    CodeInternal,
			message: "Unexpected error",
		},
		{
			name:    "internal kind hides its message",
			err:     &domain.Error{Kind: domain.KindInternal, Message: "disk full"},
			status:  http.StatusInternalServerError,
			code:    CodeInternal,
			message: "Unexpected error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classify(tt.err)
			assert.Equal(t, tt.status, c.status)
			assert.Equal(t, tt.code, c.code)
			assert.Equal(t, tt.message, c.message)
			assert.Equal(t, tt.details, c.details)
			assert.Equal(t, tt.status, StatusOf(tt.err))
		})
	}
}

func TestHandleAPIError_Envelope(t *testing.T) {
	fixClock(t)

	req := httptest.NewRequest(http.MethodPost, "/employees", nil)
	req = req.WithContext(WithCorrelationID(req.Context(), "corr-123"))
	rec := httptest.NewRecorder()

	HandleAPIError(rec, req, domain.NewValidationError([]string{"firstName: must not be blank"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrorResponse{
		Timestamp:     "2025-01-15T11:30:00Z",
		Path:          "/employees",
		ErrorCode:     "VALIDATION_ERROR",
		Message:       "Validation failed",
		Details:       []string{"firstName: must not be blank"},
		CorrelationID: "corr-123",
	}, resp)
}

func TestHandleAPIError_DetailsNeverNull(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/employees/9", nil)
	rec := httptest.NewRecorder()

	HandleAPIError(rec, req, domain.NewNotFoundError(9))

	assert.Contains(t, rec.Body.String(), `"details":[]`)
}

func TestHandleAPIError_InternalIsLoggedRedacted(t *testing.T) {
	log, buf := logger.NewTestLogger()

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	ctx := logger.WithLogger(req.Context(), log)
	ctx = WithCorrelationID(ctx, "corr-9")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	cause := errors.New("dial postgres://app:hunter22@db:5432/employees: refused")
	HandleAPIError(rec, req, cause)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter22")
	assert.NotContains(t, rec.Body.String(), "dial")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/employees", entry["path"])
	assert.Equal(t, "corr-9", entry["correlation_id"])
	assert.NotContains(t, entry["error"], "hunter22")
	assert.Contains(t, entry["error"], "[REDACTED_CREDENTIAL]")
	assert.Contains(t, entry["stack"], "shared.HandleAPIError")
}

func TestHandleAPIError_ClientErrorsLoggedAtDebug(t *testing.T) {
	log, buf := logger.NewTestLogger()

	req := httptest.NewRequest(http.MethodGet, "/employees/1", nil)
	req = req.WithContext(logger.WithLogger(context.Background(), log))
	HandleAPIError(httptest.NewRecorder(), req, domain.NewNotFoundError(1))

	assert.True(t, strings.Contains(buf.String(), `"level":"DEBUG"`))
	assert.NotContains(t, buf.String(), `"error"`)
	assert.NotContains(t, buf.String(), `"stack"`)
}
