package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer secret-token")
	h.Set("Proxy-Authorization", "Basic abc")
	h.Set("Cookie", "session=1")
	h.Set("Set-Cookie", "session=2")
	h.Set("Accept", "application/json")
	h.Add("X-Forwarded-For", "10.0.0.1")
	h.Add("X-Forwarded-For", "10.0.0.2")

	masked := MaskHeaders(h)

	assert.Equal(t, MaskedValue, masked["Authorization"])
	assert.Equal(t, MaskedValue, masked["Proxy-Authorization"])
	assert.Equal(t, MaskedValue, masked["Cookie"])
	assert.Equal(t, MaskedValue, masked["Set-Cookie"])
	assert.Equal(t, "application/json", masked["Accept"])
	assert.Equal(t, "10.0.0.1, 10.0.0.2", masked["X-Forwarded-For"])
}

func TestRequestLogger(t *testing.T) {
	log, buf := logger.NewTestLogger()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/employees?name=ana", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	req = req.WithContext(logger.WithLogger(context.Background(), log))
	rec := httptest.NewRecorder()

	RequestLogger(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotContains(t, buf.String(), "secret-token")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	received := entries[0]
	assert.Equal(t, "INFO", received["level"])
	assert.Equal(t, "request received", received["msg"])
	assert.Equal(t, "GET", received["method"])
	assert.Equal(t, "/employees", received["path"])
	headers, ok := received["headers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, MaskedValue, headers["Authorization"])

	completed := entries[1]
	assert.Equal(t, "request completed", completed["msg"])
	assert.Equal(t, float64(http.StatusTeapot), completed["status"])
	assert.Equal(t, float64(len("short and stout")), completed["bytes"])
}

func TestRequestLogger_DefaultStatus(t *testing.T) {
	log, buf := logger.NewTestLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req = req.WithContext(logger.WithLogger(context.Background(), log))
	RequestLogger(next).ServeHTTP(httptest.NewRecorder(), req)

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, float64(http.StatusOK), entries[1]["status"])
}
