package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/platform/logger"
)

// MaxCorrelationIDLength caps client-supplied ids; longer ones are replaced.
const MaxCorrelationIDLength = 128

// Correlation tags each request with the X-Correlation-ID header value, or a
// new uuid when the header is missing. The id is echoed in the response
// header and attached to a request-scoped child of base.
//
// This middleware should be applied first so every later log line and error
// response carries the id.
func Correlation(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(shared.CorrelationIDHeader))
			if id == "" || len(id) > MaxCorrelationIDLength {
				id = uuid.NewString()
			}
			w.Header().Set(shared.CorrelationIDHeader, id)

			ctx := shared.WithCorrelationID(r.Context(), id)
			ctx = logger.WithLogger(ctx, base.With(slog.String("correlation_id", id)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
