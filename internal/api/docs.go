package api

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/phrazzld/employee-api/internal/platform/logger"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// ServeDocs handles GET /docs and GET /docs/openapi.yaml with the OpenAPI
// description of the API.
func ServeDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(openAPIDocument); err != nil {
		logger.FromContext(r.Context()).Error("failed to write docs response", slog.String("error", err.Error()))
	}
}
