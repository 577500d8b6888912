package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/employee-api/internal/api"
	apiMiddleware "github.com/phrazzld/employee-api/internal/api/middleware"
	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/domain"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Authorization runs for every request before any handler reads the body.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Correlation(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Recoverer)
	r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService, app.policy).Authorize)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.HandleAPIError(w, r, &domain.Error{Kind: domain.KindNotFound, Message: domain.MsgRouteNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.HandleAPIError(w, r, domain.NewBadRequestError(domain.MsgMethodNotAllowed, nil))
	})

	employeeHandler := api.NewEmployeeHandler(app.employeeService, app.logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})
	r.Get("/docs", api.ServeDocs)
	r.Get("/docs/openapi.yaml", api.ServeDocs)

	if !app.config.Server.IsProduction() {
		authHandler := api.NewAuthHandler(app.tokenIssuer, app.logger)
		r.Post("/auth/token", authHandler.IssueToken)
	}

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", employeeHandler.ListEmployees)
		r.Post("/", employeeHandler.CreateEmployees)
		r.Get("/search", employeeHandler.SearchEmployees)
		r.Get("/{id}", employeeHandler.GetEmployee)
		r.Put("/{id}", employeeHandler.UpdateEmployee)
		r.Delete("/{id}", employeeHandler.DeleteEmployee)
	})

	return r
}
