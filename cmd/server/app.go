package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/employee-api/internal/authz"
	"github.com/phrazzld/employee-api/internal/config"
	"github.com/phrazzld/employee-api/internal/service"
	"github.com/phrazzld/employee-api/internal/service/auth"
	"github.com/phrazzld/employee-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	employeeStore store.EmployeeStore

	jwtService      auth.JWTService
	tokenIssuer     *auth.TokenIssuer
	policy          *authz.Policy
	employeeService service.EmployeeService
}

// newApplication opens the configured store and wires every service around it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	employeeStore, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app, err := newApplicationWithStore(cfg, logger, employeeStore)
	if err != nil {
		if closeErr := employeeStore.Close(); closeErr != nil {
			logger.Error("failed to close employee store", slog.String("error", closeErr.Error()))
		}
		return nil, err
	}
	return app, nil
}

// newApplicationWithStore wires the services around an already opened store.
func newApplicationWithStore(
	cfg *config.Config,
	logger *slog.Logger,
	employeeStore store.EmployeeStore,
) (*application, error) {
	app := &application{
		config:        cfg,
		logger:        logger,
		employeeStore: employeeStore,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.tokenIssuer = auth.NewTokenIssuer(app.jwtService, cfg.Auth.DefaultTokenLifetimeMinutes)
	logger.Info("JWT authentication service initialized",
		slog.Int("default_token_lifetime_minutes", cfg.Auth.DefaultTokenLifetimeMinutes))

	app.policy, err = authz.NewPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to load authorization policy: %w", err)
	}

	app.employeeService, err = service.NewEmployeeService(employeeStore, time.Now, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.employeeStore != nil {
		if err := app.employeeStore.Close(); err != nil {
			app.logger.Error("error closing employee store", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
