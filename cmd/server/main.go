// Package main implements the entry point for the employee records API
// server. It loads configuration, opens the configured record store and
// serves HTTP until SIGINT or SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/employee-api/internal/config"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up|down|status|version) and exit")
	verbose := flag.Bool("verbose", false, "log at debug level")
	flag.Parse()

	if err := run(*migrateCmd, *verbose); err != nil {
		slog.Error("server exited with error", slog.String("error", redact.Error(err)))
		os.Exit(1)
	}
}

// run loads configuration and either executes a migration command or serves
// the API until an interrupt arrives.
func run(migrateCmd string, verbose bool) error {
	cfg, err := loadAppConfig(verbose)
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("environment", cfg.Server.Environment),
		slog.String("database_driver", cfg.Database.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, log)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

// loadAppConfig loads configuration. verbose forces the debug log level.
func loadAppConfig(verbose bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Server.LogLevel = "debug"
	}
	return cfg, nil
}
