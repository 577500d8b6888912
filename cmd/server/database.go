package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/employee-api/internal/config"
	"github.com/phrazzld/employee-api/internal/platform/memory"
	"github.com/phrazzld/employee-api/internal/platform/migrate"
	"github.com/phrazzld/employee-api/internal/platform/postgres"
	"github.com/phrazzld/employee-api/internal/platform/sqlite"
	"github.com/phrazzld/employee-api/internal/store"
)

// pingTimeout bounds the connectivity check made when a database is opened.
const pingTimeout = 5 * time.Second

// errNoDatabase is returned for operations that need a SQL driver.
var errNoDatabase = errors.New("database driver memory has no SQL database")

// migrator runs a goose command against an open database.
type migrator func(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error

// openStore builds the record store selected by database.driver. SQL stores
// have their schema migrated up before they are returned.
func openStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (store.EmployeeStore, error) {
	if cfg.Driver == config.DriverMemory {
		log.Info("using in-memory employee store")
		return memory.NewEmployeeStore(log), nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	migrateFn, err := migratorFor(cfg.Driver)
	if err == nil {
		err = migrateFn(ctx, db, migrate.CommandUp, log)
	}
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database", slog.String("error", closeErr.Error()))
		}
		return nil, fmt.Errorf("failed to migrate %s database: %w", cfg.Driver, err)
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.NewSQLiteEmployeeStore(db, log), nil
	default:
		return postgres.NewPostgresEmployeeStore(db, log), nil
	}
}

// openDatabase opens and pings the SQL database selected by cfg.Driver.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		// Open pins the pool to one connection.
		return sqlite.Open(ctx, cfg.URL)
	case config.DriverPostgres:
		db, err = sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(5 * time.Minute)
	case config.DriverMemory:
		return nil, errNoDatabase
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func migratorFor(driver string) (migrator, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Migrate, nil
	case config.DriverSQLite:
		return sqlite.Migrate, nil
	case config.DriverMemory:
		return nil, errNoDatabase
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// handleMigrations runs a single goose command for the -migrate flag.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	if !migrate.ValidCommand(command) {
		return fmt.Errorf("unknown migration command %q", command)
	}
	migrateFn, err := migratorFor(cfg.Database.Driver)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	log.Info("executing migrations",
		slog.String("command", command),
		slog.String("driver", cfg.Database.Driver))
	if err := migrateFn(ctx, db, command, log); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
