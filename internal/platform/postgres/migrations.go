package postgres

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"github.com/phrazzld/employee-api/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Dialect is the goose dialect for PostgreSQL.
const Dialect = "postgres"

// Migrate runs a goose command with the embedded PostgreSQL schema.
func Migrate(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	return migrate.Run(ctx, db, migrationsFS, Dialect, command, log)
}
