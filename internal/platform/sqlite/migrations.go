package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"github.com/phrazzld/employee-api/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Dialect is the goose dialect for SQLite.
const Dialect = "sqlite3"

// Migrate runs a goose command with the embedded SQLite schema.
func Migrate(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	return migrate.Run(ctx, db, migrationsFS, Dialect, command, log)
}
