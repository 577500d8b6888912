// Package migrate applies the embedded SQL schema of a record store with goose.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

// Commands accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// TableName is the goose version table.
const TableName = "schema_migrations"

// Dir is the directory inside every migration FS that holds the SQL files.
const Dir = "migrations"

// goose keeps the dialect, base FS and logger in package globals.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	log *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error.
// It does not exit; the failure is returned to the caller by goose.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// ValidCommand reports whether command is one Run accepts.
func ValidCommand(command string) bool {
	switch command {
	case CommandUp, CommandDown, CommandStatus, CommandVersion:
		return true
	default:
		return false
	}
}

// Run executes a goose command against db using the SQL files under Dir in
// fsys. dialect is a goose dialect name such as "postgres" or "sqlite3".
func Run(ctx context.Context, db *sql.DB, fsys fs.FS, dialect, command string, log *slog.Logger) error {
	if !ValidCommand(command) {
		return fmt.Errorf("unsupported migration command %q", command)
	}
	if log == nil {
		log = slog.Default()
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{log: log.With(slog.String("component", "migrations"))})
	goose.SetTableName(TableName)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect %q: %w", dialect, err)
	}

	log.Info("running migrations", slog.String("command", command), slog.String("dialect", dialect))
	if err := goose.RunContext(ctx, command, db, Dir); err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}
	return nil
}
