// Package logger builds the JSON slog logger used by every component and
// passes request-scoped loggers (carrying correlation_id and subject) through
// a context.Context.
package logger
