// Package logger provides structured logging functionality for the application.
//
// It uses the standard library's log/slog package with a JSON handler and
// carries request-scoped loggers (with trace ids) through context.Context.
package logger
