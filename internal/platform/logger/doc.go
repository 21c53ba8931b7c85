// Package logger configures structured logging on log/slog and carries
// request-scoped loggers through context.
package logger
