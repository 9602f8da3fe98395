// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package.
//
// Loggers travel with the request context: middleware attaches a logger
// enriched with the trace ID and user ID via WithLogger, and lower layers
// retrieve it with FromContext or FromContextOrDefault.
package logger
