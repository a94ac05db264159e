// Package observability provides logging, metrics, and tracing.
package observability

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// CascadeLogger provides structured logging for multi-document
// sequences (cascading deletes, ownership bookkeeping). Best-effort
// steps that fail after the primary operation succeeded are logged at
// warning level, never dropped.
type CascadeLogger struct {
	operation string
	logger    *Logger
}

// NewCascadeLogger creates a CascadeLogger for the given operation name.
func NewCascadeLogger(operation string) *CascadeLogger {
	return &CascadeLogger{operation: operation, logger: GlobalLogger}
}

// StepFailed records a non-fatal bookkeeping step failure.
func (l *CascadeLogger) StepFailed(step string, err error, fields map[string]interface{}) {
	attrs := []any{
		slog.String("operation", l.operation),
		slog.String("step", step),
		slog.String("error", err.Error()),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.Warn("cascade step failed", attrs...)
}

// Completed records a finished multi-document sequence.
func (l *CascadeLogger) Completed(fields map[string]interface{}) {
	attrs := []any{
		slog.String("operation", l.operation),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.Info("cascade completed", attrs...)
}
