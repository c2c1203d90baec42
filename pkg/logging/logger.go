// Package logging provides structured JSON logging built on log/slog.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds logger configuration.
type Config struct {
	Level       string
	ServiceName string
	Environment string
	Version     string
	Output      io.Writer
	AddSource   bool
}

// DefaultConfig returns a default logging configuration for the service.
func DefaultConfig(serviceName string) *Config {
	return &Config{
		Level:       getEnvDefault("LOG_LEVEL", "info"),
		ServiceName: serviceName,
		Environment: getEnvDefault("ENVIRONMENT", "development"),
		Version:     getEnvDefault("SERVICE_VERSION", "dev"),
		Output:      os.Stdout,
		AddSource:   false,
	}
}

// Logger wraps slog.Logger with service-scoped helpers.
type Logger struct {
	*slog.Logger
	config *Config
}

// New creates a Logger emitting JSON records with service base attributes.
func New(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig("unknown")
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}

	handler := slog.NewJSONHandler(config.Output, &slog.HandlerOptions{
		Level:     parseLevel(config.Level),
		AddSource: config.AddSource,
	})

	logger := slog.New(handler).With(
		slog.String("service", config.ServiceName),
		slog.String("environment", config.Environment),
		slog.String("version", config.Version),
	)

	return &Logger{Logger: logger, config: config}
}

// SetDefault installs this logger as the process-wide slog default.
func (l *Logger) SetDefault() {
	slog.SetDefault(l.Logger)
}

// WithComponent returns a logger scoped to a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("component", component)),
		config: l.config,
	}
}

// WithError returns a logger carrying the error as an attribute.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
		config: l.config,
	}
}

// WithFields returns a logger carrying the given attributes.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return &Logger{Logger: l.Logger.With(attrs...), config: l.config}
}

// WithContext attaches request-scoped identifiers from the context, if present.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	logger := l.Logger
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok && requestID != "" {
		logger = logger.With(slog.String("request_id", requestID))
	}
	if correlationID, ok := ctx.Value(ContextKeyCorrelationID).(string); ok && correlationID != "" {
		logger = logger.With(slog.String("correlation_id", correlationID))
	}
	return &Logger{Logger: logger, config: l.config}
}

// HTTPRequest logs a completed HTTP request.
func (l *Logger) HTTPRequest(method, path string, status int, duration time.Duration, attrs ...any) {
	base := []any{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", duration),
	}
	l.Info("http request", append(base, attrs...)...)
}

// DatabaseQuery logs a database operation with its outcome.
func (l *Logger) DatabaseQuery(operation, collection string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("operation", operation),
		slog.String("collection", collection),
		slog.Duration("duration", duration),
	}
	if err != nil {
		l.Error("database query failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	l.Debug("database query", attrs...)
}

// Audit logs a security-relevant action taken by a principal.
func (l *Logger) Audit(action, principal string, attrs ...any) {
	base := []any{
		slog.String("audit", "true"),
		slog.String("action", action),
		slog.String("principal", principal),
	}
	l.Info("audit event", append(base, attrs...)...)
}

// Event logs a published domain event.
func (l *Logger) Event(eventType, subject string, attrs ...any) {
	base := []any{
		slog.String("event_type", eventType),
		slog.String("subject", subject),
	}
	l.Info("domain event", append(base, attrs...)...)
}

type contextKey string

// Context keys for request-scoped identifiers.
const (
	ContextKeyRequestID     contextKey = "request_id"
	ContextKeyCorrelationID contextKey = "correlation_id"
)

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
