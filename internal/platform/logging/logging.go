// Package logging builds structured slog loggers and carries them through
// context.
//
// Construction:
//
//	logger := logging.New("info", "json", os.Stderr)
//
// Propagation (the logging middleware stores a request-scoped child):
//
//	ctx = logging.WithLogger(ctx, logger)
//	logger = logging.FromContext(ctx)
//
// Application services log errors with the operation name, the entity
// identifiers, and the full error chain:
//
//	logger.ErrorContext(ctx, "failed to load code",
//	    slog.String("operation", "RenameCode"),
//	    slog.Int64("code_id", id),
//	    slog.Any("error", err),
//	)
//
// With the logging middleware active, request_id and correlation_id ride
// along automatically.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type contextKey struct{}

// New creates a configured *slog.Logger. Level is one of "debug", "info",
// "warn", or "error" (anything else means info). Format "text" selects the
// text handler; every other value selects JSON. Debug level also turns on
// source locations. All handlers redact through the masq ReplaceAttr.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithLogger stores a logger on the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored on the context, falling back to
// slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
