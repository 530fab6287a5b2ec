package app

import (
	"log/slog"
	"os"
	"strings"

	"gatehouse/cmd/security/redact"
)

// Logger is the app-wide logger type (slog).
type Logger = *slog.Logger

// NewLogger creates a structured logger with an explicit log level.
// The "line" format emits key=value lines; "json" emits JSON records.
// Both run every string attribute through the configured redactor so
// PII never reaches the log sink.
func NewLogger(cfg Config) *slog.Logger {
	lvl := parseLogLevel(cfg.LogLevel)
	r := redact.New(cfg.RedactFields, cfg.RedactMarker, cfg.RedactSeparator)

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       lvl,
			ReplaceAttr: redactAttr(r),
		})
	default:
		h = newLineHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}, r)
	}

	log := slog.New(h)
	slog.SetDefault(log)
	return log
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// redactAttr scrubs string attribute values before the JSON handler
// serializes them.
func redactAttr(r *redact.Redactor) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		if a.Value.Kind() == slog.KindString {
			a.Value = slog.StringValue(r.Apply(a.Value.String()))
		}
		return a
	}
}
