package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// InitLogging configures the global logger. When path is non-empty, output
// goes to that file as well as stderr.
func InitLogging(path string) {
	writer := zerolog.MultiLevelWriter(os.Stderr)
	if path != "" {
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			writer = zerolog.MultiLevelWriter(os.Stderr, f)
		}
	}
	log = zerolog.New(writer).With().Timestamp().Logger()
}

// InfoLog logs an informational message.
func InfoLog(ctx context.Context, msg string) {
	log.Info().Msg(msg)
}

// ErrorLog logs an error-level message.
func ErrorLog(ctx context.Context, msg string) {
	log.Error().Msg(msg)
}

// With returns the underlying logger for structured fields.
func With() zerolog.Context {
	return log.With()
}
