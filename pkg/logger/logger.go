// Package logger configures the process-wide zerolog logger and carries
// request-scoped loggers through context.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

var root zerolog.Logger

type ctxKey struct{}

// Init sets up the root logger and the zerolog global used by packages
// that log directly. Development environments get the console writer.
func Init(env string, logLevel string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	switch env {
	case "development", "dev", "":
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	root = zerolog.New(output).With().Timestamp().Caller().Logger()
	zlog.Logger = root
}

// Get returns the root logger.
func Get() *zerolog.Logger {
	return &root
}

// WithRequestID returns a child logger tagged with the request ID.
func WithRequestID(requestID string) zerolog.Logger {
	return root.With().Str("request_id", requestID).Logger()
}

// NewContext stores a logger in the context.
func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by NewContext, or the root logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &root
}
