package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogging configures the process logger. Output goes to stdout and, when
// filePath is set, is appended to that file as well.
func InitLogging(filePath, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = os.Stdout
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(os.Stdout, f)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return nil
}

// SetOutput replaces the log destination, keeping the current level.
func SetOutput(w io.Writer) {
	log = log.Output(w)
}

// WithRequestID returns a context whose log lines carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func event(ctx context.Context, lvl zerolog.Level) *zerolog.Event {
	e := log.WithLevel(lvl)
	if id := RequestID(ctx); id != "" {
		e = e.Str("request_id", id)
	}
	return e
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, zerolog.DebugLevel).Msgf(format, args...)
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, zerolog.InfoLevel).Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, zerolog.WarnLevel).Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, zerolog.ErrorLevel).Msgf(format, args...)
}

// RequestLog writes the access log line for one HTTP request.
func RequestLog(ctx context.Context, method, uri string, status int, latency time.Duration, err error) {
	lvl := zerolog.InfoLevel
	switch {
	case status >= 500:
		lvl = zerolog.ErrorLevel
	case status >= 400:
		lvl = zerolog.WarnLevel
	}
	e := event(ctx, lvl).
		Str("method", method).
		Str("uri", uri).
		Int("status", status).
		Dur("latency", latency)
	if err != nil {
		e = e.Err(err)
	}
	e.Msg("request")
}
