package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Fields map[string]interface{}

var (
	mu     sync.RWMutex
	logger zerolog.Logger
)

func init() {
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	logger = newLogger(os.Stderr, zerolog.InfoLevel)
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetOutput redirects all log lines to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	logger = newLogger(w, logger.GetLevel())
	mu.Unlock()
}

// SetLevel drops messages below level ("debug", "info", "error").
// Unknown names are ignored.
func SetLevel(level string) {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return
	}
	mu.Lock()
	logger = logger.Level(l)
	mu.Unlock()
}

func withErr(e *zerolog.Event, err error) *zerolog.Event {
	if err != nil {
		e = e.Str("error", err.Error())
	}
	return e
}

// Debug logs a diagnostic message with optional fields.
func Debug(msg string, fields Fields) {
	l := current()
	l.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	l := current()
	l.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	l := current()
	withErr(l.Error(), err).Fields(map[string]interface{}(fields)).Msg(msg)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	l := current()
	withErr(l.WithLevel(zerolog.FatalLevel), err).Fields(map[string]interface{}(fields)).Msg(msg)
	os.Exit(1)
}
