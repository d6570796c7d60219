// Package logging sets up zerolog for the widget and the CLI.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// New returns a logger writing human-readable lines to w at the given
// level. Each process gets its own session id so runs can be told apart in
// a shared log file. Unknown levels fall back to info.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()
}

// OpenFile opens (or creates) the log file at path for appending.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "create log dir")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}
	return f, nil
}

// ErrorWithStack logs err at error level including its stack, if any.
func ErrorWithStack(log zerolog.Logger, err error, msg string) {
	if err == nil {
		return
	}
	log.Error().Msgf("%s: %+v", msg, errors.WithStack(err))
}
