// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to stderr at the given level.
// Report output goes to stdout, so diagnostics must stay off it.
func New(level zerolog.Level) zerolog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a console logger writing to w.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Level maps the CLI verbosity flags onto a zerolog level: quiet wins,
// then verbose, else info.
func Level(verbose, quiet bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.ErrorLevel
	case verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
