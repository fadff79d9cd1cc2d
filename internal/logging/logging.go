// Package logging provides structured diagnostics logging with zerolog.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w, usually stderr. With verbose
// false only error-level events are logged, so the tool's normal output is
// exactly the per-file contract lines; verbose true enables debug events
// such as schema compile timing.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
