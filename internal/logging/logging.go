// Package logging configures the zerolog.Logger instances threaded through
// the rest of the editor. There is no global logger: every package that
// logs takes a zerolog.Logger field, whose zero value is already a valid
// no-op logger per zerolog's documented pattern, so callers that don't
// care about logging never need to construct one.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Dev selects a human-readable console writer with color and aligned
	// fields. When false, logs are written as plain newline-delimited JSON,
	// suitable for capture by a supervisor or log aggregator.
	Dev bool
	// Level is the minimum level that gets written; zerolog.Disabled turns
	// logging off entirely without every call site needing to check.
	Level zerolog.Level
	// Output overrides the destination writer; defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger per opts. Called once at startup; the resulting
// Logger (or one derived from it via .With()) is threaded explicitly into
// every component that needs to log.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer = out
	if opts.Dev {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(opts.Level)
}

// Component returns a child logger tagged with a "component" field, so
// log lines from the drain loop, PTY readers, and file watcher are
// distinguishable in aggregate output.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
