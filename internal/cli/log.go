// Package cli implements the layercanvas command-line interface.
//
// This package provides commands for inserting graph fragments into a
// canvas, previewing canvases as DOT, SVG, PDF or PNG, serving them over
// HTTP, and managing the canvas store. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - insert: Insert fragment files into a stored canvas
//   - render: Render a canvas preview with pinned positions
//   - show: Print a summary of a canvas
//   - serve: Serve canvases over HTTP
//   - store: Manage stored canvases
//   - config: Inspect or initialize the settings file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; the canvas and pipeline packages log to
// the same logger, so -v also shows per-fragment and per-stage detail.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger with short wall-clock timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command and logs its stages as structured fields.
type progress struct {
	logger *log.Logger
	op     string
	start  time.Time
	last   time.Time
}

func newProgress(l *log.Logger, op string) *progress {
	now := time.Now()
	return &progress{logger: l, op: op, start: now, last: now}
}

// step logs an intermediate stage at debug level with the time spent in it.
func (p *progress) step(msg string, keyvals ...any) {
	now := time.Now()
	keyvals = append(keyvals, "op", p.op, "took", now.Sub(p.last).Round(time.Millisecond))
	p.last = now
	p.logger.Debug(msg, keyvals...)
}

// done logs msg at info level with the total elapsed time.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "op", p.op, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command. Code
// paths that run without it, such as shell completion, get a discarding
// logger so nothing leaks into completion output.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}
