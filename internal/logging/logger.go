// Package logging builds the loggers shared by the tour engine and its
// command surfaces.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Option adjusts logger construction.
type Option func(*config)

type config struct {
	w io.Writer
}

// WithWriter redirects log output, primarily for tests. The default is
// stderr: stdout must stay clean for the tour UI and for JSON-RPC when the
// engine runs as an MCP stdio server.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.w = w
	}
}

// New creates the application logger: text handler, stderr, and the
// conventional "error" attribute key shortened to "err" so engine log lines
// stay grep-consistent across packages.
func New(level slog.Level, opts ...Option) *slog.Logger {
	cfg := config{w: os.Stderr}
	for _, opt := range opts {
		opt(&cfg)
	}

	return slog.New(slog.NewTextHandler(cfg.w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
