// Package pyrmatch is a thin library entry point wiring ingestion,
// configuration, and domain/match for callers that want a one-shot
// match without assembling the pieces themselves. cmd/pyrmatch is the
// CLI built on top of it.
package pyrmatch

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// NewLogger returns a structured slog.Logger with the given level. It
// picks a human-readable text handler when stdout is attached to a
// terminal and a JSON handler otherwise, matching the teacher's
// "pick the right slog handler at the composition root" idiom.
func NewLogger(level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
