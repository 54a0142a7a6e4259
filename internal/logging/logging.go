// Package logging builds the diagnostic slog.Logger used across skillmesh.
// Human-facing output goes through internal/ui; this logger carries debug
// detail and is silent above warn unless verbose is set.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Options configures New.
type Options struct {
	Verbose bool // Lower the level to debug
	NoColor bool // Force plain output even on a terminal
}

// New returns a tint-backed logger writing to w. Color is enabled only when w
// is a terminal and NoColor is unset.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		NoColor:    opts.NoColor || !isTerminal(w),
		TimeFormat: time.Kitchen,
		Level:      level,
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
