package presenter

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the active logger. Image decodes and instance listeners log
// from their own goroutines, so it is swapped atomically.
var logger atomic.Pointer[slog.Logger]

func init() {
	SetLogger(nil)
}

// SetLogger routes the log output of presenter and every sub-package
// (session, template, internal/...) to l. Passing nil restores the default,
// which discards everything.
//
// Levels:
//   - [slog.LevelDebug]: degenerate geometry, stale loads, socket traffic
//   - [slog.LevelInfo]: images loaded, templates saved, files written
//   - [slog.LevelWarn]: decode failures, corrupt template stores
//
// Example:
//
//	presenter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger. It is safe for concurrent
// use.
func Logger() *slog.Logger {
	return logger.Load()
}
