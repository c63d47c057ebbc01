package shapebatch

import (
	"log/slog"
	"sync/atomic"
)

// silent drops every record. slog.DiscardHandler reports itself disabled
// at all levels, so attributes are never evaluated.
var silent = slog.New(slog.DiscardHandler)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(silent)
}

// SetLogger routes the log output of shapebatch, render and the internal
// GPU code to l. Output is discarded until SetLogger is called; passing nil
// discards it again. Safe to call while rendering on another goroutine.
//
// Levels:
//   - Debug: batch creation, flushes with vertex and byte counts, resizes,
//     degenerate paths
//   - Info: renderer creation
//   - Warn: failures while releasing GPU resources
//
// Example:
//
//	shapebatch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//	    &slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger. Sub-packages fetch it on every
// call instead of caching it.
func Logger() *slog.Logger {
	return logger.Load()
}
