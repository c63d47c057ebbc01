package gpu

import (
	"log/slog"

	"github.com/gogpu/shapebatch"
)

// slogger returns the current package logger.
// All logging in internal/gpu goes through this function so that
// shapebatch.SetLogger takes effect without propagation.
func slogger() *slog.Logger { return shapebatch.Logger() }
