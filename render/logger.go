// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	"github.com/gogpu/shapebatch"
)

// slogger returns the logger set with shapebatch.SetLogger.
func slogger() *slog.Logger { return shapebatch.Logger() }
