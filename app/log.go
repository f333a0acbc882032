// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"io"
	"log/slog"

	"neocogi.org/gpu"
)

// NewLogger returns a text logger writing records at cfg's level and
// above to w.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}

// InstallLogger makes l the logger of gpu and the packages logging
// through it.
func InstallLogger(l *slog.Logger) {
	gpu.SetLogger(l)
}
