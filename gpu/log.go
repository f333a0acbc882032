// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled returns false so
// disabled logging skips message formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gpu and the packages built
// on it (ui, scene, app). By default nothing is logged. Pass nil
// to restore the silent default.
//
// Levels:
//   - [slog.LevelDebug]: resource creation and destruction, pass execution
//   - [slog.LevelInfo]: device lifecycle
//   - [slog.LevelWarn]: dropped passes, leaked resources
//   - [slog.LevelError]: backend failures
//
// Devices created with [WithLogger] use their own logger instead.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger. It is safe for
// concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
