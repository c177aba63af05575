// SPDX-License-Identifier: Unlicense OR MIT

// Package log holds the logger shared by all eglview packages.
package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var logger atomic.Pointer[slog.Logger]

func init() {
	Set(nil)
}

// Set replaces the shared logger. A nil logger discards everything.
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger.Store(l)
}

// L returns the shared logger.
func L() *slog.Logger {
	return logger.Load()
}

// Debugging reports whether debug records are kept, so callers can
// skip gathering expensive attributes.
func Debugging() bool {
	return L().Enabled(context.Background(), slog.LevelDebug)
}
