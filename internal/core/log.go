package core

import (
	"log/slog"
	"sync/atomic"
)

// logger is the package-level logger, stored atomically so SetLogger can be
// called while pools are running. Nil means "use the cached default".
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the vtpool component attribute.
// SetLogger clears it so the next Logger call re-derives it, which is how a
// later slog.SetDefault is picked up.
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the current package-level logger. Safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "vtpool")
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	// Lost the race to another caller or to SetLogger(nil).
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// SetLogger replaces the package-level logger. A nil l restores the default
// derived from slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
