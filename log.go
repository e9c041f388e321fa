package vtpool

import (
	"log/slog"

	"github.com/giantswarm/vtpool/internal/core"
)

// SetLogger replaces the package-level logger used by vtpool. Lifecycle
// transitions and rejected tasks are logged at debug level, recovered task
// panics at error level.
//
// If l is nil, the logger resets to slog.Default() with a "component"
// attribute. SetLogger is safe to call concurrently with pool operations,
// but executors already created keep the logger they were built with.
//
// Example:
//
//	vtpool.SetLogger(myLogger.With("component", "vtpool"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
