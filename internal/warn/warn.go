// Package warn centralizes the development-mode diagnostics described in
// spec §7: dev warnings are logged, never returned as errors across the
// public API.
package warn

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

var (
	mu      sync.RWMutex
	logger  = slog.Default()
	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

// SetLogger swaps the logger used for dev warnings. Passing nil restores
// slog.Default().
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// SetEnabled toggles dev warnings globally (disable in production builds
// to avoid the formatting cost on the hot path).
func SetEnabled(v bool) {
	enabled.Store(v)
}

// Warnf logs a formatted development warning tagged with a context string
// (e.g. "watcher", "observer", "patch") per the §7 error table.
func Warnf(context, format string, args ...any) {
	if !enabled.Load() {
		return
	}
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Warn(fmt.Sprintf(format, args...), slog.String("context", context))
}
