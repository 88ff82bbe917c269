package reactive

import (
	"sync"

	"github.com/vireact/core/internal/warn"
)

// ErrorKind tags the origin of a trapped error, replacing name-based
// dispatch per spec §9's design note ("replace name-based dispatch with a
// small tagged enum to catch typos at compile time").
type ErrorKind int

const (
	// ErrorUnknown is the zero value; Dispatch still routes it through the
	// global handler, just without a specific classification.
	ErrorUnknown ErrorKind = iota
	ErrorUserWatcher
	ErrorRenderFunction
	ErrorLifecycleHook
	ErrorBadPath
	ErrorReactiveMisuse
	ErrorInfiniteLoop
	ErrorHydrationMismatch
)

// String names the kind for logging, matching the §7 error-table context
// tags warn.Warnf expects.
func (k ErrorKind) String() string {
	switch k {
	case ErrorUserWatcher:
		return "watcher"
	case ErrorRenderFunction:
		return "render"
	case ErrorLifecycleHook:
		return "lifecycle"
	case ErrorBadPath:
		return "watcher"
	case ErrorReactiveMisuse:
		return "observer"
	case ErrorInfiniteLoop:
		return "scheduler"
	case ErrorHydrationMismatch:
		return "patch"
	default:
		return "unknown"
	}
}

// ErrorHandler receives every trapped error along with its ErrorKind
// classification (spec §7's table) and an optional instance pointer,
// mirroring the (err, vm, info) shape of Vue's config.errorHandler hook
// (see SPEC_FULL.md "SUPPLEMENTED FEATURES"). kind replaces an ad hoc
// string tag so a typo'd context name is a compile error, not a silent
// logging miss (spec §9's design note).
type ErrorHandler func(err error, instance any, kind ErrorKind)

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler
)

// SetErrorHandler installs the process-wide handler for asynchronous and
// trapped errors (spec §7 "Asynchronous errors... are routed through the
// same global hook so integrators can capture them"). Passing nil restores
// the default, which only logs a dev warning.
func SetErrorHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	handler = h
}

// Dispatch routes a trapped error to the installed ErrorHandler, or logs a
// dev warning if none is installed. instance may be nil when the error
// originates outside any component (e.g. a standalone $watch).
func Dispatch(err error, kind ErrorKind) {
	DispatchFor(err, nil, kind)
}

// DispatchFor is Dispatch with an explicit owning instance, used by callers
// that know which component instance the error belongs to.
func DispatchFor(err error, instance any, kind ErrorKind) {
	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()
	if h != nil {
		h(err, instance, kind)
		return
	}
	warn.Warnf(kind.String(), "unhandled error: %v", err)
}
