package component

import (
	"sync"

	"github.com/vireact/core/reactive"
)

// The scheduler's "After flush" step (spec §4.4) hands back every watcher
// that ran in the flush; this package needs to know which of those are
// render watchers in order to fire "updated" (and, were keep-alive
// implemented, "activated") on their owning instances. One handler is
// registered per distinct *reactive.Scheduler the first time a component
// mounts against it, rather than one per instance, since OnAfterFlush has
// no unregister and a per-instance registration would never be released.

var (
	ownersMu       sync.Mutex
	renderOwners   = map[*reactive.Watcher]*Instance{}
	registeredFor  = map[*reactive.Scheduler]bool{}
)

func registerRenderWatcher(s *reactive.Scheduler, w *reactive.Watcher, vm *Instance) {
	ownersMu.Lock()
	renderOwners[w] = vm
	alreadyRegistered := registeredFor[s]
	registeredFor[s] = true
	ownersMu.Unlock()

	if !alreadyRegistered {
		s.OnAfterFlush(handleAfterFlush)
	}
}

func handleAfterFlush(flushed []*reactive.Watcher) {
	for _, w := range flushed {
		ownersMu.Lock()
		vm, ok := renderOwners[w]
		ownersMu.Unlock()
		if !ok {
			continue
		}
		if vm.IsMounted() && !vm.Destroyed() {
			vm.callHook("updated")
		}
	}
}
