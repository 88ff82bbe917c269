package vmodule

import (
	"github.com/vireact/core/domops"
	"github.com/vireact/core/vnode"
)

// EventsModule binds Data.On handlers to host events via ops.AddEventListener
// and unbinds/rebinds them across updates, generalizing the teacher's
// attachEventListeners (ForgeLogic-nojs/vdom/render.go) — which rewrapped
// every handler in js.FuncOf on every render with no way to unsubscribe —
// into one that tracks its own subscriptions per vnode so updates replace
// only the handlers that actually changed.
func EventsModule(ops domops.ElementOps) Module {
	type binding struct {
		unsubscribe func()
	}
	bindings := map[*vnode.VNode]map[string]binding{}

	bind := func(vn *vnode.VNode) {
		if vn.Data == nil || vn.Elm == nil || len(vn.Data.On) == 0 {
			return
		}
		perNode := make(map[string]binding, len(vn.Data.On))
		for event, handler := range vn.Data.On {
			h := handler
			unsub := ops.AddEventListener(vn.Elm, event, func(payload any) {
				h(payload)
			})
			perNode[event] = binding{unsubscribe: unsub}
		}
		bindings[vn] = perNode
	}

	unbind := func(vn *vnode.VNode) {
		for _, b := range bindings[vn] {
			if b.unsubscribe != nil {
				b.unsubscribe()
			}
		}
		delete(bindings, vn)
	}

	return Module{
		Create: func(_, vn *vnode.VNode) { bind(vn) },
		Update: func(oldVnode, vn *vnode.VNode) {
			if oldVnode != nil {
				unbind(oldVnode)
			}
			bind(vn)
		},
		Destroy: func(vn *vnode.VNode) { unbind(vn) },
	}
}
