package vmodule

import (
	"github.com/vireact/core/domops"
	"github.com/vireact/core/vnode"
)

// DOMPropsModule patches Data.DOMProps directly onto the host element's
// properties (value, checked, selected — the cases setAttribute cannot
// express correctly, e.g. an <input> whose "value" DOM property has
// diverged from its initial attribute after user typing).
func DOMPropsModule(ops domops.ElementOps) Module {
	update := func(oldVnode, vn *vnode.VNode) {
		if vn.Data == nil || vn.Elm == nil {
			return
		}
		var oldProps map[string]any
		if oldVnode != nil && oldVnode.Data != nil {
			oldProps = oldVnode.Data.DOMProps
		}
		for k, v := range vn.Data.DOMProps {
			if old, ok := oldProps[k]; ok && old == v {
				continue
			}
			ops.SetProperty(vn.Elm, k, v)
		}
	}
	return Module{
		Create: func(_, vn *vnode.VNode) { update(nil, vn) },
		Update: update,
	}
}
