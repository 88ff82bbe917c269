package vmodule

import "github.com/vireact/core/vnode"

// Directive is a user-registered directive implementation; Bind/Update/
// Unbind mirror the module hook kinds but operate per-directive rather
// than per-module, so a single "focus" or "tooltip" directive can be
// attached to any element without writing a whole Module.
type Directive struct {
	Bind   func(el any, value any, arg string)
	Update func(el any, oldValue, value any, arg string)
	Unbind func(el any)
}

// DirectiveRegistry maps a directive name (the part after the compiler's
// own "v-"/"@" marker is stripped) to its implementation. Populated by the
// host application before mounting; vireact ships it empty.
var DirectiveRegistry = map[string]*Directive{}

// DirectivesModule is the module spec §6 names as "funnelled through a
// directive module applied last": it looks up each binding's directive by
// name in DirectiveRegistry and dispatches create/update/destroy to
// Bind/Update/Unbind.
func DirectivesModule() Module {
	update := func(oldVnode, vn *vnode.VNode) {
		if vn.Data == nil {
			return
		}
		oldByName := map[string]vnode.Directive{}
		if oldVnode != nil && oldVnode.Data != nil {
			for _, d := range oldVnode.Data.Directives {
				oldByName[d.Name] = d
			}
		}
		for _, d := range vn.Data.Directives {
			impl, ok := DirectiveRegistry[d.Name]
			if !ok {
				continue
			}
			if old, existed := oldByName[d.Name]; existed {
				if impl.Update != nil {
					impl.Update(vn.Elm, old.Value, d.Value, d.Arg)
				}
				continue
			}
			if impl.Bind != nil {
				impl.Bind(vn.Elm, d.Value, d.Arg)
			}
		}
	}
	return Module{
		Create: func(_, vn *vnode.VNode) { update(nil, vn) },
		Update: update,
		Destroy: func(vn *vnode.VNode) {
			if vn.Data == nil {
				return
			}
			for _, d := range vn.Data.Directives {
				if impl, ok := DirectiveRegistry[d.Name]; ok && impl.Unbind != nil {
					impl.Unbind(vn.Elm)
				}
			}
		},
	}
}
