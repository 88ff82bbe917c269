// Package vmodule implements the pluggable module hook interface of spec
// §6: attribute/class/style/event/directive patchers, each implementing
// any subset of {create, activate, update, remove, destroy}, dispatched in
// a fixed module order by the patch package. This generalizes the
// teacher's inlined setAttributeValue/attachEventListeners switch
// (ForgeLogic-nojs/vdom/render.go) into the same module-list design the
// rest of the corpus (and spec §6) describes.
package vmodule

import (
	"github.com/vireact/core/domops"
	"github.com/vireact/core/vnode"
)

// Module is implemented by any subset of the five hook kinds; a module
// that does not care about a given kind simply leaves that field nil.
type Module struct {
	Create   func(empty, vn *vnode.VNode)
	Activate func(empty, vn *vnode.VNode)
	Update   func(oldVnode, vn *vnode.VNode)
	Remove   func(vn *vnode.VNode, cb func())
	Destroy  func(vn *vnode.VNode)
}

// Standard returns the fixed module list a host ships with: attributes,
// DOM properties, class, style, events, directives — directives last per
// spec §6 ("funnelled through a directive module applied last"). ops is
// the element-level host binding (memdom.Ops or browser.Ops).
func Standard(ops domops.ElementOps) []Module {
	return []Module{
		AttrsModule(ops),
		DOMPropsModule(ops),
		ClassModule(ops),
		StyleModule(ops),
		EventsModule(ops),
		DirectivesModule(),
	}
}

// FireCreate runs the create hook of every module that has one, in order.
func FireCreate(mods []Module, empty, vn *vnode.VNode) {
	for _, m := range mods {
		if m.Create != nil {
			m.Create(empty, vn)
		}
	}
}

// FireActivate runs the activate hook of every module that has one.
func FireActivate(mods []Module, empty, vn *vnode.VNode) {
	for _, m := range mods {
		if m.Activate != nil {
			m.Activate(empty, vn)
		}
	}
}

// FireUpdate runs the update hook of every module that has one.
func FireUpdate(mods []Module, oldVnode, vn *vnode.VNode) {
	for _, m := range mods {
		if m.Update != nil {
			m.Update(oldVnode, vn)
		}
	}
}

// FireRemove runs the remove hook of every module that has one. cb is
// invoked once per module that accepted the remove (modules without a
// Remove hook are treated as having accepted immediately); the patcher
// passes a reference-counted cb so actual detachment waits for every
// module (e.g. a transition module) to finish.
func FireRemove(mods []Module, vn *vnode.VNode, cb func()) {
	pending := 0
	for _, m := range mods {
		if m.Remove != nil {
			pending++
		}
	}
	if pending == 0 {
		cb()
		return
	}
	remaining := pending
	done := func() {
		remaining--
		if remaining == 0 {
			cb()
		}
	}
	for _, m := range mods {
		if m.Remove != nil {
			m.Remove(vn, done)
		}
	}
}

// FireDestroy runs the destroy hook of every module that has one.
func FireDestroy(mods []Module, vn *vnode.VNode) {
	for _, m := range mods {
		if m.Destroy != nil {
			m.Destroy(vn)
		}
	}
}
