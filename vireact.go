// Package vireact is the root façade spec §6 names "Observable-root API":
// Observable, Set, Del, NextTick complete the public surface of the core,
// re-exported here so a host application imports one package instead of
// reaching into reactive/vnode/patch/component directly.
package vireact

import (
	"github.com/vireact/core/component"
	"github.com/vireact/core/domops"
	"github.com/vireact/core/reactive"
	"github.com/vireact/core/vmodule"
	"github.com/vireact/core/vnode"
)

// Observable exposes reactive.Observe directly (spec §6 "observable(obj)
// exposes §4.1 directly for library consumers").
func Observable(v any) any { return reactive.Observe(v) }

// Set is the external mutator that both writes a property and notifies
// its Dep, the only supported way to add a new reactive property to a
// map-backed container (spec §6 "set(c,k,v)").
func Set(container any, key any, value any) { reactive.Set(container, key, value) }

// Del is Set's removal counterpart (spec §6 "del(c,k)").
func Del(container any, key any) { reactive.Del(container, key) }

// NextTick fires fn after the current (or next) scheduler flush completes
// (spec §6 "nextTick(fn)"), using the process-wide default scheduler.
func NextTick(fn func()) <-chan struct{} { return reactive.NextTick(fn) }

// Options, Hooks, PropSpec, ComputedSpec, WatchSpec, and InjectSpec are
// re-exported so a host application can build a component tree without an
// extra import of package component for the common case.
type (
	Options      = component.Options
	Hooks        = component.Hooks
	PropSpec     = component.PropSpec
	ComputedSpec = component.ComputedSpec
	WatchSpec    = component.WatchSpec
	InjectSpec   = component.InjectSpec
	Instance     = component.Instance
	Data         = vnode.Data
	VNode        = vnode.VNode
)

// Mount builds and mounts a root component instance under container using
// ops as the host node-ops binding and the standard module list (attrs,
// DOM props, class, style, events, directives).
func Mount(opts *Options, container domops.Node, ops domops.NodeOps) *Instance {
	return component.Mount(opts, container, ops, vmodule.Standard(elementOps(ops)), reactive.DefaultScheduler)
}

// MountHydrating is Mount's server-rendered-markup counterpart (spec
// §4.5 "Hydration").
func MountHydrating(opts *Options, container domops.Node, ops domops.NodeOps) *Instance {
	return component.MountHydrating(opts, container, ops, vmodule.Standard(elementOps(ops)), reactive.DefaultScheduler)
}

func elementOps(ops domops.NodeOps) domops.ElementOps {
	eo, ok := ops.(domops.ElementOps)
	if !ok {
		panic("vireact: node-ops implementation must also implement domops.ElementOps")
	}
	return eo
}
