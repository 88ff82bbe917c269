// Package component implements spec §4.6: component instance
// initialization order, mount, update, and destroy, wired on top of
// reactive (Observer/Dep/Watcher/Scheduler), vnode, and patch. Grounded on
// ForgeLogic-nojs/nojs/runtime/renderer_impl.go's instance lifecycle
// (RenderRoot/RenderChild/cleanupUnmountedComponents) and
// componentlifecycle.go's named-hook-interface convention, generalized
// from single-purpose OnInit/OnParametersSet/OnDestroy interfaces to the
// fuller named-hook list spec §4.6 requires (beforeCreate, created,
// beforeMount, mounted, beforeUpdate, updated, beforeDestroy, destroyed).
package component

// Hooks holds the named lifecycle callbacks an Options record may supply.
// Each may be nil.
type Hooks struct {
	BeforeCreate  func(vm *Instance)
	Created       func(vm *Instance)
	BeforeMount   func(vm *Instance)
	Mounted       func(vm *Instance)
	BeforeUpdate  func(vm *Instance)
	Updated       func(vm *Instance)
	Activated     func(vm *Instance)
	BeforeDestroy func(vm *Instance)
	Destroyed     func(vm *Instance)
}

func (vm *Instance) callHook(name string) {
	var fn func(vm *Instance)
	switch name {
	case "beforeCreate":
		fn = vm.opts.Hooks.BeforeCreate
	case "created":
		fn = vm.opts.Hooks.Created
	case "beforeMount":
		fn = vm.opts.Hooks.BeforeMount
	case "mounted":
		fn = vm.opts.Hooks.Mounted
	case "beforeUpdate":
		fn = vm.opts.Hooks.BeforeUpdate
	case "updated":
		fn = vm.opts.Hooks.Updated
	case "activated":
		fn = vm.opts.Hooks.Activated
	case "beforeDestroy":
		fn = vm.opts.Hooks.BeforeDestroy
	case "destroyed":
		fn = vm.opts.Hooks.Destroyed
	}
	if fn == nil {
		return
	}
	callHookTrapped(vm, name, fn)
}
