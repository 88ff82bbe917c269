package component

import "github.com/vireact/core/internal/warn"

// Get is the dynamic accessor a render function or compiled template uses
// to read a named binding off the instance (props, data, computed, or
// methods, in that resolution order). It installs the development-only
// read barrier spec §4.6 names ("an access-interception layer that warns
// on undeclared identifier reads during render"): a name that resolves to
// none of props/data/computed/methods/injections warns instead of
// silently returning nil, since in Go there is no language-level property
// miss to trap — this call is the trap.
func (vm *Instance) Get(name string) any {
	if vm.props != nil && vm.props.Has(name) {
		return vm.props.Get(name)
	}
	if vm.data != nil && vm.data.Has(name) {
		return vm.data.Get(name)
	}
	if w, ok := vm.computed[name]; ok {
		return w.Evaluate()
	}
	if m, ok := vm.opts.Methods[name]; ok {
		return m
	}
	if v, ok := vm.injected[name]; ok {
		return v
	}
	vm.warnf("render", "read of undeclared identifier %q during render", name)
	return nil
}

// Set is Get's write counterpart: a method body writes to its component's
// own reactive data through the name it was declared under, never through
// the underlying reactive.Object directly, keeping the same read-barrier
// boundary Get enforces for reads. It resolves name against data first,
// then against a computed property with a Set func; props are not writable
// here (spec §4.6 "one-way data flow in").
func (vm *Instance) Set(name string, value any) {
	if vm.data != nil && vm.data.Has(name) {
		vm.data.Set(name, value)
		return
	}
	if c, ok := vm.opts.Computed[name]; ok && c.Set != nil {
		c.Set(vm, value)
		return
	}
	vm.warnf("render", "write to undeclared identifier %q", name)
}

func (vm *Instance) warnf(context, format string, args ...any) {
	warn.Warnf(context, format, args...)
}
