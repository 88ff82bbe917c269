package component

// resolveInject walks up the parent chain looking for key in each
// ancestor's published provide map, per spec §4.6 "resolve inject (read
// from nearest ancestor's provide map)". Returns (nil, false) if no
// ancestor provides key.
func resolveInject(vm *Instance, key string) (any, bool) {
	for p := vm.parent; p != nil; p = p.parent {
		if p.provided == nil {
			continue
		}
		if v, ok := p.provided[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// publishProvide builds this instance's own provide map, by evaluating
// Options.Provide (if any), per spec §4.6 "publish provide" (after state
// init, before the created hook).
func (vm *Instance) publishProvide() {
	if vm.opts.Provide == nil {
		return
	}
	vm.provided = vm.opts.Provide(vm)
}

// resolveInjections populates vm.injected from Options.Inject, warning
// (dev-only, via the instance's own error-dispatch path) when a declared
// inject key has no providing ancestor and no default.
func (vm *Instance) resolveInjections() {
	if len(vm.opts.Inject) == 0 {
		return
	}
	vm.injected = make(map[string]any, len(vm.opts.Inject))
	for _, spec := range vm.opts.Inject {
		if v, ok := resolveInject(vm, spec.From); ok {
			vm.injected[spec.Key] = v
			continue
		}
		if spec.Default != nil {
			vm.injected[spec.Key] = spec.Default(vm)
			continue
		}
		vm.warnf("inject", "injection %q has no providing ancestor and no default", spec.Key)
	}
}

// Inject reads a previously resolved injection by key.
func (vm *Instance) Inject(key string) (any, bool) {
	v, ok := vm.injected[key]
	return v, ok
}
