package component

// mergeOptions implements the "explicit merge strategies per key" spec
// §4.6 names for the constructor chain (an Options value extending a base
// Options value, e.g. a component reusing a shared mixin): data/methods/
// computed are shallow-overridden by the child, hooks of the
// same name are concatenated so both base and child fire (base first),
// and watch entries accumulate rather than replace.
func mergeOptions(base, child *Options) *Options {
	if base == nil {
		return child
	}
	if child == nil {
		return base
	}
	merged := *child

	if merged.Props == nil {
		merged.Props = base.Props
	} else {
		for k, v := range base.Props {
			if _, ok := merged.Props[k]; !ok {
				merged.Props[k] = v
			}
		}
	}

	if merged.Methods == nil {
		merged.Methods = base.Methods
	} else {
		for k, v := range base.Methods {
			if _, ok := merged.Methods[k]; !ok {
				merged.Methods[k] = v
			}
		}
	}

	if merged.Computed == nil {
		merged.Computed = base.Computed
	} else {
		for k, v := range base.Computed {
			if _, ok := merged.Computed[k]; !ok {
				merged.Computed[k] = v
			}
		}
	}

	if merged.Data == nil {
		merged.Data = base.Data
	} else if base.Data != nil {
		baseData, childData := base.Data, merged.Data
		merged.Data = func(vm *Instance) map[string]any {
			out := baseData(vm)
			for k, v := range childData(vm) {
				out[k] = v
			}
			return out
		}
	}

	merged.Watch = mergeWatch(base.Watch, child.Watch)
	merged.Hooks = mergeHooks(base.Hooks, child.Hooks)

	return &merged
}

func mergeWatch(base, child map[string][]WatchSpec) map[string][]WatchSpec {
	if len(base) == 0 {
		return child
	}
	out := make(map[string][]WatchSpec, len(base)+len(child))
	for k, v := range base {
		out[k] = append(out[k], v...)
	}
	for k, v := range child {
		out[k] = append(out[k], v...)
	}
	return out
}

func chain(a, b func(vm *Instance)) func(vm *Instance) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(vm *Instance) {
		a(vm)
		b(vm)
	}
}

func mergeHooks(base, child Hooks) Hooks {
	return Hooks{
		BeforeCreate:  chain(base.BeforeCreate, child.BeforeCreate),
		Created:       chain(base.Created, child.Created),
		BeforeMount:   chain(base.BeforeMount, child.BeforeMount),
		Mounted:       chain(base.Mounted, child.Mounted),
		BeforeUpdate:  chain(base.BeforeUpdate, child.BeforeUpdate),
		Updated:       chain(base.Updated, child.Updated),
		Activated:     chain(base.Activated, child.Activated),
		BeforeDestroy: chain(base.BeforeDestroy, child.BeforeDestroy),
		Destroyed:     chain(base.Destroyed, child.Destroyed),
	}
}
