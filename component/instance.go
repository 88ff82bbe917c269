package component

import (
	"sync"

	"github.com/vireact/core/domops"
	"github.com/vireact/core/patch"
	"github.com/vireact/core/reactive"
	"github.com/vireact/core/vmodule"
	"github.com/vireact/core/vnode"
)

// PropSpec declares one accepted prop (spec §4.6 "props" state slot).
type PropSpec struct {
	Default   func(vm *Instance) any
	Required  bool
	Validator func(v any) bool
}

// ComputedSpec is a single computed property: Get is the expression,
// Set optionally makes it writable.
type ComputedSpec struct {
	Get func(vm *Instance) any
	Set func(vm *Instance, v any)
}

// WatchSpec is one `watch` entry for a given key (spec §4.6 "user
// watchers"); Deep/Immediate mirror the watcher flags of spec §4.3.
type WatchSpec struct {
	Handler   func(vm *Instance, newVal, oldVal any)
	Deep      bool
	Immediate bool
}

// InjectSpec declares one `inject` entry resolved from an ancestor's
// `provide` map (spec §4.6 "resolve inject").
type InjectSpec struct {
	Key     string
	From    string
	Default func(vm *Instance) any
}

// Options is a component's options record: the constructor-chain input to
// mergeOptions and the blueprint newInstance initializes from, per spec
// §4.6's strict initialization order.
type Options struct {
	Name     string
	Extends  *Options
	Props    map[string]PropSpec
	Methods  map[string]any
	Data     func(vm *Instance) map[string]any
	Computed map[string]ComputedSpec
	Watch    map[string][]WatchSpec
	Provide  func(vm *Instance) map[string]any
	Inject   []InjectSpec
	Hooks    Hooks
	Render   func(vm *Instance) *vnode.VNode
}

// Instance is a mounted (or mounting) component, grounded on
// ForgeLogic-nojs/nojs/runtime/renderer_impl.go's per-component state
// bookkeeping but restructured around the reactive/vnode/patch packages
// instead of that renderer's hardcoded tag-switch tree.
type Instance struct {
	opts      *Options
	parent    *Instance
	children  []*Instance
	patcher   *patch.Patcher
	scheduler *reactive.Scheduler
	container domops.Node // non-nil only for the root instance of a Mount call

	props    *reactive.Object
	data     *reactive.Object
	computed map[string]*reactive.Watcher

	provided map[string]any
	injected map[string]any

	events *eventBus

	renderWatcher *reactive.Watcher
	userWatchers  []*reactive.Watcher

	vnodeTree *vnode.VNode
	el        domops.Node

	mu               sync.Mutex
	isMounted        bool
	isBeingDestroyed bool
	isDestroyed      bool
	hydrating        bool
}

// Mount builds and mounts a root instance under container, per spec §4.6
// "Mount". It is the entry point a host application calls once at
// startup; child component instances are instead created implicitly by
// their parent's render function through Instance.Component.
func Mount(opts *Options, container domops.Node, ops domops.NodeOps, modules []vmodule.Module, scheduler *reactive.Scheduler) *Instance {
	p := patch.New(ops, modules)
	return newInstance(opts, nil, nil, p, scheduler, container, false)
}

// MountHydrating is Mount's server-rendered-markup counterpart (spec
// §4.5 "Hydration"): container already holds markup produced by a prior
// render pass, and the first patch attempts to reuse it instead of
// creating fresh nodes.
func MountHydrating(opts *Options, container domops.Node, ops domops.NodeOps, modules []vmodule.Module, scheduler *reactive.Scheduler) *Instance {
	p := patch.New(ops, modules)
	return newInstance(opts, nil, nil, p, scheduler, container, true)
}

func newInstance(opts *Options, parent *Instance, propValues map[string]any, p *patch.Patcher, scheduler *reactive.Scheduler, container domops.Node, hydrating bool) *Instance {
	if opts.Extends != nil {
		opts = mergeOptions(opts.Extends, opts)
	}
	vm := &Instance{
		opts:      opts,
		parent:    parent,
		patcher:   p,
		scheduler: scheduler,
		container: container,
		computed:  make(map[string]*reactive.Watcher),
		events:    newEventBus(),
		hydrating: hydrating,
	}
	if parent != nil {
		parent.children = append(parent.children, vm)
	}

	// Initialization order per spec §4.6: merge (above) -> dev read
	// barrier is devwarn.go's Get, always installed -> lifecycle
	// bookkeeping/event bus (above) -> beforeCreate -> resolve inject ->
	// props -> methods (stateless, read via Get) -> data -> computed ->
	// user watchers -> publish provide -> created -> mount.
	vm.callHook("beforeCreate")
	vm.resolveInjections()
	vm.initProps(propValues)
	vm.initData()
	vm.initComputed()
	vm.initWatchers()
	vm.publishProvide()
	vm.callHook("created")

	if opts.Render != nil {
		vm.mount()
	}
	return vm
}

func (vm *Instance) initProps(values map[string]any) {
	if len(vm.opts.Props) == 0 {
		vm.props = nil
		return
	}
	m := make(map[string]any, len(vm.opts.Props))
	for name, spec := range vm.opts.Props {
		if v, ok := values[name]; ok {
			m[name] = v
			continue
		}
		if spec.Required {
			vm.warnf("props", "missing required prop %q", name)
		}
		if spec.Default != nil {
			reactive.WithObservationPaused(func() {
				m[name] = spec.Default(vm)
			})
		}
	}
	for name, v := range values {
		if _, declared := vm.opts.Props[name]; !declared {
			continue
		}
		if spec, ok := vm.opts.Props[name]; ok && spec.Validator != nil && !spec.Validator(v) {
			vm.warnf("props", "prop %q failed validation", name)
		}
	}
	vm.props = reactive.Observe(m).(*reactive.Object)
}

func (vm *Instance) initData() {
	if vm.opts.Data == nil {
		return
	}
	raw := vm.opts.Data(vm)
	if raw == nil {
		raw = map[string]any{}
	}
	vm.data = reactive.Observe(raw).(*reactive.Object)
	vm.data.MarkReactiveRoot()
}

func (vm *Instance) initComputed() {
	for name, spec := range vm.opts.Computed {
		spec := spec
		w := reactive.NewWatcher(func() (any, error) {
			return spec.Get(vm), nil
		}, reactive.WatcherOptions{Lazy: true, Owner: vm})
		vm.computed[name] = w
	}
}

func (vm *Instance) initWatchers() {
	for key, specs := range vm.opts.Watch {
		for _, spec := range specs {
			vm.watch(key, spec)
		}
	}
}

func (vm *Instance) watch(name string, spec WatchSpec) *reactive.Watcher {
	w := reactive.NewWatcher(func() (any, error) {
		return vm.Get(name), nil
	}, reactive.WatcherOptions{
		Deep:      spec.Deep,
		User:      true,
		Owner:     vm,
		Scheduler: vm.scheduler,
		Callback: func(newVal, oldVal any) {
			spec.Handler(vm, newVal, oldVal)
		},
	})
	vm.mu.Lock()
	vm.userWatchers = append(vm.userWatchers, w)
	vm.mu.Unlock()
	if spec.Immediate {
		spec.Handler(vm, w.Value(), nil)
	}
	return w
}

// Watch registers an ad-hoc runtime watcher (SPEC_FULL.md supplemented
// feature: a public $watch analogous to Vue's vm.$watch), in addition to
// the options-declared `watch` map.
func (vm *Instance) Watch(name string, spec WatchSpec) *reactive.Watcher {
	return vm.watch(name, spec)
}

func (vm *Instance) mount() {
	vm.callHook("beforeMount")
	vm.renderWatcher = reactive.NewWatcher(func() (any, error) {
		tree := vm.opts.Render(vm)
		vm.applyRender(tree)
		return tree, nil
	}, reactive.WatcherOptions{
		Owner:     vm,
		Scheduler: vm.scheduler,
		Before:    func() { vm.callHook("beforeUpdate") },
	})
	registerRenderWatcher(vm.scheduler, vm.renderWatcher, vm)
	vm.isMounted = true
	vm.callHook("mounted")
}

func (vm *Instance) applyRender(tree *vnode.VNode) {
	old := vm.vnodeTree
	var elm any
	switch {
	case old == nil && vm.hydrating && vm.container != nil:
		// Hydration: wrap the existing mount point as a synthetic oldVnode
		// so Patch attempts to reuse its subtree (spec §4.5 "Hydration").
		elm = vm.patcher.Patch(&vnode.VNode{Elm: vm.container}, tree, true, false)
	case old == nil && vm.container != nil:
		elm = vm.patcher.Mount(vm.container, tree)
	default:
		elm = vm.patcher.Patch(old, tree, false, false)
	}
	vm.hydrating = false
	vm.vnodeTree = tree
	vm.el = elm
}

// Component renders a child component VNode: key identifies this
// occurrence among siblings (for keyed-list reuse, spec §4.5's component
// extension of SameVnode), propValues are the child's resolved props.
func (vm *Instance) Component(opts *Options, key string, propValues map[string]any, data *vnode.Data) *vnode.VNode {
	fingerprint := vnode.ComponentFingerprint(opts.Name, key)
	return vnode.Component(opts.Name, &vnode.ComponentOptions{
		Fingerprint: fingerprint,
		Init: func(vn *vnode.VNode) (elm any, instance any) {
			child := newInstance(opts, vm, propValues, vm.patcher, vm.scheduler, nil, false)
			return child.el, child
		},
		Patch: func(oldVnode, newVnode *vnode.VNode) {
			child := oldVnode.ComponentInstance.(*Instance)
			child.updateProps(propValues)
		},
		Destroy: func(vn *vnode.VNode) {
			if vn.ComponentInstance == nil {
				return
			}
			vn.ComponentInstance.(*Instance).Destroy()
		},
	}, data)
}

// updateProps applies new prop values from the parent's re-render
// (spec §4.6 OnParametersSet-equivalent), observing each freshly so
// reads inside computed/render re-evaluate.
func (vm *Instance) updateProps(values map[string]any) {
	if vm.props == nil {
		return
	}
	for name := range vm.opts.Props {
		if v, ok := values[name]; ok {
			vm.props.Set(name, v)
		}
	}
}

// Destroy implements spec §4.6 "Destroy": beforeDestroy, detach from
// parent, tear down watchers, patch old tree against nil, destroyed,
// clear listeners, null DOM back-references.
func (vm *Instance) Destroy() {
	vm.mu.Lock()
	if vm.isBeingDestroyed || vm.isDestroyed {
		vm.mu.Unlock()
		return
	}
	vm.isBeingDestroyed = true
	vm.mu.Unlock()

	vm.callHook("beforeDestroy")

	if vm.parent != nil {
		for i, c := range vm.parent.children {
			if c == vm {
				vm.parent.children = append(vm.parent.children[:i], vm.parent.children[i+1:]...)
				break
			}
		}
	}
	for _, c := range append([]*Instance(nil), vm.children...) {
		c.Destroy()
	}

	if vm.renderWatcher != nil {
		vm.renderWatcher.Teardown()
	}
	for _, w := range vm.userWatchers {
		w.Teardown()
	}
	for _, w := range vm.computed {
		w.Teardown()
	}

	if vm.vnodeTree != nil {
		vm.patcher.Patch(vm.vnodeTree, nil, false, false)
	}

	vm.mu.Lock()
	vm.isDestroyed = true
	vm.mu.Unlock()

	vm.callHook("destroyed")
	vm.events.clear()
	vm.el = nil
	vm.vnodeTree = nil
}

// RemoveWatcher implements reactive.Owner, detaching w from this
// instance's user-watcher list.
func (vm *Instance) RemoveWatcher(w *reactive.Watcher) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for i, uw := range vm.userWatchers {
		if uw == w {
			vm.userWatchers = append(vm.userWatchers[:i], vm.userWatchers[i+1:]...)
			return
		}
	}
}

// Destroyed implements reactive.Owner.
func (vm *Instance) Destroyed() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.isBeingDestroyed || vm.isDestroyed
}

// IsMounted reports whether the instance has completed its initial mount.
func (vm *Instance) IsMounted() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.isMounted
}

// Parent returns the owning component instance, or nil for the root.
func (vm *Instance) Parent() *Instance { return vm.parent }

// Emit fires a component event (SPEC_FULL.md supplemented feature, the
// Go-idiomatic analogue of $emit) to listeners registered via On.
func (vm *Instance) Emit(event string, args ...any) {
	vm.events.emit(event, args...)
}

// On registers a listener for a component event emitted via Emit.
func (vm *Instance) On(event string, handler func(args ...any)) {
	vm.events.on(event, handler)
}
