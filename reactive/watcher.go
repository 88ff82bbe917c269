package reactive

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/vireact/core/internal/warn"
)

var watcherIDSeq uint64
var watcherIDMu sync.Mutex

func nextWatcherID() uint64 {
	watcherIDMu.Lock()
	defer watcherIDMu.Unlock()
	watcherIDSeq++
	return watcherIDSeq
}

// Getter is the re-evaluable computation a Watcher wraps: either a user
// function or a compiled dotted-path accessor (spec §4.3).
type Getter func() (any, error)

// Owner is the minimal back-reference a Watcher needs to its owning
// component instance: enough to deregister itself and to know whether the
// owner has started tearing down (spec §4.3 "Teardown").
type Owner interface {
	// RemoveWatcher is called by Watcher.Teardown to detach itself from the
	// owner's watcher list, unless the owner itself is mid-teardown.
	RemoveWatcher(w *Watcher)
	// Destroyed reports whether the owner has begun or finished destruction;
	// a true result lets the scheduler silently skip the watcher mid-flush
	// (spec §4.4 "skip watchers whose owning component was destroyed").
	Destroyed() bool
}

// WatcherOptions configures a Watcher's flags, all defaulting to false/nil.
type WatcherOptions struct {
	Deep   bool
	User   bool
	Lazy   bool
	Sync   bool
	Before func()
	Owner  Owner
	// Scheduler is the queue a non-lazy, non-sync Update() enqueues into.
	// Nil means DefaultScheduler, the process-wide queue every watcher used
	// to be hardwired to; set this to isolate a component tree (or a test)
	// onto its own Scheduler instance instead.
	Scheduler *Scheduler
	// Callback is invoked after a successful re-run whose value changed
	// (or is a container, or Deep is set). Receives (newValue, oldValue).
	Callback func(newVal, oldVal any)
}

// Watcher is a re-evaluable computation bound to a dynamic set of Deps
// (spec §3/§4.3).
type Watcher struct {
	id     uint64
	getter Getter
	opts   WatcherOptions

	mu      sync.Mutex
	active  bool
	dirty   bool
	value   any
	hasRun  bool

	current *depSet
	pending *depSet

	reenterCount int
}

// depSet is a Dep collection with O(1) membership test via an id mirror,
// per spec §3 "each a set of Deps plus a mirror id-set for O(1) dedupe".
type depSet struct {
	ids  map[uint64]struct{}
	deps []*Dep
}

func newDepSet() *depSet {
	return &depSet{ids: make(map[uint64]struct{})}
}

func (s *depSet) add(d *Dep) bool {
	if _, ok := s.ids[d.id]; ok {
		return false
	}
	s.ids[d.id] = struct{}{}
	s.deps = append(s.deps, d)
	return true
}

func (s *depSet) has(id uint64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *depSet) clear() {
	s.ids = make(map[uint64]struct{})
	s.deps = s.deps[:0]
}

// NewWatcher constructs and binds a getter to a Watcher. Non-lazy watchers
// evaluate immediately (the construction-time get() call described in
// spec §4.6 "Mount"); lazy watchers start dirty and defer evaluation.
func NewWatcher(getter Getter, opts WatcherOptions) *Watcher {
	w := &Watcher{
		id:      nextWatcherID(),
		getter:  getter,
		opts:    opts,
		active:  true,
		current: newDepSet(),
		pending: newDepSet(),
	}
	if opts.Lazy {
		w.dirty = true
		return w
	}
	w.value, _ = w.Get()
	w.hasRun = true
	return w
}

// NewPathWatcher compiles a dotted-path expression (e.g. "a.b.c") into a
// getter evaluated against root via reflection. An invalid path degrades to
// a no-op getter with a dev warning (spec §4.3, §7 "Bad dotted-path
// expression").
func NewPathWatcher(root any, path string, opts WatcherOptions) *Watcher {
	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if seg == "" {
			warn.Warnf("watcher", "invalid dotted path %q: empty segment", path)
			return NewWatcher(func() (any, error) { return nil, nil }, opts)
		}
	}
	getter := func() (any, error) {
		cur := reflect.ValueOf(root)
		for _, seg := range segments {
			for cur.Kind() == reflect.Pointer || cur.Kind() == reflect.Interface {
				if cur.IsNil() {
					return nil, nil
				}
				cur = cur.Elem()
			}
			switch cur.Kind() {
			case reflect.Struct:
				f := cur.FieldByName(seg)
				if !f.IsValid() {
					warn.Warnf("watcher", "invalid dotted path %q: no field %q", path, seg)
					return nil, nil
				}
				cur = f
			case reflect.Map:
				v := cur.MapIndex(reflect.ValueOf(seg))
				if !v.IsValid() {
					return nil, nil
				}
				cur = v
			case reflect.Slice, reflect.Array:
				idx, err := strconv.Atoi(seg)
				if err != nil || idx < 0 || idx >= cur.Len() {
					return nil, nil
				}
				cur = cur.Index(idx)
			default:
				warn.Warnf("watcher", "invalid dotted path %q at segment %q", path, seg)
				return nil, nil
			}
		}
		if !cur.IsValid() {
			return nil, nil
		}
		return cur.Interface(), nil
	}
	return NewWatcher(getter, opts)
}

// ID returns the monotonic id used for scheduler ordering (spec §4.4/§5).
func (w *Watcher) ID() uint64 { return w.id }

// Active reports whether the watcher has not yet been torn down.
func (w *Watcher) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Value returns the last cached value from Get/Evaluate.
func (w *Watcher) Value() any {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value
}

// addDep records d in the pending set and subscribes on first sight, per
// spec §4.2 "the Watcher stores the Dep in its pending set (dedup by dep
// id) and, if this is a first-time subscription, calls back dep.subscribe".
func (w *Watcher) addDep(d *Dep) {
	w.mu.Lock()
	isNew := w.pending.add(d)
	alreadyCurrent := w.current.has(d.id)
	w.mu.Unlock()
	if isNew && !alreadyCurrent {
		d.Subscribe(w)
	}
}

// Get runs the get() protocol of spec §4.3: push self active, invoke the
// getter (triggering subscriptions), then — if Deep is set — walk the
// returned value so every nested reactive property also subscribes, pop,
// run dep cleanup, return the value.
func (w *Watcher) Get() (any, error) {
	pushActiveWatcher(w)
	val, err := w.getter()
	if err == nil && w.opts.Deep {
		deepTraverse(val, make(map[*Observer]bool))
	}
	popActiveWatcher()
	w.cleanupDeps()
	return val, err
}

// deepTraverse implements spec §4.3's deep-watch half of get(): "on
// deep:true, traverse the returned value, touching every reachable property
// once (short-circuited by a seen-set of Observer ids) so each nested Dep
// also subscribes." Must run while this watcher is still the active one
// (i.e. between pushActiveWatcher and popActiveWatcher), since Object.Get/
// List.At/List.Len are what actually register the subscription.
func deepTraverse(v any, seen map[*Observer]bool) {
	switch t := v.(type) {
	case *Object:
		if seen[t.Observer] {
			return
		}
		seen[t.Observer] = true
		for _, k := range t.Keys() {
			deepTraverse(t.Get(k), seen)
		}
	case *List:
		if seen[t.Observer] {
			return
		}
		seen[t.Observer] = true
		n := t.Len()
		for i := 0; i < n; i++ {
			deepTraverse(t.At(i), seen)
		}
	}
}

// cleanupDeps diffs pending against current: unsubscribe from Deps present
// in current but absent from pending, then swap pending<->current and clear
// the new pending (spec §4.3 "Dep cleanup").
func (w *Watcher) cleanupDeps() {
	w.mu.Lock()
	current, pending := w.current, w.pending
	w.mu.Unlock()

	for _, d := range current.deps {
		if !pending.has(d.id) {
			d.Unsubscribe(w)
		}
	}

	w.mu.Lock()
	w.current, w.pending = pending, current
	w.pending.clear()
	w.mu.Unlock()
}

// Update implements spec §4.3 "update() protocol": lazy marks dirty and
// returns; sync runs immediately; otherwise hands self to the scheduler.
func (w *Watcher) Update() {
	w.mu.Lock()
	lazy, sync, sched := w.opts.Lazy, w.opts.Sync, w.opts.Scheduler
	w.mu.Unlock()

	switch {
	case lazy:
		w.mu.Lock()
		w.dirty = true
		w.mu.Unlock()
	case sync:
		w.Run()
	default:
		if sched == nil {
			sched = DefaultScheduler
		}
		sched.Queue(w)
	}
}

// Before returns the pre-run hook, if any, called by the scheduler before
// each re-run (spec §4.4).
func (w *Watcher) Before() func() { return w.opts.Before }

// Run re-evaluates the watcher and fires the callback per spec §4.3
// "run()": only if the value changed (per valuesEqual), is a container
// (identity-stable but internally mutable), or Deep is set.
func (w *Watcher) Run() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		return
	}
	owner := w.opts.Owner
	w.mu.Unlock()

	if owner != nil && owner.Destroyed() {
		return
	}

	oldVal := w.Value()
	newVal, err := w.runGuarded()
	if err != nil {
		w.trapOrPropagate(err)
		return
	}

	w.mu.Lock()
	w.value = newVal
	w.hasRun = true
	changed := !valuesEqual(oldVal, newVal) || isContainerKind(newVal) || w.opts.Deep
	cb := w.opts.Callback
	w.mu.Unlock()

	if changed && cb != nil {
		w.invokeCallback(cb, newVal, oldVal)
	}
}

func (w *Watcher) runGuarded() (val any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("watcher panic: %v", r)
		}
	}()
	return w.Get()
}

func (w *Watcher) invokeCallback(cb func(newVal, oldVal any), newVal, oldVal any) {
	if !w.opts.User {
		// Internal watchers (render watcher) propagate panics: spec §7
		// "Render function threw" traps at a higher layer (patch caller),
		// not here, so a panicking render callback surfaces to its caller.
		cb(newVal, oldVal)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.trapOrPropagate(fmt.Errorf("user watcher callback panic: %v", r))
		}
	}()
	cb(newVal, oldVal)
}

func (w *Watcher) trapOrPropagate(err error) {
	if w.opts.User {
		Dispatch(err, ErrorUserWatcher)
		return
	}
	// Internal (render/computed) watcher getter errors are traced in spec
	// §7 as "reuse previous VNode tree to avoid blank UI"; that reuse
	// happens at the call site holding the previous tree (component
	// package), so here we just route through the same global hook for
	// visibility.
	Dispatch(err, ErrorRenderFunction)
}

// Evaluate implements the lazy/computed semantics of spec §4.3: if dirty,
// re-run via Get and clear dirty; then if an outer active watcher exists,
// forward this watcher's Deps to it so the outer watcher transitively
// depends on every reactive input of the computed expression.
func (w *Watcher) Evaluate() any {
	w.mu.Lock()
	dirty := w.dirty
	w.mu.Unlock()

	if dirty {
		val, err := w.Get()
		if err != nil {
			w.trapOrPropagate(err)
		}
		w.mu.Lock()
		w.value = val
		w.dirty = false
		w.mu.Unlock()
	}
	w.Depend()
	return w.Value()
}

// Depend forwards every current Dep of this watcher to the outer active
// watcher, if any (spec §4.3 "computed watcher forwards its own Deps").
func (w *Watcher) Depend() {
	outer := peekActiveWatcher()
	if outer == nil || outer == w {
		return
	}
	w.mu.Lock()
	deps := append([]*Dep(nil), w.current.deps...)
	w.mu.Unlock()
	for _, d := range deps {
		d.Depend()
	}
}

// Dirty reports the lazy dirty bit.
func (w *Watcher) Dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirty
}

// MarkDirty forces the lazy dirty bit, used by Update's lazy branch and
// exposed for tests.
func (w *Watcher) MarkDirty() {
	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()
}

// Teardown removes the watcher from its owner and unsubscribes from every
// current Dep (spec §4.3 "Teardown").
func (w *Watcher) Teardown() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		return
	}
	w.active = false
	owner := w.opts.Owner
	current := w.current
	w.mu.Unlock()

	if owner != nil && !owner.Destroyed() {
		owner.RemoveWatcher(w)
	}
	for _, d := range current.deps {
		d.Unsubscribe(w)
	}
}

// valuesEqual treats NaN as equal to itself (spec §4.1 edge case (c)) and
// falls back to reflect.DeepEqual for everything else, since plain `==`
// panics on uncomparable Go values (slices, maps) that legitimately flow
// through watcher getters.
func valuesEqual(a, b any) bool {
	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			if af != af && bf != bf { // both NaN
				return true
			}
		}
	}
	if isUncomparable(a) || isUncomparable(b) {
		return reflect.DeepEqual(a, b)
	}
	defer func() { recover() }()
	return a == b
}

func isUncomparable(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return true
	default:
		return false
	}
}

// isContainerKind reports whether v is a record/sequence that the Observer
// would wrap: objects may mutate while preserving identity, so Run always
// fires the callback for them (spec §4.3 "or the value is a container").
func isContainerKind(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Struct, reflect.Pointer:
		return true
	default:
		return false
	}
}

// stableSortByID sorts watchers ascending by id, stable on ties (spec §9
// Open Question (ii): "the sort is a stable on equal keys").
func stableSortByID(ws []*Watcher) {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].id < ws[j].id })
}
