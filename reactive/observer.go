package reactive

import (
	"reflect"
	"sync"

	"github.com/vireact/core/internal/warn"
)

// Observer instruments a container (record or sequence) so that reads
// register a dependency and writes notify one (spec §4.1). Go has no
// accessor-property rewriting, so per spec §9's design note ("represent
// reactive values by explicit handles read through a call") a container is
// observed by wrapping it in an *Object or *List rather than mutating the
// original value in place; Observe is the single entry point that performs
// this wrapping idempotently.
type Observer struct {
	// containerDep is "the Observer owns ... its Dep (used by set/del and
	// array mutators and by children trying to report 'something nested
	// changed')" (spec §4.2).
	containerDep *Dep
}

func newObserver() *Observer {
	return &Observer{containerDep: NewDep()}
}

var (
	frozenMu sync.Mutex
	frozen   = map[any]bool{}
)

// Freeze marks v (must be a pointer, map, or already-observed container) as
// frozen: Observe will return it unchanged and Set/Del will warn and no-op
// against an *Object over it (spec §4.1 edge case, §8 boundary "Freezing an
// object prevents observation"). A *List's mutators do not check frozen
// state.
func Freeze(v any) {
	if o, ok := v.(*Object); ok {
		v = o.identity()
	}
	if !isFreezable(v) {
		return
	}
	frozenMu.Lock()
	frozen[identityKey(v)] = true
	frozenMu.Unlock()
}

// IsFrozen reports whether v was previously passed to Freeze.
func IsFrozen(v any) bool {
	if o, ok := v.(*Object); ok {
		v = o.identity()
	}
	key := identityKey(v)
	if key == nil {
		return false
	}
	frozenMu.Lock()
	defer frozenMu.Unlock()
	return frozen[key]
}

func isFreezable(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Pointer || k == reflect.Map
}

func identityKey(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return nil
		}
		return rv.Pointer()
	default:
		return nil
	}
}

// deep-observation toggle (spec §4.1 "A deep-observation toggle lets
// callers suppress recursion during specific initialization phases").
var (
	observationMu     sync.Mutex
	observationPaused bool
)

// PauseObservation suspends recursive observation; Observe still wraps the
// outermost container but stops recursing into nested values while paused.
func PauseObservation() {
	observationMu.Lock()
	observationPaused = true
	observationMu.Unlock()
}

// ResumeObservation resumes recursive observation.
func ResumeObservation() {
	observationMu.Lock()
	observationPaused = false
	observationMu.Unlock()
}

func observationIsPaused() bool {
	observationMu.Lock()
	defer observationMu.Unlock()
	return observationPaused
}

// WithObservationPaused runs fn with recursive observation suspended, then
// restores the prior state — the bracketed critical section spec §4.1
// describes for "binding props on a child: the parent already owns
// observation, re-observing the same value is a no-op but re-observing a
// freshly-copied default would over-deepen."
func WithObservationPaused(fn func()) {
	observationMu.Lock()
	prev := observationPaused
	observationPaused = true
	observationMu.Unlock()
	defer func() {
		observationMu.Lock()
		observationPaused = prev
		observationMu.Unlock()
	}()
	fn()
}

// Opaque marks a type as never observed regardless of shape, matching
// spec §4.1 "is not a VNode and is not a component instance": any value
// whose type (or *type) implements Opaque is returned unchanged by Observe.
type Opaque interface {
	Opaque()
}

// Observe wraps v in a reactive container if it is an extensible record or
// sequence and is not opaque, recursing into nested elements unless
// observation is paused (spec §4.1). Observe is idempotent: calling it
// again on its own result (or on an already-wrapped value) returns the same
// instance.
func Observe(v any) any {
	if v == nil {
		return v
	}
	switch t := v.(type) {
	case *Object:
		return t
	case *List:
		return t
	case Opaque:
		return v
	}

	if IsFrozen(v) {
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return observeMap(rv)
	case reflect.Slice, reflect.Array:
		return observeSlice(rv)
	case reflect.Pointer:
		if rv.IsNil() {
			return v
		}
		elem := rv.Elem()
		if elem.Kind() == reflect.Struct {
			return observeStruct(rv)
		}
		return v
	case reflect.Struct:
		// Struct values passed by value can't be mutated through the
		// wrapper usefully; warn and return unchanged, matching spec's
		// "configurable:false" skip-silently edge case in spirit (a
		// non-addressable record can't gain accessor semantics).
		warn.Warnf("observer", "Observe called on a non-pointer struct %T; writes will not notify. Pass a pointer.", v)
		return v
	default:
		// primitives are opaque.
		return v
	}
}

func observeMap(rv reflect.Value) *Object {
	o := &Object{
		Observer: newObserver(),
		kind:     kindMap,
		m:        rv.Interface().(map[string]any),
		deps:     make(map[string]*Dep),
	}
	for k := range o.m {
		o.deps[k] = NewDep()
	}
	if !observationIsPaused() {
		for k, val := range o.m {
			o.m[k] = Observe(val)
		}
	}
	return o
}

func observeStruct(ptr reflect.Value) *Object {
	o := &Object{
		Observer: newObserver(),
		kind:     kindStruct,
		ptr:      ptr,
		deps:     make(map[string]*Dep),
	}
	t := ptr.Elem().Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		o.deps[f.Name] = NewDep()
	}
	if !observationIsPaused() {
		elem := ptr.Elem()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fv := elem.Field(i)
			if fv.CanInterface() && fv.CanSet() {
				observed := Observe(fv.Interface())
				if observed != nil && fv.Type() == reflect.TypeOf(observed) {
					fv.Set(reflect.ValueOf(observed))
				}
			}
		}
	}
	return o
}

func observeSlice(rv reflect.Value) *List {
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
		if !observationIsPaused() {
			items[i] = Observe(items[i])
		}
	}
	return &List{Observer: newObserver(), items: items}
}

// Depend reports to the active watcher that this Observer's container
// itself was touched (spec §4.2 "Nested reporting"); used when a getter
// returns an observed container.
func (o *Observer) Depend() {
	o.containerDep.Depend()
}

// Notify fans out a container-level change (adds/deletes, array mutators).
func (o *Observer) Notify() {
	o.containerDep.Notify()
}
