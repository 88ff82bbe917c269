package reactive

import (
	"reflect"
	"sort"

	"github.com/vireact/core/internal/warn"
)

type objectKind int

const (
	kindMap objectKind = iota
	kindStruct
)

// Object is a reactive record: the wrapped form of a plain map[string]any
// or a pointer-to-struct, each own key backed by a Dep (spec §3 "Observer
// (value)... Dep"). Reads via Get subscribe the active watcher; writes via
// Set notify.
type Object struct {
	*Observer
	kind   objectKind
	m      map[string]any // kindMap backing store
	ptr    reflect.Value  // kindStruct backing store (pointer to struct)
	deps   map[string]*Dep
	isRoot bool
}

// MarkReactiveRoot flags o as a component instance's root data record, so
// that the external mutator Set (spec §4.1 "Refuse to add new top-level
// reactive props to a component instance or its root data record") refuses
// to define a new top-level key on it, whoever calls Set — not only
// component.Instance.Set's own higher-level gate. Called once by the
// component package right after a root data object is observed.
func (o *Object) MarkReactiveRoot() {
	o.isRoot = true
}

// IsReactiveRoot implements RootGuarded.
func (o *Object) IsReactiveRoot() bool {
	return o.isRoot
}

// Keys returns the object's own keys. For map-backed objects this is
// insertion-order-agnostic (Go maps have no stable order); for
// struct-backed objects it is declaration order.
func (o *Object) Keys() []string {
	if o.kind == kindStruct {
		t := o.ptr.Elem().Type()
		keys := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				keys = append(keys, t.Field(i).Name)
			}
		}
		return keys
	}
	keys := make([]string, 0, len(o.m))
	for k := range o.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key is an own property.
func (o *Object) Has(key string) bool {
	if o.kind == kindStruct {
		return o.ptr.Elem().FieldByName(key).IsValid()
	}
	_, ok := o.m[key]
	return ok
}

// Get reads key, registering a dependency on its Dep (and, if the value is
// itself an observed container, on that container's Dep too — spec §4.2
// "Nested reporting").
func (o *Object) Get(key string) any {
	if dep, ok := o.deps[key]; ok {
		dep.Depend()
	}
	val := o.rawGet(key)
	if c, ok := containerOf(val); ok {
		c.Depend()
	}
	return val
}

func (o *Object) rawGet(key string) any {
	if o.kind == kindStruct {
		f := o.ptr.Elem().FieldByName(key)
		if !f.IsValid() || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	}
	return o.m[key]
}

// Set writes key, notifying its Dep unless the new value is unchanged (NaN
// treated as equal to itself per spec §4.1 edge case (c)). If key does not
// yet exist on a map-backed object, a new reactive property is defined and
// the container Dep notifies (spec §4.1 "External mutators"). Struct-backed
// objects have a fixed field set: setting an unknown key is refused with a
// dev warning, and setting a field whose original definition lacked a
// writer (unexported or unaddressable) is dropped per edge case (b).
func (o *Object) Set(key string, value any) {
	if IsFrozen(o.identity()) {
		warn.Warnf("observer", "Set(%q) on frozen object ignored", key)
		return
	}

	if o.kind == kindStruct {
		f := o.ptr.Elem().FieldByName(key)
		if !f.IsValid() {
			warn.Warnf("observer", "cannot add new reactive property %q to a fixed-shape record", key)
			return
		}
		if !f.CanSet() {
			// unexported or otherwise unwritable: drop the write silently,
			// as if the original accessor had no setter (edge case (b)).
			return
		}
		old := f.Interface()
		if valuesEqual(old, value) {
			return
		}
		observed := Observe(value)
		rv := reflect.ValueOf(observed)
		if observed == nil {
			rv = reflect.Zero(f.Type())
		}
		if rv.Type().AssignableTo(f.Type()) {
			f.Set(rv)
		} else if rv.Type().ConvertibleTo(f.Type()) {
			f.Set(rv.Convert(f.Type()))
		} else {
			warn.Warnf("observer", "cannot assign %T to field %q of type %s", value, key, f.Type())
			return
		}
		if dep, ok := o.deps[key]; ok {
			dep.Notify()
		}
		return
	}

	_, existed := o.m[key]
	old := o.m[key]
	if existed && valuesEqual(old, value) {
		return
	}
	o.m[key] = Observe(value)
	if !existed {
		o.deps[key] = NewDep()
		o.Observer.Notify()
	}
	if dep, ok := o.deps[key]; ok {
		dep.Notify()
	}
}

// Delete removes key (map-backed objects only; struct-backed objects have a
// fixed shape and refuse deletion with a dev warning) and notifies the
// container Dep (spec §4.1 "del").
func (o *Object) Delete(key string) {
	if IsFrozen(o.identity()) {
		warn.Warnf("observer", "Delete(%q) on frozen object ignored", key)
		return
	}
	if o.kind == kindStruct {
		warn.Warnf("observer", "cannot delete field %q from a fixed-shape record", key)
		return
	}
	if _, ok := o.m[key]; !ok {
		return
	}
	delete(o.m, key)
	if dep, ok := o.deps[key]; ok {
		dep.Notify()
		delete(o.deps, key)
	}
	o.Observer.Notify()
}

// Raw returns the underlying map for map-backed objects, or nil for
// struct-backed ones. Intended for serialization/debugging, not for writes
// (writes must go through Set to notify).
func (o *Object) Raw() map[string]any {
	if o.kind == kindMap {
		return o.m
	}
	return nil
}

func (o *Object) identity() any {
	if o.kind == kindStruct {
		return o.ptr.Interface()
	}
	return any(o.m)
}

func containerOf(v any) (*Observer, bool) {
	switch t := v.(type) {
	case *Object:
		return t.Observer, true
	case *List:
		return t.Observer, true
	}
	return nil, false
}
