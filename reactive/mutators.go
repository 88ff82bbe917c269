package reactive

import "github.com/vireact/core/internal/warn"

// RootGuarded is implemented by containers that refuse new top-level
// reactive properties — a component instance's own fields or its root data
// record (spec §4.1 "Refuse to add new top-level reactive props to a
// component instance or its root data record").
type RootGuarded interface {
	IsReactiveRoot() bool
}

func isGuardedRoot(container any) bool {
	if rg, ok := container.(RootGuarded); ok {
		return rg.IsReactiveRoot()
	}
	return false
}

// Set is the external mutator of spec §4.1/§6: for an *Object, defines or
// updates key; for a *List, key must be convertible to a non-negative
// index and the write becomes a single-element Splice at that index, per
// "for sequences, splice at a valid index."
func Set(container any, key any, value any) {
	switch c := container.(type) {
	case *Object:
		k, ok := key.(string)
		if !ok {
			warn.Warnf("observer", "Set: key %v is not a string for object container", key)
			return
		}
		if !c.Has(k) && isGuardedRoot(c) {
			warn.Warnf("observer", "cannot add new reactive property %q to a reactive root", k)
			return
		}
		c.Set(k, value)
	case *List:
		idx, ok := asIndex(key)
		if !ok || idx < 0 || idx > len(c.items) {
			warn.Warnf("observer", "Set: index %v out of bounds for list of length %d", key, len(c.items))
			return
		}
		if idx == len(c.items) {
			c.Push(value)
			return
		}
		c.Splice(idx, 1, value)
	default:
		warn.Warnf("observer", "Set: %T is not a reactive container", container)
	}
}

// Del is the external mutator counterpart to Set (spec §4.1 "del").
func Del(container any, key any) {
	switch c := container.(type) {
	case *Object:
		k, ok := key.(string)
		if !ok {
			warn.Warnf("observer", "Del: key %v is not a string for object container", key)
			return
		}
		c.Delete(k)
	case *List:
		idx, ok := asIndex(key)
		if !ok || idx < 0 || idx >= len(c.items) {
			warn.Warnf("observer", "Del: index %v out of bounds for list of length %d", key, len(c.items))
			return
		}
		c.Splice(idx, 1)
	default:
		warn.Warnf("observer", "Del: %T is not a reactive container", container)
	}
}

func asIndex(key any) (int, bool) {
	switch v := key.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	}
	return 0, false
}
