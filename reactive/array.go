package reactive

import "sort"

// List is a reactive sequence: the wrapped form of a Go slice (spec §3, §4.1
// "For sequences, the seven mutating operations push, pop, shift, unshift,
// splice, sort, reverse are intercepted"). Element assignment by index and
// direct length assignment are deliberately not exposed as notifying
// operations — spec §4.1 "Element assignment by index and direct length
// assignment are not intercepted."
type List struct {
	*Observer
	items []any
}

// NewList wraps items as a reactive sequence, observing each element
// (unless observation is paused).
func NewList(items []any) *List {
	l := &List{Observer: newObserver()}
	l.items = make([]any, len(items))
	for i, v := range items {
		if observationIsPaused() {
			l.items[i] = v
		} else {
			l.items[i] = Observe(v)
		}
	}
	return l
}

// Len registers a dependency on the container Dep and returns the current
// length. Length reads must depend on the container Dep (not a per-index
// Dep, since none exists) so that push/pop/splice notifications reach
// length-observing watchers.
func (l *List) Len() int {
	l.Observer.Depend()
	return len(l.items)
}

// At reads index i, depending on the container Dep (and, transitively, on
// the element's own container Dep if it is itself observed).
func (l *List) At(i int) any {
	l.Observer.Depend()
	if i < 0 || i >= len(l.items) {
		return nil
	}
	val := l.items[i]
	if c, ok := containerOf(val); ok {
		c.Depend()
	}
	return val
}

// Slice returns a snapshot copy of the backing items, depending on the
// container Dep. Intended for iteration (e.g. by a render function); the
// returned slice is not itself reactive.
func (l *List) Slice() []any {
	l.Observer.Depend()
	out := make([]any, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) observeAndNotify(inserted []any) {
	for i, v := range inserted {
		inserted[i] = Observe(v)
	}
	l.Observer.Notify()
}

// Push appends items, observes them, and notifies (spec §4.1).
func (l *List) Push(items ...any) int {
	l.items = append(l.items, items...)
	l.observeAndNotify(l.items[len(l.items)-len(items):])
	return len(l.items)
}

// Pop removes and returns the last element, notifying.
func (l *List) Pop() any {
	if len(l.items) == 0 {
		l.Observer.Notify()
		return nil
	}
	last := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	l.Observer.Notify()
	return last
}

// Shift removes and returns the first element, notifying.
func (l *List) Shift() any {
	if len(l.items) == 0 {
		l.Observer.Notify()
		return nil
	}
	first := l.items[0]
	l.items = l.items[1:]
	l.Observer.Notify()
	return first
}

// Unshift prepends items, observes them, and notifies.
func (l *List) Unshift(items ...any) int {
	l.items = append(append([]any{}, items...), l.items...)
	l.observeAndNotify(l.items[:len(items)])
	return len(l.items)
}

// Splice removes deleteCount elements starting at start and inserts items
// in their place, observing the inserted elements and notifying. Returns
// the removed elements, mirroring JS Array.prototype.splice.
func (l *List) Splice(start, deleteCount int, items ...any) []any {
	n := len(l.items)
	if start < 0 {
		start = n + start
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > n {
		deleteCount = n - start
	}

	removed := append([]any{}, l.items[start:start+deleteCount]...)

	tail := append([]any{}, l.items[start+deleteCount:]...)
	l.items = append(l.items[:start], items...)
	l.items = append(l.items, tail...)
	l.observeAndNotify(l.items[start : start+len(items)])
	return removed
}

// Sort reorders items in place using less, then notifies. Sort itself
// performs no element observation since it moves existing elements only.
func (l *List) Sort(less func(a, b any) bool) {
	sort.SliceStable(l.items, func(i, j int) bool { return less(l.items[i], l.items[j]) })
	l.Observer.Notify()
}

// Reverse reverses items in place, then notifies.
func (l *List) Reverse() {
	for i, j := 0, len(l.items)-1; i < j; i, j = i+1, j-1 {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	}
	l.Observer.Notify()
}
