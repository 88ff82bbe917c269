package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOwner is a minimal reactive.Owner for watchers constructed outside
// the component package.
type fakeOwner struct {
	destroyed bool
	removed   []*Watcher
}

func (o *fakeOwner) RemoveWatcher(w *Watcher) { o.removed = append(o.removed, w) }
func (o *fakeOwner) Destroyed() bool          { return o.destroyed }

func TestObserve_Idempotent(t *testing.T) {
	m := map[string]any{"a": 1}
	o1 := Observe(m)
	o2 := Observe(o1)
	assert.Same(t, o1, o2, "observe(observe(v)) must return the same instance as observe(v)")
}

func TestObject_RawAssignmentDoesNotNotify_SetDoes(t *testing.T) {
	type rec struct{ N int }
	obj := Observe(&rec{N: 0}).(*Object)

	fired := 0
	_ = NewWatcher(func() (any, error) {
		return obj.Get("N"), nil
	}, WatcherOptions{Sync: true, Callback: func(any, any) { fired++ }})

	// Raw assignment: mutate through the underlying pointer directly,
	// bypassing Set. Nothing ever calls Dep.Notify for this write, so the
	// watcher is never invalidated.
	obj.ptr.Interface().(*rec).N = 99
	assert.Equal(t, 0, fired, "raw field mutation must not notify")

	obj.Set("N", 1)
	assert.Equal(t, 1, fired, "Set must notify")
}

func TestObject_FreezeBlocksWrites(t *testing.T) {
	m := map[string]any{"a": 1}
	obj := Observe(m).(*Object)
	Freeze(m)
	require.True(t, IsFrozen(m))
	obj.Set("a", 2)
	assert.Equal(t, 1, obj.Get("a"), "Set on a frozen object must be a no-op")
}

func TestList_PushNotifies(t *testing.T) {
	list := NewList([]any{1, 2, 3})

	fired := 0
	_ = NewWatcher(func() (any, error) {
		return list.Len(), nil
	}, WatcherOptions{Sync: true, Callback: func(any, any) { fired++ }})

	// List exposes no index-assignment method at all (spec boundary): only
	// the seven mutators below can trigger a notification.
	list.Push(4)
	assert.Equal(t, 1, fired, "push must notify exactly once")
}

func TestWatcher_DeepTraversesNestedContainers(t *testing.T) {
	list := NewList([]any{
		Observe(map[string]any{"name": "a"}),
		Observe(map[string]any{"name": "b"}),
	})

	fired := 0
	_ = NewWatcher(func() (any, error) {
		// The getter only returns the list itself; it never reads a nested
		// element's "name" field directly.
		return list, nil
	}, WatcherOptions{Sync: true, Deep: true, Callback: func(any, any) { fired++ }})

	first := list.At(0).(*Object)
	first.Set("name", "changed")
	assert.Equal(t, 1, fired, "a deep watcher must re-run when a nested property it never directly read changes")
}

func TestWatcher_NonDeepIgnoresNestedMutation(t *testing.T) {
	list := NewList([]any{
		Observe(map[string]any{"name": "a"}),
	})

	fired := 0
	_ = NewWatcher(func() (any, error) {
		return list.Len(), nil
	}, WatcherOptions{Sync: true, Callback: func(any, any) { fired++ }})

	first := list.At(0).(*Object)
	first.Set("name", "changed")
	assert.Equal(t, 0, fired, "without Deep, a watcher whose getter never reads the nested field must not re-run")
}

func TestWatcher_DepSetMatchesPropertiesRead(t *testing.T) {
	obj := Observe(map[string]any{"a": 1, "b": 2}).(*Object)

	fired := 0
	_ = NewWatcher(func() (any, error) {
		return obj.Get("a"), nil
	}, WatcherOptions{Sync: true, Callback: func(any, any) { fired++ }})

	obj.Set("b", 20)
	assert.Equal(t, 0, fired, "b was never read, so the watcher's subscription set must exclude it")

	obj.Set("a", 10)
	assert.Equal(t, 1, fired, "a was read, so mutating it must trigger the watcher")
}

func TestScheduler_AtMostOncePerFlush(t *testing.T) {
	s := NewScheduler(nil)
	s.SetSyncMode(false)

	runs := 0
	w := NewWatcher(func() (any, error) {
		runs++
		return runs, nil
	}, WatcherOptions{Lazy: true})

	s.Queue(w)
	s.Queue(w) // duplicate within the same batch must be deduped
	s.FlushNow()
	assert.Equal(t, 1, runs, "watcher id must appear at most once per flush")
}

func TestScheduler_FlushOrder_AncestorBeforeDescendant(t *testing.T) {
	s := NewScheduler(nil)
	var order []string

	ancestor := NewWatcher(func() (any, error) { order = append(order, "ancestor"); return nil, nil }, WatcherOptions{Lazy: true})
	descendant := NewWatcher(func() (any, error) { order = append(order, "descendant"); return nil, nil }, WatcherOptions{Lazy: true})

	// Descendants are constructed (and therefore get a higher monotonic id)
	// after their ancestor, so queuing them in reverse order still flushes
	// ancestor-first once sorted by id.
	s.Queue(descendant)
	s.Queue(ancestor)
	s.FlushNow()

	require.Len(t, order, 2)
	assert.Equal(t, []string{"ancestor", "descendant"}, order)
}

func TestScheduler_InfiniteLoopGuard(t *testing.T) {
	s := NewScheduler(nil)
	s.SetMaxUpdateCount(5)

	obj := Observe(map[string]any{"a": 0}).(*Object)
	var w *Watcher
	w = NewWatcher(func() (any, error) {
		return obj.Get("a"), nil
	}, WatcherOptions{
		User:      true,
		Scheduler: s,
		Callback: func(any, any) {
			obj.Set("a", obj.Get("a").(int)+1)
			w.Update()
		},
	})

	obj.Set("a", 1)
	s.Queue(w)
	assert.NotPanics(t, func() { s.FlushNow() }, "the scheduler must abort the cycle rather than loop forever")
}

func TestWatcher_ComputedWithNoInputsRunsOnce(t *testing.T) {
	runs := 0
	w := NewWatcher(func() (any, error) {
		runs++
		return 42, nil
	}, WatcherOptions{Lazy: true})

	assert.Equal(t, 0, runs)
	v1 := w.Evaluate()
	v2 := w.Evaluate()
	assert.Equal(t, 42, v1)
	assert.Equal(t, 42, v2)
	assert.Equal(t, 1, runs, "a computed with no reactive inputs must evaluate once and never re-run")
}

func TestWatcher_ConditionalDependencyDrop(t *testing.T) {
	state := Observe(map[string]any{"flag": true, "x": 1, "y": 2}).(*Object)

	fired := 0
	_ = NewWatcher(func() (any, error) {
		if state.Get("flag").(bool) {
			return state.Get("x"), nil
		}
		return state.Get("y"), nil
	}, WatcherOptions{Sync: true, Callback: func(any, any) { fired++ }})

	state.Set("y", 20)
	assert.Equal(t, 0, fired, "mutating y while flag is true must not trigger the callback")

	state.Set("flag", false)
	fired = 0

	state.Set("x", 10)
	assert.Equal(t, 0, fired, "mutating x after flag flipped false must not trigger the callback")

	state.Set("y", 30)
	assert.Equal(t, 1, fired, "mutating y after flag flipped false must trigger the callback")
}

func TestWatcher_Teardown_RemovesFromOwner(t *testing.T) {
	owner := &fakeOwner{}
	w := NewWatcher(func() (any, error) { return nil, nil }, WatcherOptions{Owner: owner})
	w.Teardown()
	assert.False(t, w.Active())
	assert.Contains(t, owner.removed, w)
}
