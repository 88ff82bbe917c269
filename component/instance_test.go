package component

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireact/core/domops/memdom"
	"github.com/vireact/core/reactive"
	"github.com/vireact/core/vmodule"
	"github.com/vireact/core/vnode"
)

func newSyncScheduler() *reactive.Scheduler {
	s := reactive.NewScheduler(nil)
	s.SetSyncMode(true)
	return s
}

func mountTest(t *testing.T, opts *Options) (*Instance, *memdom.Node) {
	t.Helper()
	root := memdom.NewRoot("div")
	ops := memdom.Ops{}
	vm := Mount(opts, root, ops, vmodule.Standard(ops), newSyncScheduler())
	return vm, root
}

// TestCounter covers spec §8 scenario 1 at the component level: after
// data.n = 1 the scheduled (synchronous, in this test) flush updates exactly
// one text node; the element itself is never recreated.
func TestCounter(t *testing.T) {
	var recreated int
	opts := &Options{
		Name: "Counter",
		Data: func(vm *Instance) map[string]any { return map[string]any{"n": 0} },
		Render: func(vm *Instance) *vnode.VNode {
			n := vm.Get("n").(int)
			return vnode.Element("div", &vnode.Data{
				Hook: vnode.Hooks{Create: func(_, _ *vnode.VNode) { recreated++ }},
			}, vnode.Text(fmt.Sprintf("%d", n)))
		},
	}

	vm, root := mountTest(t, opts)
	require.Len(t, root.Children, 1)
	textNode := root.Children[0].Children[0]
	assert.Equal(t, "0", textNode.Text)
	assert.Equal(t, 1, recreated)

	vm.Set("n", 1)

	assert.Same(t, textNode, root.Children[0].Children[0], "counter text node must be updated in place")
	assert.Equal(t, "1", textNode.Text)
	assert.Equal(t, 1, recreated, "the surrounding div must not be recreated by a counter increment")
}

// TestComputedCascade covers spec §8 scenario 3: setting a=10 marks the
// computed dirty once, the render watcher re-runs once, and the final DOM
// text reflects the new sum.
func TestComputedCascade(t *testing.T) {
	var renders int
	opts := &Options{
		Name: "Sum",
		Data: func(vm *Instance) map[string]any { return map[string]any{"a": 1, "b": 2} },
		Computed: map[string]ComputedSpec{
			"sum": {Get: func(vm *Instance) any {
				return vm.Get("a").(int) + vm.Get("b").(int)
			}},
		},
		Render: func(vm *Instance) *vnode.VNode {
			renders++
			sum := vm.Get("sum").(int)
			return vnode.Element("p", &vnode.Data{}, vnode.Text(fmt.Sprintf("%d", sum)))
		},
	}

	vm, root := mountTest(t, opts)
	require.Equal(t, 1, renders)
	assert.Equal(t, "3", root.Children[0].Children[0].Text)

	renders = 0
	vm.Set("a", 10)

	assert.Equal(t, 1, renders, "render must re-run exactly once after the computed input changes")
	assert.Equal(t, "12", root.Children[0].Children[0].Text)
}

// TestUserWatcherBeforeRender covers spec §8 "user watchers fire before the
// render watcher within the same flush."
func TestUserWatcherBeforeRender(t *testing.T) {
	var order []string
	opts := &Options{
		Name: "Ordered",
		Data: func(vm *Instance) map[string]any { return map[string]any{"n": 0} },
		Watch: map[string][]WatchSpec{
			"n": {{Handler: func(vm *Instance, newVal, oldVal any) {
				order = append(order, "watch")
			}}},
		},
		Render: func(vm *Instance) *vnode.VNode {
			order = append(order, "render")
			n := vm.Get("n").(int)
			return vnode.Element("p", &vnode.Data{}, vnode.Text(fmt.Sprintf("%d", n)))
		},
	}

	vm, _ := mountTest(t, opts)
	order = nil // drop the initial mount's render entry

	vm.Set("n", 1)

	require.Len(t, order, 2)
	assert.Equal(t, []string{"watch", "render"}, order)
}

// TestConditionalDependencyDrop covers spec §8's boundary property at the
// component level: a render reading flag ? x : y drops the unused branch's
// subscription once the branch is no longer taken.
func TestConditionalDependencyDrop(t *testing.T) {
	opts := &Options{
		Name: "Cond",
		Data: func(vm *Instance) map[string]any {
			return map[string]any{"flag": true, "x": 1, "y": 2}
		},
		Render: func(vm *Instance) *vnode.VNode {
			var v int
			if vm.Get("flag").(bool) {
				v = vm.Get("x").(int)
			} else {
				v = vm.Get("y").(int)
			}
			return vnode.Element("p", &vnode.Data{}, vnode.Text(fmt.Sprintf("%d", v)))
		},
	}

	vm, root := mountTest(t, opts)
	assert.Equal(t, "1", root.Children[0].Children[0].Text)

	vm.Set("y", 99)
	assert.Equal(t, "1", root.Children[0].Children[0].Text, "mutating y while flag is true must not trigger a re-render")

	vm.Set("flag", false)
	assert.Equal(t, "99", root.Children[0].Children[0].Text)

	vm.Set("x", 5)
	assert.Equal(t, "99", root.Children[0].Children[0].Text, "mutating x after flag flipped false must not trigger a re-render")

	vm.Set("y", 7)
	assert.Equal(t, "7", root.Children[0].Children[0].Text)
}

func TestDestroy_TeardownWatchersAndHook(t *testing.T) {
	var destroyed bool
	opts := &Options{
		Name: "Leaf",
		Data: func(vm *Instance) map[string]any { return map[string]any{"n": 0} },
		Hooks: Hooks{Destroyed: func(vm *Instance) { destroyed = true }},
		Render: func(vm *Instance) *vnode.VNode {
			return vnode.Element("p", &vnode.Data{}, vnode.Text("leaf"))
		},
	}

	vm, _ := mountTest(t, opts)
	vm.Destroy()

	assert.True(t, destroyed)
	assert.True(t, vm.Destroyed())
}
