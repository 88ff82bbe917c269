package patch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireact/core/domops/memdom"
	"github.com/vireact/core/vmodule"
	"github.com/vireact/core/vnode"
)

func newTestPatcher() *Patcher {
	return New(memdom.Ops{}, vmodule.Standard(memdom.Ops{}))
}

func keyedChild(key string) *vnode.VNode {
	return vnode.Element("li", &vnode.Data{Key: key}, vnode.Text(key))
}

func keyedList(keys ...string) *vnode.VNode {
	children := make([]*vnode.VNode, len(keys))
	for i, k := range keys {
		children[i] = keyedChild(k)
	}
	return vnode.Element("ul", &vnode.Data{}, children...)
}

// TestPatch_Counter covers spec §8 scenario 1: a single text node updates in
// place and the surrounding element is never recreated.
func TestPatch_Counter(t *testing.T) {
	p := newTestPatcher()
	root := memdom.NewRoot("div")

	var recreated int
	render := func(n int) *vnode.VNode {
		return vnode.Element("div", &vnode.Data{
			Hook: vnode.Hooks{Create: func(_, _ *vnode.VNode) { recreated++ }},
		}, vnode.Element("p", &vnode.Data{}, vnode.Text(fmt.Sprintf("%d", n))))
	}

	old := render(0)
	p.Mount(root, old)
	require.Len(t, root.Children, 1)
	textNode := root.Children[0].Children[0].Children[0]
	assert.Equal(t, "0", textNode.Text)
	assert.Equal(t, 1, recreated)

	next := render(1)
	p.Patch(old, next, false, false)

	assert.Same(t, textNode, root.Children[0].Children[0].Children[0], "the text node must be updated in place, not recreated")
	assert.Equal(t, "1", textNode.Text)
	assert.Equal(t, 1, recreated, "the surrounding div must not be recreated by a text-only change")
}

func TestPatch_KeyedListReorder_MovesWithoutRecreate(t *testing.T) {
	p := newTestPatcher()
	root := memdom.NewRoot("div")

	oldVn := keyedList("a", "b", "c", "d")
	p.Mount(root, oldVn)

	require.Len(t, root.Children, 1)
	ul := root.Children[0]
	require.Len(t, ul.Children, 4)

	// Capture the original host nodes by key so we can assert identity is
	// preserved (no create/destroy) across the reorder.
	origByKey := map[string]*memdom.Node{}
	for _, c := range ul.Children {
		origByKey[c.Children[0].Text] = c
	}

	newVn := keyedList("d", "a", "b", "c")
	p.Patch(oldVn, newVn, false, false)

	gotOrder := make([]string, len(ul.Children))
	for i, c := range ul.Children {
		gotOrder[i] = c.Children[0].Text
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, gotOrder)

	// Every host node in the new order is the exact same node as before:
	// the keyed diff moved "d" rather than destroying and recreating a, b, c.
	for _, c := range ul.Children {
		assert.Same(t, origByKey[c.Children[0].Text], c, "node for key %q must be reused, not recreated", c.Children[0].Text)
	}
}

func TestPatch_RoundTrip_MountThenRemoveLeavesEmptyHost(t *testing.T) {
	p := newTestPatcher()
	root := memdom.NewRoot("div")

	var created, destroyed []string
	leaf := func(tag string) *vnode.VNode {
		return vnode.Element(tag, &vnode.Data{
			Hook: vnode.Hooks{
				Create:  func(_, vn *vnode.VNode) { created = append(created, vn.Tag) },
				Destroy: func(vn *vnode.VNode) { destroyed = append(destroyed, vn.Tag) },
			},
		}, vnode.Text(tag))
	}
	tree := vnode.Element("div", &vnode.Data{}, leaf("p"), leaf("span"))

	p.Mount(root, tree)
	require.Len(t, root.Children, 1)
	require.Len(t, created, 2)

	p.Patch(tree, nil, false, false)

	assert.Empty(t, root.Children, "host subtree must be empty after patch(patch(nil, V), nil)")
	assert.ElementsMatch(t, created, destroyed, "every created vnode must receive a matching destroy hook invocation")
}

func TestPatch_SameVnode_ReusesElement(t *testing.T) {
	p := newTestPatcher()
	root := memdom.NewRoot("div")

	oldVn := vnode.Element("div", &vnode.Data{}, vnode.Text("one"))
	p.Mount(root, oldVn)
	elmBefore := root.Children[0]

	newVn := vnode.Element("div", &vnode.Data{}, vnode.Text("two"))
	p.Patch(oldVn, newVn, false, false)

	require.Len(t, root.Children, 1)
	assert.Same(t, elmBefore, root.Children[0], "same-tag/same-key vnode must patch the existing element, not recreate it")
	assert.Equal(t, "two", root.Children[0].Children[0].Text)
}
