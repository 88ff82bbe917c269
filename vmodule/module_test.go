package vmodule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireact/core/domops/memdom"
	"github.com/vireact/core/vnode"
)

func TestAttrsModule_BooleanAttributeRule(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		wantAttr bool
	}{
		{"true string sets an empty-valued attribute", "true", true},
		{"false string removes the attribute", "false", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ops := memdom.Ops{}
			mod := AttrsModule(ops)
			el := ops.CreateElement("input", nil)
			vn := vnode.Element("input", &vnode.Data{Attrs: map[string]string{"disabled": tc.value}})
			vn.Elm = el

			mod.Create(nil, vn)

			n := el.(*memdom.Node)
			_, has := n.Attrs["disabled"]
			assert.Equal(t, tc.wantAttr, has)
			if tc.wantAttr {
				assert.Equal(t, "", n.Attrs["disabled"])
			}
		})
	}
}

func TestAttrsModule_RemovesDroppedAttr(t *testing.T) {
	ops := memdom.Ops{}
	mod := AttrsModule(ops)
	el := ops.CreateElement("div", nil)

	old := vnode.Element("div", &vnode.Data{Attrs: map[string]string{"title": "hi"}})
	old.Elm = el
	mod.Create(nil, old)

	next := vnode.Element("div", &vnode.Data{})
	next.Elm = el
	mod.Update(old, next)

	n := el.(*memdom.Node)
	_, has := n.Attrs["title"]
	assert.False(t, has, "an attribute dropped from the new vnode must be removed from the host element")
}

func TestDOMPropsModule_DivergesFromAttribute(t *testing.T) {
	ops := memdom.Ops{}
	mod := DOMPropsModule(ops)
	el := ops.CreateElement("input", nil)
	vn := vnode.Element("input", &vnode.Data{DOMProps: map[string]any{"value": "typed by user"}})
	vn.Elm = el

	mod.Create(nil, vn)

	n := el.(*memdom.Node)
	assert.Equal(t, "typed by user", n.Props["value"])
}

func TestClassModule_DedupsAndSorts(t *testing.T) {
	ops := memdom.Ops{}
	mod := ClassModule(ops)
	el := ops.CreateElement("div", nil)
	vn := vnode.Element("div", &vnode.Data{Class: []string{"b", "a", "b", " a "}})
	vn.Elm = el

	mod.Create(nil, vn)

	n := el.(*memdom.Node)
	assert.Equal(t, "a b", n.Attrs["class"])
}

func TestClassModule_EmptyRemovesAttr(t *testing.T) {
	ops := memdom.Ops{}
	mod := ClassModule(ops)
	el := ops.CreateElement("div", nil)

	old := vnode.Element("div", &vnode.Data{Class: []string{"a"}})
	old.Elm = el
	mod.Create(nil, old)
	require.Equal(t, "a", el.(*memdom.Node).Attrs["class"])

	next := vnode.Element("div", &vnode.Data{})
	next.Elm = el
	mod.Update(old, next)

	_, has := el.(*memdom.Node).Attrs["class"]
	assert.False(t, has)
}

func TestStyleModule_SortedDeclarationsAndClear(t *testing.T) {
	ops := memdom.Ops{}
	mod := StyleModule(ops)
	el := ops.CreateElement("div", nil)

	old := vnode.Element("div", &vnode.Data{Style: map[string]string{"color": "red", "width": "1px"}})
	old.Elm = el
	mod.Create(nil, old)
	assert.Equal(t, "color: red; width: 1px;", el.(*memdom.Node).Attrs["style"])

	next := vnode.Element("div", &vnode.Data{})
	next.Elm = el
	mod.Update(old, next)
	_, has := el.(*memdom.Node).Attrs["style"]
	assert.False(t, has, "clearing all style declarations must remove the style attribute")
}

func TestEventsModule_UnsubscribesOnUpdate(t *testing.T) {
	ops := memdom.Ops{}
	mod := EventsModule(ops)
	el := ops.CreateElement("button", nil)

	var oldFired, newFired int
	old := vnode.Element("button", &vnode.Data{On: map[string]vnode.EventHandler{
		"click": func(any) { oldFired++ },
	}})
	old.Elm = el
	mod.Create(nil, old)

	n := el.(*memdom.Node)
	n.Dispatch("click", nil)
	assert.Equal(t, 1, oldFired)

	next := vnode.Element("button", &vnode.Data{On: map[string]vnode.EventHandler{
		"click": func(any) { newFired++ },
	}})
	next.Elm = el
	mod.Update(old, next)

	n.Dispatch("click", nil)
	assert.Equal(t, 1, oldFired, "the old handler must no longer fire after update")
	assert.Equal(t, 1, newFired)
}

func TestEventsModule_DestroyUnsubscribes(t *testing.T) {
	ops := memdom.Ops{}
	mod := EventsModule(ops)
	el := ops.CreateElement("button", nil)

	var fired int
	vn := vnode.Element("button", &vnode.Data{On: map[string]vnode.EventHandler{
		"click": func(any) { fired++ },
	}})
	vn.Elm = el
	mod.Create(nil, vn)
	mod.Destroy(vn)

	el.(*memdom.Node).Dispatch("click", nil)
	assert.Equal(t, 0, fired, "a destroyed vnode's handler must not fire")
}

func TestDirectivesModule_BindUpdateUnbindOrdering(t *testing.T) {
	var events []string
	DirectiveRegistry["log"] = &Directive{
		Bind:   func(el, value any, arg string) { events = append(events, "bind") },
		Update: func(el any, oldValue, value any, arg string) { events = append(events, "update") },
		Unbind: func(el any) { events = append(events, "unbind") },
	}
	defer delete(DirectiveRegistry, "log")

	mod := DirectivesModule()
	el := memdom.NewRoot("div")

	vn1 := vnode.Element("div", &vnode.Data{Directives: []vnode.Directive{{Name: "log", Value: 1}}})
	vn1.Elm = el
	mod.Create(nil, vn1)

	vn2 := vnode.Element("div", &vnode.Data{Directives: []vnode.Directive{{Name: "log", Value: 2}}})
	vn2.Elm = el
	mod.Update(vn1, vn2)

	mod.Destroy(vn2)

	assert.Equal(t, []string{"bind", "update", "unbind"}, events)
}
