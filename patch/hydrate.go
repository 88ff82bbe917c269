package patch

import (
	"github.com/vireact/core/internal/warn"
	"github.com/vireact/core/vnode"
)

// hydrate walks vn in lockstep with the existing host subtree rooted at
// oldVnode.Elm (server-rendered markup), binding each VNode's Elm instead
// of creating new nodes, per spec §4.5 "Hydration". It returns false on
// any structural mismatch, in which case the caller warns and falls back
// to a full patch.
func (p *Patcher) hydrate(oldVnode, vn *vnode.VNode) bool {
	elm := oldVnode.Elm
	if elm == nil {
		return false
	}
	if vn.IsComponentVNode() {
		created, instance := vn.ComponentOptions.Init(vn)
		vn.Elm = created
		vn.ComponentInstance = instance
		return true
	}
	if !vn.IsElement() {
		vn.Elm = elm
		return true
	}
	if p.ops.TagName(elm) != "" && !tagsMatch(p.ops.TagName(elm), vn.Tag) {
		return false
	}
	vn.Elm = elm

	child := p.ops.FirstChild(elm)
	for _, c := range vn.Children {
		if child == nil {
			warn.Warnf("patch", "hydration mismatch: fewer host children than vnode children for <%s>", vn.Tag)
			return false
		}
		childVn := &vnode.VNode{Elm: child}
		if !p.hydrate(childVn, c) {
			return false
		}
		child = p.ops.NextSibling(child)
	}

	if vn.Data != nil && vn.Data.Hook.Insert != nil {
		vn.Data.Hook.Insert(vn)
	}
	return true
}

func tagsMatch(hostTag, vnodeTag string) bool {
	if hostTag == "" || vnodeTag == "" {
		return true
	}
	return toUpper(hostTag) == toUpper(vnodeTag)
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
