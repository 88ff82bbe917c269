// Package patch implements spec §4.5: diffing an old VNode tree against a
// new one and applying the minimal set of host mutations through a
// domops.NodeOps + vmodule.Module pair. Grounded on
// ForgeLogic-nojs/vdom/render.go's RenderTo/createElement, generalized
// from a hardcoded per-tag switch into the node-ops/module abstraction §6
// requires.
package patch

import (
	"github.com/vireact/core/domops"
	"github.com/vireact/core/internal/warn"
	"github.com/vireact/core/vmodule"
	"github.com/vireact/core/vnode"
)

// Func is the bound patcher a host application calls per render: Patch(old,
// new, hydrating, removeOnly) -> new root host node.
type Func func(oldVnode, newVnode *vnode.VNode, hydrating, removeOnly bool) any

// Patcher binds a fixed node-ops + module list, matching the "factory
// binds it to a given node-ops + modules pair" language of spec §4.5.
type Patcher struct {
	ops     domops.NodeOps
	modules []vmodule.Module
}

// New builds a Patcher bound to ops and modules.
func New(ops domops.NodeOps, modules []vmodule.Module) *Patcher {
	return &Patcher{ops: ops, modules: modules}
}

// Patch is the entry point spec §4.5 names. When oldVnode is nil, vn is
// created fresh with no parent (a first mount must instead go through
// Mount, which also inserts into a host parent).
func (p *Patcher) Patch(oldVnode, vn *vnode.VNode, hydrating, removeOnly bool) any {
	if vn == nil {
		if oldVnode != nil {
			p.removeVnodes(p.ops.ParentNode(oldVnode.Elm), []*vnode.VNode{oldVnode}, 0, 0)
		}
		return nil
	}
	if oldVnode == nil {
		elm := p.createElm(vn, nil, nil)
		return elm
	}
	if hydrating && isRealNode(oldVnode) {
		if p.hydrate(oldVnode, vn) {
			return vn.Elm
		}
		warn.Warnf("patch", "hydration mismatch at root, falling back to full patch")
	}
	if vnode.SameVnode(oldVnode, vn) {
		p.patchVnode(oldVnode, vn, removeOnly)
		return vn.Elm
	}
	parent := p.ops.ParentNode(oldVnode.Elm)
	ref := p.ops.NextSibling(oldVnode.Elm)
	elm := p.createElm(vn, parent, ref)
	if parent != nil {
		p.removeVnodes(parent, []*vnode.VNode{oldVnode}, 0, 0)
	}
	return elm
}

// Mount creates vn fresh and appends it under parent — the initial-render
// path a component instance uses the first time it patches against a
// real DOM mount point rather than a previous VNode.
func (p *Patcher) Mount(parent domops.Node, vn *vnode.VNode) any {
	elm := p.createElm(vn, parent, nil)
	if parent != nil && elm != nil {
		p.ops.AppendChild(parent, elm)
	}
	return elm
}

func isRealNode(vn *vnode.VNode) bool {
	return vn != nil && vn.Elm != nil && vn.Tag == "" && vn.Children == nil && !vn.IsComponentVNode()
}

// createElm recurses into children first, then fires create module hooks,
// then inserts into parent before ref (spec §4.5 "Element creation"). It
// returns the created host node and, if parent is non-nil, leaves it
// already inserted.
func (p *Patcher) createElm(vn *vnode.VNode, parent, ref domops.Node) any {
	if vn.IsComponentVNode() {
		return p.createComponent(vn, parent, ref)
	}
	if vn.IsComment {
		vn.Elm = p.ops.CreateComment(vn.Text)
		p.insert(parent, vn.Elm, ref)
		return vn.Elm
	}
	if !vn.IsElement() {
		vn.Elm = p.ops.CreateText(vn.Text)
		p.insert(parent, vn.Elm, ref)
		return vn.Elm
	}
	elm := p.ops.CreateElement(vn.Tag, vn)
	vn.Elm = elm
	for _, c := range vn.Children {
		p.createElm(c, elm, nil)
	}
	vmodule.FireCreate(p.modules, emptyVnode(vn), vn)
	if vn.Data != nil && vn.Data.Hook.Create != nil {
		vn.Data.Hook.Create(nil, vn)
	}
	p.insert(parent, elm, ref)
	if vn.Data != nil && vn.Data.Hook.Insert != nil {
		vn.Data.Hook.Insert(vn)
	}
	return elm
}

func (p *Patcher) createComponent(vn *vnode.VNode, parent, ref domops.Node) any {
	opts := vn.ComponentOptions
	elm, instance := opts.Init(vn)
	vn.Elm = elm
	vn.ComponentInstance = instance
	p.insert(parent, elm, ref)
	return elm
}

func (p *Patcher) insert(parent domops.Node, node, ref domops.Node) {
	if parent == nil {
		return
	}
	if ref != nil {
		p.ops.InsertBefore(parent, node, ref)
		return
	}
	p.ops.AppendChild(parent, node)
}

func emptyVnode(vn *vnode.VNode) *vnode.VNode {
	return &vnode.VNode{Tag: vn.Tag, Elm: vn.Elm}
}

// patchVnode updates an existing host node in place to match vn, per spec
// §4.5. oldVnode and vn are assumed to already satisfy SameVnode.
func (p *Patcher) patchVnode(oldVnode, vn *vnode.VNode, removeOnly bool) {
	if oldVnode == vn {
		return
	}
	vn.Elm = oldVnode.Elm

	if vn.IsComponentVNode() {
		if vn.ComponentOptions.Patch != nil {
			vn.ComponentOptions.Patch(oldVnode, vn)
		}
		vn.ComponentInstance = oldVnode.ComponentInstance
		return
	}

	if vn.Data != nil && vn.Data.Hook.Update != nil {
		vn.Data.Hook.Update(oldVnode, vn)
	}

	if !vn.IsElement() {
		if oldVnode.Text != vn.Text {
			p.ops.SetTextContent(vn.Elm, vn.Text)
		}
		return
	}

	vmodule.FireUpdate(p.modules, oldVnode, vn)

	oldCh, newCh := oldVnode.Children, vn.Children
	switch {
	case len(newCh) > 0 && len(oldCh) > 0:
		if !sameChildren(oldCh, newCh) {
			p.updateChildren(vn.Elm, oldCh, newCh, removeOnly)
		}
	case len(newCh) > 0:
		if oldVnode.Text != "" {
			p.ops.SetTextContent(vn.Elm, "")
		}
		p.addVnodes(vn.Elm, newCh, 0, len(newCh), nil)
	case len(oldCh) > 0:
		p.removeVnodes(vn.Elm, oldCh, 0, len(oldCh)-1)
	case oldVnode.Text != "":
		p.ops.SetTextContent(vn.Elm, "")
	}
}

func sameChildren(a, b []*vnode.VNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// addVnodes creates vnodes[start:end) and inserts them before ref.
func (p *Patcher) addVnodes(parent domops.Node, vnodes []*vnode.VNode, start, end int, ref domops.Node) {
	for i := start; i < end; i++ {
		p.createElm(vnodes[i], parent, ref)
	}
}

// removeVnodes fires remove+destroy hooks on vnodes[start:end] and detaches
// their elements from parent, per spec §4.5 "Removal".
func (p *Patcher) removeVnodes(parent domops.Node, vnodes []*vnode.VNode, start, end int) {
	for i := start; i <= end && i < len(vnodes); i++ {
		vn := vnodes[i]
		if vn == nil {
			continue
		}
		p.invokeDestroyHook(vn)
		if vn.Elm == nil {
			continue
		}
		elm := vn.Elm
		vmodule.FireRemove(p.modules, vn, func() {
			if parent != nil {
				p.ops.RemoveChild(parent, elm)
			}
		})
	}
}

// invokeDestroyHook fires destroy hooks on vn and its subtree, post-order
// (children before parent), per spec §4.5.
func (p *Patcher) invokeDestroyHook(vn *vnode.VNode) {
	if vn.IsComponentVNode() {
		if vn.ComponentOptions.Destroy != nil {
			vn.ComponentOptions.Destroy(vn)
		}
		return
	}
	for _, c := range vn.Children {
		p.invokeDestroyHook(c)
	}
	if vn.Data != nil && vn.Data.Hook.Destroy != nil {
		vn.Data.Hook.Destroy(vn)
	}
	vmodule.FireDestroy(p.modules, vn)
}
