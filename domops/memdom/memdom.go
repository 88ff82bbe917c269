// Package memdom is an in-memory NodeOps implementation backing every
// non-browser test: a tree of plain Go structs standing in for DOM nodes.
// It is the harness that makes patch's keyed-diff invariants (spec §8)
// testable without a JS engine, playing the role
// ForgeLogic-nojs/vdom/render.go fills with real syscall/js calls.
package memdom

import (
	"fmt"
	"strings"

	"github.com/vireact/core/domops"
)

// NodeKind tags what a Node represents.
type NodeKind int

const (
	KindElement NodeKind = iota
	KindText
	KindComment
)

// Node is the in-memory stand-in for a host DOM node.
type Node struct {
	Kind       NodeKind
	Tag        string
	Text       string
	StyleScope string
	Parent     *Node
	Children   []*Node

	Attrs      map[string]string
	Props      map[string]any
	Listeners  map[string][]func(payload any)
}

// String renders a readable tree for test failure messages.
func (n *Node) String() string {
	var sb strings.Builder
	writeNode(&sb, n, 0)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch n.Kind {
	case KindText:
		fmt.Fprintf(sb, "#text(%q)\n", n.Text)
	case KindComment:
		fmt.Fprintf(sb, "#comment(%q)\n", n.Text)
	default:
		fmt.Fprintf(sb, "<%s>\n", n.Tag)
	}
	for _, c := range n.Children {
		writeNode(sb, c, depth+1)
	}
}

// Ops implements domops.NodeOps entirely over in-process Node values.
type Ops struct{}

var _ domops.NodeOps = Ops{}
var _ domops.ElementOps = Ops{}

func asNode(n domops.Node) *Node {
	if n == nil {
		return nil
	}
	return n.(*Node)
}

func (Ops) CreateElement(tag string, _ any) domops.Node {
	return &Node{Kind: KindElement, Tag: tag}
}

func (Ops) CreateElementNS(_ string, tag string) domops.Node {
	return &Node{Kind: KindElement, Tag: tag}
}

func (Ops) CreateText(text string) domops.Node {
	return &Node{Kind: KindText, Text: text}
}

func (Ops) CreateComment(text string) domops.Node {
	return &Node{Kind: KindComment, Text: text}
}

func (Ops) InsertBefore(parent, node, ref domops.Node) {
	p, n := asNode(parent), asNode(node)
	if p == nil || n == nil {
		return
	}
	removeFromParent(n)
	n.Parent = p
	if ref == nil {
		p.Children = append(p.Children, n)
		return
	}
	r := asNode(ref)
	idx := indexOf(p, r)
	if idx < 0 {
		p.Children = append(p.Children, n)
		return
	}
	p.Children = append(p.Children, nil)
	copy(p.Children[idx+1:], p.Children[idx:])
	p.Children[idx] = n
}

func (Ops) RemoveChild(parent, node domops.Node) {
	p, n := asNode(parent), asNode(node)
	if p == nil || n == nil {
		return
	}
	idx := indexOf(p, n)
	if idx < 0 {
		return
	}
	p.Children = append(p.Children[:idx], p.Children[idx+1:]...)
	n.Parent = nil
}

func (Ops) AppendChild(parent, node domops.Node) {
	p, n := asNode(parent), asNode(node)
	if p == nil || n == nil {
		return
	}
	removeFromParent(n)
	n.Parent = p
	p.Children = append(p.Children, n)
}

func (Ops) ParentNode(node domops.Node) domops.Node {
	n := asNode(node)
	if n == nil || n.Parent == nil {
		return nil
	}
	return n.Parent
}

func (Ops) NextSibling(node domops.Node) domops.Node {
	n := asNode(node)
	if n == nil || n.Parent == nil {
		return nil
	}
	idx := indexOf(n.Parent, n)
	if idx < 0 || idx+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[idx+1]
}

func (Ops) FirstChild(node domops.Node) domops.Node {
	n := asNode(node)
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func (Ops) TagName(node domops.Node) string {
	n := asNode(node)
	if n == nil {
		return ""
	}
	return strings.ToUpper(n.Tag)
}

func (Ops) SetTextContent(node domops.Node, text string) {
	n := asNode(node)
	if n == nil {
		return
	}
	n.Children = nil
	n.Text = text
}

func (Ops) SetStyleScope(node domops.Node, scopeID string) {
	n := asNode(node)
	if n == nil {
		return
	}
	n.StyleScope = scopeID
}

func indexOf(parent, child *Node) int {
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func removeFromParent(n *Node) {
	if n.Parent == nil {
		return
	}
	idx := indexOf(n.Parent, n)
	if idx >= 0 {
		n.Parent.Children = append(n.Parent.Children[:idx], n.Parent.Children[idx+1:]...)
	}
	n.Parent = nil
}

// NewRoot creates a detached root element node, typically the mount point
// passed to patch.Patch in tests.
func NewRoot(tag string) *Node {
	return &Node{Kind: KindElement, Tag: tag}
}

func (Ops) SetAttr(el domops.Node, name, value string) {
	n := asNode(el)
	if n == nil {
		return
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
}

func (Ops) RemoveAttr(el domops.Node, name string) {
	n := asNode(el)
	if n == nil || n.Attrs == nil {
		return
	}
	delete(n.Attrs, name)
}

func (Ops) SetProperty(el domops.Node, name string, value any) {
	n := asNode(el)
	if n == nil {
		return
	}
	if n.Props == nil {
		n.Props = make(map[string]any)
	}
	n.Props[name] = value
}

func (Ops) AddEventListener(el domops.Node, event string, handler func(payload any)) func() {
	n := asNode(el)
	if n == nil {
		return func() {}
	}
	if n.Listeners == nil {
		n.Listeners = make(map[string][]func(payload any))
	}
	n.Listeners[event] = append(n.Listeners[event], handler)
	idx := len(n.Listeners[event]) - 1
	return func() {
		ls := n.Listeners[event]
		if idx < len(ls) {
			ls[idx] = nil
		}
	}
}

// Dispatch simulates firing event on n, invoking every still-subscribed
// listener in registration order; tests use it to exercise the events
// module without a JS engine.
func (n *Node) Dispatch(event string, payload any) {
	for _, l := range n.Listeners[event] {
		if l != nil {
			l(payload)
		}
	}
}
