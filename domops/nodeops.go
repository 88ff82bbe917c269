// Package domops defines the host-abstraction interface the patch package
// consumes (spec §6 "Node-ops interface"), plus two implementations: an
// in-memory fake (package memdom) used by every non-browser test, and a
// real browser-backed implementation (package browser, js/wasm build tag
// only) over honnef.co/go/js/dom/v2.
package domops

// Node is an opaque host node handle; concrete implementations (memdom,
// browser) define what it actually is. The patcher never inspects a Node's
// concrete type — all interaction goes through NodeOps.
type Node any

// NodeOps is the minimal host abstraction spec §6 names: createElement,
// createElementNS, createText, createComment, insertBefore, removeChild,
// appendChild, parentNode, nextSibling, tagName, setTextContent,
// setStyleScope.
type NodeOps interface {
	CreateElement(tag string, vnodeHint any) Node
	CreateElementNS(ns, tag string) Node
	CreateText(text string) Node
	CreateComment(text string) Node
	InsertBefore(parent, node, ref Node)
	RemoveChild(parent, node Node)
	AppendChild(parent, node Node)
	ParentNode(node Node) Node
	NextSibling(node Node) Node
	TagName(node Node) string
	SetTextContent(node Node, text string)
	SetStyleScope(node Node, scopeID string)
	// FirstChild is an addition beyond spec §6's literal node-ops list,
	// needed to walk a server-rendered subtree in lockstep during
	// hydration (spec §4.5); NextSibling alone cannot reach a node's
	// first child.
	FirstChild(node Node) Node
}

// ElementOps is the narrower surface the attrs/class/style/events modules
// (package vmodule) need beyond tree manipulation: reading and writing a
// single element's attributes, DOM properties, and event listeners. Split
// out from NodeOps because text/comment nodes never need it.
type ElementOps interface {
	SetAttr(el Node, name, value string)
	RemoveAttr(el Node, name string)
	SetProperty(el Node, name string, value any)
	// AddEventListener binds handler to the named event on el and returns
	// an unsubscribe func; payload passed to handler is opaque, defined by
	// the concrete implementation (a *dom.Event in the browser, the event
	// value passed to Dispatch in memdom).
	AddEventListener(el Node, event string, handler func(payload any)) (unsubscribe func())
}
