// Package vnode implements the VNode model of spec §3/§4.5: an immutable
// descriptor of a node (element/component/text/comment) produced by a
// render function, compared for sameness and later diffed by the patch
// package.
package vnode

// Data holds the recognized keys of a VNode's data record (spec §6):
// attrs/props/domProps/on/nativeOn/directives/class/style/key/ref/slot/
// hook. Every field is optional; modules in package vmodule
// read and write the subset relevant to them.
type Data struct {
	Attrs      map[string]string
	Props      map[string]any
	DOMProps   map[string]any
	On         map[string]EventHandler
	NativeOn   map[string]EventHandler
	Directives []Directive
	Class      []string
	Style      map[string]string
	Key        any
	Ref        string
	Slot       string
	Hook       Hooks
}

// EventHandler is the signature modules bind to host DOM events (spec §6
// "on" data key); the event payload is supplied by the node-ops/browser
// layer and handed through as an opaque value so vnode has no dependency on
// any particular host event type.
type EventHandler func(event any)

// Directive is a single directive binding processed by the directive
// module, applied last among modules per spec §6.
type Directive struct {
	Name  string
	Value any
	Arg   string
}

// Hooks are per-VNode lifecycle callbacks a render function (or the
// component package, for component VNodes) may attach; they fire alongside
// the module hooks of the same kind (spec §4.5 "Module hook interface").
type Hooks struct {
	Init    func(vnode *VNode)
	Create  func(oldVnode, vnode *VNode)
	Insert  func(vnode *VNode)
	Update  func(oldVnode, vnode *VNode)
	Destroy func(vnode *VNode)
}

// ComponentOptions describes how to instantiate a child component when a
// VNode's Tag names a component rather than a host element (spec §4.5
// "Component VNodes are created via an embedded init data-hook"). The
// concrete type is supplied by package component; vnode only needs to
// carry it opaquely and compare it for sameVnode purposes.
type ComponentOptions struct {
	// Fingerprint is a stable identity for the component type+instance-key,
	// used by SameVnode instead of an HTML tag/type comparison (see
	// fingerprint.go, adapted from the teacher's typeid package).
	Fingerprint uint32
	// Init is invoked once, the first time this component VNode's elm is
	// created, to build (and mount) the child component instance. It
	// returns the created host node.
	Init func(vnode *VNode) (elm any, instance any)
	// Patch is invoked on every subsequent patch of a reused component
	// VNode, letting the owning instance re-render and diff itself.
	Patch func(oldVnode, vnode *VNode)
	// Destroy tears the child component instance down.
	Destroy func(vnode *VNode)
}

// VNode is the immutable-by-convention descriptor of spec §3. Fields are
// exported because render functions (and the patch/component packages)
// construct and inspect them directly; "immutable" means callers should
// treat a VNode as a fresh value per render rather than mutate one a
// previous patch already consumed — Elm and ComponentInstance are the only
// fields the patch algorithm itself writes back onto a VNode after
// creation.
type VNode struct {
	Tag       string
	Data      *Data
	Children  []*VNode
	Text      string
	Elm       any // host node, opaque to vnode/patch; domops supplies the concrete type
	Key       any
	Context   any
	IsStatic  bool
	IsComment bool

	ComponentOptions  *ComponentOptions
	ComponentInstance any

	Parent *VNode
}

// Text creates a pure text VNode.
func Text(text string) *VNode {
	return &VNode{Text: text}
}

// Comment creates a comment VNode.
func Comment(text string) *VNode {
	return &VNode{Text: text, IsComment: true}
}

// Element creates an element VNode with the given tag, data, and children.
func Element(tag string, data *Data, children ...*VNode) *VNode {
	return &VNode{Tag: tag, Data: data, Children: children}
}

// Component creates a component VNode: Tag is the component's display name
// (for diagnostics only), opts drives instantiation/patching/teardown.
func Component(tag string, opts *ComponentOptions, data *Data) *VNode {
	return &VNode{Tag: tag, Data: data, ComponentOptions: opts}
}

func (v *VNode) key() any {
	if v.Data != nil && v.Data.Key != nil {
		return v.Data.Key
	}
	return v.Key
}

// inputType returns the "type" attribute for <input> tags, used by
// SameVnode's extra input-type check (spec §4.5 "for <input>, type
// attribute equal").
func (v *VNode) inputType() (string, bool) {
	if v.Tag != "input" || v.Data == nil || v.Data.Attrs == nil {
		return "", false
	}
	t, ok := v.Data.Attrs["type"]
	return t, ok
}

func keysEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	return a == b
}

// SameVnode implements the equivalence relation of spec §3/§4.5: two
// VNodes match iff keys are equal, tag/comment-flag/data-presence agree,
// and (for <input>) the type attribute agrees. Component VNodes extend the
// relation by also requiring their ComponentOptions.Fingerprint to match
// (SPEC_FULL.md "SUPPLEMENTED FEATURES" — the §4.5 footnote's pattern
// generalized from <input> type to component identity).
func SameVnode(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !keysEqual(a.key(), b.key()) {
		return false
	}
	if a.Tag != b.Tag {
		return false
	}
	if a.IsComment != b.IsComment {
		return false
	}
	if (a.Data != nil) != (b.Data != nil) {
		return false
	}
	if a.Tag == "input" {
		at, aok := a.inputType()
		bt, bok := b.inputType()
		if aok != bok || at != bt {
			return false
		}
	}
	if a.ComponentOptions != nil || b.ComponentOptions != nil {
		if a.ComponentOptions == nil || b.ComponentOptions == nil {
			return false
		}
		return a.ComponentOptions.Fingerprint == b.ComponentOptions.Fingerprint
	}
	return true
}

// IsElement reports whether the vnode represents a host element (as
// opposed to text, comment, or component).
func (v *VNode) IsElement() bool {
	return v.Tag != "" && !v.IsComment && v.ComponentOptions == nil
}

// IsComponentVNode reports whether the vnode names a component rather than
// a host element.
func (v *VNode) IsComponentVNode() bool {
	return v.ComponentOptions != nil
}
