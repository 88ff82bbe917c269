package vnode

// Div, Paragraph, Button, and NewVNode are convenience constructors for the
// handful of tags the AOT template compiler (compiler/compiler.go) emits
// directly, so generated .generated.go files have a stable target without
// each call site hand-assembling a Data literal. attrs mixes plain string
// attribute values with event handlers keyed "onClick" etc., mirroring the
// shorthand the compiler's generated attribute-map literals use.
func splitAttrs(attrs map[string]any) *Data {
	d := &Data{}
	for k, v := range attrs {
		if h, ok := v.(func(any)); ok {
			if d.On == nil {
				d.On = map[string]EventHandler{}
			}
			d.On[eventNameFor(k)] = h
			continue
		}
		if s, ok := v.(string); ok {
			if d.Attrs == nil {
				d.Attrs = map[string]string{}
			}
			d.Attrs[k] = s
			continue
		}
		if d.Props == nil {
			d.Props = map[string]any{}
		}
		d.Props[k] = v
	}
	return d
}

func eventNameFor(attrKey string) string {
	switch attrKey {
	case "onClick":
		return "click"
	default:
		return attrKey
	}
}

// Div builds a <div> (also used for the ul/ol tags the compiler maps to it).
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return Element("div", splitAttrs(attrs), children...)
}

// Paragraph builds a <p> with a single text child.
func Paragraph(text string, attrs map[string]any) *VNode {
	return Element("p", splitAttrs(attrs), Text(text))
}

// Button builds a <button> with a text child followed by any element children.
func Button(text string, attrs map[string]any, children ...*VNode) *VNode {
	all := append([]*VNode{Text(text)}, children...)
	return Element("button", splitAttrs(attrs), all...)
}

// NewVNode builds an arbitrary tag with a single text child, for the li/h1-h6
// tags the compiler emits via NewVNode rather than a dedicated helper.
func NewVNode(tag string, attrs map[string]any, _ any, text string) *VNode {
	return Element(tag, splitAttrs(attrs), Text(text))
}
