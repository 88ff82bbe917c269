package vmodule

import (
	"strconv"

	"github.com/vireact/core/domops"
	"github.com/vireact/core/vnode"
)

// AttrsModule patches the Data.Attrs map onto the element via SetAttr/
// RemoveAttr, generalizing the teacher's setAttributeValue (spec §6's
// boolean-attribute rule: true sets an empty-valued attribute, false
// removes it, grounded on ForgeLogic-nojs/vdom/render.go's setAttributeValue).
func AttrsModule(ops domops.ElementOps) Module {
	update := func(oldVnode, vn *vnode.VNode) {
		if vn.Data == nil || vn.Elm == nil {
			return
		}
		var oldAttrs map[string]string
		if oldVnode != nil && oldVnode.Data != nil {
			oldAttrs = oldVnode.Data.Attrs
		}
		for k, v := range vn.Data.Attrs {
			if old, ok := oldAttrs[k]; ok && old == v {
				continue
			}
			setAttr(ops, vn.Elm, k, v)
		}
		for k := range oldAttrs {
			if _, ok := vn.Data.Attrs[k]; !ok {
				ops.RemoveAttr(vn.Elm, k)
			}
		}
	}
	return Module{
		Create: func(_, vn *vnode.VNode) { update(nil, vn) },
		Update: update,
	}
}

func setAttr(ops domops.ElementOps, el domops.Node, key, value string) {
	if isBooleanAttr(key) {
		if boolish(value) {
			ops.SetAttr(el, key, "")
		} else {
			ops.RemoveAttr(el, key)
		}
		return
	}
	ops.SetAttr(el, key, value)
}

func boolish(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

var booleanAttrs = map[string]bool{
	"checked": true, "disabled": true, "readonly": true, "required": true,
	"selected": true, "multiple": true, "hidden": true, "autofocus": true,
	"autoplay": true, "controls": true, "loop": true, "muted": true, "open": true,
}

func isBooleanAttr(key string) bool {
	return booleanAttrs[key]
}
