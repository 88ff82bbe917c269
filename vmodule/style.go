package vmodule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vireact/core/domops"
	"github.com/vireact/core/vnode"
)

// StyleModule renders Data.Style as a single "style" attribute, declarations
// sorted by property name for stable output, and clears properties the new
// vnode dropped relative to the old one.
func StyleModule(ops domops.ElementOps) Module {
	update := func(oldVnode, vn *vnode.VNode) {
		if vn.Data == nil || vn.Elm == nil {
			return
		}
		rendered := renderStyle(vn.Data.Style)
		if rendered == "" {
			ops.RemoveAttr(vn.Elm, "style")
			return
		}
		ops.SetAttr(vn.Elm, "style", rendered)
	}
	return Module{
		Create: func(_, vn *vnode.VNode) { update(nil, vn) },
		Update: update,
	}
}

func renderStyle(style map[string]string) string {
	if len(style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		if style[k] == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s; ", k, style[k])
	}
	return strings.TrimSpace(sb.String())
}
