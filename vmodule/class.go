package vmodule

import (
	"sort"
	"strings"

	"github.com/vireact/core/domops"
	"github.com/vireact/core/vnode"
)

// ClassModule renders Data.Class as a single space-joined "class"
// attribute, deduplicated and sorted so equivalent class sets never
// trigger a spurious DOM write across renders.
func ClassModule(ops domops.ElementOps) Module {
	update := func(oldVnode, vn *vnode.VNode) {
		if vn.Data == nil || vn.Elm == nil {
			return
		}
		next := renderClass(vn.Data.Class)
		var prev string
		if oldVnode != nil && oldVnode.Data != nil {
			prev = renderClass(oldVnode.Data.Class)
		}
		if next == prev {
			return
		}
		if next == "" {
			ops.RemoveAttr(vn.Elm, "class")
			return
		}
		ops.SetAttr(vn.Elm, "class", next)
	}
	return Module{
		Create: func(_, vn *vnode.VNode) { update(nil, vn) },
		Update: update,
	}
}

func renderClass(classes []string) string {
	if len(classes) == 0 {
		return ""
	}
	seen := make(map[string]bool, len(classes))
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}
