package vnode

// NormalizeShallow performs the cheap one-level flatten spec §6 describes
// for compiler-emitted render calls: each element of raw is either a
// *VNode or a []*VNode (one level of nesting, never deeper), and nil
// entries are dropped.
func NormalizeShallow(raw []any) []*VNode {
	out := make([]*VNode, 0, len(raw))
	for _, r := range raw {
		switch v := r.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				out = append(out, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					out = append(out, c)
				}
			}
		case string:
			out = append(out, Text(v))
		}
	}
	return out
}

// NormalizeDeep performs the deep flatten + adjacent-text-coalescing spec
// §6 describes for user-written h() calls, where children may be a string,
// a single VNode, or an arbitrarily nested sequence of VNodes/strings.
func NormalizeDeep(raw []any) []*VNode {
	var out []*VNode
	flattenInto(&out, raw)
	return coalesceText(out)
}

func flattenInto(out *[]*VNode, raw []any) {
	for _, r := range raw {
		switch v := r.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				*out = append(*out, v)
			}
		case string:
			*out = append(*out, Text(v))
		case []*VNode:
			for _, c := range v {
				if c != nil {
					*out = append(*out, c)
				}
			}
		case []any:
			flattenInto(out, v)
		}
	}
}

func coalesceText(in []*VNode) []*VNode {
	out := make([]*VNode, 0, len(in))
	for _, v := range in {
		if v.Tag == "" && !v.IsComment && len(out) > 0 {
			last := out[len(out)-1]
			if last.Tag == "" && !last.IsComment {
				last.Text += v.Text
				continue
			}
		}
		out = append(out, v)
	}
	return out
}
