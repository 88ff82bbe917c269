package patch

import (
	"github.com/vireact/core/domops"
	"github.com/vireact/core/vnode"
)

// updateChildren implements the four-pointer keyed-list diff of spec §4.5
// verbatim: at each step try (1) oldStart~newStart, (2) oldEnd~newEnd,
// (3) oldStart~newEnd (move), (4) oldEnd~newStart (move); otherwise fall
// back to a lazily-built key→index map. This is the algorithm spec.md
// names explicitly — the teacher's ForgeLogic-nojs render.go has no
// equivalent (it recreates subtrees wholesale on every render), so this
// is built fresh from the spec's own description rather than adapted.
func (p *Patcher) updateChildren(parent domops.Node, oldCh, newCh []*vnode.VNode, removeOnly bool) {
	oldStart, oldEnd := 0, len(oldCh)-1
	newStart, newEnd := 0, len(newCh)-1

	var oldStartVn, oldEndVn, newStartVn, newEndVn *vnode.VNode
	var keyToIdx map[any]int

	for oldStart <= oldEnd && newStart <= newEnd {
		oldStartVn = oldCh[oldStart]
		oldEndVn = oldCh[oldEnd]
		newStartVn = newCh[newStart]
		newEndVn = newCh[newEnd]

		switch {
		case oldStartVn == nil:
			oldStart++
		case oldEndVn == nil:
			oldEnd--
		case vnode.SameVnode(oldStartVn, newStartVn):
			p.patchVnode(oldStartVn, newStartVn, removeOnly)
			oldStart++
			newStart++
		case vnode.SameVnode(oldEndVn, newEndVn):
			p.patchVnode(oldEndVn, newEndVn, removeOnly)
			oldEnd--
			newEnd--
		case vnode.SameVnode(oldStartVn, newEndVn):
			p.patchVnode(oldStartVn, newEndVn, removeOnly)
			p.ops.InsertBefore(parent, oldStartVn.Elm, p.ops.NextSibling(oldEndVn.Elm))
			oldStart++
			newEnd--
		case vnode.SameVnode(oldEndVn, newStartVn):
			p.patchVnode(oldEndVn, newStartVn, removeOnly)
			p.ops.InsertBefore(parent, oldEndVn.Elm, oldStartVn.Elm)
			oldEnd--
			newStart++
		default:
			if keyToIdx == nil {
				keyToIdx = buildKeyToIdx(oldCh, oldStart, oldEnd)
			}
			idx, found := findIdxInOld(keyToIdx, newStartVn, oldCh, oldStart, oldEnd)
			if !found {
				p.createElm(newStartVn, parent, oldStartVn.Elm)
			} else {
				matched := oldCh[idx]
				if matched.Tag != newStartVn.Tag {
					p.createElm(newStartVn, parent, oldStartVn.Elm)
				} else {
					p.patchVnode(matched, newStartVn, removeOnly)
					oldCh[idx] = nil
					p.ops.InsertBefore(parent, matched.Elm, oldStartVn.Elm)
				}
			}
			newStart++
		}
	}

	if oldStart > oldEnd {
		var refElm domops.Node
		if newEnd+1 < len(newCh) {
			refElm = newCh[newEnd+1].Elm
		}
		p.addVnodes(parent, newCh, newStart, newEnd+1, refElm)
	} else if newStart > newEnd {
		p.removeVnodes(parent, oldCh, oldStart, oldEnd)
	}
}

func buildKeyToIdx(ch []*vnode.VNode, start, end int) map[any]int {
	m := make(map[any]int, end-start+1)
	for i := start; i <= end; i++ {
		if ch[i] == nil {
			continue
		}
		k := ch[i].Key
		if ch[i].Data != nil && ch[i].Data.Key != nil {
			k = ch[i].Data.Key
		}
		if k != nil {
			m[k] = i
		}
	}
	return m
}

func findIdxInOld(keyToIdx map[any]int, target *vnode.VNode, oldCh []*vnode.VNode, start, end int) (int, bool) {
	var k any
	if target.Data != nil && target.Data.Key != nil {
		k = target.Data.Key
	} else {
		k = target.Key
	}
	if k != nil {
		idx, ok := keyToIdx[k]
		return idx, ok
	}
	for i := start; i <= end; i++ {
		if oldCh[i] != nil && vnode.SameVnode(oldCh[i], target) {
			return i, true
		}
	}
	return 0, false
}
