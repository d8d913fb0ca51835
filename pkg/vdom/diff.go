package vdom

import (
	"slices"
	"sort"
)

// Diff compares two VNode trees and returns the patches needed to transform
// a real tree built from prev into one matching next. Patches are addressed
// by prev's traversal indices (see IndexedChildren). Neither tree is
// modified. Both trees must be non-nil.
func Diff(prev, next *VNode) []Patch {
	d := &differ{sizes: make(sizeCache)}
	d.diff(prev, next, 0)
	return d.patches
}

type differ struct {
	patches []Patch
	sizes   sizeCache
}

func (d *differ) push(p Patch) {
	d.patches = append(d.patches, p)
}

// diff compares one node pair. idx is prev's traversal index.
func (d *differ) diff(prev, next *VNode, idx uint32) {
	// Different kind or tag - replace. The caller advances past prev's whole
	// subtree, so nothing below prev is ever addressed.
	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		d.push(Patch{Op: PatchReplace, OldIdx: idx, NewNode: next})
		return
	}

	if prev.Kind == KindText {
		if prev.Text != next.Text {
			d.push(Patch{Op: PatchChangeText, OldIdx: idx, NewNode: next})
		}
		return
	}

	d.diffOnRemove(prev, next, idx)
	d.diffAttributes(prev, next, idx)
	d.diffEvents(prev, next, idx)

	prevHTML, hadHTML := innerHTML(prev.Special)
	nextHTML, hasHTML := innerHTML(next.Special)
	if hadHTML && !hasHTML {
		d.push(Patch{Op: PatchRemoveInnerHTML, OldIdx: idx})
	}

	d.diffChildren(prev, next, idx)

	if hasHTML && (!hadHTML || prevHTML != nextHTML) {
		d.push(Patch{Op: PatchSetInnerHTML, OldIdx: idx, NewNode: next})
	}

	d.diffOnCreate(prev, next, idx)
}

// diffAttributes computes added/changed and removed attributes as sets.
// value and checked are re-applied even when unchanged so that the live
// state of a control the user edited is overwritten.
func (d *differ) diffAttributes(prev, next *VNode, idx uint32) {
	var add map[string]AttributeValue
	for key, nextVal := range next.Attrs {
		if prevVal, ok := prev.Attrs[key]; ok && prevVal.Equal(nextVal) {
			continue
		}
		if add == nil {
			add = make(map[string]AttributeValue)
		}
		add[key] = nextVal
	}

	var remove []string
	for key := range prev.Attrs {
		if _, ok := next.Attrs[key]; !ok {
			remove = append(remove, key)
		}
	}

	if len(add) > 0 {
		d.push(Patch{Op: PatchAddAttributes, OldIdx: idx, Attrs: add})
	}
	if len(remove) > 0 {
		sort.Strings(remove)
		d.push(Patch{Op: PatchRemoveAttributes, OldIdx: idx, AttrNames: remove})
	}

	if v, ok := next.Attrs["value"]; ok {
		_, changed := add["value"]
		if _, isString := v.AsString(); isString && !changed {
			d.push(Patch{Op: PatchValueUnchanged, OldIdx: idx, Value: v})
		}
	}
	if v, ok := next.Attrs["checked"]; ok {
		if _, changed := add["checked"]; !changed {
			d.push(Patch{Op: PatchCheckedUnchanged, OldIdx: idx, Value: v})
		}
	}
}

// diffEvents emits RemoveEvents before AddEvents for the same node.
func (d *differ) diffEvents(prev, next *VNode, idx uint32) {
	var removed []EventName
	for name := range prev.Events {
		if _, ok := next.Events[name]; !ok {
			removed = append(removed, name)
		}
	}
	var added Events
	for name, h := range next.Events {
		if _, ok := prev.Events[name]; !ok {
			if added == nil {
				added = make(Events)
			}
			added[name] = h
		}
	}

	if len(removed) > 0 {
		slices.Sort(removed)
		d.push(Patch{Op: PatchRemoveEvents, OldIdx: idx, EventNames: removed})
	}
	if len(added) > 0 {
		d.push(Patch{Op: PatchAddEvents, OldIdx: idx, Events: added})
	}
}

// diffOnCreate calls the new hook only when its key is new or different.
// An unchanged key means the same logical instance.
func (d *differ) diffOnCreate(prev, next *VNode, idx uint32) {
	nextKey, ok := hookKey(next.Special.OnCreate)
	if !ok {
		return
	}
	if prevKey, had := hookKey(prev.Special.OnCreate); had && prevKey == nextKey {
		return
	}
	d.push(Patch{Op: PatchCallOnCreate, OldIdx: idx, NewNode: next})
}

// diffOnRemove calls the old hook when the new node drops it or changes its
// key.
func (d *differ) diffOnRemove(prev, next *VNode, idx uint32) {
	prevKey, ok := hookKey(prev.Special.OnRemove)
	if !ok {
		return
	}
	if nextKey, has := hookKey(next.Special.OnRemove); has && nextKey == prevKey {
		return
	}
	d.push(Patch{Op: PatchCallOnRemove, OldIdx: idx, OldNode: prev})
}

// diffChildren picks keyed reconciliation when any child on either side
// carries an explicit or implicit key.
func (d *differ) diffChildren(prev, next *VNode, idx uint32) {
	prevKids := IndexedChildren(prev)
	nextKids := IndexedChildren(next)
	if len(prevKids) == 0 && len(nextKids) == 0 {
		return
	}

	prevKeys := childKeys(prevKids)
	nextKeys := childKeys(nextKids)
	if prevKeys != nil || nextKeys != nil {
		d.diffKeyedChildren(idx, prevKids, nextKids, prevKeys, nextKeys)
		return
	}
	d.diffUnkeyedChildren(idx, prevKids, nextKids)
}

// diffUnkeyedChildren matches children by position.
func (d *differ) diffUnkeyedChildren(idx uint32, prev, next []*VNode) {
	childIdx := idx + 1
	n := min(len(prev), len(next))
	for i := 0; i < n; i++ {
		d.diff(prev[i], next[i], childIdx)
		childIdx += d.sizes.size(prev[i])
	}

	switch {
	case len(next) > len(prev):
		d.push(Patch{Op: PatchAppendChildren, OldIdx: idx, Nodes: next[len(prev):]})
	case len(next) < len(prev):
		d.push(Patch{Op: PatchTruncateChildren, OldIdx: idx, Count: len(next)})
	}
}

// placement is a new child that is not stationary: either an existing old
// child to move or a new node to insert.
type placement struct {
	move   bool
	oldIdx uint32
	node   *VNode
}

// diffKeyedChildren matches children by key, keeps the longest increasing
// subsequence of matched children in place and expresses every other move or
// insert relative to a stationary sibling.
func (d *differ) diffKeyedChildren(idx uint32, prev, next []*VNode, prevKeys, nextKeys []*childKey) {
	oldIdx := make([]uint32, len(prev))
	childIdx := idx + 1
	for i, c := range prev {
		oldIdx[i] = childIdx
		childIdx += d.sizes.size(c)
	}

	wanted := make(map[childKey]bool, len(next))
	for _, k := range nextKeys {
		if k != nil {
			wanted[*k] = true
		}
	}

	// Old children whose key survives are matched by key. The rest (unkeyed,
	// or keyed with a key that is gone) can be reused in order by unkeyed
	// new children.
	byKey := make(map[childKey]int)
	var pool []int
	for i := range prev {
		k := keyAt(prevKeys, i)
		if k != nil && wanted[*k] {
			if _, dup := byKey[*k]; !dup {
				byKey[*k] = i
				continue
			}
		}
		pool = append(pool, i)
	}

	used := make([]bool, len(prev))
	matchOf := make([]int, len(next))
	for j := range next {
		matchOf[j] = -1
		if k := keyAt(nextKeys, j); k != nil {
			if i, ok := byKey[*k]; ok && !used[i] {
				matchOf[j] = i
				used[i] = true
			}
			continue
		}
		if len(pool) > 0 {
			i := pool[0]
			pool = pool[1:]
			matchOf[j] = i
			used[i] = true
		}
	}

	newPos := make([]int, len(prev))
	var seq []KeyedIndex[int]
	for j, i := range matchOf {
		if i >= 0 {
			newPos[i] = j
		}
	}
	for i := range prev {
		if used[i] {
			seq = append(seq, KeyedIndex[int]{Key: i, NewIndex: newPos[i]})
		}
	}
	stationary := make([]bool, len(prev))
	for _, k := range LongestIncreasingSubsequence(seq) {
		stationary[k.Key] = true
	}

	var removed []uint32
	for i := range prev {
		if !used[i] {
			removed = append(removed, oldIdx[i])
		}
	}
	if len(removed) > 0 {
		d.push(Patch{Op: PatchRemoveChildren, OldIdx: idx, Indices: removed})
	}

	var pending []placement
	for j, i := range matchOf {
		switch {
		case i >= 0 && stationary[i]:
			d.flushBefore(oldIdx[i], pending)
			pending = pending[:0]
		case i >= 0:
			pending = append(pending, placement{move: true, oldIdx: oldIdx[i]})
		default:
			pending = append(pending, placement{node: next[j]})
		}
	}
	d.flushToEnd(idx, pending)

	// Matched pairs are diffed after placement so that a Replace lands on a
	// node that already sits in its final position.
	for i := range prev {
		if used[i] {
			d.diff(prev[i], next[newPos[i]], oldIdx[i])
		}
	}
}

// flushBefore emits runs of inserts and moves anchored on a stationary
// sibling, preserving their order.
func (d *differ) flushBefore(anchor uint32, pending []placement) {
	for _, run := range runs(pending) {
		if run[0].move {
			d.push(Patch{Op: PatchMoveNodesBefore, OldIdx: anchor, Indices: runIndices(run)})
		} else {
			d.push(Patch{Op: PatchInsertBefore, OldIdx: anchor, Nodes: runNodes(run)})
		}
	}
}

// flushToEnd emits the trailing runs that have no stationary sibling after
// them.
func (d *differ) flushToEnd(parent uint32, pending []placement) {
	for _, run := range runs(pending) {
		if run[0].move {
			d.push(Patch{Op: PatchMoveToEndOfSiblings, OldIdx: parent, Indices: runIndices(run)})
		} else {
			d.push(Patch{Op: PatchAppendChildren, OldIdx: parent, Nodes: runNodes(run)})
		}
	}
}

// runs splits pending placements into maximal runs of the same kind.
func runs(pending []placement) [][]placement {
	var out [][]placement
	start := 0
	for i := 1; i <= len(pending); i++ {
		if i == len(pending) || pending[i].move != pending[start].move {
			out = append(out, pending[start:i])
			start = i
		}
	}
	return out
}

func runIndices(run []placement) []uint32 {
	out := make([]uint32, len(run))
	for i, p := range run {
		out[i] = p.oldIdx
	}
	return out
}

func runNodes(run []placement) []*VNode {
	out := make([]*VNode, len(run))
	for i, p := range run {
		out[i] = p.node
	}
	return out
}

// childKey identifies a child across renders. Explicit keys come from
// VNode.Key. input and textarea elements without one get an implicit key
// from their position among same-tag siblings, so a focused control is
// moved rather than recreated when siblings are inserted before it.
type childKey struct {
	explicit string
	tag      string
	pos      int
}

func isFocusable(v *VNode) bool {
	return v.IsElement() && (v.Tag == "input" || v.Tag == "textarea")
}

// childKeys returns one entry per child, nil for unkeyed children, or nil
// if no child has a key.
func childKeys(kids []*VNode) []*childKey {
	var keys []*childKey
	focusable := make(map[string]int)
	for i, c := range kids {
		var k *childKey
		if isFocusable(c) {
			k = &childKey{tag: c.Tag, pos: focusable[c.Tag]}
			focusable[c.Tag]++
		}
		if c.IsElement() && c.Key != "" {
			k = &childKey{explicit: c.Key}
		}
		if k == nil {
			continue
		}
		if keys == nil {
			keys = make([]*childKey, len(kids))
		}
		keys[i] = k
	}
	return keys
}

func keyAt(keys []*childKey, i int) *childKey {
	if keys == nil {
		return nil
	}
	return keys[i]
}
