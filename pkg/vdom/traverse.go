package vdom

// Traversal indices number every node of a tree in document order: the root
// is 0, and each child's subtree is numbered completely before its next
// sibling. Elements with inner HTML contribute no indexed children, and
// neither do text nodes. The patcher walks real trees with the same rule.

// IndexedChildren returns the children that take part in traversal
// indexing.
func IndexedChildren(v *VNode) []*VNode {
	if !v.IsElement() || v.Special.InnerHTML != nil {
		return nil
	}
	return v.Children
}

// Size returns the number of nodes in the indexed subtree rooted at v.
func Size(v *VNode) uint32 {
	if v == nil {
		return 0
	}
	n := uint32(1)
	for _, c := range IndexedChildren(v) {
		n += Size(c)
	}
	return n
}

// Walk visits v and its indexed descendants in traversal order. Returning
// false from fn stops the walk.
func Walk(v *VNode, fn func(idx uint32, n *VNode) bool) {
	var idx uint32
	walk(v, &idx, fn)
}

func walk(v *VNode, idx *uint32, fn func(uint32, *VNode) bool) bool {
	if !fn(*idx, v) {
		return false
	}
	*idx++
	for _, c := range IndexedChildren(v) {
		if !walk(c, idx, fn) {
			return false
		}
	}
	return true
}

// NodeAt returns the node at traversal index idx, or nil.
func NodeAt(root *VNode, idx uint32) *VNode {
	var found *VNode
	Walk(root, func(i uint32, n *VNode) bool {
		if i == idx {
			found = n
			return false
		}
		return true
	})
	return found
}

// sizeCache memoizes subtree sizes by node pointer. Trees are immutable, so
// a shared subtree has the same size wherever it appears.
type sizeCache map[*VNode]uint32

func (c sizeCache) size(v *VNode) uint32 {
	if n, ok := c[v]; ok {
		return n
	}
	n := uint32(1)
	for _, child := range IndexedChildren(v) {
		n += c.size(child)
	}
	c[v] = n
	return n
}
