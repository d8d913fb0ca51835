package patch

import (
	"fmt"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/events"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Node properties used to recognise engine-owned nodes.
const (
	// ManagedProperty marks nodes built by Create. Nodes without it (inner
	// HTML content, nodes added by third-party code) are skipped when
	// resolving indices.
	ManagedProperty = "__vdom_managed__"

	// OnRemoveProperty holds the *vdom.Hook to run when the node leaves
	// the tree.
	OnRemoveProperty = "__vdom_on_remove__"

	// SeparatorData is the text of the comment placed between two adjacent
	// text nodes so that they stay distinct after serialization.
	SeparatorData = "ptns"

	separatorProperty = "__vdom_separator__"
)

// IsManaged reports whether n was built by Create.
func IsManaged(n *dom.Node) bool {
	_, ok := n.Property(ManagedProperty)
	return ok
}

// IsSeparator reports whether n is a text separator comment.
func IsSeparator(n *dom.Node) bool {
	if n.Type() != dom.CommentNode {
		return false
	}
	_, ok := n.Property(separatorProperty)
	return ok
}

// ManagedChildren returns n's children that carry traversal indices, in
// order.
func ManagedChildren(n *dom.Node) []*dom.Node {
	var out []*dom.Node
	for _, c := range n.Children() {
		if IsManaged(c) && !IsSeparator(c) {
			out = append(out, c)
		}
	}
	return out
}

// locate maps each wanted traversal index to its real node with a single
// depth-first walk. A wanted index that does not exist means the patches
// and the tree disagree, which panics.
func locate(root *dom.Node, want map[uint32]bool) map[uint32]*dom.Node {
	found := make(map[uint32]*dom.Node, len(want))
	var idx uint32
	var visit func(n *dom.Node) bool
	visit = func(n *dom.Node) bool {
		if want[idx] {
			found[idx] = n
			if len(found) == len(want) {
				return false
			}
		}
		idx++
		if n.Type() != dom.ElementNode {
			return true
		}
		for _, c := range ManagedChildren(n) {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	if len(want) > 0 {
		visit(root)
	}
	for i := range want {
		if _, ok := found[i]; !ok {
			panic(fmt.Sprintf("vdom: patch index %d not found in real tree of %d nodes", i, idx))
		}
	}
	return found
}

// fixSeparators makes parent's separators match its text runs: exactly one
// separator between each pair of adjacent text children and none anywhere
// else.
func fixSeparators(parent *dom.Node) {
	kids := parent.Children()
	var (
		prevText bool
		sepKept  bool
	)
	for i, c := range kids {
		if IsSeparator(c) {
			if prevText && !sepKept && nextIsText(kids[i+1:]) {
				sepKept = true
				continue
			}
			mustMutate(parent.RemoveChild(c))
			continue
		}
		isText := c.Type() == dom.TextNode
		if isText && prevText && !sepKept {
			mustMutate(parent.InsertBefore(newSeparator(parent.OwnerDocument()), c))
		}
		prevText = isText
		sepKept = false
	}
}

// nextIsText reports whether the first non-separator node in rest is text.
func nextIsText(rest []*dom.Node) bool {
	for _, n := range rest {
		if IsSeparator(n) {
			continue
		}
		return n.Type() == dom.TextNode
	}
	return false
}

// mustMutate panics on a separator mutation the tree rejected. Separators
// are only placed among a node's own children, so a failure means the tree
// is corrupt.
func mustMutate(err error) {
	if err != nil {
		panic(fmt.Sprintf("vdom: separator mutation failed: %v", err))
	}
}

func newSeparator(doc *dom.Document) *dom.Node {
	c := doc.CreateComment(SeparatorData)
	c.SetProperty(separatorProperty, true)
	return c
}

// teardown runs the stored on-remove hooks of n's subtree and releases its
// event bindings. It is called before the subtree is detached.
func teardown(n *dom.Node, reg *events.Registry) {
	n.Walk(func(c *dom.Node) bool {
		if c.Type() != dom.ElementNode || !IsManaged(c) {
			return true
		}
		if h, ok := c.Property(OnRemoveProperty); ok {
			if hook, ok := h.(*vdom.Hook); ok {
				hook.Call(c)
			}
			c.DeleteProperty(OnRemoveProperty)
		}
		reg.UnbindAll(c)
		return true
	})
}
