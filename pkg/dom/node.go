package dom

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// NodeType identifies the kind of a Node.
type NodeType uint8

const (
	ElementNode  NodeType = iota + 1 // <div>, <svg>, ...
	TextNode                         // Character data
	CommentNode                      // <!-- ... -->
	FragmentNode                     // Parentless container
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Namespaces used when creating elements.
const (
	HTMLNamespace = "http://www.w3.org/1999/xhtml"
	SVGNamespace  = "http://www.w3.org/2000/svg"
)

// Attribute is a single name/value pair on an element.
type Attribute struct {
	Name  string
	Value string
}

// Document creates nodes. Every node remembers the document that created it.
type Document struct {
	nodes atomic.Uint64
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) newNode(t NodeType) *Node {
	d.nodes.Add(1)
	return &Node{typ: t, doc: d}
}

// CreateElement creates an HTML element with the given tag.
func (d *Document) CreateElement(tag string) *Node {
	return d.CreateElementNS(HTMLNamespace, tag)
}

// CreateElementNS creates an element in the given namespace.
func (d *Document) CreateElementNS(ns, tag string) *Node {
	n := d.newNode(ElementNode)
	n.ns = ns
	if ns == HTMLNamespace {
		tag = strings.ToLower(tag)
	}
	n.tag = tag
	return n
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(text string) *Node {
	n := d.newNode(TextNode)
	n.data = text
	return n
}

// CreateComment creates a comment node.
func (d *Document) CreateComment(data string) *Node {
	n := d.newNode(CommentNode)
	n.data = data
	return n
}

// CreateFragment creates a fragment that can hold children but never has a
// parent of its own.
func (d *Document) CreateFragment() *Node {
	return d.newNode(FragmentNode)
}

// NodesCreated reports how many nodes this document has created.
func (d *Document) NodesCreated() uint64 {
	return d.nodes.Load()
}

// Node is a node in the tree.
type Node struct {
	typ      NodeType
	tag      string
	ns       string
	data     string
	attrs    []Attribute
	props    map[string]any
	parent   *Node
	children []*Node
	handlers map[string][]*ListenerHandle
	doc      *Document
}

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag, or "" for other node types.
func (n *Node) Tag() string { return n.tag }

// Namespace returns the element namespace.
func (n *Node) Namespace() string { return n.ns }

// Data returns the text of a text or comment node.
func (n *Node) Data() string { return n.data }

// SetData replaces the text of a text or comment node.
func (n *Node) SetData(s string) { n.data = s }

// OwnerDocument returns the document that created n.
func (n *Node) OwnerDocument() *Document { return n.doc }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// ChildAt returns the i-th child or nil if out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// NextSibling returns the node after n in its parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.ChildAt(n.parent.IndexOf(n) + 1)
}

// PreviousSibling returns the node before n in its parent, or nil.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.ChildAt(n.parent.IndexOf(n) - 1)
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// String returns a short description used in errors and logs.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.typ {
	case ElementNode:
		return "<" + n.tag + ">"
	case TextNode:
		return fmt.Sprintf("#text(%q)", n.data)
	case CommentNode:
		return fmt.Sprintf("#comment(%q)", n.data)
	default:
		return "#" + strings.ToLower(n.typ.String())
	}
}

// Attributes returns the element's attributes sorted by name.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, len(n.attrs))
	copy(out, n.attrs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the named attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttribute sets or replaces an attribute.
func (n *Node) SetAttribute(name, value string) error {
	if n.typ != ElementNode {
		return mutationErr("setAttribute", n, ErrHierarchy)
	}
	if !validAttrName(name) {
		return mutationErr("setAttribute", n, fmt.Errorf("%w: %q", ErrInvalidName, name))
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return nil
		}
	}
	n.attrs = append(n.attrs, Attribute{Name: name, Value: value})
	return nil
}

// RemoveAttribute removes an attribute. Removing a missing attribute is not
// an error.
func (n *Node) RemoveAttribute(name string) error {
	if n.typ != ElementNode {
		return mutationErr("removeAttribute", n, ErrHierarchy)
	}
	if !validAttrName(name) {
		return mutationErr("removeAttribute", n, fmt.Errorf("%w: %q", ErrInvalidName, name))
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return nil
		}
	}
	return nil
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r <= 0x20 || r == 0x7f {
			return false
		}
		switch r {
		case '"', '\'', '>', '/', '=', '<':
			return false
		}
	}
	return true
}

// Property returns an out-of-band property, such as the live value of an
// input.
func (n *Node) Property(name string) (any, bool) {
	v, ok := n.props[name]
	return v, ok
}

// SetProperty sets an out-of-band property.
func (n *Node) SetProperty(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
}

// DeleteProperty removes an out-of-band property.
func (n *Node) DeleteProperty(name string) {
	delete(n.props, name)
}

// Value returns the live "value" property, falling back to the attribute.
func (n *Node) Value() string {
	if v, ok := n.props["value"].(string); ok {
		return v
	}
	v, _ := n.Attr("value")
	return v
}

// Checked returns the live "checked" property, falling back to the
// attribute.
func (n *Node) Checked() bool {
	if v, ok := n.props["checked"].(bool); ok {
		return v
	}
	return n.HasAttribute("checked")
}

// TextContent returns the concatenated text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.data
	}
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.typ == TextNode {
			b.WriteString(c.data)
		}
		return true
	})
	return b.String()
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}
