package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func (n *Node) canHaveChildren() bool {
	return n.typ == ElementNode || n.typ == FragmentNode
}

func (n *Node) checkInsert(op string, child *Node) error {
	if !n.canHaveChildren() {
		return mutationErr(op, n, ErrHierarchy)
	}
	if child == nil || child.typ == FragmentNode || child.Contains(n) {
		return mutationErr(op, n, ErrHierarchy)
	}
	return nil
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.IndexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// AppendChild adds child as the last child of n. If child is already in the
// tree it is moved.
func (n *Node) AppendChild(child *Node) error {
	if err := n.checkInsert("appendChild", child); err != nil {
		return err
	}
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// InsertBefore inserts child immediately before ref. A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) error {
	if ref == nil {
		return n.AppendChild(child)
	}
	if err := n.checkInsert("insertBefore", child); err != nil {
		return err
	}
	if ref.parent != n {
		return mutationErr("insertBefore", n, ErrNotChild)
	}
	if child == ref {
		return nil
	}
	child.detach()
	i := n.IndexOf(ref)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		return mutationErr("removeChild", n, ErrNotChild)
	}
	child.detach()
	return nil
}

// ReplaceWith puts other where n is. n ends up detached.
func (n *Node) ReplaceWith(other *Node) error {
	p := n.parent
	if p == nil {
		return mutationErr("replaceWith", n, ErrNoParent)
	}
	if other == n {
		return nil
	}
	if err := p.checkInsert("replaceWith", other); err != nil {
		return err
	}
	other.detach()
	i := p.IndexOf(n)
	p.children[i] = other
	other.parent = p
	n.parent = nil
	return nil
}

// RemoveChildren detaches every child of n.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Normalize merges adjacent text nodes and drops empty ones, the way a
// browser does when asked to normalize a subtree.
func (n *Node) Normalize() {
	var out []*Node
	for _, c := range n.children {
		if c.typ == TextNode {
			if c.data == "" {
				c.parent = nil
				continue
			}
			if k := len(out); k > 0 && out[k-1].typ == TextNode {
				out[k-1].data += c.data
				c.parent = nil
				continue
			}
		}
		out = append(out, c)
	}
	n.children = out
	for _, c := range n.children {
		if c.typ == ElementNode {
			c.Normalize()
		}
	}
}

// SetInnerHTML replaces the children of n with nodes parsed from markup.
func (n *Node) SetInnerHTML(markup string) error {
	if n.typ != ElementNode {
		return mutationErr("setInnerHTML", n, ErrHierarchy)
	}
	n.RemoveChildren()
	if markup == "" {
		return nil
	}
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     n.tag,
		DataAtom: atom.Lookup([]byte(n.tag)),
	}
	if n.ns == SVGNamespace {
		context.Namespace = "svg"
	}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return mutationErr("setInnerHTML", n, fmt.Errorf("parse: %w", err))
	}
	for _, p := range parsed {
		if c := n.doc.fromHTML(p); c != nil {
			if err := n.AppendChild(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// fromHTML converts a parsed html.Node into a Node owned by d.
func (d *Document) fromHTML(h *html.Node) *Node {
	var n *Node
	switch h.Type {
	case html.ElementNode:
		ns := HTMLNamespace
		if h.Namespace == "svg" {
			ns = SVGNamespace
		}
		n = d.CreateElementNS(ns, h.Data)
		for _, a := range h.Attr {
			n.attrs = append(n.attrs, Attribute{Name: a.Key, Value: a.Val})
		}
	case html.TextNode:
		return d.CreateTextNode(h.Data)
	case html.CommentNode:
		return d.CreateComment(h.Data)
	default:
		return nil
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if child := d.fromHTML(c); child != nil {
			child.parent = n
			n.children = append(n.children, child)
		}
	}
	return n
}
