package vdom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoRoot is returned by ParseHTML when the markup does not contain
// exactly one top-level element.
var ErrNoRoot = errors.New("vdom: markup must have exactly one root element")

// booleanAttrs are parsed as Bool(true) rather than empty strings.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"hidden":          true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"readonly":        true,
	"required":        true,
	"selected":        true,
}

// ParseHTML builds a VNode tree from markup with a single root element, such
// as server-rendered output being adopted as the previous tree. Comments are
// dropped, whitespace-only text between top-level nodes is ignored, and a
// "key" attribute becomes VNode.Key.
func ParseHTML(r io.Reader) (*VNode, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("vdom: parse html: %w", err)
	}

	var root *VNode
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			if root != nil {
				return nil, ErrNoRoot
			}
			root = fromHTML(n)
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				return nil, ErrNoRoot
			}
		}
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// ParseHTMLString is ParseHTML for a string.
func ParseHTMLString(s string) (*VNode, error) {
	return ParseHTML(strings.NewReader(s))
}

func fromHTML(n *html.Node) *VNode {
	if n.Type == html.TextNode {
		return Text(n.Data)
	}

	v := &VNode{
		Kind:  KindElement,
		Tag:   n.Data,
		Attrs: make(map[string]AttributeValue, len(n.Attr)),
	}
	for _, a := range n.Attr {
		switch {
		case a.Key == "key":
			v.Key = a.Val
		case booleanAttrs[a.Key] && (a.Val == "" || a.Val == a.Key):
			v.Attrs[a.Key] = Bool(true)
		default:
			v.Attrs[a.Key] = String(a.Val)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode || c.Type == html.TextNode {
			v.Children = append(v.Children, fromHTML(c))
		}
	}
	return v
}
