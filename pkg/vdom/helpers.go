package vdom

import (
	"fmt"

	"github.com/vango-dev/vdom/pkg/dom"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Key sets the reconciliation key. Children with keys are matched by key
// rather than by position. Non-string keys are formatted with %v.
func Key(key any) Attr {
	return attr("key", fmt.Sprintf("%v", key))
}

// Special configures the non-markup behavior of an element. It is passed
// to element factories like any other argument.
type Special func(s *SpecialAttributes)

// OnCreate registers fn to run after the element's real node is built.
// Patching an existing node calls fn again only if key differs from the key
// the node was last rendered with.
func OnCreate(key string, fn func(n *dom.Node)) Special {
	return func(s *SpecialAttributes) {
		s.OnCreate = &Hook{Key: key, Fn: fn}
	}
}

// OnRemove registers fn to run when the element's real node leaves the
// tree.
func OnRemove(key string, fn func(n *dom.Node)) Special {
	return func(s *SpecialAttributes) {
		s.OnRemove = &Hook{Key: key, Fn: fn}
	}
}

// InnerHTML sets raw markup that replaces the element's children. The
// markup is not escaped.
func InnerHTML(html string) Special {
	return func(s *SpecialAttributes) {
		s.InnerHTML = &html
	}
}
