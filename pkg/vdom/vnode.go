package vdom

import (
	"github.com/vango-dev/vdom/pkg/dom"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <div>, <button>, etc.
	KindText                // Plain text node
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node. A tree of VNodes is treated as immutable
// once built; old and new trees may share subtrees.
type VNode struct {
	Kind     Kind                      // Node type
	Tag      string                    // Element tag name (e.g., "div")
	Attrs    map[string]AttributeValue // Element attributes
	Events   Events                    // Event bindings
	Children []*VNode                  // Child nodes
	Key      string                    // Reconciliation key
	Special  SpecialAttributes         // Hooks and raw inner HTML
	Text     string                    // For KindText
}

// IsElement reports whether v is an element node.
func (v *VNode) IsElement() bool { return v != nil && v.Kind == KindElement }

// IsText reports whether v is a text node.
func (v *VNode) IsText() bool { return v != nil && v.Kind == KindText }

// Attr returns the named attribute.
func (v *VNode) Attr(name string) (AttributeValue, bool) {
	if v == nil {
		return AttributeValue{}, false
	}
	a, ok := v.Attrs[name]
	return a, ok
}

// HasEvents reports whether the element has at least one event binding.
func (v *VNode) HasEvents() bool {
	return v.IsElement() && len(v.Events) > 0
}

// AttributeValue is either a string or a boolean. Booleans render as
// attribute presence.
type AttributeValue struct {
	str    string
	b      bool
	isBool bool
}

// String creates a string attribute value.
func String(s string) AttributeValue { return AttributeValue{str: s} }

// Bool creates a boolean attribute value.
func Bool(b bool) AttributeValue { return AttributeValue{b: b, isBool: true} }

// IsBool reports whether the value is a boolean.
func (a AttributeValue) IsBool() bool { return a.isBool }

// AsString returns the string payload.
func (a AttributeValue) AsString() (string, bool) {
	if a.isBool {
		return "", false
	}
	return a.str, true
}

// AsBool returns the boolean payload.
func (a AttributeValue) AsBool() (bool, bool) {
	if !a.isBool {
		return false, false
	}
	return a.b, true
}

// Text returns the value as it would appear in markup. Booleans yield ""
// when true; callers must treat a false boolean as absence.
func (a AttributeValue) Text() string {
	if a.isBool {
		return ""
	}
	return a.str
}

// Equal reports whether a and b hold the same kind and payload.
func (a AttributeValue) Equal(b AttributeValue) bool {
	return a == b
}

// GoString renders the value for debugging.
func (a AttributeValue) GoString() string {
	if a.isBool {
		if a.b {
			return "true"
		}
		return "false"
	}
	return `"` + a.str + `"`
}

// SpecialAttributes hold behavior that is not part of the markup.
type SpecialAttributes struct {
	// OnCreate runs once the real node and its children are built, or when an
	// existing node is patched with a different OnCreate key.
	OnCreate *Hook

	// OnRemove runs when the real node leaves the tree, or when its key
	// changes or disappears on an existing node.
	OnRemove *Hook

	// InnerHTML replaces child rendering entirely when non-nil.
	InnerHTML *string
}

// Hook is a keyed callback receiving the real node.
type Hook struct {
	Key string
	Fn  func(n *dom.Node)
}

// Call invokes the hook if it has a callback.
func (h *Hook) Call(n *dom.Node) {
	if h != nil && h.Fn != nil {
		h.Fn(n)
	}
}

func hookKey(h *Hook) (string, bool) {
	if h == nil {
		return "", false
	}
	return h.Key, true
}

func innerHTML(s SpecialAttributes) (string, bool) {
	if s.InnerHTML == nil {
		return "", false
	}
	return *s.InnerHTML, true
}

// Equal reports whether two trees are structurally equal. Event handlers are
// compared by name and signature kind only.
func Equal(a, b *VNode) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindText {
		return a.Text == b.Text
	}
	if a.Tag != b.Tag || a.Key != b.Key || len(a.Attrs) != len(b.Attrs) || len(a.Events) != len(b.Events) {
		return false
	}
	for k, av := range a.Attrs {
		if bv, ok := b.Attrs[k]; !ok || !av.Equal(bv) {
			return false
		}
	}
	for name, ah := range a.Events {
		bh, ok := b.Events[name]
		if !ok || ah.Signature() != bh.Signature() {
			return false
		}
	}
	ak, aok := hookKey(a.Special.OnCreate)
	bk, bok := hookKey(b.Special.OnCreate)
	if ak != bk || aok != bok {
		return false
	}
	ak, aok = hookKey(a.Special.OnRemove)
	bk, bok = hookKey(b.Special.OnRemove)
	if ak != bk || aok != bok {
		return false
	}
	ah, aok := innerHTML(a.Special)
	bh, bok := innerHTML(b.Special)
	if ah != bh || aok != bok {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
