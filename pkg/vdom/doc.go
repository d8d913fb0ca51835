// Package vdom provides the virtual tree, the differ and the patch model of
// the reconciliation engine.
//
// A VNode tree is an immutable snapshot of the desired UI. Diff compares
// two snapshots and returns the patches that turn a real tree built from
// the first into one matching the second. Patches address nodes by their
// traversal index in the old tree, the document-order position described
// on IndexedChildren; package patch resolves those indices against a real
// tree with the same rule.
//
// # Core Types
//
// VNode is either an element (tag, attributes, event bindings, children,
// key and SpecialAttributes) or a text node. AttributeValue holds a string
// or a boolean. EventHandler is a closed set of callback shapes: NoArgs,
// MouseHandler and Opaque.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Ul(Class("todos"),
//	    Li(Key("a"), Text("first"), OnClick(func() { ... })),
//	    Li(Key("b"), Text("second")),
//	)
//
// # Diffing
//
// Children are matched by position unless any child carries a key (or is
// an input or textarea, which are keyed implicitly). Keyed children that
// keep their relative order, found with LongestIncreasingSubsequence, stay
// in place; all other moves and inserts are anchored on those stationary
// siblings.
package vdom
