// Package patch builds real trees from virtual ones and applies the patches
// produced by vdom.Diff.
//
// Create marks every node it builds as managed. Apply resolves patch
// indices by walking managed nodes in the same document order vdom uses,
// skipping the comment separators Create places between adjacent text
// nodes and anything inserted through inner HTML. All indices are resolved
// before the first mutation, so moves and removals never shift the nodes a
// later patch refers to.
//
// After the patches, Apply walks the real tree in lockstep with the new
// virtual tree and synchronizes event bindings and on-remove hooks, so the
// handlers invoked on the next event are always the latest ones.
package patch
