package events

import (
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// IDOf returns the ID stored on n.
func IDOf(n *dom.Node) (ID, bool) {
	v, ok := n.Property(IDProperty)
	if !ok {
		return 0, false
	}
	id, ok := v.(ID)
	return id, ok
}

// EnsureID returns n's ID, assigning a fresh one if it has none.
func (r *Registry) EnsureID(n *dom.Node) ID {
	if id, ok := IDOf(n); ok {
		return id
	}
	id := r.NextID()
	n.SetProperty(IDProperty, id)
	return id
}

// Bind inserts or overwrites the binding of name on n. Non-delegated events
// get a listener on n that resolves the node's ID and handler on each
// dispatch, so the listener survives Overwrite and Move.
func (r *Registry) Bind(n *dom.Node, name vdom.EventName, handler vdom.EventHandler) ID {
	id := r.EnsureID(n)
	if _, ok := r.Lookup(id, name); ok {
		r.Overwrite(id, name, handler)
		return id
	}
	var listener *dom.ListenerHandle
	if !name.IsDelegated() {
		listener = n.AddEventListener(name.Type(), func(e *dom.Event) {
			if cur, ok := IDOf(n); ok {
				r.invoke(cur, name, e, false)
			}
		})
	}
	r.Insert(id, name, handler, listener)
	return id
}

// Unbind removes the binding of name on n. The node keeps its ID until it
// has no bindings left.
func (r *Registry) Unbind(n *dom.Node, name vdom.EventName) {
	id, ok := IDOf(n)
	if !ok {
		return
	}
	r.Remove(id, name)
	if !r.Has(id) {
		n.DeleteProperty(IDProperty)
	}
}

// UnbindAll removes every binding on n and clears its ID.
func (r *Registry) UnbindAll(n *dom.Node) {
	id, ok := IDOf(n)
	if !ok {
		return
	}
	r.RemoveAll(id)
	n.DeleteProperty(IDProperty)
}

// Sync makes n's bindings equal to evs: existing names are overwritten with
// the latest handlers, new names are bound and stale names are removed. A
// node left without events loses its ID.
func (r *Registry) Sync(n *dom.Node, evs vdom.Events) {
	if len(evs) == 0 {
		r.UnbindAll(n)
		return
	}
	id := r.EnsureID(n)
	for _, name := range r.Names(id) {
		if _, keep := evs[name]; !keep {
			r.Remove(id, name)
		}
	}
	for _, name := range evs.Names() {
		r.Bind(n, name, evs[name])
	}
}

// Release unbinds n and all of its descendants. It is used when a subtree
// leaves the tree.
func (r *Registry) Release(n *dom.Node) {
	n.Walk(func(c *dom.Node) bool {
		if c.Type() == dom.ElementNode {
			r.UnbindAll(c)
		}
		return true
	})
}
