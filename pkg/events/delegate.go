package events

import (
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Delegator owns the single root listener per delegated event kind. When one
// fires it starts at the event target and climbs towards the root, invoking
// the handler registered for each node's ID until a handler stops
// propagation.
type Delegator struct {
	root    *dom.Node
	reg     *Registry
	handles []*dom.ListenerHandle
}

// Delegate attaches the delegated listeners to root.
func Delegate(root *dom.Node, reg *Registry) *Delegator {
	d := &Delegator{root: root, reg: reg}
	for _, name := range vdom.DelegatedEventNames() {
		name := name
		h := root.AddEventListener(name.Type(), func(e *dom.Event) {
			d.bubble(name, e)
		})
		d.handles = append(d.handles, h)
	}
	return d
}

// Root returns the node the listeners are attached to.
func (d *Delegator) Root() *dom.Node { return d.root }

// Close detaches every delegated listener.
func (d *Delegator) Close() {
	for _, h := range d.handles {
		h.Detach()
	}
	d.handles = nil
}

func (d *Delegator) bubble(name vdom.EventName, e *dom.Event) {
	for n := e.Target; n != nil; n = n.Parent() {
		if id, ok := IDOf(n); ok {
			if d.reg.invoke(id, name, e, true) && e.PropagationStopped() {
				return
			}
		}
		if n == d.root {
			return
		}
	}
}
