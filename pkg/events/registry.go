package events

import (
	"fmt"
	"sync"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// ID identifies a real node that has event bindings. It is stored on the
// node under IDProperty and is independent of the node's tree position, so
// reordering siblings never invalidates it.
type ID uint64

// IDProperty is the node property holding a node's ID.
const IDProperty = "__events_id__"

// entry holds one node's bindings. listeners is only populated for
// non-delegated events.
type entry struct {
	handlers  map[vdom.EventName]vdom.EventHandler
	listeners map[vdom.EventName]*dom.ListenerHandle
}

// Registry maps node IDs to their current handlers. There is one registry per
// mounted tree. Handlers are looked up at dispatch time, so overwriting an
// entry takes effect without touching any listener.
//
// The registry is safe for concurrent use; handlers are always invoked
// outside the lock.
type Registry struct {
	mu       sync.RWMutex
	nodes    map[ID]*entry
	lastID   ID
	observer func(name vdom.EventName, delegated bool)
}

// Option configures a Registry.
type Option func(*Registry)

// WithDispatchObserver sets a callback run before each handler invocation.
func WithDispatchObserver(fn func(name vdom.EventName, delegated bool)) Option {
	return func(r *Registry) {
		r.observer = fn
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{nodes: make(map[ID]*entry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NextID allocates a fresh ID.
func (r *Registry) NextID() ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	return r.lastID
}

// Insert records handler for (id, name). listener must be non-nil exactly
// when name is not delegated; anything else is a programming error and
// panics.
func (r *Registry) Insert(id ID, name vdom.EventName, handler vdom.EventHandler, listener *dom.ListenerHandle) {
	if name.IsDelegated() != (listener == nil) {
		panic(fmt.Sprintf("events: %s delegated=%t but listener supplied=%t", name, name.IsDelegated(), listener != nil))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.nodes[id]
	if e == nil {
		e = &entry{handlers: make(map[vdom.EventName]vdom.EventHandler)}
		r.nodes[id] = e
	}
	if old := e.listeners[name]; old != nil && old != listener {
		old.Detach()
	}
	e.handlers[name] = handler
	if listener != nil {
		if e.listeners == nil {
			e.listeners = make(map[vdom.EventName]*dom.ListenerHandle)
		}
		e.listeners[name] = listener
	}
}

// Overwrite replaces the handler for an existing (id, name) entry. A missing
// entry means the registry and the tree disagree, which panics.
func (r *Registry) Overwrite(id ID, name vdom.EventName, handler vdom.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.nodes[id]
	if e == nil {
		panic(fmt.Sprintf("events: overwrite %s on unknown id %d", name, id))
	}
	if _, ok := e.handlers[name]; !ok {
		panic(fmt.Sprintf("events: overwrite missing %s on id %d", name, id))
	}
	e.handlers[name] = handler
}

// Move relocates every binding of from to to. It is a no-op if from has no
// bindings. Existing bindings of to are replaced.
func (r *Registry) Move(from, to ID) {
	if from == to {
		return
	}
	r.mu.Lock()
	e := r.nodes[from]
	if e == nil {
		r.mu.Unlock()
		return
	}
	delete(r.nodes, from)
	prev := r.nodes[to]
	r.nodes[to] = e
	r.mu.Unlock()

	if prev != nil {
		detachAll(prev)
	}
}

// Remove forgets the (id, name) binding and detaches its listener, if any.
func (r *Registry) Remove(id ID, name vdom.EventName) {
	r.mu.Lock()
	e := r.nodes[id]
	if e == nil {
		r.mu.Unlock()
		return
	}
	delete(e.handlers, name)
	l := e.listeners[name]
	delete(e.listeners, name)
	if len(e.handlers) == 0 {
		delete(r.nodes, id)
	}
	r.mu.Unlock()

	l.Detach()
}

// RemoveAll forgets every binding of id and detaches its listeners.
func (r *Registry) RemoveAll(id ID) {
	r.mu.Lock()
	e := r.nodes[id]
	delete(r.nodes, id)
	r.mu.Unlock()

	if e != nil {
		detachAll(e)
	}
}

func detachAll(e *entry) {
	for _, l := range e.listeners {
		l.Detach()
	}
}

// Lookup returns the handler bound to (id, name).
func (r *Registry) Lookup(id ID, name vdom.EventName) (vdom.EventHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e := r.nodes[id]
	if e == nil {
		return nil, false
	}
	h, ok := e.handlers[name]
	return h, ok
}

// Has reports whether id has any bindings.
func (r *Registry) Has(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.nodes[id]
	return ok
}

// Names returns the event names bound to id.
func (r *Registry) Names(id ID) []vdom.EventName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e := r.nodes[id]
	if e == nil {
		return nil
	}
	out := make(vdom.Events, len(e.handlers))
	for n, h := range e.handlers {
		out[n] = h
	}
	return out.Names()
}

// Len returns the number of IDs with at least one binding.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// invoke looks up and calls the handler for (id, name). It reports whether a
// handler ran.
func (r *Registry) invoke(id ID, name vdom.EventName, e *dom.Event, delegated bool) bool {
	h, ok := r.Lookup(id, name)
	if !ok {
		return false
	}
	if r.observer != nil {
		r.observer(name, delegated)
	}
	h.Call(e)
	return true
}
