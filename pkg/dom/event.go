package dom

// Event is dispatched to listeners on a node and, if it bubbles, on each of
// the node's ancestors.
type Event struct {
	Type          string
	Bubbles       bool
	Target        *Node
	CurrentTarget *Node

	stopped          bool
	defaultPrevented bool
	mouse            *MouseEvent
}

// NewEvent creates a bubbling event of the given type, e.g. "click".
func NewEvent(typ string) *Event {
	return &Event{Type: typ, Bubbles: true}
}

// StopPropagation prevents the event from reaching further nodes.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Mouse returns the mouse payload of the event. Events that were not created
// with NewMouseEvent get a zero-valued payload sharing the same propagation
// state.
func (e *Event) Mouse() *MouseEvent {
	if e.mouse != nil {
		return e.mouse
	}
	return &MouseEvent{Event: e}
}

// MouseEvent is an event carrying pointer coordinates.
type MouseEvent struct {
	*Event
	ClientX int
	ClientY int
	Button  int
}

// NewMouseEvent creates a bubbling mouse event at the given coordinates.
func NewMouseEvent(typ string, x, y int) *MouseEvent {
	m := &MouseEvent{Event: NewEvent(typ), ClientX: x, ClientY: y}
	m.Event.mouse = m
	return m
}

// Listener is a callback attached to a node.
type Listener func(e *Event)

// ListenerHandle identifies one attachment so it can be removed later.
type ListenerHandle struct {
	node    *Node
	typ     string
	fn      Listener
	removed bool
}

// Node returns the node the listener is attached to.
func (h *ListenerHandle) Node() *Node { return h.node }

// Type returns the event type the listener was attached for.
func (h *ListenerHandle) Type() string { return h.typ }

// Detach removes the listener from its node. Detaching twice is a no-op.
func (h *ListenerHandle) Detach() {
	if h == nil || h.removed {
		return
	}
	h.node.RemoveEventListener(h)
}

// AddEventListener attaches fn for events of type typ.
func (n *Node) AddEventListener(typ string, fn Listener) *ListenerHandle {
	h := &ListenerHandle{node: n, typ: typ, fn: fn}
	if n.handlers == nil {
		n.handlers = make(map[string][]*ListenerHandle)
	}
	n.handlers[typ] = append(n.handlers[typ], h)
	return h
}

// RemoveEventListener detaches a listener previously added to n.
func (n *Node) RemoveEventListener(h *ListenerHandle) {
	if h == nil || h.node != n {
		return
	}
	list := n.handlers[h.typ]
	for i, l := range list {
		if l == h {
			n.handlers[h.typ] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(n.handlers[h.typ]) == 0 {
		delete(n.handlers, h.typ)
	}
	h.removed = true
}

// ListenerCount returns how many listeners are attached to n for typ.
func (n *Node) ListenerCount(typ string) int {
	return len(n.handlers[typ])
}

// DispatchEvent delivers e to n and then, if e bubbles, to each ancestor
// until propagation is stopped.
func (n *Node) DispatchEvent(e *Event) {
	if e.Target == nil {
		e.Target = n
	}
	for cur := n; cur != nil; cur = cur.parent {
		e.CurrentTarget = cur
		list := cur.handlers[e.Type]
		snapshot := make([]*ListenerHandle, len(list))
		copy(snapshot, list)
		for _, h := range snapshot {
			if !h.removed {
				h.fn(e)
			}
		}
		if e.stopped || !e.Bubbles {
			break
		}
	}
	e.CurrentTarget = nil
}
