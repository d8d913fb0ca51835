package vdom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vango-dev/vdom/pkg/dom"
)

// EventName is a normalized event identifier such as "onclick".
type EventName string

// NewEventName normalizes name to its lower-case "on"-prefixed form.
// "click", "onclick" and "onClick" all yield "onclick".
func NewEventName(name string) EventName {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, "on") {
		name = "on" + name
	}
	return EventName(name)
}

// delegatedEvents are handled by one listener on the mount root plus a
// registry lookup per bubble step. Everything else is attached per node.
var delegatedEvents = map[EventName]bool{
	"onclick":       true,
	"ondblclick":    true,
	"onmousedown":   true,
	"onmouseup":     true,
	"oncontextmenu": true,
	"onkeydown":     true,
	"onkeyup":       true,
	"onkeypress":    true,
	"onpointerdown": true,
	"onpointerup":   true,
}

// IsDelegated reports whether the event is dispatched through the root
// listener instead of a per-node listener.
func (n EventName) IsDelegated() bool {
	return delegatedEvents[n]
}

// Type returns the name without the "on" prefix, as used by listeners.
func (n EventName) Type() string {
	return strings.TrimPrefix(string(n), "on")
}

// DelegatedEventNames returns the delegated event names in a stable order.
func DelegatedEventNames() []EventName {
	return []EventName{
		"onclick", "oncontextmenu", "ondblclick",
		"onkeydown", "onkeypress", "onkeyup",
		"onmousedown", "onmouseup",
		"onpointerdown", "onpointerup",
	}
}

// Signature identifies the payload an EventHandler expects.
type Signature uint8

const (
	SignatureNoArgs Signature = iota + 1 // func()
	SignatureMouse                       // func(*dom.MouseEvent)
	SignatureOpaque                      // func(*dom.Event)
)

// String returns the string representation of the Signature.
func (s Signature) String() string {
	switch s {
	case SignatureNoArgs:
		return "NoArgs"
	case SignatureMouse:
		return "Mouse"
	case SignatureOpaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}

// EventHandler is a callback bound to an event. The set of implementations
// is closed: NoArgs, MouseHandler and Opaque.
type EventHandler interface {
	// Call invokes the handler with the dispatched event.
	Call(e *dom.Event)
	// Signature reports which payload the handler expects.
	Signature() Signature
}

// NoArgs is a handler that ignores the event payload.
type NoArgs func()

// Call implements EventHandler.
func (h NoArgs) Call(*dom.Event) { h() }

// Signature implements EventHandler.
func (NoArgs) Signature() Signature { return SignatureNoArgs }

// MouseHandler receives the mouse payload. Calling StopPropagation on it
// stops delegated bubbling.
type MouseHandler func(e *dom.MouseEvent)

// Call implements EventHandler.
func (h MouseHandler) Call(e *dom.Event) { h(e.Mouse()) }

// Signature implements EventHandler.
func (MouseHandler) Signature() Signature { return SignatureMouse }

// Opaque receives the raw event for payloads the engine does not model.
type Opaque func(e *dom.Event)

// Call implements EventHandler.
func (h Opaque) Call(e *dom.Event) { h(e) }

// Signature implements EventHandler.
func (Opaque) Signature() Signature { return SignatureOpaque }

// ToHandler converts a function value into an EventHandler. It accepts
// func(), func(*dom.MouseEvent), func(*dom.Event) and existing handlers.
// Other values panic; handlers are wired by code, not by input.
func ToHandler(fn any) EventHandler {
	switch h := fn.(type) {
	case EventHandler:
		return h
	case func():
		return NoArgs(h)
	case func(*dom.MouseEvent):
		return MouseHandler(h)
	case func(*dom.Event):
		return Opaque(h)
	default:
		panic(fmt.Sprintf("vdom: unsupported event handler type %T", fn))
	}
}

// Events maps event names to handlers.
type Events map[EventName]EventHandler

// Names returns the event names in sorted order.
func (e Events) Names() []EventName {
	names := make([]EventName, 0, len(e))
	for n := range e {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// EventBinding attaches a handler to an element under construction.
type EventBinding struct {
	Name    EventName
	Handler EventHandler
}

// On binds handler to an arbitrary event name.
func On(name string, handler any) EventBinding {
	return EventBinding{Name: NewEventName(name), Handler: ToHandler(handler)}
}

// Mouse events

// OnClick handles click events.
func OnClick(handler any) EventBinding { return On("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventBinding { return On("dblclick", handler) }

// OnMouseDown handles mousedown events.
func OnMouseDown(handler any) EventBinding { return On("mousedown", handler) }

// OnMouseUp handles mouseup events.
func OnMouseUp(handler any) EventBinding { return On("mouseup", handler) }

// OnMouseMove handles mousemove events.
func OnMouseMove(handler any) EventBinding { return On("mousemove", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) EventBinding { return On("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) EventBinding { return On("mouseleave", handler) }

// OnContextMenu handles contextmenu (right-click) events.
func OnContextMenu(handler any) EventBinding { return On("contextmenu", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventBinding { return On("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) EventBinding { return On("keyup", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventBinding { return On("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) EventBinding { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventBinding { return On("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventBinding { return On("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventBinding { return On("blur", handler) }

// Pointer events

// OnPointerDown handles pointerdown events.
func OnPointerDown(handler any) EventBinding { return On("pointerdown", handler) }

// OnPointerUp handles pointerup events.
func OnPointerUp(handler any) EventBinding { return On("pointerup", handler) }

// OnScroll handles scroll events.
func OnScroll(handler any) EventBinding { return On("scroll", handler) }
