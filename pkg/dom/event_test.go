package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDispatchBubbles(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("button")
	_ = outer.AppendChild(inner)

	var got []string
	outer.AddEventListener("click", func(e *Event) {
		got = append(got, "outer:"+e.Target.Tag()+":"+e.CurrentTarget.Tag())
	})
	inner.AddEventListener("click", func(e *Event) { got = append(got, "inner") })

	inner.DispatchEvent(NewEvent("click"))
	want := []string{"inner", "outer:button:div"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dispatch (-want +got):\n%s", diff)
	}
}

func TestStopPropagation(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	_ = outer.AppendChild(inner)

	outerCalls := 0
	outer.AddEventListener("click", func(*Event) { outerCalls++ })
	inner.AddEventListener("click", func(e *Event) { e.StopPropagation() })

	inner.DispatchEvent(NewEvent("click"))
	if outerCalls != 0 {
		t.Errorf("outer listener ran %d times after StopPropagation", outerCalls)
	}

	e := NewEvent("focus")
	e.Bubbles = false
	outer.AddEventListener("focus", func(*Event) { outerCalls++ })
	inner.DispatchEvent(e)
	if outerCalls != 0 {
		t.Error("non-bubbling event reached the parent")
	}
}

func TestListenerHandle(t *testing.T) {
	n := NewDocument().CreateElement("input")
	calls := 0
	h := n.AddEventListener("input", func(*Event) { calls++ })
	if h.Node() != n || h.Type() != "input" || n.ListenerCount("input") != 1 {
		t.Fatal("handle does not describe its attachment")
	}

	h.Detach()
	h.Detach()
	var nilHandle *ListenerHandle
	nilHandle.Detach()

	n.DispatchEvent(NewEvent("input"))
	if calls != 0 || n.ListenerCount("input") != 0 {
		t.Errorf("detached listener still active: calls=%d count=%d", calls, n.ListenerCount("input"))
	}
}

func TestListenerRemovedDuringDispatch(t *testing.T) {
	n := NewDocument().CreateElement("div")
	var second *ListenerHandle
	calls := 0
	n.AddEventListener("x", func(*Event) { second.Detach() })
	second = n.AddEventListener("x", func(*Event) { calls++ })

	n.DispatchEvent(NewEvent("x"))
	if calls != 0 {
		t.Error("listener detached mid-dispatch still ran")
	}
}

func TestMouseEvent(t *testing.T) {
	m := NewMouseEvent("click", 10, 20)
	if got := m.Event.Mouse(); got != m {
		t.Error("Mouse() did not return the attached payload")
	}
	plain := NewEvent("click")
	if got := plain.Mouse(); got.Event != plain || got.ClientX != 0 {
		t.Errorf("Mouse() on plain event = %+v", got)
	}
	m.PreventDefault()
	if !m.DefaultPrevented() {
		t.Error("PreventDefault not recorded")
	}
}
