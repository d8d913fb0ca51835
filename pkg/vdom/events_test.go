package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vdom/pkg/dom"
)

func TestEventName(t *testing.T) {
	for _, in := range []string{"click", "onclick", "onClick", "CLICK"} {
		if got := NewEventName(in); got != "onclick" {
			t.Errorf("NewEventName(%q) = %q, want onclick", in, got)
		}
	}
	if !EventName("onclick").IsDelegated() || EventName("oninput").IsDelegated() {
		t.Error("IsDelegated wrong")
	}
	if got := EventName("onkeydown").Type(); got != "keydown" {
		t.Errorf("Type() = %q, want keydown", got)
	}
	for _, n := range DelegatedEventNames() {
		if !n.IsDelegated() {
			t.Errorf("%s listed but not delegated", n)
		}
	}
}

func TestToHandler(t *testing.T) {
	var got []string
	e := dom.NewMouseEvent("click", 3, 4)

	ToHandler(func() { got = append(got, "noargs") }).Call(e.Event)
	ToHandler(func(m *dom.MouseEvent) {
		got = append(got, "mouse")
		if m.ClientX != 3 || m.ClientY != 4 {
			t.Errorf("mouse payload = %d,%d", m.ClientX, m.ClientY)
		}
	}).Call(e.Event)
	ToHandler(func(ev *dom.Event) { got = append(got, ev.Type) }).Call(e.Event)

	if diff := cmp.Diff([]string{"noargs", "mouse", "click"}, got); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}

	if s := ToHandler(Opaque(func(*dom.Event) {})).Signature(); s != SignatureOpaque {
		t.Errorf("Signature() = %s, want Opaque", s)
	}
}

func TestToHandlerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ToHandler(int) did not panic")
		}
	}()
	ToHandler(1)
}

func TestEventsNames(t *testing.T) {
	evs := Div(OnScroll(func() {}), OnClick(func() {}), OnBlur(func() {})).Events
	want := []EventName{"onblur", "onclick", "onscroll"}
	if diff := cmp.Diff(want, evs.Names()); diff != "" {
		t.Errorf("Names() (-want +got):\n%s", diff)
	}
}
