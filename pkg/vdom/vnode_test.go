package vdom

import (
	"testing"

	"github.com/vango-dev/vdom/pkg/dom"
)

func TestAttributeValue(t *testing.T) {
	s := String("x")
	if v, ok := s.AsString(); !ok || v != "x" {
		t.Errorf("AsString() = %q, %v", v, ok)
	}
	if _, ok := s.AsBool(); ok {
		t.Error("string value reported as bool")
	}

	b := Bool(true)
	if v, ok := b.AsBool(); !ok || !v {
		t.Errorf("AsBool() = %v, %v", v, ok)
	}
	if b.Text() != "" {
		t.Errorf("Text() = %q, want empty", b.Text())
	}

	if String("").Equal(Bool(false)) {
		t.Error(`String("") equal to Bool(false)`)
	}
	if !Bool(false).Equal(Bool(false)) {
		t.Error("Bool(false) not equal to itself")
	}
}

func TestEqual(t *testing.T) {
	noop := func() {}
	hook := func(*dom.Node) {}

	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"same text", Text("a"), Text("a"), true},
		{"different text", Text("a"), Text("b"), false},
		{"text vs element", Text("a"), Span(), false},
		{"nil", nil, Span(), false},
		{"different key", Li(Key(1)), Li(Key(2)), false},
		{"different attr", Div(Class("a")), Div(Class("b")), false},
		{"attr kind", Div(StringAttr("hidden", "")), Div(Hidden()), false},
		{"same handler kind", Div(OnClick(noop)), Div(OnClick(func() {})), true},
		{"different handler kind", Div(OnClick(noop)), Div(OnClick(func(*dom.MouseEvent) {})), false},
		{"hook key", Div(OnCreate("a", hook)), Div(OnCreate("b", hook)), false},
		{"inner html", Div(InnerHTML("x")), Div(InnerHTML("x")), true},
		{"child count", Ul(Li()), Ul(Li(), Li()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHookCallNil(t *testing.T) {
	var h *Hook
	h.Call(nil)
	(&Hook{Key: "k"}).Call(nil)
}

func TestPatchString(t *testing.T) {
	tests := []struct {
		patch Patch
		want  string
	}{
		{Patch{Op: PatchChangeText, OldIdx: 2, NewNode: Text("hi")}, `ChangeText@2 "hi"`},
		{Patch{Op: PatchRemoveChildren, OldIdx: 0, Indices: []uint32{1, 4}}, `RemoveChildren@0 [1 4]`},
		{Patch{Op: PatchReplace, OldIdx: 3, NewNode: Li(Key("a"))}, `Replace@3 <li key="a">`},
		{Patch{Op: PatchTruncateChildren, OldIdx: 1, Count: 0}, `TruncateChildren@1 0`},
	}
	for _, tt := range tests {
		if got := tt.patch.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if PatchOp(0xff).String() != "Unknown" {
		t.Error("unknown op not reported as Unknown")
	}
}
