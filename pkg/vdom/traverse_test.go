package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTraversalOrder(t *testing.T) {
	tree := Div(
		Span(B(), Text("x")),
		Div(InnerHTML("<p>ignored</p>")),
		Em(),
	)

	var got []string
	Walk(tree, func(idx uint32, n *VNode) bool {
		got = append(got, describe(n))
		return true
	})
	want := []string{"<div>", "<span>", "<b>", `#text("x")`, "<div>", "<em>"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}

	if n := Size(tree); n != 6 {
		t.Errorf("Size() = %d, want 6", n)
	}
	if n := NodeAt(tree, 5); n == nil || n.Tag != "em" {
		t.Errorf("NodeAt(5) = %v, want <em>", n)
	}
	if n := NodeAt(tree, 6); n != nil {
		t.Errorf("NodeAt(6) = %v, want nil", n)
	}
}

func TestWalkStops(t *testing.T) {
	visited := 0
	Walk(Ul(Li(), Li(), Li()), func(idx uint32, n *VNode) bool {
		visited++
		return idx < 1
	})
	if visited != 2 {
		t.Errorf("visited %d nodes, want 2", visited)
	}
}

func TestSizeCacheSharedSubtree(t *testing.T) {
	shared := Ul(Li(), Li())
	tree := Div(shared, shared)
	c := make(sizeCache)
	if n := c.size(tree); n != 7 {
		t.Errorf("size = %d, want 7", n)
	}
	if n := Size(tree); n != 7 {
		t.Errorf("Size() = %d, want 7", n)
	}
	if Size(nil) != 0 {
		t.Error("Size(nil) != 0")
	}
}
