package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/render"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// RenderToString returns the compact markup of node.
func RenderToString(node *vdom.VNode) string {
	return render.String(node)
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(tb testing.TB, node *vdom.VNode, expected string) {
	tb.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		tb.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(tb testing.TB, node *vdom.VNode, unexpected string) {
	tb.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		tb.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(tb testing.TB, node *vdom.VNode, tag string) {
	tb.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		tb.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that some element in the output carries
// attr="value".
func ExpectAttribute(tb testing.TB, node *vdom.VNode, attr, value string) {
	tb.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		tb.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ExpectConverged fails the test unless the real tree rooted at root
// serializes exactly like v.
func ExpectConverged(tb testing.TB, root *dom.Node, v *vdom.VNode) {
	tb.Helper()
	got, want := render.DOMString(root), render.String(v)
	if got != want {
		tb.Fatalf("real tree does not match virtual tree\n got: %s\nwant: %s", truncate(got, 500), truncate(want, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
