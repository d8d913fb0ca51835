package vtest

import (
	"context"
	"testing"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/mount"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Harness is a mounted tree for tests. Construction and every Update check
// that the real tree matches the virtual one.
type Harness struct {
	*mount.Mount
	tb testing.TB
}

// HarnessConfig configures a Harness.
type HarnessConfig struct {
	// Doc is the document nodes are created in. If nil, a new one is used.
	Doc *dom.Document

	// MountOptions are passed to mount.New.
	MountOptions []mount.Option
}

// HarnessOption configures a Harness.
type HarnessOption func(*HarnessConfig)

// WithDocument builds the tree in doc.
func WithDocument(doc *dom.Document) HarnessOption {
	return func(c *HarnessConfig) {
		c.Doc = doc
	}
}

// WithMountOptions passes opts to the underlying mount.
func WithMountOptions(opts ...mount.Option) HarnessOption {
	return func(c *HarnessConfig) {
		c.MountOptions = append(c.MountOptions, opts...)
	}
}

// NewHarness mounts v in a detached root.
//
// Example:
//
//	h := vtest.NewHarness(t, view(0))
//	h.Click(h.ByID("inc"))
//	h.Update(view(1))
func NewHarness(tb testing.TB, v *vdom.VNode, opts ...HarnessOption) *Harness {
	tb.Helper()
	var config HarnessConfig
	for _, opt := range opts {
		opt(&config)
	}
	if config.Doc == nil {
		config.Doc = dom.NewDocument()
	}

	m, err := mount.New(config.Doc, v, config.MountOptions...)
	if err != nil {
		tb.Fatalf("mount: %v", err)
	}
	tb.Cleanup(m.Close)

	h := &Harness{Mount: m, tb: tb}
	ExpectConverged(tb, m.Root(), v)
	return h
}

// Update moves the mount to next and returns the patches that were applied.
func (h *Harness) Update(next *vdom.VNode) []vdom.Patch {
	h.tb.Helper()
	patches := vdom.Diff(h.Current(), next)
	if err := h.Mount.Update(context.Background(), next); err != nil {
		h.tb.Fatalf("update: %v\npatches: %v", err, patches)
	}
	ExpectConverged(h.tb, h.Root(), next)
	return patches
}

// Find returns the first node in document order for which match is true,
// or nil.
func (h *Harness) Find(match func(*dom.Node) bool) *dom.Node {
	var found *dom.Node
	h.Root().Walk(func(n *dom.Node) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// ByID returns the element with the given id attribute. The test fails if
// there is none.
func (h *Harness) ByID(id string) *dom.Node {
	h.tb.Helper()
	n := h.Find(func(n *dom.Node) bool {
		v, ok := n.Attr("id")
		return ok && v == id
	})
	if n == nil {
		h.tb.Fatalf("no element with id %q", id)
	}
	return n
}

// Click dispatches a bubbling click at n.
func (h *Harness) Click(n *dom.Node) {
	n.DispatchEvent(dom.NewMouseEvent("click", 0, 0).Event)
}

// Dispatch dispatches a bubbling event of type typ at n.
func (h *Harness) Dispatch(n *dom.Node, typ string) {
	n.DispatchEvent(dom.NewEvent(typ))
}
