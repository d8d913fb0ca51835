package mount

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/events"
	"github.com/vango-dev/vdom/pkg/metrics"
	"github.com/vango-dev/vdom/pkg/patch"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// TracerName is the instrumentation name used when no tracer is supplied.
const TracerName = "github.com/vango-dev/vdom/pkg/mount"

// Mount owns a real tree built from a virtual tree and keeps it in sync as
// new virtual trees arrive. It holds the tree's event registry and the
// delegated listeners on the root.
//
// A Mount is safe for concurrent use; updates are serialized.
type Mount struct {
	mu        sync.Mutex
	root      *dom.Node
	current   *vdom.VNode
	reg       *events.Registry
	delegator *events.Delegator

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics.Collector
}

// Option configures a Mount.
type Option func(*Mount)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mount) {
		m.logger = logger
	}
}

// WithTracer sets the tracer used for update spans. Default: the global
// provider's tracer named TracerName.
func WithTracer(tracer trace.Tracer) Option {
	return func(m *Mount) {
		m.tracer = tracer
	}
}

// WithMetrics reports diffs, patches and event dispatches to c.
func WithMetrics(c *metrics.Collector) Option {
	return func(m *Mount) {
		m.metrics = c
	}
}

func newMount(v *vdom.VNode, opts []Option) *Mount {
	m := &Mount{current: v}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.tracer == nil {
		m.tracer = otel.Tracer(TracerName)
	}
	m.reg = events.New(events.WithDispatchObserver(m.metrics.ObserveDispatch))
	return m
}

func (m *Mount) build(doc *dom.Document) error {
	root, err := patch.Create(doc, m.current, m.reg)
	if err != nil {
		return err
	}
	m.root = root
	return nil
}

func (m *Mount) start() {
	m.delegator = events.Delegate(m.root, m.reg)
	m.metrics.SetRegistryEntries(m.reg.Len())
	m.logger.Debug("mounted", "root", m.root.String(), "bindings", m.reg.Len())
}

// New builds the real tree for v without attaching it anywhere visible. The
// root is placed in a fragment owned by doc so that it can still be
// replaced by a later update.
func New(doc *dom.Document, v *vdom.VNode, opts ...Option) (*Mount, error) {
	m := newMount(v, opts)
	if err := m.build(doc); err != nil {
		return nil, err
	}
	if err := doc.CreateFragment().AppendChild(m.root); err != nil {
		return nil, errors.New("E100").WithOp("mount").Wrap(err)
	}
	m.start()
	return m, nil
}

// NewAppendToMount builds the real tree for v and appends it to mountNode.
func NewAppendToMount(v *vdom.VNode, mountNode *dom.Node, opts ...Option) (*Mount, error) {
	m := newMount(v, opts)
	if err := m.build(mountNode.OwnerDocument()); err != nil {
		return nil, err
	}
	if err := mountNode.AppendChild(m.root); err != nil {
		return nil, errors.New("E100").WithOp("appendToMount").Wrap(err)
	}
	m.start()
	return m, nil
}

// NewReplaceMount builds the real tree for v and puts it in place of
// mountNode, which must be attached.
func NewReplaceMount(v *vdom.VNode, mountNode *dom.Node, opts ...Option) (*Mount, error) {
	if mountNode.Parent() == nil {
		return nil, errors.New("E103").
			WithOp("replaceMount").
			WithSuggestion("Attach the mount node to a parent, or use NewAppendToMount")
	}
	m := newMount(v, opts)
	if err := m.build(mountNode.OwnerDocument()); err != nil {
		return nil, err
	}
	if err := mountNode.ReplaceWith(m.root); err != nil {
		return nil, errors.New("E100").WithOp("replaceMount").Wrap(err)
	}
	m.start()
	return m, nil
}

// Root returns the current real root. It changes when an update replaces
// the root element.
func (m *Mount) Root() *dom.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root
}

// Current returns the virtual tree the real tree currently matches.
func (m *Mount) Current() *vdom.VNode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Registry returns the mount's event registry.
func (m *Mount) Registry() *events.Registry {
	return m.reg
}

// Update diffs next against the current virtual tree and patches the real
// tree to match. If patching fails the error is returned, the mount keeps
// its previous virtual tree and the real tree is rebuilt from it.
func (m *Mount) Update(ctx context.Context, next *vdom.VNode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, span := m.tracer.Start(ctx, "vdom.update")
	defer span.End()

	_, diffSpan := m.tracer.Start(ctx, "vdom.diff")
	start := time.Now()
	patches := vdom.Diff(m.current, next)
	diffTime := time.Since(start)
	diffSpan.SetAttributes(attribute.Int("vdom.patches", len(patches)))
	diffSpan.End()
	m.metrics.ObserveDiff(diffTime, patches)

	_, patchSpan := m.tracer.Start(ctx, "vdom.patch")
	patchSpan.SetAttributes(attribute.StringSlice("vdom.ops", opNames(patches)))
	start = time.Now()
	root, err := patch.ApplyRoot(m.root, next, m.reg, patches)
	patchTime := time.Since(start)
	m.metrics.ObservePatch(patchTime, err)
	if err != nil {
		patchSpan.RecordError(err)
		patchSpan.SetStatus(codes.Error, err.Error())
		patchSpan.End()
		span.SetStatus(codes.Error, "patch failed")
		m.logger.Error("patch failed",
			"error", err,
			"patches", len(patches))

		// The real tree may be half patched; rebuild it from the last
		// virtual tree it matched so the next diff starts from a known shape.
		fresh, rerr := patch.Rebuild(root, m.current, m.reg)
		if rerr != nil {
			m.logger.Error("rebuild failed", "error", rerr)
		}
		m.setRoot(fresh)
		m.metrics.SetRegistryEntries(m.reg.Len())
		return err
	}
	patchSpan.End()

	m.setRoot(root)
	m.current = next
	m.metrics.SetRegistryEntries(m.reg.Len())

	m.logger.Debug("update applied",
		"patches", len(patches),
		"diff", diffTime,
		"patch", patchTime)
	return nil
}

// setRoot moves the delegated listeners to root when it changed.
func (m *Mount) setRoot(root *dom.Node) {
	if root == m.root {
		return
	}
	if m.delegator != nil {
		m.delegator.Close()
	}
	m.delegator = events.Delegate(root, m.reg)
	m.root = root
}

// Close detaches the delegated listeners and releases every binding in the
// tree. The real tree itself is left in place.
func (m *Mount) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delegator != nil {
		m.delegator.Close()
		m.delegator = nil
	}
	m.reg.Release(m.root)
	m.metrics.SetRegistryEntries(m.reg.Len())
}

func opNames(patches []vdom.Patch) []string {
	seen := make(map[vdom.PatchOp]bool)
	var out []string
	for _, p := range patches {
		if !seen[p.Op] {
			seen[p.Op] = true
			out = append(out, p.Op.String())
		}
	}
	return out
}
