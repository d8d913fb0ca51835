package patch

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/events"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Apply mutates the real tree rooted at root so that it matches next.
// patches must come from vdom.Diff(prev, next) where root was built from
// prev (or is the result of an earlier Apply producing prev).
//
// A patch addressing a missing index, or a node of the wrong kind, panics.
// A mutation the tree rejects is returned as a coded error (E101 for an
// invalid attribute name, E102 for a reference that is not a child, E103 for
// a missing parent, E100 otherwise); the tree may then be partially updated
// and should be rebuilt with Rebuild.
func Apply(root *dom.Node, next *vdom.VNode, reg *events.Registry, patches []vdom.Patch) error {
	_, err := ApplyRoot(root, next, reg, patches)
	return err
}

// ApplyRoot is Apply but also returns the root afterwards, which differs
// from root when a patch replaced it. A detached root is replaced by
// building the new tree without attaching it.
func ApplyRoot(root *dom.Node, next *vdom.VNode, reg *events.Registry, patches []vdom.Patch) (*dom.Node, error) {
	want := make(map[uint32]bool)
	for _, p := range patches {
		for _, idx := range p.Targets() {
			want[idx] = true
		}
	}
	want[0] = true

	a := &applier{
		reg:   reg,
		nodes: locate(root, want),
	}
	for _, p := range patches {
		if err := a.apply(p); err != nil {
			return a.nodes[0], errors.New(mutationCode(err)).WithOp(p.Op.String()).Wrap(err)
		}
	}

	root = a.nodes[0]
	sync(root, next, reg)
	return root, nil
}

// Rebuild discards the real tree at root and builds a fresh one for v in
// its place. On-remove hooks of the old tree run and its bindings are
// released. A detached root yields a detached replacement.
func Rebuild(root *dom.Node, v *vdom.VNode, reg *events.Registry) (*dom.Node, error) {
	parent := root.Parent()
	created, err := createIn(root.OwnerDocument(), parent, v, reg)
	if err != nil {
		return root, err
	}
	teardown(root, reg)
	if parent == nil {
		return created, nil
	}
	if err := root.ReplaceWith(created); err != nil {
		reg.Release(created)
		return root, errors.New(mutationCode(err)).WithOp("rebuild").Wrap(err)
	}
	fixSeparators(parent)
	return created, nil
}

// mutationCode picks the error code for a mutation the tree rejected.
func mutationCode(err error) string {
	switch {
	case stderrors.Is(err, dom.ErrInvalidName):
		return "E101"
	case stderrors.Is(err, dom.ErrNotChild):
		return "E102"
	case stderrors.Is(err, dom.ErrNoParent):
		return "E103"
	}
	return "E100"
}

type applier struct {
	reg   *events.Registry
	nodes map[uint32]*dom.Node
}

// apply performs one patch. Structural changes to a child list are followed
// by a separator fix-up of that list.
func (a *applier) apply(p vdom.Patch) error {
	n := a.nodes[p.OldIdx]
	checkKind(n, p)

	switch p.Op {
	case vdom.PatchReplace:
		parent := n.Parent()
		created, err := createIn(n.OwnerDocument(), parent, p.NewNode, a.reg)
		if err != nil {
			return err
		}
		teardown(n, a.reg)
		if parent == nil {
			a.nodes[p.OldIdx] = created
			return nil
		}
		if err := n.ReplaceWith(created); err != nil {
			return err
		}
		a.nodes[p.OldIdx] = created
		fixSeparators(parent)

	case vdom.PatchChangeText:
		n.SetData(p.NewNode.Text)

	case vdom.PatchAddAttributes:
		for _, attr := range sortedAttrs(p.Attrs) {
			if err := setAttr(n, attr.name, attr.value); err != nil {
				return err
			}
		}

	case vdom.PatchRemoveAttributes:
		for _, name := range p.AttrNames {
			if err := removeAttr(n, name); err != nil {
				return err
			}
		}

	case vdom.PatchValueUnchanged:
		return setAttr(n, "value", p.Value)

	case vdom.PatchCheckedUnchanged:
		return setAttr(n, "checked", p.Value)

	case vdom.PatchAppendChildren:
		for _, v := range p.Nodes {
			c, err := createIn(n.OwnerDocument(), n, v, a.reg)
			if err != nil {
				return err
			}
			if err := n.AppendChild(c); err != nil {
				return err
			}
		}
		fixSeparators(n)

	case vdom.PatchTruncateChildren:
		kids := ManagedChildren(n)
		if p.Count < len(kids) {
			for _, c := range kids[p.Count:] {
				teardown(c, a.reg)
				if err := n.RemoveChild(c); err != nil {
					return err
				}
			}
		}
		fixSeparators(n)

	case vdom.PatchInsertBefore:
		parent := n.Parent()
		if parent == nil {
			return dom.ErrNoParent
		}
		for _, v := range p.Nodes {
			c, err := createIn(n.OwnerDocument(), parent, v, a.reg)
			if err != nil {
				return err
			}
			if err := parent.InsertBefore(c, n); err != nil {
				return err
			}
		}
		fixSeparators(parent)

	case vdom.PatchMoveNodesBefore:
		parent := n.Parent()
		if parent == nil {
			return dom.ErrNoParent
		}
		for _, idx := range p.Indices {
			if err := parent.InsertBefore(a.nodes[idx], n); err != nil {
				return err
			}
		}
		fixSeparators(parent)

	case vdom.PatchMoveToEndOfSiblings:
		for _, idx := range p.Indices {
			if err := n.AppendChild(a.nodes[idx]); err != nil {
				return err
			}
		}
		fixSeparators(n)

	case vdom.PatchRemoveChildren:
		for _, idx := range p.Indices {
			c := a.nodes[idx]
			teardown(c, a.reg)
			if err := n.RemoveChild(c); err != nil {
				return err
			}
		}
		fixSeparators(n)

	case vdom.PatchAddEvents:
		for _, name := range p.Events.Names() {
			a.reg.Bind(n, name, p.Events[name])
		}

	case vdom.PatchRemoveEvents:
		for _, name := range p.EventNames {
			a.reg.Unbind(n, name)
		}

	case vdom.PatchCallOnCreate:
		p.NewNode.Special.OnCreate.Call(n)

	case vdom.PatchCallOnRemove:
		p.OldNode.Special.OnRemove.Call(n)
		n.DeleteProperty(OnRemoveProperty)

	case vdom.PatchSetInnerHTML:
		for _, c := range ManagedChildren(n) {
			teardown(c, a.reg)
		}
		return n.SetInnerHTML(*p.NewNode.Special.InnerHTML)

	case vdom.PatchRemoveInnerHTML:
		n.RemoveChildren()

	default:
		panic(fmt.Sprintf("vdom: unknown patch op %d", p.Op))
	}
	return nil
}

// checkKind panics when a patch meets a node it cannot apply to.
func checkKind(n *dom.Node, p vdom.Patch) {
	switch p.Op {
	case vdom.PatchReplace:
		return
	case vdom.PatchChangeText:
		if n.Type() != dom.TextNode {
			panic(fmt.Sprintf("vdom: %s on %s node", p.Op, n.Type()))
		}
	case vdom.PatchInsertBefore, vdom.PatchMoveNodesBefore:
		// Anchors may be text or elements.
	default:
		if n.Type() != dom.ElementNode {
			panic(fmt.Sprintf("vdom: %s on %s node", p.Op, n.Type()))
		}
	}
}

// sync walks the real tree in lockstep with next, binding the latest event
// handlers, assigning IDs where needed and refreshing stored on-remove
// hooks.
func sync(n *dom.Node, v *vdom.VNode, reg *events.Registry) {
	if v.IsText() {
		if n.Type() != dom.TextNode {
			panic(fmt.Sprintf("vdom: expected text node, found %s", n))
		}
		return
	}
	if n.Type() != dom.ElementNode || !strings.EqualFold(n.Tag(), v.Tag) {
		panic(fmt.Sprintf("vdom: expected <%s>, found %s", v.Tag, n))
	}

	reg.Sync(n, v.Events)
	if v.Special.OnRemove != nil {
		n.SetProperty(OnRemoveProperty, v.Special.OnRemove)
	} else {
		n.DeleteProperty(OnRemoveProperty)
	}

	want := vdom.IndexedChildren(v)
	kids := ManagedChildren(n)
	if len(kids) != len(want) {
		panic(fmt.Sprintf("vdom: <%s> has %d children, expected %d", v.Tag, len(kids), len(want)))
	}
	for i, c := range kids {
		sync(c, want[i], reg)
	}
}
