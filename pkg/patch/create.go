package patch

import (
	"strings"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/events"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Create builds a detached real tree for v. Event bindings are registered
// in reg, on-remove hooks are stored on their nodes and on-create hooks run
// once each node is fully built, children first.
func Create(doc *dom.Document, v *vdom.VNode, reg *events.Registry) (*dom.Node, error) {
	return create(doc, v, reg, false)
}

// createIn builds v in doc for insertion under parent, inheriting the SVG
// namespace from it. parent may be nil.
func createIn(doc *dom.Document, parent *dom.Node, v *vdom.VNode, reg *events.Registry) (*dom.Node, error) {
	return create(doc, v, reg, inSVG(parent))
}

// inSVG reports whether children of n are in the SVG namespace.
func inSVG(n *dom.Node) bool {
	return n != nil && n.Namespace() == dom.SVGNamespace && !strings.EqualFold(n.Tag(), "foreignObject")
}

func create(doc *dom.Document, v *vdom.VNode, reg *events.Registry, svg bool) (*dom.Node, error) {
	if v.IsText() {
		n := doc.CreateTextNode(v.Text)
		n.SetProperty(ManagedProperty, true)
		return n, nil
	}

	ns := dom.HTMLNamespace
	if svg || v.Tag == "svg" {
		ns = dom.SVGNamespace
	}
	el := doc.CreateElementNS(ns, v.Tag)
	el.SetProperty(ManagedProperty, true)

	for _, a := range sortedAttrs(v.Attrs) {
		if err := setAttr(el, a.name, a.value); err != nil {
			return nil, errors.New("E110").WithOp("create <" + v.Tag + ">").Wrap(err)
		}
	}

	if html := v.Special.InnerHTML; html != nil {
		if err := el.SetInnerHTML(*html); err != nil {
			return nil, errors.New("E110").WithOp("create <" + v.Tag + ">").Wrap(err)
		}
	} else {
		var prevText bool
		for _, c := range v.Children {
			child, err := create(doc, c, reg, inSVG(el))
			if err != nil {
				return nil, err
			}
			if prevText && c.IsText() {
				mustMutate(el.AppendChild(newSeparator(doc)))
			}
			if err := el.AppendChild(child); err != nil {
				return nil, errors.New("E110").WithOp("create <" + v.Tag + ">").Wrap(err)
			}
			prevText = c.IsText()
		}
	}

	for _, name := range v.Events.Names() {
		reg.Bind(el, name, v.Events[name])
	}
	if v.Special.OnRemove != nil {
		el.SetProperty(OnRemoveProperty, v.Special.OnRemove)
	}
	v.Special.OnCreate.Call(el)
	return el, nil
}
