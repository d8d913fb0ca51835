package patch

import (
	"sort"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

type namedValue struct {
	name  string
	value vdom.AttributeValue
}

func sortedAttrs(attrs map[string]vdom.AttributeValue) []namedValue {
	out := make([]namedValue, 0, len(attrs))
	for k, v := range attrs {
		out = append(out, namedValue{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// hasValueProperty reports whether n keeps a live value separate from its
// value attribute.
func hasValueProperty(n *dom.Node) bool {
	switch n.Tag() {
	case "input", "textarea", "select":
		return true
	}
	return false
}

// setAttr sets one attribute. Booleans set an empty attribute when true and
// remove it when false. value and checked also update the live property,
// which is what the user sees once a control has been edited.
func setAttr(n *dom.Node, name string, v vdom.AttributeValue) error {
	if b, ok := v.AsBool(); ok {
		var err error
		if b {
			err = n.SetAttribute(name, "")
		} else {
			err = n.RemoveAttribute(name)
		}
		if name == "checked" {
			n.SetProperty("checked", b)
		}
		return err
	}

	s, _ := v.AsString()
	if err := n.SetAttribute(name, s); err != nil {
		return err
	}
	switch name {
	case "value":
		if hasValueProperty(n) {
			n.SetProperty("value", s)
		}
	case "checked":
		n.SetProperty("checked", true)
	}
	return nil
}

// removeAttr removes one attribute and resets the matching live property.
func removeAttr(n *dom.Node, name string) error {
	if err := n.RemoveAttribute(name); err != nil {
		return err
	}
	switch name {
	case "value":
		if hasValueProperty(n) {
			n.SetProperty("value", "")
		}
	case "checked":
		n.SetProperty("checked", false)
	}
	return nil
}
