package vdom

import (
	"sort"
	"strconv"
	"strings"
)

// Attr is a single attribute passed to an element factory. The "key"
// attribute sets VNode.Key instead of a markup attribute. The zero Attr is
// ignored.
type Attr struct {
	Key   string
	Value AttributeValue
}

func attr(key, value string) Attr {
	return Attr{Key: key, Value: String(value)}
}

func boolAttr(key string, value bool) Attr {
	return Attr{Key: key, Value: Bool(value)}
}

// StringAttr sets an arbitrary string attribute.
func StringAttr(key, value string) Attr { return attr(key, value) }

// BoolAttr sets an arbitrary boolean attribute. False values are omitted
// from markup and removed from the real node.
func BoolAttr(key string, value bool) Attr { return boolAttr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the inline style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// TitleAttr sets the title attribute. Title is the element factory.
func TitleAttr(title string) Attr { return attr("title", title) }

func Role(role string) Attr            { return attr("role", role) }
func AriaLabel(label string) Attr      { return attr("aria-label", label) }
func AriaHidden(hidden bool) Attr      { return attr("aria-hidden", strconv.FormatBool(hidden)) }
func AriaValueNow(value float64) Attr  { return attr("aria-valuenow", strconv.FormatFloat(value, 'f', -1, 64)) }
func TabIndex(index int) Attr          { return attr("tabindex", strconv.Itoa(index)) }
func Href(url string) Attr             { return attr("href", url) }
func Target(target string) Attr        { return attr("target", target) }
func Src(url string) Attr              { return attr("src", url) }
func Alt(text string) Attr             { return attr("alt", text) }
func Name(name string) Attr            { return attr("name", name) }
func Type(t string) Attr               { return attr("type", t) }
func For(id string) Attr               { return attr("for", id) }
func Placeholder(text string) Attr     { return attr("placeholder", text) }
func Hidden() Attr                     { return boolAttr("hidden", true) }
func Disabled() Attr                   { return boolAttr("disabled", true) }
func Readonly() Attr                   { return boolAttr("readonly", true) }
func Selected() Attr                   { return boolAttr("selected", true) }
func Open() Attr                       { return boolAttr("open", true) }
func ContentEditable(editable bool) Attr {
	return attr("contenteditable", strconv.FormatBool(editable))
}

// Value sets the value attribute. On input and textarea elements the live
// value property is also written on every patch.
func Value(value string) Attr { return attr("value", value) }

// Checked sets the checked attribute. On input elements the live checked
// property is written on every patch, even when the attribute is unchanged.
func Checked(checked bool) Attr { return boolAttr("checked", checked) }

// ClassIf sets class only when condition holds.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr("class", class)
	}
	return Attr{}
}

// AttrIf returns a when condition holds and the ignored zero Attr
// otherwise.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Classes merges class values given as string, []string or
// map[string]bool. Map entries are added in sorted order.
func Classes(classes ...any) Attr {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			if v != "" {
				result = append(result, v)
			}
		case []string:
			for _, s := range v {
				if s != "" {
					result = append(result, s)
				}
			}
		case map[string]bool:
			keys := make([]string, 0, len(v))
			for class, include := range v {
				if include && class != "" {
					keys = append(keys, class)
				}
			}
			sort.Strings(keys)
			result = append(result, keys...)
		}
	}
	return attr("class", strings.Join(result, " "))
}
