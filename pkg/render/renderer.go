package render

import (
	"bytes"
	"io"
	"sort"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/patch"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Pretty output is not comparable with
	// compact output and should not be used as a test oracle.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer serializes virtual and real trees to HTML. Both kinds of tree
// go through the same attribute and escaping rules, so a real tree built
// from a virtual one serializes identically to it.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	rw := &writer{w: w, cfg: &r.config}
	rw.vnode(node, 0)
	return rw.err
}

// RenderDOMToString renders a real tree to an HTML string. Text separators
// are skipped and fragments render only their children.
func (r *Renderer) RenderDOMToString(node *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderDOMToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDOMToWriter streams a real tree to the given writer.
func (r *Renderer) RenderDOMToWriter(w io.Writer, node *dom.Node) error {
	rw := &writer{w: w, cfg: &r.config}
	rw.real(node, 0)
	return rw.err
}

var compact = NewRenderer(RendererConfig{})

// String renders v compactly. Writing to memory cannot fail.
func String(v *vdom.VNode) string {
	s, _ := compact.RenderToString(v)
	return s
}

// DOMString renders n compactly.
func DOMString(n *dom.Node) string {
	s, _ := compact.RenderDOMToString(n)
	return s
}

// attribute is one serialized attribute. bare renders just the name.
type attribute struct {
	name  string
	value string
	bare  bool
}

// writer carries the first write error so the render functions can stay
// free of error plumbing.
type writer struct {
	w   io.Writer
	cfg *RendererConfig
	err error
}

func (rw *writer) write(s string) {
	if rw.err != nil {
		return
	}
	_, rw.err = io.WriteString(rw.w, s)
}

func (rw *writer) indent(depth int) {
	if !rw.cfg.Pretty {
		return
	}
	for i := 0; i < depth; i++ {
		rw.write(rw.cfg.Indent)
	}
}

func (rw *writer) newline() {
	if rw.cfg.Pretty {
		rw.write("\n")
	}
}

func (rw *writer) vnode(v *vdom.VNode, depth int) {
	if v == nil {
		return
	}
	if v.IsText() {
		rw.write(escapeHTML(v.Text))
		return
	}

	rw.open(v.Tag, vnodeAttrs(v), depth)
	if isVoidElement(v.Tag) {
		rw.newline()
		return
	}
	if html := v.Special.InnerHTML; html != nil {
		rw.write(*html)
	} else {
		block := rw.cfg.Pretty && len(v.Children) > 0 && !isInlineElement(v.Tag)
		if block {
			rw.write("\n")
		}
		for _, c := range v.Children {
			if block && c.IsText() {
				rw.indent(depth + 1)
			}
			rw.vnode(c, depth+1)
			if block && c.IsText() {
				rw.write("\n")
			}
		}
		if block {
			rw.indent(depth)
		}
	}
	rw.close(v.Tag)
}

func (rw *writer) real(n *dom.Node, depth int) {
	if n == nil {
		return
	}
	switch n.Type() {
	case dom.TextNode:
		rw.write(escapeHTML(n.Data()))
		return
	case dom.CommentNode:
		if !patch.IsSeparator(n) {
			rw.write("<!--" + n.Data() + "-->")
		}
		return
	case dom.FragmentNode:
		for _, c := range n.Children() {
			rw.real(c, depth)
		}
		return
	}

	tag := n.Tag()
	rw.open(tag, domAttrs(n), depth)
	if isVoidElement(tag) {
		rw.newline()
		return
	}
	kids := n.Children()
	block := rw.cfg.Pretty && len(kids) > 0 && !isInlineElement(tag)
	if block {
		rw.write("\n")
	}
	for _, c := range kids {
		text := c.Type() == dom.TextNode
		if block && text {
			rw.indent(depth + 1)
		}
		rw.real(c, depth+1)
		if block && text {
			rw.write("\n")
		}
	}
	if block {
		rw.indent(depth)
	}
	rw.close(tag)
}

func (rw *writer) open(tag string, attrs []attribute, depth int) {
	rw.indent(depth)
	rw.write("<" + tag)
	for _, a := range attrs {
		rw.write(" " + a.name)
		if !a.bare {
			rw.write(`="` + escapeAttr(a.value) + `"`)
		}
	}
	rw.write(">")
}

func (rw *writer) close(tag string) {
	rw.write("</" + tag + ">")
	rw.newline()
}

// vnodeAttrs returns v's attributes sorted by name. True booleans and
// empty strings render bare; false booleans are omitted.
func vnodeAttrs(v *vdom.VNode) []attribute {
	out := make([]attribute, 0, len(v.Attrs))
	for name, val := range v.Attrs {
		if name == "key" {
			continue
		}
		if b, ok := val.AsBool(); ok {
			if b {
				out = append(out, attribute{name: name, bare: true})
			}
			continue
		}
		s, _ := val.AsString()
		out = append(out, attribute{name: name, value: s, bare: s == ""})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func domAttrs(n *dom.Node) []attribute {
	attrs := n.Attributes()
	out := make([]attribute, 0, len(attrs))
	for _, a := range attrs {
		if a.Name == "key" {
			continue
		}
		out = append(out, attribute{name: a.Name, value: a.Value, bare: a.Value == ""})
	}
	return out
}
