package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/events"
	"github.com/vango-dev/vdom/pkg/patch"
	"github.com/vango-dev/vdom/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	got := String(vdom.Text("<script>alert('xss')</script>"))
	want := "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderElement(t *testing.T) {
	node := vdom.Div(vdom.Class("container"),
		vdom.H1(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	want := `<div class="container"><h1>Title</h1><p>Content</p></div>`
	if got := String(node); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributes(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "sorted",
			node: vdom.A(vdom.Target("_blank"), vdom.Href("/x"), vdom.ID("link")),
			want: `<a href="/x" id="link" target="_blank"></a>`,
		},
		{
			name: "true boolean is bare",
			node: vdom.Button(vdom.Disabled()),
			want: `<button disabled></button>`,
		},
		{
			name: "false boolean is omitted",
			node: vdom.Input(vdom.Type("checkbox"), vdom.Checked(false)),
			want: `<input type="checkbox">`,
		},
		{
			name: "empty string is bare",
			node: vdom.Div(vdom.StringAttr("data-flag", "")),
			want: `<div data-flag></div>`,
		},
		{
			name: "key is not rendered",
			node: vdom.Li(vdom.Key("a"), vdom.Text("x")),
			want: `<li>x</li>`,
		},
		{
			name: "events are not rendered",
			node: vdom.Button(vdom.OnClick(func() {}), vdom.Text("go")),
			want: `<button>go</button>`,
		},
		{
			name: "attribute escaping",
			node: vdom.Div(vdom.TitleAttr("a \"b\"\n<c>")),
			want: `<div title="a &quot;b&quot;&#10;&lt;c&gt;"></div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.node); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderVoidElements(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"input", vdom.Input(vdom.Type("text"), vdom.Name("email")), `<input name="email" type="text">`},
		{"br", vdom.Br(), `<br>`},
		{"img", vdom.Img(vdom.Src("/a.png"), vdom.Alt("")), `<img alt src="/a.png">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.node); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderInnerHTML(t *testing.T) {
	node := vdom.Div(vdom.InnerHTML("<b>raw</b> &amp; more"), vdom.Text("ignored"))
	want := `<div><b>raw</b> &amp; more</div>`
	if got := String(node); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderDOMMatchesVNode(t *testing.T) {
	nodes := []*vdom.VNode{
		vdom.Div(vdom.Class("a"), vdom.Text("one"), vdom.Text("two")),
		vdom.Ul(
			vdom.Li(vdom.Key(1), vdom.Text("x & y")),
			vdom.Li(vdom.Key(2), vdom.Input(vdom.Type("checkbox"), vdom.Checked(true))),
		),
		vdom.Form(vdom.Input(vdom.Value(""), vdom.Disabled()), vdom.Textarea(vdom.Text("t"))),
		vdom.Div(vdom.InnerHTML("<p>hi <em>there</em></p>")),
	}
	for _, v := range nodes {
		real, err := patch.Create(dom.NewDocument(), v, events.New())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if got, want := DOMString(real), String(v); got != want {
			t.Errorf("DOMString = %q, want %q", got, want)
		}
	}
}

func TestRenderDOMSkipsSeparators(t *testing.T) {
	v := vdom.P(vdom.Text("a"), vdom.Text("b"))
	real, err := patch.Create(dom.NewDocument(), v, events.New())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if real.ChildCount() != 3 {
		t.Fatalf("ChildCount = %d, want 3 (text, separator, text)", real.ChildCount())
	}
	if got := DOMString(real); got != "<p>ab</p>" {
		t.Errorf("DOMString = %q, want %q", got, "<p>ab</p>")
	}
}

func TestRenderDOMComments(t *testing.T) {
	doc := dom.NewDocument()
	div := doc.CreateElement("div")
	_ = div.AppendChild(doc.CreateComment("note"))
	if got := DOMString(div); got != "<div><!--note--></div>" {
		t.Errorf("DOMString = %q", got)
	}
}

func TestRenderDOMFragment(t *testing.T) {
	doc := dom.NewDocument()
	frag := doc.CreateFragment()
	_ = frag.AppendChild(doc.CreateElement("hr"))
	_ = frag.AppendChild(doc.CreateTextNode("x"))
	if got := DOMString(frag); got != "<hr>x" {
		t.Errorf("DOMString = %q, want %q", got, "<hr>x")
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})
	node := vdom.Div(
		vdom.P(vdom.Text("a")),
		vdom.Span(vdom.Text("b")),
	)
	got, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<div>\n  <p>\n    a\n  </p>\n  <span>b</span>\n</div>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPrettyCustomIndent(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true, Indent: "\t"})
	got, _ := renderer.RenderToString(vdom.Ul(vdom.Li(vdom.Text("x"))))
	want := "<ul>\n\t<li>\n\t\tx\n\t</li>\n</ul>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

var errWrite = errors.New("write failed")

func TestRenderWriteError(t *testing.T) {
	err := NewRenderer(RendererConfig{}).RenderToWriter(failWriter{}, vdom.Div(vdom.Text("x")))
	if err != errWrite {
		t.Errorf("err = %v, want %v", err, errWrite)
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{
		Body:        vdom.Main(vdom.Text("hi")),
		Title:       "A & B",
		Meta:        []MetaTag{{Name: "description", Content: "x"}},
		StyleSheets: []string{"/app.css"},
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>\n",
		`<html lang="en">`,
		"<title>A &amp; B</title>",
		`<meta name="description" content="x">`,
		`<link rel="stylesheet" href="/app.css">`,
		"<body>\n<main>hi</main>\n</body>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q:\n%s", want, out)
		}
	}
}
