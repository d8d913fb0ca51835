package render

import (
	"io"

	"github.com/vango-dev/vdom/pkg/vdom"
)

// PageData contains what is needed to wrap a rendered tree in a complete
// HTML document.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name    string
	Content string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	rw := &writer{w: w, cfg: &r.config}
	rw.write("<!DOCTYPE html>\n")
	rw.write(`<html lang="` + escapeAttr(lang) + `">` + "\n")

	rw.write("<head>\n")
	rw.write(`  <meta charset="utf-8">` + "\n")
	if page.Title != "" {
		rw.write("  <title>" + escapeHTML(page.Title) + "</title>\n")
	}
	for _, m := range page.Meta {
		rw.write(`  <meta name="` + escapeAttr(m.Name) + `" content="` + escapeAttr(m.Content) + `">` + "\n")
	}
	for _, href := range page.StyleSheets {
		rw.write(`  <link rel="stylesheet" href="` + escapeAttr(href) + `">` + "\n")
	}
	rw.write("</head>\n")

	rw.write("<body>\n")
	rw.vnode(page.Body, 0)
	if !r.config.Pretty {
		rw.write("\n")
	}
	rw.write("</body>\n</html>\n")
	return rw.err
}
