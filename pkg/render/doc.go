// Package render serializes virtual trees and real trees to HTML.
//
// Serialization is depth-first: an open tag with its attributes, then the
// children or raw inner HTML, then the closing tag. Void elements (input,
// br, img, ...) have no closing tag. Attributes are written in name order;
// a true boolean or an empty string renders as a bare name and a false
// boolean is omitted. The key attribute and event bindings are never
// rendered. Text is escaped.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// Real trees built by package patch render the same way, which makes the
// two interchangeable in tests:
//
//	if render.DOMString(real) != render.String(next) { ... }
//
// Text separators inserted between adjacent text nodes are skipped.
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{Body: node, Title: "Todos"})
package render
