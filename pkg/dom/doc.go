// Package dom is a small, ordered, mutable node tree with the capabilities the
// reconciliation engine needs from a real document.
//
// A Document creates nodes. Nodes are elements, text nodes, comments, or
// fragments. Elements carry attributes and out-of-band properties (the live
// "value" and "checked" state of form controls, event bookkeeping) and can
// have listeners attached for named events. Events dispatched on a node
// bubble through its ancestors unless propagation is stopped.
//
//	doc := dom.NewDocument()
//	ul := doc.CreateElement("ul")
//	li := doc.CreateElement("li")
//	_ = ul.AppendChild(li)
//	li.AddEventListener("click", func(e *dom.Event) { ... })
//	li.DispatchEvent(dom.NewEvent("click"))
//
// Markup can be parsed into an element's children with SetInnerHTML, which
// uses golang.org/x/net/html.
package dom
