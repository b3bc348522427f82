// Package dom is a small live element tree used as the host for widgets that
// need DOM behavior on the server: child ordering, per-element listener
// tables, inline styles, bounding rects, a viewport and a single-threaded
// task loop.
//
// All tree mutation, listener dispatch and style access must happen on the
// document's loop. Background work started with Document.Go may compute
// freely but must hand results back with Document.Post.
//
//	doc := dom.NewDocument(800, 600)
//	btn := doc.CreateElement("button")
//	doc.Body().AppendChild(btn)
//	btn.AddEventListener("focus", dom.NewListener(func(e *dom.Event) { ... }))
//	btn.Dispatch(dom.NewEvent("focus"))
//
// A Document implements floating.Platform[*Element], so elements can be
// positioned with the floating package directly.
package dom
