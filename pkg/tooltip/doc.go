// Package tooltip implements an anchored tooltip for dom documents.
//
// A Tooltip attaches to the element before it in its parent unless an
// anchor is set explicitly with SetTarget. It listens on the anchor for
// pointerenter and focus to show, and for pointerleave, blur, keydown and
// click to hide. Showing clears the tooltip's inline style and asks a
// Positioner for a fixed-strategy placement above the anchor; the result is
// written to the left and top properties once it arrives, unless a newer
// show or hide superseded it.
//
//	tip := tooltip.New(doc)
//	container.AppendChild(button)
//	container.AppendChild(tip.Element()) // anchors to button, hidden
//	button.Dispatch(dom.NewEvent("focus"))
package tooltip
