// Package vdom describes markup as a tree of VNodes.
//
// The rating widgets use it to describe the tooltip's passthrough slot, the
// star SVG and the live demo page. Package render turns a VNode tree into
// HTML or SVG text.
//
// Elements are created using variadic factory functions:
//
//	Svg(Width(16), Height(16), ViewBox("0 0 24 24"),
//	    Path(D("M4 22L6 15Z"), Fill("url(#grad)")),
//	)
package vdom
