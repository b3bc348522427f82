// Package render writes vdom trees as HTML or SVG markup.
//
// Attributes are written in sorted key order so output is deterministic,
// which the star icon relies on for stable SVG bytes and ETags.
//
//	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
package render
