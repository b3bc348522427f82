package tooltip

import (
	"context"

	"github.com/vango-dev/rating/pkg/dom"
	"github.com/vango-dev/rating/pkg/floating"
)

// Request describes one placement computation.
type Request struct {
	// Token identifies the request. Tokens increase with every show and
	// hide; only the latest one is applied.
	Token uint64

	// Target is the anchor. Never nil.
	Target *dom.Element

	// Floating is the tooltip element.
	Floating *dom.Element

	// Offset is the gap between anchor and tooltip in pixels.
	Offset float64

	// AllowedPlacements are the sides auto placement may choose from.
	AllowedPlacements []floating.Placement
}

// Config returns the floating pipeline for the request: fixed strategy,
// then offset, shift and auto placement in that order.
func (r Request) Config() floating.Config {
	return floating.Config{
		Strategy: floating.Fixed,
		Middleware: []floating.Middleware{
			floating.Offset(r.Offset),
			floating.Shift(floating.ShiftOptions{}),
			floating.AutoPlacement(floating.AutoPlacementOptions{
				AllowedPlacements: r.AllowedPlacements,
			}),
		},
	}
}

// Positioner computes placements asynchronously. Position must return
// without blocking on the computation, and done must run on the document
// loop.
type Positioner interface {
	Position(ctx context.Context, req Request, done func(floating.Result, error))
}

// PositionerFunc adapts a function to Positioner.
type PositionerFunc func(ctx context.Context, req Request, done func(floating.Result, error))

// Position calls f.
func (f PositionerFunc) Position(ctx context.Context, req Request, done func(floating.Result, error)) {
	f(ctx, req, done)
}

// Engine is the default Positioner. It measures on the loop, runs the
// geometry pass as background work of the document and posts the result
// back.
type Engine struct {
	doc *dom.Document
}

// NewEngine returns an Engine for doc.
func NewEngine(doc *dom.Document) *Engine {
	return &Engine{doc: doc}
}

// Position implements Positioner.
func (e *Engine) Position(ctx context.Context, req Request, done func(floating.Result, error)) {
	cfg := req.Config()

	rects, err := e.doc.ElementRects(req.Target, req.Floating, cfg.Strategy)
	if err != nil {
		e.doc.Post(func() { done(floating.Result{}, err) })
		return
	}
	clip, err := e.doc.ClippingRect(req.Floating, cfg.Strategy)
	if err != nil {
		e.doc.Post(func() { done(floating.Result{}, err) })
		return
	}

	layout := measured{rects: rects, clip: clip}
	e.doc.Go(func() {
		res, err := floating.ComputePosition(ctx, layout, req.Target, req.Floating, cfg)
		e.doc.Post(func() { done(res, err) })
	})
}

// measured is a layout captured on the loop, safe to read off it.
type measured struct {
	rects floating.ElementRects
	clip  floating.Rect
}

func (m measured) ElementRects(_, _ *dom.Element, _ floating.Strategy) (floating.ElementRects, error) {
	return m.rects, nil
}

func (m measured) ClippingRect(*dom.Element, floating.Strategy) (floating.Rect, error) {
	return m.clip, nil
}
