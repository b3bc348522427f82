package floating

import (
	"context"
	"errors"
	"fmt"
)

// maxResets bounds how often middleware may restart the pipeline.
const maxResets = 50

var (
	// ErrNoReference is returned when ComputePosition is called without a
	// reference element. The platform is not consulted.
	ErrNoReference = errors.New("floating: no reference element")

	// ErrNoFloating is returned when the floating element is missing.
	ErrNoFloating = errors.New("floating: no floating element")
)

// Platform measures elements. E is the host's element handle type.
type Platform[E comparable] interface {
	// ElementRects returns the reference and floating rects in the
	// coordinate space of strategy.
	ElementRects(reference, floating E, strategy Strategy) (ElementRects, error)

	// ClippingRect returns the area the floating element must stay inside,
	// in the coordinate space of strategy.
	ClippingRect(floating E, strategy Strategy) (Rect, error)
}

// Config configures a ComputePosition call.
type Config struct {
	// Placement is the initial placement. Default Bottom.
	Placement Placement

	// Strategy is the coordinate space. Default Absolute.
	Strategy Strategy

	// Middleware runs in order after the base coordinates are computed.
	Middleware []Middleware
}

// MiddlewareData holds per-middleware data keyed by middleware name.
type MiddlewareData map[string]any

// State is what a middleware sees.
type State struct {
	X, Y             float64
	InitialPlacement Placement
	Placement        Placement
	Strategy         Strategy
	Rects            ElementRects
	Clipping         Rect
	Data             MiddlewareData
}

// Coords returns the current position.
func (s State) Coords() Coords {
	return Coords{X: s.X, Y: s.Y}
}

// Reset asks the pipeline to restart with a new placement and/or fresh
// measurements.
type Reset struct {
	Placement Placement
	Rects     bool
}

// Step is the outcome of one middleware.
type Step struct {
	X, Y  float64
	Data  any
	Reset *Reset
}

// Keep returns a step that leaves the position unchanged.
func Keep(s State) Step {
	return Step{X: s.X, Y: s.Y}
}

// Middleware adjusts the position computed so far.
type Middleware interface {
	Name() string
	Compute(ctx context.Context, s State) (Step, error)
}

// Result is the final position.
type Result struct {
	X, Y      float64
	Placement Placement
	Strategy  Strategy
	Data      MiddlewareData

	// Resets is how many times the pipeline restarted.
	Resets int

	// ResetLimit is set when a middleware still wanted a reset after
	// maxResets restarts. The coordinates are the last ones computed.
	ResetLimit bool
}

// ComputePosition places floating next to reference.
//
// Base coordinates come from the placement; each middleware then adjusts
// them. A middleware returning a Reset restarts the pipeline from the first
// middleware with the new placement, keeping MiddlewareData.
func ComputePosition[E comparable](ctx context.Context, p Platform[E], reference, floating E, cfg Config) (Result, error) {
	var zero E
	if reference == zero {
		return Result{}, ErrNoReference
	}
	if floating == zero {
		return Result{}, ErrNoFloating
	}

	placement := cfg.Placement
	if placement == "" {
		placement = Bottom
	}
	if !placement.Valid() {
		return Result{}, fmt.Errorf("floating: invalid placement %q", placement)
	}
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = Absolute
	}

	rects, err := p.ElementRects(reference, floating, strategy)
	if err != nil {
		return Result{}, fmt.Errorf("floating: measure elements: %w", err)
	}
	clip, err := p.ClippingRect(floating, strategy)
	if err != nil {
		return Result{}, fmt.Errorf("floating: clipping rect: %w", err)
	}

	pos := coordsFromPlacement(rects, placement)
	data := MiddlewareData{}
	res := Result{Strategy: strategy, Data: data}

	for i := 0; i < len(cfg.Middleware); i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		mw := cfg.Middleware[i]
		step, err := mw.Compute(ctx, State{
			X:                pos.X,
			Y:                pos.Y,
			InitialPlacement: cfg.Placement,
			Placement:        placement,
			Strategy:         strategy,
			Rects:            rects,
			Clipping:         clip,
			Data:             data,
		})
		if err != nil {
			return Result{}, fmt.Errorf("floating: %s: %w", mw.Name(), err)
		}

		pos = Coords{X: step.X, Y: step.Y}
		if step.Data != nil {
			data[mw.Name()] = step.Data
		}

		if step.Reset == nil {
			continue
		}
		if res.Resets >= maxResets {
			res.ResetLimit = true
			continue
		}
		res.Resets++

		if step.Reset.Placement != "" {
			placement = step.Reset.Placement
		}
		if step.Reset.Rects {
			if rects, err = p.ElementRects(reference, floating, strategy); err != nil {
				return Result{}, fmt.Errorf("floating: measure elements: %w", err)
			}
		}
		pos = coordsFromPlacement(rects, placement)
		i = -1
	}

	res.X, res.Y = pos.X, pos.Y
	res.Placement = placement
	return res, nil
}

// coordsFromPlacement computes the unadjusted position of the floating
// element for placement: flush against the reference's side, centered or
// aligned on the cross axis.
func coordsFromPlacement(rects ElementRects, placement Placement) Coords {
	ref, fl := rects.Reference, rects.Floating
	commonX := ref.X + ref.Width/2 - fl.Width/2
	commonY := ref.Y + ref.Height/2 - fl.Height/2

	var c Coords
	side := placement.Side()
	switch side {
	case SideTop:
		c = Coords{X: commonX, Y: ref.Y - fl.Height}
	case SideBottom:
		c = Coords{X: commonX, Y: ref.Bottom()}
	case SideRight:
		c = Coords{X: ref.Right(), Y: commonY}
	case SideLeft:
		c = Coords{X: ref.X - fl.Width, Y: commonY}
	default:
		c = Coords{X: ref.X, Y: ref.Y}
	}

	alignAxis := side.Axis().Opposite()
	commonAlign := ref.Length(alignAxis)/2 - fl.Length(alignAxis)/2
	switch placement.Alignment() {
	case AlignStart:
		c = c.With(alignAxis, c.Get(alignAxis)-commonAlign)
	case AlignEnd:
		c = c.With(alignAxis, c.Get(alignAxis)+commonAlign)
	}
	return c
}
