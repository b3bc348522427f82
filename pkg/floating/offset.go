package floating

import "context"

// OffsetOptions configures the offset middleware.
type OffsetOptions struct {
	// MainAxis is the gap between reference and floating element.
	MainAxis float64

	// CrossAxis skids the floating element along the reference edge.
	CrossAxis float64
}

// OffsetData records the applied translation.
type OffsetData struct {
	X, Y      float64
	Placement Placement
}

type offset struct {
	opts OffsetOptions
}

// Offset moves the floating element distance pixels away from the
// reference, along the placement's side axis.
func Offset(distance float64) Middleware {
	return offset{opts: OffsetOptions{MainAxis: distance}}
}

// OffsetWith is Offset with both axes configurable.
func OffsetWith(opts OffsetOptions) Middleware {
	return offset{opts: opts}
}

func (offset) Name() string { return "offset" }

func (o offset) Compute(_ context.Context, s State) (Step, error) {
	side := s.Placement.Side()

	mainMulti := 1.0
	if side == SideTop || side == SideLeft {
		mainMulti = -1
	}

	var dx, dy float64
	if side.Axis() == AxisY {
		dx = o.opts.CrossAxis
		dy = o.opts.MainAxis * mainMulti
	} else {
		dx = o.opts.MainAxis * mainMulti
		dy = o.opts.CrossAxis
	}

	return Step{
		X:    s.X + dx,
		Y:    s.Y + dy,
		Data: OffsetData{X: dx, Y: dy, Placement: s.Placement},
	}, nil
}
