package floating

import "context"

// ShiftOptions configures the shift middleware.
type ShiftOptions struct {
	// DisableMainAxis stops shifting along the reference edge (the axis
	// perpendicular to the placement side). Shifting on this axis is on by
	// default.
	DisableMainAxis bool

	// CrossAxis also shifts along the side axis. This can make the floating
	// element overlap the reference.
	CrossAxis bool

	// Padding keeps this many pixels between the floating element and the
	// clipping edges.
	Padding float64
}

// ShiftData records the applied translation.
type ShiftData struct {
	X, Y float64
}

type shift struct {
	opts ShiftOptions
}

// Shift keeps the floating element inside the clipping rect by sliding it
// along the reference edge. It never changes the placement side.
func Shift(opts ShiftOptions) Middleware {
	return shift{opts: opts}
}

func (shift) Name() string { return "shift" }

func (sh shift) Compute(_ context.Context, s State) (Step, error) {
	overflow := DetectOverflow(s, sh.opts.Padding)
	crossAxis := s.Placement.Side().Axis()
	mainAxis := crossAxis.Opposite()

	pos := s.Coords()
	if !sh.opts.DisableMainAxis {
		pos = pos.With(mainAxis, clampAxis(pos.Get(mainAxis), mainAxis, overflow))
	}
	if sh.opts.CrossAxis {
		pos = pos.With(crossAxis, clampAxis(pos.Get(crossAxis), crossAxis, overflow))
	}

	return Step{
		X:    pos.X,
		Y:    pos.Y,
		Data: ShiftData{X: pos.X - s.X, Y: pos.Y - s.Y},
	}, nil
}

// clampAxis slides coord so the overflow on axis becomes non-positive. When
// both edges overflow the low edge wins.
func clampAxis(coord float64, axis Axis, overflow SideObject) float64 {
	minSide, maxSide := SideTop, SideBottom
	if axis == AxisX {
		minSide, maxSide = SideLeft, SideRight
	}
	lo := coord + overflow.Get(minSide)
	hi := coord - overflow.Get(maxSide)
	return clamp(lo, coord, hi)
}
