package floating

import "strings"

// Side is one edge of the reference element.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Opposite returns the side across from s.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return s
}

// Axis returns the axis the side sits on: "y" for top/bottom, "x" for
// left/right.
func (s Side) Axis() Axis {
	if s == SideTop || s == SideBottom {
		return AxisY
	}
	return AxisX
}

// Axis is a coordinate axis.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Opposite returns the other axis.
func (a Axis) Opposite() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// Alignment positions the floating element along the cross axis.
type Alignment string

const (
	AlignCenter Alignment = ""
	AlignStart  Alignment = "start"
	AlignEnd    Alignment = "end"
)

// Placement is a side with an optional alignment, e.g. "top" or "top-start".
type Placement string

const (
	Top         Placement = "top"
	TopStart    Placement = "top-start"
	TopEnd      Placement = "top-end"
	Right       Placement = "right"
	RightStart  Placement = "right-start"
	RightEnd    Placement = "right-end"
	Bottom      Placement = "bottom"
	BottomStart Placement = "bottom-start"
	BottomEnd   Placement = "bottom-end"
	Left        Placement = "left"
	LeftStart   Placement = "left-start"
	LeftEnd     Placement = "left-end"
)

// AllPlacements lists every placement, sides first within each side group.
var AllPlacements = []Placement{
	Top, TopStart, TopEnd,
	Right, RightStart, RightEnd,
	Bottom, BottomStart, BottomEnd,
	Left, LeftStart, LeftEnd,
}

// Side returns the side part of the placement.
func (p Placement) Side() Side {
	side, _, _ := strings.Cut(string(p), "-")
	return Side(side)
}

// Alignment returns the alignment part of the placement.
func (p Placement) Alignment() Alignment {
	_, align, _ := strings.Cut(string(p), "-")
	return Alignment(align)
}

// Valid reports whether p is one of AllPlacements.
func (p Placement) Valid() bool {
	for _, q := range AllPlacements {
		if p == q {
			return true
		}
	}
	return false
}

// Strategy selects the coordinate space of the result.
type Strategy string

const (
	// Absolute coordinates are document-relative and include page scroll.
	Absolute Strategy = "absolute"

	// Fixed coordinates are viewport-relative and independent of scroll.
	Fixed Strategy = "fixed"
)

// Rect is an axis-aligned box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Length returns the extent of r along axis.
func (r Rect) Length(a Axis) float64 {
	if a == AxisX {
		return r.Width
	}
	return r.Height
}

// Coords is a point.
type Coords struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Get returns the coordinate on axis.
func (c Coords) Get(a Axis) float64 {
	if a == AxisX {
		return c.X
	}
	return c.Y
}

// With returns c with the coordinate on axis replaced.
func (c Coords) With(a Axis, v float64) Coords {
	if a == AxisX {
		c.X = v
	} else {
		c.Y = v
	}
	return c
}

// SideObject holds one value per side. For overflow, positive values mean
// the floating element crosses that edge of the clipping rect by that many
// pixels.
type SideObject struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Get returns the value for side s.
func (o SideObject) Get(s Side) float64 {
	switch s {
	case SideTop:
		return o.Top
	case SideRight:
		return o.Right
	case SideBottom:
		return o.Bottom
	case SideLeft:
		return o.Left
	}
	return 0
}

// ElementRects holds the measured reference and floating rects.
type ElementRects struct {
	Reference Rect
	Floating  Rect
}

func clamp(lo, v, hi float64) float64 {
	return max(lo, min(v, hi))
}
