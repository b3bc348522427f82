package floating

// DetectOverflow measures how far the floating element at the state's
// current position crosses each edge of the clipping rect, shrunk by
// padding. Negative values are free space.
func DetectOverflow(s State, padding float64) SideObject {
	fl := Rect{X: s.X, Y: s.Y, Width: s.Rects.Floating.Width, Height: s.Rects.Floating.Height}
	clip := s.Clipping

	return SideObject{
		Top:    clip.Top() - fl.Top() + padding,
		Bottom: fl.Bottom() - clip.Bottom() + padding,
		Left:   clip.Left() - fl.Left() + padding,
		Right:  fl.Right() - clip.Right() + padding,
	}
}

// alignmentSides returns the two cross-axis sides for placement, the side
// the alignment leans toward first.
func alignmentSides(placement Placement, rects ElementRects) (Side, Side) {
	alignAxis := placement.Side().Axis().Opposite()

	var main Side
	if alignAxis == AxisX {
		main = SideLeft
		if placement.Alignment() == AlignStart {
			main = SideRight
		}
	} else {
		main = SideTop
		if placement.Alignment() == AlignStart {
			main = SideBottom
		}
	}
	if rects.Reference.Length(alignAxis) > rects.Floating.Length(alignAxis) {
		main = main.Opposite()
	}
	return main, main.Opposite()
}
