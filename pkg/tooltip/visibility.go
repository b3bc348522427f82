package tooltip

// Visibility is the tooltip's display state.
type Visibility int

const (
	// Hidden is the initial state. The element carries display: none.
	Hidden Visibility = iota

	// Shown means the element is in layout and a placement was requested.
	Shown
)

// String returns the lowercase state name.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Shown:
		return "shown"
	default:
		return "unknown"
	}
}
