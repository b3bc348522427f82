package tooltip

import "github.com/vango-dev/rating/pkg/dom"

// resolveDefaultTarget returns the element immediately before el in its
// parent, or nil.
func resolveDefaultTarget(el *dom.Element) *dom.Element {
	return el.PreviousElementSibling()
}
