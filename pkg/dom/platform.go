package dom

import (
	"errors"

	"github.com/vango-dev/rating/pkg/floating"
)

// ErrDetached is returned when measuring an element that is not in the
// document.
var ErrDetached = errors.New("dom: element is not connected")

var _ floating.Platform[*Element] = (*Document)(nil)

// ElementRects measures reference and floating. Fixed rects are
// viewport-relative; absolute rects include the page scroll.
func (d *Document) ElementRects(reference, fl *Element, strategy floating.Strategy) (floating.ElementRects, error) {
	if !reference.IsConnected() || !fl.IsConnected() {
		return floating.ElementRects{}, ErrDetached
	}
	ref := reference.rect
	if strategy == floating.Absolute {
		ref = ref.Translate(d.scrollX, d.scrollY)
	}
	return floating.ElementRects{
		Reference: ref,
		Floating:  floating.Rect{Width: fl.rect.Width, Height: fl.rect.Height},
	}, nil
}

// ClippingRect returns the viewport in strategy's coordinate space.
func (d *Document) ClippingRect(_ *Element, strategy floating.Strategy) (floating.Rect, error) {
	clip := floating.Rect{Width: d.viewportW, Height: d.viewportH}
	if strategy == floating.Absolute {
		clip = clip.Translate(d.scrollX, d.scrollY)
	}
	return clip, nil
}
