package tooltip

import "github.com/vango-dev/rating/pkg/dom"

// Trigger events. These sets are fixed for every tooltip.
var (
	enterEvents = []string{"pointerenter", "focus"}
	leaveEvents = []string{"pointerleave", "blur", "keydown", "click"}
)

// EnterEvents returns the event names that show a tooltip.
func EnterEvents() []string { return append([]string(nil), enterEvents...) }

// LeaveEvents returns the event names that hide a tooltip.
func LeaveEvents() []string { return append([]string(nil), leaveEvents...) }

// rebind moves the show/hide listeners from prev to next. Unbinding from
// prev completes before anything is bound to next. Either side may be nil.
// prev == next still unbinds and rebinds.
func rebind(prev, next *dom.Element, show, hide dom.EventListener) {
	if prev != nil {
		for _, name := range enterEvents {
			prev.RemoveEventListener(name, show)
		}
		for _, name := range leaveEvents {
			prev.RemoveEventListener(name, hide)
		}
	}
	if next != nil {
		for _, name := range enterEvents {
			next.AddEventListener(name, show)
		}
		for _, name := range leaveEvents {
			next.AddEventListener(name, hide)
		}
	}
}
