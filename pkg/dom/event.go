package dom

// Event is a dispatched event.
type Event struct {
	// Type is the event name, e.g. "focus".
	Type string

	// Target is the element the event was dispatched on.
	Target *Element

	// Key is set for keyboard events.
	Key string
}

// NewEvent creates an event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// EventListener receives events. Listeners are identified by interface
// equality, so the same listener value added twice for one event type is
// registered once, and removal needs the value that was added.
type EventListener interface {
	HandleEvent(e *Event)
}

// Listener adapts a function to EventListener. Use it through a pointer:
// function values are not comparable.
type Listener struct {
	fn func(*Event)
}

// NewListener wraps fn.
func NewListener(fn func(*Event)) *Listener {
	return &Listener{fn: fn}
}

// HandleEvent calls the wrapped function.
func (l *Listener) HandleEvent(e *Event) {
	if l.fn != nil {
		l.fn(e)
	}
}

// AddEventListener registers l for typ. Adding a listener that is already
// registered for typ does nothing.
func (el *Element) AddEventListener(typ string, l EventListener) {
	if l == nil {
		return
	}
	for _, existing := range el.listeners[typ] {
		if existing == l {
			return
		}
	}
	if el.listeners == nil {
		el.listeners = make(map[string][]EventListener)
	}
	el.listeners[typ] = append(el.listeners[typ], l)
}

// RemoveEventListener unregisters l for typ. Removing a listener that is
// not registered does nothing.
func (el *Element) RemoveEventListener(typ string, l EventListener) {
	list := el.listeners[typ]
	for i, existing := range list {
		if existing == l {
			el.listeners[typ] = append(list[:i:i], list[i+1:]...)
			if len(el.listeners[typ]) == 0 {
				delete(el.listeners, typ)
			}
			return
		}
	}
}

// HasEventListener reports whether l is registered for typ.
func (el *Element) HasEventListener(typ string, l EventListener) bool {
	for _, existing := range el.listeners[typ] {
		if existing == l {
			return true
		}
	}
	return false
}

// ListenerCount returns the number of listeners registered for typ, or for
// every type when typ is empty.
func (el *Element) ListenerCount(typ string) int {
	if typ != "" {
		return len(el.listeners[typ])
	}
	n := 0
	for _, list := range el.listeners {
		n += len(list)
	}
	return n
}

// Dispatch delivers e to the listeners registered for e.Type at the time of
// the call, in registration order. Listeners added or removed during
// dispatch take effect on the next dispatch.
func (el *Element) Dispatch(e *Event) {
	e.Target = el
	list := el.listeners[e.Type]
	if len(list) == 0 {
		return
	}
	snapshot := append([]EventListener(nil), list...)
	for _, l := range snapshot {
		l.HandleEvent(e)
	}
}
