package dom

import (
	"context"
	"sync"

	"github.com/vango-dev/rating/pkg/floating"
)

// Document owns an element tree, the viewport it is laid out in and the
// loop that serializes work on it.
type Document struct {
	body *Element

	viewportW, viewportH float64
	scrollX, scrollY     float64

	dirty      []*Element
	dirtySeen  map[*Element]bool
	dirtyHooks []func(*Element)

	mu      sync.Mutex
	queue   []func()
	pending int
	wake    chan struct{}
}

// NewDocument creates an empty document with a viewport of the given size.
func NewDocument(width, height float64) *Document {
	d := &Document{
		viewportW: width,
		viewportH: height,
		dirtySeen: make(map[*Element]bool),
		wake:      make(chan struct{}, 1),
	}
	d.body = d.CreateElement("body")
	d.body.rect = floating.Rect{Width: width, Height: height}
	return d
}

// Body returns the root element.
func (d *Document) Body() *Element { return d.body }

// CreateElement creates a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	el := &Element{doc: d, tag: tag}
	el.style.owner = el
	return el
}

// GetElementByID returns the first connected element with id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	d.body.walk(func(e *Element) {
		if found == nil && e.id == id {
			found = e
		}
	})
	return found
}

// Viewport returns the viewport size.
func (d *Document) Viewport() (width, height float64) {
	return d.viewportW, d.viewportH
}

// SetViewport resizes the viewport.
func (d *Document) SetViewport(width, height float64) {
	d.viewportW, d.viewportH = width, height
	d.body.rect.Width, d.body.rect.Height = width, height
}

// Scroll returns the page scroll offset.
func (d *Document) Scroll() (x, y float64) {
	return d.scrollX, d.scrollY
}

// SetScroll sets the page scroll offset. Element rects stay
// viewport-relative; callers update them with the new layout.
func (d *Document) SetScroll(x, y float64) {
	d.scrollX, d.scrollY = x, y
}

// OnStyleChange registers fn to run when an element's inline style changes.
func (d *Document) OnStyleChange(fn func(*Element)) {
	d.dirtyHooks = append(d.dirtyHooks, fn)
}

// TakeStyleChanges returns the elements whose inline style changed since
// the last call, in first-change order.
func (d *Document) TakeStyleChanges() []*Element {
	out := d.dirty
	d.dirty = nil
	clear(d.dirtySeen)
	return out
}

func (d *Document) markStyleDirty(el *Element) {
	if !d.dirtySeen[el] {
		d.dirtySeen[el] = true
		d.dirty = append(d.dirty, el)
	}
	for _, fn := range d.dirtyHooks {
		fn(el)
	}
}

// Post queues fn to run on the loop. Safe from any goroutine.
func (d *Document) Post(fn func()) {
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	d.mu.Unlock()
	d.signal()
}

// Go runs fn on a new goroutine and tracks it until it returns. Settle
// waits for tracked work, so fn should Post its results before returning.
func (d *Document) Go(fn func()) {
	d.mu.Lock()
	d.pending++
	d.mu.Unlock()

	go func() {
		defer func() {
			d.mu.Lock()
			d.pending--
			d.mu.Unlock()
			d.signal()
		}()
		fn()
	}()
}

// Settle runs queued tasks on the calling goroutine until the queue is
// empty and no background work is pending.
func (d *Document) Settle(ctx context.Context) error {
	for {
		fn, idle := d.next()
		if fn != nil {
			fn()
			continue
		}
		if idle {
			return nil
		}
		select {
		case <-d.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Run runs queued tasks on the calling goroutine until ctx is done.
func (d *Document) Run(ctx context.Context) error {
	for {
		if fn, _ := d.next(); fn != nil {
			fn()
			continue
		}
		select {
		case <-d.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// next pops the next task. idle reports an empty queue with no pending
// background work.
func (d *Document) next() (fn func(), idle bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) > 0 {
		fn = d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		return fn, false
	}
	return nil, d.pending == 0
}

func (d *Document) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}
