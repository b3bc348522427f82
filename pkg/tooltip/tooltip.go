package tooltip

import (
	"context"
	"log/slog"
	"strconv"

	rerrors "github.com/vango-dev/rating/internal/errors"
	"github.com/vango-dev/rating/pkg/dom"
	"github.com/vango-dev/rating/pkg/floating"
	"github.com/vango-dev/rating/pkg/vdom"
)

// Tag is the custom element name of a tooltip.
const Tag = "rating-tooltip"

// DefaultOffset is the default gap between anchor and tooltip in pixels.
const DefaultOffset = 4.0

// Observer receives tooltip lifecycle notifications. All methods run on the
// document loop.
type Observer interface {
	Transition(from, to Visibility)
	PlacementApplied(res floating.Result)
	PlacementDiscarded()
	PlacementFailed(err error)
	NullAnchor()
}

// Tooltip is a floating label attached to an anchor element. It shows on
// pointerenter/focus of the anchor and hides on pointerleave, blur, keydown
// and click.
//
// A Tooltip must be used from its document's loop.
type Tooltip struct {
	el  *dom.Element
	doc *dom.Document

	target    *dom.Element
	bound     *dom.Element
	connected bool

	offset float64
	state  Visibility
	token  uint64

	show, hide *dom.Listener

	ctx        context.Context
	positioner Positioner
	observer   Observer
	logger     *slog.Logger
}

// Option configures a Tooltip.
type Option func(*Tooltip)

// WithPositioner replaces the default Engine.
func WithPositioner(p Positioner) Option {
	return func(t *Tooltip) {
		t.positioner = p
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(t *Tooltip) {
		t.observer = o
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tooltip) {
		t.logger = l
	}
}

// WithOffset sets the initial offset.
func WithOffset(px float64) Option {
	return func(t *Tooltip) {
		t.offset = px
	}
}

// WithContext sets the context passed to the positioner.
func WithContext(ctx context.Context) Option {
	return func(t *Tooltip) {
		t.ctx = ctx
	}
}

// New creates a detached tooltip element in doc. Insert Element() into the
// tree to attach it.
func New(doc *dom.Document, opts ...Option) *Tooltip {
	t := &Tooltip{
		doc:    doc,
		el:     doc.CreateElement(Tag),
		offset: DefaultOffset,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.positioner == nil {
		t.positioner = NewEngine(doc)
	}
	if t.observer == nil {
		t.observer = nopObserver{}
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	t.logger = t.logger.With("component", "tooltip")

	t.show = dom.NewListener(func(*dom.Event) { t.Show() })
	t.hide = dom.NewListener(func(*dom.Event) { t.Hide() })
	t.el.Define(t)
	return t
}

// Element returns the tooltip's element.
func (t *Tooltip) Element() *dom.Element { return t.el }

// Target returns the anchor, or nil.
func (t *Tooltip) Target() *dom.Element { return t.target }

// SetTarget makes next the anchor. Listeners move from the previous anchor
// to next before SetTarget returns. While the tooltip is detached the
// anchor is only recorded and bound on attach.
func (t *Tooltip) SetTarget(next *dom.Element) {
	t.target = next
	if t.connected {
		t.bind(next)
	}
}

// Offset returns the gap between anchor and tooltip.
func (t *Tooltip) Offset() float64 { return t.offset }

// SetOffset sets the gap used by subsequent placements.
func (t *Tooltip) SetOffset(px float64) { t.offset = px }

// State returns the current visibility.
func (t *Tooltip) State() Visibility { return t.state }

// Connected attaches the tooltip: it is hidden, the anchor defaults to the
// previous sibling when none was set, and listeners are bound.
func (t *Tooltip) Connected() {
	t.connected = true
	t.Hide()
	if t.target == nil {
		t.target = resolveDefaultTarget(t.el)
	}
	t.bind(t.target)
}

// Disconnected unbinds from the anchor and drops in-flight placements. The
// anchor is kept for a later reattach.
func (t *Tooltip) Disconnected() {
	t.connected = false
	t.bind(nil)
	t.token++
}

// Show clears inline styles and requests a placement. Without an anchor it
// does nothing and reports E101.
func (t *Tooltip) Show() {
	if t.target == nil {
		t.logger.Warn("show without anchor", "error", rerrors.New("E101"))
		t.observer.NullAnchor()
		return
	}

	t.el.Style().SetCSSText("")
	t.transition(Shown)

	t.token++
	token := t.token
	req := Request{
		Token:             token,
		Target:            t.target,
		Floating:          t.el,
		Offset:            t.offset,
		AllowedPlacements: []floating.Placement{floating.Top},
	}
	t.positioner.Position(t.ctx, req, func(res floating.Result, err error) {
		t.applyPlacement(token, res, err)
	})
}

// Hide takes the tooltip out of layout and discards pending placements.
func (t *Tooltip) Hide() {
	t.token++
	t.el.Style().SetProperty("display", "none")
	t.transition(Hidden)
}

// Render returns the tooltip's content: a passthrough slot for its
// children.
func (t *Tooltip) Render() *vdom.VNode {
	return vdom.Slot()
}

// Markup returns the host element markup with children inside it.
func Markup(children ...any) *vdom.VNode {
	return vdom.CustomElement(Tag, append([]any{vdom.Role("tooltip")}, children...)...)
}

func (t *Tooltip) applyPlacement(token uint64, res floating.Result, err error) {
	if token != t.token {
		t.logger.Debug("stale placement discarded", "token", token, "latest", t.token)
		t.observer.PlacementDiscarded()
		return
	}
	if err != nil {
		t.logger.Warn("placement failed", "error", rerrors.FromError(err, "E102").WithElement(t.target.ID()))
		t.observer.PlacementFailed(err)
		return
	}
	if res.ResetLimit {
		t.logger.Warn("placement reset limit", "error", rerrors.New("E103"), "resets", res.Resets)
	}

	style := t.el.Style()
	style.SetProperty("left", px(res.X))
	style.SetProperty("top", px(res.Y))
	t.observer.PlacementApplied(res)
}

func (t *Tooltip) bind(next *dom.Element) {
	rebind(t.bound, next, t.show, t.hide)
	t.bound = next
}

func (t *Tooltip) transition(to Visibility) {
	from := t.state
	t.state = to
	t.observer.Transition(from, to)
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

type nopObserver struct{}

func (nopObserver) Transition(Visibility, Visibility) {}
func (nopObserver) PlacementApplied(floating.Result)  {}
func (nopObserver) PlacementDiscarded()               {}
func (nopObserver) PlacementFailed(error)             {}
func (nopObserver) NullAnchor()                       {}
