package dom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vango-dev/rating/pkg/floating"
)

type hooks struct {
	connected, disconnected int
}

func (h *hooks) Connected()    { h.connected++ }
func (h *hooks) Disconnected() { h.disconnected++ }

func TestPreviousElementSibling(t *testing.T) {
	doc := NewDocument(800, 600)
	div := doc.CreateElement("div")
	a := doc.CreateElement("button")
	b := doc.CreateElement("span")
	_ = doc.Body().AppendChild(div)
	_ = div.AppendChild(a)
	_ = div.AppendChild(b)

	if got := b.PreviousElementSibling(); got != a {
		t.Errorf("PreviousElementSibling(b) = %v, want a", got)
	}
	if got := a.PreviousElementSibling(); got != nil {
		t.Errorf("PreviousElementSibling(first) = %v, want nil", got)
	}
	if got := a.NextElementSibling(); got != b {
		t.Errorf("NextElementSibling(a) = %v, want b", got)
	}
	if got := doc.CreateElement("p").PreviousElementSibling(); got != nil {
		t.Errorf("detached PreviousElementSibling = %v, want nil", got)
	}
}

func TestInsertBeforeAndRemove(t *testing.T) {
	doc := NewDocument(800, 600)
	parent := doc.CreateElement("div")
	a, b, c := doc.CreateElement("a"), doc.CreateElement("b"), doc.CreateElement("c")
	_ = parent.AppendChild(a)
	_ = parent.AppendChild(c)
	if err := parent.InsertBefore(b, c); err != nil {
		t.Fatal(err)
	}

	kids := parent.Children()
	if len(kids) != 3 || kids[0] != a || kids[1] != b || kids[2] != c {
		t.Fatalf("children = %v", kids)
	}

	b.Remove()
	if b.Parent() != nil || len(parent.Children()) != 2 {
		t.Error("Remove did not detach")
	}
	if err := a.AppendChild(parent); !errors.Is(err, ErrHierarchy) {
		t.Errorf("cycle err = %v, want ErrHierarchy", err)
	}
}

func TestInsertBeforeItself(t *testing.T) {
	doc := NewDocument(800, 600)
	div := doc.CreateElement("div")
	a, b, c := doc.CreateElement("a"), doc.CreateElement("b"), doc.CreateElement("c")
	_ = doc.Body().AppendChild(div)
	_ = div.AppendChild(a)
	_ = div.AppendChild(b)
	_ = div.AppendChild(c)

	h := &hooks{}
	b.Define(h)
	l := NewListener(func(*Event) {})
	a.AddEventListener("focus", l)

	for _, el := range []*Element{b, c} {
		if err := div.InsertBefore(el, el); err != nil {
			t.Fatalf("InsertBefore(%s, %s): %v", el.Tag(), el.Tag(), err)
		}
	}

	kids := div.Children()
	if len(kids) != 3 || kids[0] != a || kids[1] != b || kids[2] != c {
		t.Fatalf("children = %v, want order kept", kids)
	}
	if !b.IsConnected() || b.Parent() != div {
		t.Error("b left detached")
	}
	if h.connected != 2 || h.disconnected != 1 {
		t.Errorf("hooks: connected=%d disconnected=%d, want 2/1", h.connected, h.disconnected)
	}
	if !a.HasEventListener("focus", l) {
		t.Error("sibling lost its listener")
	}
}

func TestCustomElementHooks(t *testing.T) {
	doc := NewDocument(800, 600)
	container := doc.CreateElement("div")
	el := doc.CreateElement("x-widget")
	h := &hooks{}
	el.Define(h)

	_ = container.AppendChild(el)
	if h.connected != 0 {
		t.Fatal("connected fired for a detached subtree")
	}

	_ = doc.Body().AppendChild(container)
	if h.connected != 1 || !el.IsConnected() {
		t.Fatalf("connected = %d, want 1", h.connected)
	}

	// Moving within the document reconnects.
	other := doc.CreateElement("div")
	_ = doc.Body().AppendChild(other)
	_ = other.AppendChild(el)
	if h.disconnected != 1 || h.connected != 2 {
		t.Errorf("after move: connected=%d disconnected=%d", h.connected, h.disconnected)
	}

	container.Remove()
	if h.disconnected != 1 {
		t.Error("removing an unrelated subtree disconnected the widget")
	}
	other.Remove()
	if h.disconnected != 2 {
		t.Errorf("disconnected = %d, want 2", h.disconnected)
	}
}

func TestDefineOnConnectedElement(t *testing.T) {
	doc := NewDocument(800, 600)
	el := doc.CreateElement("x-widget")
	_ = doc.Body().AppendChild(el)

	h := &hooks{}
	el.Define(h)
	if h.connected != 1 {
		t.Errorf("connected = %d, want 1", h.connected)
	}
}

func TestEventListeners(t *testing.T) {
	doc := NewDocument(800, 600)
	el := doc.CreateElement("button")

	var calls []string
	l := NewListener(func(e *Event) { calls = append(calls, e.Type) })

	el.AddEventListener("focus", l)
	el.AddEventListener("focus", l)
	if n := el.ListenerCount("focus"); n != 1 {
		t.Fatalf("duplicate add registered %d listeners", n)
	}

	el.Dispatch(NewEvent("focus"))
	el.Dispatch(NewEvent("blur"))
	if len(calls) != 1 || calls[0] != "focus" {
		t.Errorf("calls = %v", calls)
	}

	el.RemoveEventListener("focus", l)
	el.RemoveEventListener("focus", l)
	if el.ListenerCount("") != 0 || el.HasEventListener("focus", l) {
		t.Error("listener not removed")
	}
}

func TestDispatchSnapshot(t *testing.T) {
	doc := NewDocument(800, 600)
	el := doc.CreateElement("button")

	var second *Listener
	count := 0
	first := NewListener(func(*Event) {
		el.RemoveEventListener("click", second)
	})
	second = NewListener(func(*Event) { count++ })
	el.AddEventListener("click", first)
	el.AddEventListener("click", second)

	el.Dispatch(NewEvent("click"))
	if count != 1 {
		t.Errorf("listener removed mid-dispatch ran %d times, want 1", count)
	}
	el.Dispatch(NewEvent("click"))
	if count != 1 {
		t.Error("removed listener still runs on the next dispatch")
	}
}

func TestStyle(t *testing.T) {
	doc := NewDocument(800, 600)
	el := doc.CreateElement("div")
	s := el.Style()

	s.SetCSSText("top: 5px; display: none; ;bogus")
	if !s.Hidden() || s.Get("top") != "5px" || s.Len() != 2 {
		t.Fatalf("parsed = %q", s.CSSText())
	}

	s.SetProperty("left", "10px")
	if got, want := s.CSSText(), "display: none; left: 10px; top: 5px;"; got != want {
		t.Errorf("CSSText = %q, want %q", got, want)
	}

	s.SetCSSText("")
	if s.Len() != 0 || s.Hidden() {
		t.Errorf("SetCSSText(\"\") left %q", s.CSSText())
	}
}

func TestStyleChangeTracking(t *testing.T) {
	doc := NewDocument(800, 600)
	a, b := doc.CreateElement("a"), doc.CreateElement("b")

	var hooked int
	doc.OnStyleChange(func(*Element) { hooked++ })

	a.Style().SetProperty("top", "1px")
	b.Style().SetProperty("top", "1px")
	a.Style().SetProperty("left", "1px")
	a.Style().SetProperty("left", "1px")

	got := doc.TakeStyleChanges()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("changes = %v", got)
	}
	if hooked != 3 {
		t.Errorf("hook ran %d times, want 3", hooked)
	}
	if len(doc.TakeStyleChanges()) != 0 {
		t.Error("changes not reset")
	}
}

func TestGetElementByID(t *testing.T) {
	doc := NewDocument(800, 600)
	el := doc.CreateElement("button")
	el.SetAttribute("id", "a")
	if doc.GetElementByID("a") != nil {
		t.Error("found a detached element")
	}
	_ = doc.Body().AppendChild(el)
	if doc.GetElementByID("a") != el {
		t.Error("connected element not found")
	}
}

func TestSettleRunsBackgroundWork(t *testing.T) {
	doc := NewDocument(800, 600)

	var order []string
	doc.Post(func() {
		order = append(order, "first")
		doc.Go(func() {
			time.Sleep(5 * time.Millisecond)
			doc.Post(func() { order = append(order, "continuation") })
		})
	})
	doc.Post(func() { order = append(order, "second") })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := doc.Settle(ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{"first", "second", "continuation"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	doc := NewDocument(800, 600)
	ctx, cancel := context.WithCancel(context.Background())

	ran := make(chan struct{})
	doc.Post(func() {
		close(ran)
		cancel()
	})
	if err := doc.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run err = %v, want context.Canceled", err)
	}
	select {
	case <-ran:
	default:
		t.Error("queued task did not run")
	}
}

func TestPlatform(t *testing.T) {
	doc := NewDocument(800, 600)
	doc.SetScroll(0, 100)
	ref, tip := doc.CreateElement("button"), doc.CreateElement("div")
	ref.SetRect(floating.Rect{X: 10, Y: 20, Width: 30, Height: 40})
	tip.SetRect(floating.Rect{X: 500, Y: 500, Width: 50, Height: 10})

	if _, err := doc.ElementRects(ref, tip, floating.Fixed); !errors.Is(err, ErrDetached) {
		t.Fatalf("err = %v, want ErrDetached", err)
	}
	_ = doc.Body().AppendChild(ref)
	_ = doc.Body().AppendChild(tip)

	fixed, err := doc.ElementRects(ref, tip, floating.Fixed)
	if err != nil {
		t.Fatal(err)
	}
	if fixed.Reference.Y != 20 || fixed.Floating.X != 0 || fixed.Floating.Width != 50 {
		t.Errorf("fixed rects = %+v", fixed)
	}
	abs, _ := doc.ElementRects(ref, tip, floating.Absolute)
	if abs.Reference.Y != 120 {
		t.Errorf("absolute reference Y = %v, want 120", abs.Reference.Y)
	}

	clip, _ := doc.ClippingRect(tip, floating.Absolute)
	if clip.Y != 100 || clip.Height != 600 {
		t.Errorf("absolute clip = %+v", clip)
	}
}
