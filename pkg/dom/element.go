package dom

import (
	"errors"

	"github.com/vango-dev/rating/pkg/floating"
)

// ErrHierarchy is returned when an insertion would make an element its own
// ancestor.
var ErrHierarchy = errors.New("dom: element cannot contain itself")

// CustomElement is behavior attached to an element. The hooks run on the
// document loop when the element enters or leaves the document.
type CustomElement interface {
	Connected()
	Disconnected()
}

// Element is a node in a Document's tree.
type Element struct {
	doc       *Document
	tag       string
	id        string
	attrs     map[string]string
	parent    *Element
	children  []*Element
	style     Style
	rect      floating.Rect
	listeners map[string][]EventListener
	behavior  CustomElement
}

// Tag returns the element's tag name.
func (el *Element) Tag() string { return el.tag }

// ID returns the element's id attribute.
func (el *Element) ID() string { return el.id }

// SetID sets the id attribute.
func (el *Element) SetID(id string) { el.id = id }

// Attribute returns the named attribute.
func (el *Element) Attribute(name string) (string, bool) {
	if name == "id" {
		return el.id, el.id != ""
	}
	v, ok := el.attrs[name]
	return v, ok
}

// SetAttribute sets the named attribute.
func (el *Element) SetAttribute(name, value string) {
	if name == "id" {
		el.id = value
		return
	}
	if el.attrs == nil {
		el.attrs = make(map[string]string)
	}
	el.attrs[name] = value
}

// Style returns the inline style declaration.
func (el *Element) Style() *Style { return &el.style }

// Document returns the owner document.
func (el *Element) Document() *Document { return el.doc }

// Parent returns the parent element or nil.
func (el *Element) Parent() *Element { return el.parent }

// Children returns a copy of the child list.
func (el *Element) Children() []*Element {
	return append([]*Element(nil), el.children...)
}

// PreviousElementSibling returns the element immediately before el in its
// parent's child list, or nil for a first child or a detached element.
func (el *Element) PreviousElementSibling() *Element {
	if el.parent == nil {
		return nil
	}
	i := el.parent.indexOf(el)
	if i <= 0 {
		return nil
	}
	return el.parent.children[i-1]
}

// NextElementSibling returns the element immediately after el, or nil.
func (el *Element) NextElementSibling() *Element {
	if el.parent == nil {
		return nil
	}
	i := el.parent.indexOf(el)
	if i < 0 || i+1 >= len(el.parent.children) {
		return nil
	}
	return el.parent.children[i+1]
}

// AppendChild moves child to the end of el's child list.
func (el *Element) AppendChild(child *Element) error {
	return el.InsertBefore(child, nil)
}

// InsertBefore moves child before ref in el's child list. A nil ref appends.
// A child that is already in a tree is removed from it first, running its
// disconnect hooks before the connect hooks for the new position.
func (el *Element) InsertBefore(child, ref *Element) error {
	for p := el; p != nil; p = p.parent {
		if p == child {
			return ErrHierarchy
		}
	}
	if ref != nil && ref.parent != el {
		return errors.New("dom: reference is not a child of this element")
	}
	if ref == child {
		ref = child.NextElementSibling()
	}

	if child.parent != nil {
		child.Remove()
	}

	i := len(el.children)
	if ref != nil {
		if j := el.indexOf(ref); j >= 0 {
			i = j
		}
	}
	el.children = append(el.children, nil)
	copy(el.children[i+1:], el.children[i:])
	el.children[i] = child
	child.parent = el

	if child.IsConnected() {
		child.walk(func(e *Element) {
			if e.behavior != nil {
				e.behavior.Connected()
			}
		})
	}
	return nil
}

// Remove detaches el from its parent. Disconnect hooks run if el was in the
// document.
func (el *Element) Remove() {
	if el.parent == nil {
		return
	}
	wasConnected := el.IsConnected()
	parent := el.parent
	if i := parent.indexOf(el); i >= 0 {
		parent.children = append(parent.children[:i], parent.children[i+1:]...)
	}
	el.parent = nil

	if wasConnected {
		el.walk(func(e *Element) {
			if e.behavior != nil {
				e.behavior.Disconnected()
			}
		})
	}
}

// IsConnected reports whether el is in its document's tree.
func (el *Element) IsConnected() bool {
	root := el
	for root.parent != nil {
		root = root.parent
	}
	return el.doc != nil && root == el.doc.body
}

// Define attaches behavior to el. If el is already connected, Connected
// runs immediately.
func (el *Element) Define(behavior CustomElement) {
	el.behavior = behavior
	if behavior != nil && el.IsConnected() {
		behavior.Connected()
	}
}

// Behavior returns the attached behavior, or nil.
func (el *Element) Behavior() CustomElement { return el.behavior }

// Rect returns the element's bounding box relative to the viewport.
func (el *Element) Rect() floating.Rect { return el.rect }

// SetRect records the element's bounding box relative to the viewport.
func (el *Element) SetRect(r floating.Rect) { el.rect = r }

func (el *Element) indexOf(child *Element) int {
	for i, c := range el.children {
		if c == child {
			return i
		}
	}
	return -1
}

// walk visits el and its descendants in document order.
func (el *Element) walk(fn func(*Element)) {
	fn(el)
	for _, c := range el.Children() {
		c.walk(fn)
	}
}
