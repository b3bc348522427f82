package dom

import (
	"sort"
	"strings"
)

// Style is an element's inline style declaration.
type Style struct {
	owner *Element
	props map[string]string
}

// Get returns the value of property, or "".
func (s *Style) Get(property string) string {
	return s.props[property]
}

// SetProperty sets property to value. An empty value removes the property.
func (s *Style) SetProperty(property, value string) {
	property = strings.TrimSpace(strings.ToLower(property))
	value = strings.TrimSpace(value)
	if property == "" {
		return
	}
	if value == "" {
		s.RemoveProperty(property)
		return
	}
	if s.props[property] == value {
		return
	}
	if s.props == nil {
		s.props = make(map[string]string)
	}
	s.props[property] = value
	s.changed()
}

// RemoveProperty removes property.
func (s *Style) RemoveProperty(property string) {
	if _, ok := s.props[property]; !ok {
		return
	}
	delete(s.props, property)
	s.changed()
}

// Len returns the number of set properties.
func (s *Style) Len() int {
	return len(s.props)
}

// CSSText serializes the declaration with properties sorted by name, e.g.
// "left: 10px; top: 20px;".
func (s *Style) CSSText() string {
	if len(s.props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s.props))
	for k := range s.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(s.props[k])
		sb.WriteByte(';')
	}
	return sb.String()
}

// SetCSSText replaces the whole declaration. An empty string clears every
// inline property.
func (s *Style) SetCSSText(text string) {
	next := parseCSSText(text)
	if equalProps(s.props, next) {
		return
	}
	s.props = next
	s.changed()
}

// Hidden reports whether the element is taken out of layout by its inline
// style.
func (s *Style) Hidden() bool {
	return s.props["display"] == "none"
}

// Snapshot returns a copy of the properties.
func (s *Style) Snapshot() map[string]string {
	out := make(map[string]string, len(s.props))
	for k, v := range s.props {
		out[k] = v
	}
	return out
}

func (s *Style) changed() {
	if s.owner != nil && s.owner.doc != nil {
		s.owner.doc.markStyleDirty(s.owner)
	}
}

func parseCSSText(text string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(strings.ToLower(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		props[name] = value
	}
	return props
}

func equalProps(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
