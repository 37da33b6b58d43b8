package pluton

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"
)

// Attr is a single element attribute.
type Attr struct {
	Name, Value string
}

// Element is a node of the in-memory SVG render target. Attributes keep
// their insertion order so serialized output is stable.
type Element struct {
	Tag string

	attrs    []Attr
	text     string
	parent   *Element
	children []*Element

	// writes counts attribute and text mutations applied to this element.
	writes int
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// AppendChild attaches c as the last child, detaching it from any previous parent.
func (e *Element) AppendChild(c *Element) {
	if c.parent != nil {
		c.Remove()
	}
	c.parent = e
	e.children = append(e.children, c)
}

// InsertBefore attaches c before ref. A nil or foreign ref appends.
func (e *Element) InsertBefore(c, ref *Element) {
	if ref == nil || ref.parent != e {
		e.AppendChild(c)
		return
	}
	if c.parent != nil {
		c.Remove()
	}
	for i, ch := range e.children {
		if ch == ref {
			e.children = append(e.children, nil)
			copy(e.children[i+1:], e.children[i:])
			e.children[i] = c
			c.parent = e
			return
		}
	}
}

// Remove detaches e from its parent. It is a no-op for detached elements.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, ch := range p.children {
		if ch == e {
			copy(p.children[i:], p.children[i+1:])
			p.children[len(p.children)-1] = nil
			p.children = p.children[:len(p.children)-1]
			break
		}
	}
	e.parent = nil
}

// ReplaceChildren detaches every child and attaches cs in order.
func (e *Element) ReplaceChildren(cs ...*Element) {
	for _, ch := range e.children {
		ch.parent = nil
	}
	e.children = e.children[:0]
	for _, c := range cs {
		e.AppendChild(c)
	}
}

// Parent returns the parent element or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (e *Element) Children() []*Element {
	return e.children
}

// SetAttr writes an attribute, replacing any existing value.
func (e *Element) SetAttr(name, value string) {
	e.writes++
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes an attribute. Removing an absent attribute is not a write.
func (e *Element) RemoveAttr(name string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.writes++
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns the attributes in insertion order. The returned slice MUST
// NOT be mutated.
func (e *Element) Attrs() []Attr {
	return e.attrs
}

// AddClass appends class names to the class attribute, skipping duplicates.
func (e *Element) AddClass(names ...string) {
	cur, _ := e.Attr("class")
	fields := strings.Fields(cur)
	changed := false
	for _, n := range names {
		if !containsString(fields, n) {
			fields = append(fields, n)
			changed = true
		}
	}
	if changed {
		e.SetAttr("class", strings.Join(fields, " "))
	}
}

// HasClass reports whether name is one of the element's classes.
func (e *Element) HasClass(name string) bool {
	cur, _ := e.Attr("class")
	return containsString(strings.Fields(cur), name)
}

// SetText replaces the element's text content.
func (e *Element) SetText(s string) {
	e.writes++
	e.text = s
}

// Text returns the element's text content.
func (e *Element) Text() string {
	return e.text
}

// Writes returns how many attribute and text mutations this element received.
func (e *Element) Writes() int {
	return e.writes
}

// Clone deep-copies the subtree rooted at e. The clone is detached and its
// write counters start at zero.
func (e *Element) Clone() *Element {
	c := &Element{Tag: e.Tag, text: e.text}
	if len(e.attrs) > 0 {
		c.attrs = make([]Attr, len(e.attrs))
		copy(c.attrs, e.attrs)
	}
	for _, ch := range e.children {
		cc := ch.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// Walk calls fn for e and every descendant in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, ch := range e.children {
		ch.Walk(fn)
	}
}

// Find returns the first element in document order whose tag matches and
// that carries class (any class when class is empty).
func (e *Element) Find(tag, class string) *Element {
	var found *Element
	e.Walk(func(el *Element) {
		if found != nil || el.Tag != tag {
			return
		}
		if class == "" || el.HasClass(class) {
			found = el
		}
	})
	return found
}

// WriteXML serializes the subtree as XML.
func (e *Element) WriteXML(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := e.writeXML(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// String returns the subtree serialized as XML.
func (e *Element) String() string {
	var sb strings.Builder
	_ = e.WriteXML(&sb)
	return sb.String()
}

func (e *Element) writeXML(w *bufio.Writer) error {
	w.WriteByte('<')
	w.WriteString(e.Tag)
	for _, a := range e.attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
			return err
		}
		w.WriteByte('"')
	}
	if len(e.children) == 0 && e.text == "" {
		_, err := w.WriteString("/>")
		return err
	}
	w.WriteByte('>')
	if e.text != "" {
		if err := xml.EscapeText(w, []byte(e.text)); err != nil {
			return err
		}
	}
	for _, ch := range e.children {
		if err := ch.writeXML(w); err != nil {
			return err
		}
	}
	w.WriteString("</")
	w.WriteString(e.Tag)
	_, err := w.WriteString(">")
	return err
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
