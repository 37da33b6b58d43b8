package pluton

// GeometryLayer holds geometry groups.
type GeometryLayer = Layer[*GeometryGroup]

func newGeometryLayer(parent *Element, bus *EventBus) *GeometryLayer {
	return newLayer(parent, "pluton-geometry", bus, newGeometryGroup)
}

// GeometryGroup is an order-keyed pool of <path> elements.
type GeometryGroup struct {
	recorder[*pathSlot]
	scratch PathBuilder
}

func newGeometryGroup(parent *Element) *GeometryGroup {
	g := &GeometryGroup{}
	g.init(parent, "geometry", newPathSlot)
	return g
}

// Path consumes the next position of the group and returns its builder,
// emptied. The nth call of a commit reuses the nth path of the previous
// commit, so draw code must issue calls in a stable order.
func (g *GeometryGroup) Path(style Style) *PathBuilder {
	if g.frozen() {
		s, ok := g.claim()
		if !ok {
			g.scratch.Reset()
			return &g.scratch
		}
		s.builder.Reset()
		s.style = style
		return &s.builder
	}
	s, reused := g.next()
	if reused {
		s.builder.Reset()
	}
	s.style = style
	return &s.builder
}

type pathSlot struct {
	el      *Element
	builder PathBuilder
	attrs   attrCache
	style   Style
	lastD   string
}

func newPathSlot(parent *Element) *pathSlot {
	s := &pathSlot{el: NewElement("path"), attrs: attrCache{}}
	parent.AppendChild(s.el)
	return s
}

func (s *pathSlot) flush() {
	s.attrs.set(s.el, "class", s.style.Class)
	s.attrs.set(s.el, "fill", s.style.Fill)
	s.attrs.set(s.el, "stroke", s.style.Stroke)
	s.attrs.set(s.el, "fill-rule", s.style.FillRule)

	d := s.builder.String()
	if d == s.lastD {
		return
	}
	s.lastD = d
	s.el.SetAttr("d", d)
}

func (s *pathSlot) detach() {
	s.el.Remove()
}
