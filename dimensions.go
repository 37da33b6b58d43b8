package pluton

// DimensionsLayer holds annotation groups.
type DimensionsLayer = Layer[*DimensionsGroup]

func newDimensionsLayer(parent *Element, bus *EventBus) *DimensionsLayer {
	return newLayer(parent, "pluton-dimensions", bus, newDimensionsGroup)
}

// DimensionsGroup is an order-keyed pool of annotation entries. Each entry
// renders a stroke path, a filled path for arrow heads and one <text> per
// label.
type DimensionsGroup struct {
	recorder[*dimensionSlot]
	scratch DimensionsBuilder
}

func newDimensionsGroup(parent *Element) *DimensionsGroup {
	g := &DimensionsGroup{}
	g.init(parent, "dimensions", newDimensionSlot)
	return g
}

// Dimension consumes the next position of the group and returns its
// builder, emptied. Style.Class goes on the entry's container, Stroke on
// the leader path, Fill and FillRule on the arrow-head path.
func (g *DimensionsGroup) Dimension(style Style) *DimensionsBuilder {
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

type dimensionSlot struct {
	root    *Element
	stroke  *Element
	fill    *Element
	builder DimensionsBuilder

	rootAttrs   attrCache
	strokeAttrs attrCache
	fillAttrs   attrCache
	style       Style

	lastStroke string
	lastFill   string

	labels []*labelSlot
}

func newDimensionSlot(parent *Element) *dimensionSlot {
	s := &dimensionSlot{
		root:        NewElement("g"),
		stroke:      NewElement("path"),
		rootAttrs:   attrCache{},
		strokeAttrs: attrCache{},
		fillAttrs:   attrCache{},
	}
	s.root.AppendChild(s.stroke)
	parent.AppendChild(s.root)
	return s
}

func (s *dimensionSlot) applyStyle() {
	s.rootAttrs.set(s.root, "class", s.style.Class)
	s.strokeAttrs.set(s.stroke, "stroke", s.style.Stroke)
	if s.fill != nil {
		s.applyFillStyle()
	}
}

func (s *dimensionSlot) applyFillStyle() {
	s.fillAttrs.set(s.fill, "fill", s.style.Fill)
	s.fillAttrs.set(s.fill, "fill-rule", s.style.FillRule)
}

func (s *dimensionSlot) flush() {
	s.applyStyle()
	if d := s.builder.PathData(); d != s.lastStroke {
		s.lastStroke = d
		s.stroke.SetAttr("d", d)
	}

	if f := s.builder.FillData(); f != s.lastFill {
		if s.fill == nil {
			s.fill = NewElement("path")
			s.fill.AddClass("pluton-dimension-fill")
			s.root.InsertBefore(s.fill, s.firstLabel())
			s.applyFillStyle()
		}
		s.lastFill = f
		s.fill.SetAttr("d", f)
	}

	s.flushLabels(s.builder.Labels())
}

func (s *dimensionSlot) firstLabel() *Element {
	if len(s.labels) == 0 {
		return nil
	}
	return s.labels[0].el
}

// flushLabels reconciles label nodes by position, the same way the group
// reconciles entries.
func (s *dimensionSlot) flushLabels(labels []Label) {
	cursor := 0
	for _, l := range labels {
		i := cursor
		cursor++
		var ls *labelSlot
		if i < len(s.labels) {
			ls = s.labels[i]
		} else {
			ls = newLabelSlot(s.root)
			s.labels = append(s.labels, ls)
		}
		ls.apply(l)
	}
	for i := len(s.labels) - 1; i >= cursor; i-- {
		s.labels[i].el.Remove()
		s.labels[i] = nil
	}
	s.labels = s.labels[:cursor]
}

func (s *dimensionSlot) detach() {
	s.root.Remove()
}

type labelSlot struct {
	el       *Element
	attrs    attrCache
	lastText string
	hasText  bool
}

func newLabelSlot(parent *Element) *labelSlot {
	ls := &labelSlot{el: NewElement("text"), attrs: attrCache{}}
	// fixed attributes; the label is positioned by its transform
	ls.el.SetAttr("x", "0")
	ls.el.SetAttr("y", "0")
	ls.el.SetAttr("dominant-baseline", "middle")
	parent.AppendChild(ls.el)
	return ls
}

func (ls *labelSlot) apply(l Label) {
	// scale(1,-1) keeps text upright inside the Y-up scene root
	ls.attrs.set(ls.el, "transform", "translate("+formatNum(l.X)+" "+formatNum(l.Y)+") scale(1,-1)")
	ls.attrs.set(ls.el, "text-anchor", l.Align.String())
	ls.attrs.set(ls.el, "class", l.Class)
	if !ls.hasText || l.Text != ls.lastText {
		ls.hasText = true
		ls.lastText = l.Text
		ls.el.SetText(l.Text)
	}
}

// LabelCount returns how many label nodes an entry currently renders.
func (g *DimensionsGroup) LabelCount(i int) int {
	if i < 0 || i >= len(g.slots) {
		return 0
	}
	return len(g.slots[i].labels)
}
