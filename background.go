package pluton

// backgroundPad extends the graph paper past the viewport so panning does
// not expose its edge before the fade mask does.
const backgroundPad = 100

// Background draws the graph paper and the x/y axes under the geometry. It
// is sized to the viewport and resynced when the viewport changes.
type Background struct {
	root  *Element
	paper *Element
	axes  *Element
	xAxis *Element
	yAxis *Element

	paperAttrs attrCache
	xAttrs     attrCache
	yAttrs     attrCache
}

func newBackground(parent *Element) *Background {
	b := &Background{
		root:       NewElement("g"),
		paper:      NewElement("rect"),
		xAxis:      NewElement("line"),
		yAxis:      NewElement("line"),
		paperAttrs: attrCache{},
		xAttrs:     attrCache{},
		yAttrs:     attrCache{},
	}
	b.root.AddClass("pluton-layer", "pluton-background")
	parent.AppendChild(b.root)

	b.paper.AddClass("pluton-paper-background")
	b.paper.SetAttr("fill", "url(#"+GraphPaperPatternID+")")
	b.paper.SetAttr("mask", "url(#"+GraphPaperMaskID+")")
	b.root.AppendChild(b.paper)

	b.axes = NewElement("g")
	b.axes.AddClass("pluton-axes")
	b.xAxis.AddClass("pluton-axis", "pluton-axis-x")
	b.yAxis.AddClass("pluton-axis", "pluton-axis-y")
	b.axes.AppendChild(b.xAxis)
	b.axes.AppendChild(b.yAxis)
	b.root.AppendChild(b.axes)
	return b
}

// Root returns the background layer element.
func (b *Background) Root() *Element {
	return b.root
}

// Sync sizes the paper and axes to vp. Unchanged values are not rewritten.
func (b *Background) Sync(vp Rect) {
	halfW, halfH := vp.Width/2, vp.Height/2

	b.paperAttrs.set(b.paper, "x", formatNum(-halfW-backgroundPad))
	b.paperAttrs.set(b.paper, "y", formatNum(-halfH-backgroundPad))
	b.paperAttrs.set(b.paper, "width", formatNum(vp.Width+backgroundPad*2))
	b.paperAttrs.set(b.paper, "height", formatNum(vp.Height+backgroundPad*2))

	b.xAttrs.set(b.xAxis, "x1", formatNum(-halfW))
	b.xAttrs.set(b.xAxis, "y1", "0")
	b.xAttrs.set(b.xAxis, "x2", formatNum(halfW))
	b.xAttrs.set(b.xAxis, "y2", "0")

	b.yAttrs.set(b.yAxis, "x1", "0")
	b.yAttrs.set(b.yAxis, "y1", formatNum(-halfH))
	b.yAttrs.set(b.yAxis, "x2", "0")
	b.yAttrs.set(b.yAxis, "y2", formatNum(halfH))
}

// SetVisible shows or hides the whole background.
func (b *Background) SetVisible(v bool) {
	setDisplay(b.root, v)
}

// SetGridVisible shows or hides the graph paper, leaving the axes alone.
func (b *Background) SetGridVisible(v bool) {
	setDisplay(b.paper, v)
}

// SetAxesVisible shows or hides the axes, leaving the graph paper alone.
func (b *Background) SetAxesVisible(v bool) {
	setDisplay(b.axes, v)
}

// GridVisible reports whether the graph paper is shown.
func (b *Background) GridVisible() bool {
	_, hidden := b.paper.Attr("display")
	return !hidden
}

// AxesVisible reports whether the axes are shown.
func (b *Background) AxesVisible() bool {
	_, hidden := b.axes.Attr("display")
	return !hidden
}

func setDisplay(el *Element, visible bool) {
	_, hidden := el.Attr("display")
	switch {
	case visible && hidden:
		el.RemoveAttr("display")
	case !visible && !hidden:
		el.SetAttr("display", "none")
	}
}
