package pluton

// recordable is implemented by every group kind a Layer can hold.
type recordable interface {
	beginRecord()
	commit()
}

// Layer is a collection of groups sharing one purpose. It brackets every
// commit: CommitStart rewinds each group's cursor and CommitEnd reconciles
// them, in creation order.
type Layer[G recordable] struct {
	root     *Element
	groups   []G
	newGroup func(parent *Element) G
	unsubs   []func()
	attrs    attrCache
}

func newLayer[G recordable](parent *Element, class string, bus *EventBus, newGroup func(parent *Element) G) *Layer[G] {
	l := &Layer[G]{
		root:     NewElement("g"),
		newGroup: newGroup,
		attrs:    attrCache{},
	}
	l.root.AddClass("pluton-layer", class)
	parent.AppendChild(l.root)
	l.unsubs = append(l.unsubs,
		On(bus, CommitStart, func(struct{}) { l.beginRecord() }),
		On(bus, CommitEnd, func(struct{}) { l.commit() }),
	)
	return l
}

// Group creates a new group at the end of the layer.
func (l *Layer[G]) Group() G {
	g := l.newGroup(l.root)
	l.groups = append(l.groups, g)
	return g
}

// Groups returns the layer's groups. The returned slice MUST NOT be mutated.
func (l *Layer[G]) Groups() []G {
	return l.groups
}

// Root returns the layer's container element.
func (l *Layer[G]) Root() *Element {
	return l.root
}

// SetFilter writes the layer's filter attribute. Empty removes it.
// Unchanged values are not rewritten.
func (l *Layer[G]) SetFilter(value string) {
	l.attrs.set(l.root, "filter", value)
}

func (l *Layer[G]) beginRecord() {
	for _, g := range l.groups {
		g.beginRecord()
	}
}

func (l *Layer[G]) commit() {
	for _, g := range l.groups {
		g.commit()
	}
}

// Dispose detaches the layer from commit events.
func (l *Layer[G]) Dispose() {
	for _, off := range l.unsubs {
		off()
	}
	l.unsubs = nil
}
