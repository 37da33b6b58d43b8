package pluton

// attrCache remembers the last value written per attribute so repeated
// writes of the same value never reach the element.
type attrCache map[string]string

// set writes value to el unless it equals the cached value. An empty value
// removes the attribute.
func (c attrCache) set(el *Element, name, value string) {
	if prev, ok := c[name]; ok && prev == value {
		return
	}
	c[name] = value
	if value == "" {
		el.RemoveAttr(name)
		return
	}
	el.SetAttr(name, value)
}

// slot is one pooled entry of a group: the render-target nodes it owns plus
// the builder the draw code fills.
type slot interface {
	// flush serializes the builder and writes changed output to the nodes.
	flush()
	// detach removes the slot's nodes from the render target.
	detach()
}

// recorder is the order-keyed pool shared by every group kind. Identity is
// the position of a creation call within one commit: the nth call reuses
// the nth slot of the previous commit.
type recorder[S slot] struct {
	root   *Element
	slots  []S
	cursor int

	usage     DrawUsage
	committed bool

	tx, ty    float64
	transform string
	hidden    bool

	kind    string
	newSlot func(parent *Element) S
}

func (r *recorder[S]) init(parent *Element, kind string, newSlot func(parent *Element) S) {
	r.root = NewElement("g")
	r.kind = kind
	r.newSlot = newSlot
	parent.AppendChild(r.root)
}

// beginRecord rewinds the write cursor. Runs once per commit before any
// draw callback.
func (r *recorder[S]) beginRecord() {
	r.cursor = 0
}

// next consumes the cursor. It reports whether the slot was reused.
func (r *recorder[S]) next() (S, bool) {
	i := r.cursor
	r.cursor++
	if i < len(r.slots) {
		return r.slots[i], true
	}
	s := r.newSlot(r.root)
	r.slots = append(r.slots, s)
	return s, false
}

// claim advances the cursor of a frozen group without creating slots, so a
// switch back to dynamic during the same commit keeps the pooled entries.
// It reports false once the cursor has passed the pool.
func (r *recorder[S]) claim() (S, bool) {
	i := r.cursor
	if i >= len(r.slots) {
		var zero S
		return zero, false
	}
	r.cursor++
	return r.slots[i], true
}

// commit flushes every slot below the cursor and drops the rest. Static
// groups commit once and then skip until switched back to dynamic.
func (r *recorder[S]) commit() {
	if r.frozen() {
		return
	}
	for i := 0; i < r.cursor; i++ {
		r.slots[i].flush()
	}
	r.trim(r.cursor)
	r.committed = true
	if globalDebug {
		debugCheckPoolSize(r.kind, len(r.slots))
	}
}

func (r *recorder[S]) trim(n int) {
	if len(r.slots) <= n {
		return
	}
	var zero S
	for i := len(r.slots) - 1; i >= n; i-- {
		r.slots[i].detach()
		r.slots[i] = zero
	}
	r.slots = r.slots[:n]
}

// Clear drops the whole pool, detaches every node and resets the group
// transform. A static group commits once more after a Clear.
func (r *recorder[S]) Clear() {
	var zero S
	for i := range r.slots {
		r.slots[i] = zero
	}
	r.slots = r.slots[:0]
	r.cursor = 0
	r.committed = false
	r.root.ReplaceChildren()
	r.tx, r.ty = 0, 0
	r.applyTransform()
}

// Translate offsets the whole group.
func (r *recorder[S]) Translate(x, y float64) {
	r.tx, r.ty = x, y
	r.applyTransform()
}

// Offset returns the current group translation.
func (r *recorder[S]) Offset() (x, y float64) {
	return r.tx, r.ty
}

func (r *recorder[S]) applyTransform() {
	t := ""
	if r.tx != 0 || r.ty != 0 {
		t = "translate(" + formatNum(r.tx) + ", " + formatNum(r.ty) + ")"
	}
	if t == r.transform {
		return
	}
	r.transform = t
	if t == "" {
		r.root.RemoveAttr("transform")
		return
	}
	r.root.SetAttr("transform", t)
}

// SetDrawUsage switches between static and dynamic reconciliation. Any
// change re-arms the one-shot commit of static groups.
func (r *recorder[S]) SetDrawUsage(u DrawUsage) {
	if u == r.usage {
		return
	}
	r.usage = u
	r.committed = false
}

// frozen reports whether a static group has already committed. Creation
// calls on a frozen group only move the cursor; nothing reaches the nodes
// until the group commits again.
func (r *recorder[S]) frozen() bool {
	return r.usage == DrawStatic && r.committed
}

// DrawUsage returns the current usage.
func (r *recorder[S]) DrawUsage() DrawUsage {
	return r.usage
}

// Visible shows or hides the group without touching its pool.
func (r *recorder[S]) Visible(visible bool) {
	if visible == !r.hidden {
		return
	}
	r.hidden = !visible
	if r.hidden {
		r.root.SetAttr("display", "none")
	} else {
		r.root.RemoveAttr("display")
	}
}

// Len returns the number of pooled entries.
func (r *recorder[S]) Len() int {
	return len(r.slots)
}

// Root returns the group's container element.
func (r *recorder[S]) Root() *Element {
	return r.root
}

// globalDebug mirrors the most recently set Scene debug flag so that groups
// (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
