package pluton

import "strings"

// PathBuilder accumulates SVG path commands for one geometry entry. Most
// commands are relative to the current point, which keeps shapes easy to
// translate.
type PathBuilder struct {
	cmds []string
}

// MoveTo starts a subpath at (x, y) relative to the current point.
func (b *PathBuilder) MoveTo(dx, dy float64) *PathBuilder {
	b.cmds = append(b.cmds, "m "+formatNum(dx)+" "+formatNum(dy))
	return b
}

// MoveToAbs starts a subpath at the absolute point (x, y).
func (b *PathBuilder) MoveToAbs(x, y float64) *PathBuilder {
	b.cmds = append(b.cmds, "M "+formatNum(x)+" "+formatNum(y))
	return b
}

// LineTo draws a line by (dx, dy) from the current point.
func (b *PathBuilder) LineTo(dx, dy float64) *PathBuilder {
	b.cmds = append(b.cmds, "l "+formatNum(dx)+" "+formatNum(dy))
	return b
}

// LineToAbs draws a line to the absolute point (x, y).
func (b *PathBuilder) LineToAbs(x, y float64) *PathBuilder {
	b.cmds = append(b.cmds, "L "+formatNum(x)+" "+formatNum(y))
	return b
}

// ArcTo draws a circular arc of radius r ending at (dx, dy) from the
// current point. A non-positive radius draws a sharp corner instead.
func (b *PathBuilder) ArcTo(dx, dy, r float64, clockwise bool) *PathBuilder {
	if r <= 0 {
		return b.LineTo(dx, dy)
	}
	sweep := "0"
	if clockwise {
		sweep = "1"
	}
	rs := formatNum(r)
	b.cmds = append(b.cmds, "a "+rs+" "+rs+" 0 0 "+sweep+" "+formatNum(dx)+" "+formatNum(dy))
	return b
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	b.cmds = append(b.cmds, "z")
	return b
}

// Reset drops every command.
func (b *PathBuilder) Reset() {
	b.cmds = b.cmds[:0]
}

// Len returns the number of recorded commands.
func (b *PathBuilder) Len() int {
	return len(b.cmds)
}

// String returns the path data.
func (b *PathBuilder) String() string {
	return strings.Join(b.cmds, " ")
}
