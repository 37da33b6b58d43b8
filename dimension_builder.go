package pluton

import (
	"math"
	"strings"
)

// DefaultArrowSize is the arrow head length used when Arrow gets size <= 0.
const DefaultArrowSize = 10

// DefaultTickSize is the tick length used when Tick gets size <= 0.
const DefaultTickSize = 8

// Label is a text placement produced by a DimensionsBuilder.
type Label struct {
	X, Y  float64
	Text  string
	Align TextAlign
	Class string
}

// DimensionsBuilder accumulates annotation geometry: a stroke path (leader
// lines, ticks), a filled path (arrow heads) and text labels. It tracks the
// current point so relative commands compose.
type DimensionsBuilder struct {
	stroke []string
	fill   []string
	labels []Label
	cx, cy float64
}

// Reset drops every command and label and returns to the origin.
func (b *DimensionsBuilder) Reset() {
	b.stroke = b.stroke[:0]
	b.fill = b.fill[:0]
	b.labels = b.labels[:0]
	b.cx, b.cy = 0, 0
}

// MoveTo moves the current point by (dx, dy).
func (b *DimensionsBuilder) MoveTo(dx, dy float64) *DimensionsBuilder {
	b.cx += dx
	b.cy += dy
	b.stroke = append(b.stroke, "M "+formatNum(b.cx)+" "+formatNum(b.cy))
	return b
}

// MoveToAbs moves the current point to (x, y).
func (b *DimensionsBuilder) MoveToAbs(x, y float64) *DimensionsBuilder {
	b.cx, b.cy = x, y
	b.stroke = append(b.stroke, "M "+formatNum(x)+" "+formatNum(y))
	return b
}

// LineTo draws a leader line by (dx, dy).
func (b *DimensionsBuilder) LineTo(dx, dy float64) *DimensionsBuilder {
	b.cx += dx
	b.cy += dy
	b.stroke = append(b.stroke, "l "+formatNum(dx)+" "+formatNum(dy))
	return b
}

// LineToAbs draws a leader line to (x, y).
func (b *DimensionsBuilder) LineToAbs(x, y float64) *DimensionsBuilder {
	b.cx, b.cy = x, y
	b.stroke = append(b.stroke, "L "+formatNum(x)+" "+formatNum(y))
	return b
}

// Arrow adds a filled arrow head whose tip is the current point, pointing
// along angle (radians). The current point does not move.
func (b *DimensionsBuilder) Arrow(angle, size float64) *DimensionsBuilder {
	if size <= 0 {
		size = DefaultArrowSize
	}
	halfW := size * 0.45
	sin, cos := math.Sincos(angle)

	bx := b.cx - cos*size
	by := b.cy - sin*size
	px, py := -sin, cos

	b.fill = append(b.fill, "M "+formatNum(b.cx)+" "+formatNum(b.cy)+
		" L "+formatNum(bx+px*halfW)+" "+formatNum(by+py*halfW)+
		" L "+formatNum(bx-px*halfW)+" "+formatNum(by-py*halfW)+" Z")
	return b
}

// Tick adds an architectural tick mark centred on the current point,
// rotated 45 degrees from angle. The current point does not move.
func (b *DimensionsBuilder) Tick(angle, size float64) *DimensionsBuilder {
	if size <= 0 {
		size = DefaultTickSize
	}
	sin, cos := math.Sincos(angle + math.Pi/4)
	h := size / 2
	b.stroke = append(b.stroke, "M "+formatNum(b.cx-cos*h)+" "+formatNum(b.cy-sin*h)+
		" L "+formatNum(b.cx+cos*h)+" "+formatNum(b.cy+sin*h)+
		" M "+formatNum(b.cx)+" "+formatNum(b.cy))
	return b
}

// CenterMark adds a cross of the given total size centred on the current
// point. The current point does not move.
func (b *DimensionsBuilder) CenterMark(size float64) *DimensionsBuilder {
	h := size / 2
	b.stroke = append(b.stroke, "M "+formatNum(b.cx-h)+" "+formatNum(b.cy)+
		" L "+formatNum(b.cx+h)+" "+formatNum(b.cy)+
		" M "+formatNum(b.cx)+" "+formatNum(b.cy-h)+
		" L "+formatNum(b.cx)+" "+formatNum(b.cy+h)+
		" M "+formatNum(b.cx)+" "+formatNum(b.cy))
	return b
}

// Arc draws an angular dimension arc of radius r centred on the current
// point, from start to end (radians, counterclockwise positive). The current
// point does not move.
func (b *DimensionsBuilder) Arc(r, start, end float64) *DimensionsBuilder {
	if r <= 0 || start == end {
		return b
	}
	s0, c0 := math.Sincos(start)
	s1, c1 := math.Sincos(end)
	large, sweep := "0", "1"
	if math.Abs(end-start) > math.Pi {
		large = "1"
	}
	if end < start {
		sweep = "0"
	}
	b.stroke = append(b.stroke, "M "+formatNum(b.cx+c0*r)+" "+formatNum(b.cy+s0*r)+
		" A "+formatNum(r)+" "+formatNum(r)+" 0 "+large+" "+sweep+" "+
		formatNum(b.cx+c1*r)+" "+formatNum(b.cy+s1*r)+
		" M "+formatNum(b.cx)+" "+formatNum(b.cy))
	return b
}

// TextAt places a label at the current point offset by (dx, dy).
func (b *DimensionsBuilder) TextAt(dx, dy float64, text string, align TextAlign) *DimensionsBuilder {
	b.labels = append(b.labels, Label{X: b.cx + dx, Y: b.cy + dy, Text: text, Align: align})
	return b
}

// TextAtAbs places a label at (x, y).
func (b *DimensionsBuilder) TextAtAbs(x, y float64, text string, align TextAlign) *DimensionsBuilder {
	b.labels = append(b.labels, Label{X: x, Y: y, Text: text, Align: align})
	return b
}

// WithClass sets the class of the most recently placed label.
func (b *DimensionsBuilder) WithClass(class string) *DimensionsBuilder {
	if n := len(b.labels); n > 0 {
		b.labels[n-1].Class = class
	}
	return b
}

// Close closes the current stroke subpath.
func (b *DimensionsBuilder) Close() *DimensionsBuilder {
	b.stroke = append(b.stroke, "z")
	return b
}

// Position returns the current point.
func (b *DimensionsBuilder) Position() (x, y float64) {
	return b.cx, b.cy
}

// PathData returns the stroke path data.
func (b *DimensionsBuilder) PathData() string {
	return strings.Join(b.stroke, " ")
}

// FillData returns the filled path data (arrow heads).
func (b *DimensionsBuilder) FillData() string {
	return strings.Join(b.fill, " ")
}

// Labels returns the placed labels in order. The returned slice MUST NOT be
// mutated and is only valid until the next Reset.
func (b *DimensionsBuilder) Labels() []Label {
	return b.labels
}
