package pluton

import (
	"strconv"
)

// Vec2 is a 2D vector used for pointer positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Size is a width/height pair used for explicit coordinate spaces.
type Size struct {
	Width, Height float64
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// TextAlign maps to the SVG text-anchor attribute of a label.
type TextAlign uint8

const (
	AlignMiddle TextAlign = iota // text-anchor="middle" (default)
	AlignStart                   // text-anchor="start"
	AlignEnd                     // text-anchor="end"
)

// String returns the SVG text-anchor keyword.
func (a TextAlign) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	default:
		return "middle"
	}
}

// DrawUsage controls whether a group reconciles on every commit or only once.
type DrawUsage uint8

const (
	// DrawDynamic groups reconcile on every commit. New groups start dynamic.
	DrawDynamic DrawUsage = iota
	// DrawStatic groups reconcile once, then skip commits until switched
	// back to DrawDynamic.
	DrawStatic
)

// String returns "dynamic" or "static".
func (u DrawUsage) String() string {
	if u == DrawStatic {
		return "static"
	}
	return "dynamic"
}

// Style holds the presentation attributes a creation call may set on the
// node it reuses or creates. Empty fields remove the attribute.
type Style struct {
	Class    string
	Fill     string
	Stroke   string
	FillRule string
}

// formatNum formats v the shortest way that round-trips, without exponent.
func formatNum(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
