package pluton

import (
	"strconv"
	"strings"
)

// Context exposes the render target's coordinate space and camera to layers
// and hosts.
type Context struct {
	root     *Element
	defs     *Defs
	camera   *Camera
	viewBox  *Size
	measured Rect
	onResize func()

	cached   Rect
	hasCache bool
}

func newContext(root *Element, defs *Defs, camera *Camera, viewBox *Size, measured Rect) *Context {
	return &Context{
		root:     root,
		defs:     defs,
		camera:   camera,
		viewBox:  viewBox,
		measured: measured,
	}
}

// Root returns the render target root.
func (c *Context) Root() *Element {
	return c.root
}

// Defs returns the definitions registry.
func (c *Context) Defs() *Defs {
	return c.defs
}

// Viewport returns the coordinate space. An explicit viewBox wins, then the
// root's viewBox attribute, then the measured pixel box. The result is
// cached until InvalidateViewport.
func (c *Context) Viewport() Rect {
	if c.hasCache {
		return c.cached
	}
	if vb, ok := c.viewBoxRect(); ok {
		c.cached = vb
	} else {
		c.cached = Rect{Width: c.measured.Width, Height: c.measured.Height}
	}
	c.hasCache = true
	return c.cached
}

// InvalidateViewport drops the cached viewport.
func (c *Context) InvalidateViewport() {
	c.hasCache = false
}

// Resize records a new measured box, invalidates the viewport and runs the
// resize hook.
func (c *Context) Resize(r Rect) {
	c.measured = r
	c.InvalidateViewport()
	if c.onResize != nil {
		c.onResize()
	}
}

// Measured returns the render target's pixel box. Without a measurement it
// falls back to the viewBox size at the origin.
func (c *Context) Measured() Rect {
	if !c.measured.Empty() {
		return c.measured
	}
	if vb, ok := c.viewBoxRect(); ok {
		return Rect{Width: vb.Width, Height: vb.Height}
	}
	return c.measured
}

// Multiplier returns viewport units per measured pixel.
func (c *Context) Multiplier() float64 {
	m := c.Measured()
	if m.Width <= 0 {
		return 1
	}
	vp := c.Viewport()
	if vp.Width <= 0 {
		return 1
	}
	return vp.Width / m.Width
}

// Camera returns the current camera state with its multiplier, or false
// when the scene has no camera.
func (c *Context) Camera() (CameraState, bool) {
	if c.camera == nil {
		return CameraState{}, false
	}
	st := c.camera.State()
	st.Multiplier = c.Multiplier()
	return st, true
}

func (c *Context) viewBoxRect() (Rect, bool) {
	if c.viewBox != nil && c.viewBox.Width > 0 && c.viewBox.Height > 0 {
		return Rect{Width: c.viewBox.Width, Height: c.viewBox.Height}, true
	}
	if raw, ok := c.root.Attr("viewBox"); ok {
		return parseViewBox(raw)
	}
	return Rect{}, false
}

// parseViewBox parses "x y w h" with comma or space separators.
func parseViewBox(raw string) (Rect, bool) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return Rect{}, false
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Rect{}, false
		}
		v[i] = n
	}
	r := Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	if r.Empty() {
		return Rect{}, false
	}
	return r, true
}
