package pluton

import "math"

// PointerEvent is a mouse press, move or release in screen pixels.
type PointerEvent struct {
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// WheelEvent is a scroll notch at a screen position. Negative DeltaY zooms in.
type WheelEvent struct {
	X, Y   float64
	DeltaY float64
}

// TouchEvent lists the touches still in contact, in screen pixels.
type TouchEvent struct {
	Touches []Vec2
}

// isPanButton reports whether a press starts a pan: middle button, or left
// with shift held.
func isPanButton(e PointerEvent) bool {
	return e.Button == MouseButtonMiddle ||
		(e.Button == MouseButtonLeft && e.Modifiers&ModShift != 0)
}

// PointerDown starts a pan. It reports whether the event was consumed.
func (c *Camera) PointerDown(e PointerEvent) bool {
	if !c.enabled || !isPanButton(e) {
		return false
	}
	c.panning = true
	c.lastX = e.X
	c.lastY = e.Y
	return true
}

// PointerMove drags the pan target while a pan is active.
func (c *Camera) PointerMove(e PointerEvent) bool {
	if !c.enabled || !c.panning || c.resetting {
		return false
	}
	c.panBy(e.X-c.lastX, e.Y-c.lastY)
	c.lastX = e.X
	c.lastY = e.Y
	c.changed()
	return true
}

// PointerUp ends a pan.
func (c *Camera) PointerUp(e PointerEvent) bool {
	if !c.enabled {
		return false
	}
	if e.Button == MouseButtonMiddle || e.Button == MouseButtonLeft {
		was := c.panning
		c.panning = false
		return was
	}
	return false
}

// Wheel zooms one step around the cursor.
func (c *Camera) Wheel(e WheelEvent) bool {
	if !c.enabled || c.resetting || e.DeltaY == 0 {
		return false
	}
	factor := c.opts.ZoomStep
	if e.DeltaY > 0 {
		factor = 1 / factor
	}
	c.zoomAround(e.X, e.Y, factor)
	c.changed()
	return true
}

// TouchStart begins a one-finger pan or a two-finger pinch.
func (c *Camera) TouchStart(e TouchEvent) bool {
	if !c.enabled || c.resetting {
		return false
	}
	switch len(e.Touches) {
	case 1:
		c.panning = true
		c.lastX = e.Touches[0].X
		c.lastY = e.Touches[0].Y
	case 2:
		c.panning = false
		c.beginPinch(e.Touches[0], e.Touches[1])
	default:
		return false
	}
	return true
}

// TouchMove pans with one finger, or pinch-zooms and pans with two.
func (c *Camera) TouchMove(e TouchEvent) bool {
	if !c.enabled || c.resetting {
		return false
	}
	switch {
	case len(e.Touches) == 1 && c.panning:
		t := e.Touches[0]
		c.panBy(t.X-c.lastX, t.Y-c.lastY)
		c.lastX = t.X
		c.lastY = t.Y
		c.changed()
		return true
	case len(e.Touches) == 2:
		t0, t1 := e.Touches[0], e.Touches[1]
		dist := math.Hypot(t1.X-t0.X, t1.Y-t0.Y)
		cx := (t0.X + t1.X) / 2
		cy := (t0.Y + t1.Y) / 2
		moved := false
		if c.lastTouchDist > 0 {
			c.zoomAround(cx, cy, dist/c.lastTouchDist)
			c.targetPanX += cx - c.lastTouchCenterX
			c.targetPanY += cy - c.lastTouchCenterY
			c.changed()
			moved = true
		}
		c.lastTouchDist = dist
		c.lastTouchCenterX = cx
		c.lastTouchCenterY = cy
		return moved
	}
	return false
}

// TouchEnd ends a gesture. Lifting one finger of a pinch resumes panning
// with the remaining one.
func (c *Camera) TouchEnd(e TouchEvent) bool {
	if !c.enabled {
		return false
	}
	switch len(e.Touches) {
	case 0:
		c.panning = false
		c.lastTouchDist = 0
	case 1:
		c.panning = true
		c.lastX = e.Touches[0].X
		c.lastY = e.Touches[0].Y
		c.lastTouchDist = 0
	}
	return true
}

func (c *Camera) beginPinch(t0, t1 Vec2) {
	c.lastTouchDist = math.Hypot(t1.X-t0.X, t1.Y-t0.Y)
	c.lastTouchCenterX = (t0.X + t1.X) / 2
	c.lastTouchCenterY = (t0.Y + t1.Y) / 2
}

func (c *Camera) panBy(dx, dy float64) {
	c.scrollTween = nil
	c.targetPanX += dx
	c.targetPanY += dy
	c.clampPan()
}
