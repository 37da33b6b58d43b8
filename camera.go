package pluton

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraState is a snapshot of the camera transform. Pan is in render
// target pixels; Multiplier converts pixels to viewport units and is filled
// in by Context.
type CameraState struct {
	PanX, PanY float64
	Scale      float64
	Multiplier float64
}

// CameraOptions tunes camera limits and smoothing. Zero fields take the
// defaults of DefaultCameraOptions.
type CameraOptions struct {
	MinScale float64 `toml:"min_scale"`
	MaxScale float64 `toml:"max_scale"`
	// Damping is the fraction of the remaining distance covered per tick.
	Damping float64 `toml:"damping"`
	// Epsilon is the distance below which all axes snap to target together.
	Epsilon float64 `toml:"epsilon"`
	// ZoomStep is the scale factor of one wheel notch.
	ZoomStep float64 `toml:"zoom_step"`
}

// DefaultCameraOptions returns the stock camera tuning.
func DefaultCameraOptions() CameraOptions {
	return CameraOptions{
		MinScale: 1,
		MaxScale: 20,
		Damping:  0.2,
		Epsilon:  0.01,
		ZoomStep: 1.1,
	}
}

func (o CameraOptions) withDefaults() CameraOptions {
	d := DefaultCameraOptions()
	if o.MinScale <= 0 {
		o.MinScale = d.MinScale
	}
	if o.MaxScale <= 0 {
		o.MaxScale = d.MaxScale
	}
	if o.MaxScale < o.MinScale {
		o.MaxScale = o.MinScale
	}
	if o.Damping <= 0 || o.Damping > 1 {
		o.Damping = d.Damping
	}
	if o.Epsilon <= 0 {
		o.Epsilon = d.Epsilon
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = d.ZoomStep
	}
	return o
}

// FrameRequester keeps a frame loop alive without marking anything dirty.
type FrameRequester interface {
	RequestFrame()
}

// scrollAnim holds active scroll-to tweens for the pan target.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera turns pointer, wheel and touch input into a smoothly damped pan
// and zoom. Input moves the target; Tick moves the current values toward
// it once per frame.
type Camera struct {
	bus    *EventBus
	frames FrameRequester
	bounds func() Rect
	opts   CameraOptions

	panX, panY, scale                   float64
	targetPanX, targetPanY, targetScale float64

	enabled   bool
	panning   bool
	resetting bool
	lastX     float64
	lastY     float64

	lastTouchDist    float64
	lastTouchCenterX float64
	lastTouchCenterY float64

	scrollTween *scrollAnim
}

// NewCamera creates an identity camera. bounds reports the render target's
// measured pixel box; it sizes the pan limits and locates zoom anchors.
// The camera starts disabled.
func NewCamera(bus *EventBus, frames FrameRequester, bounds func() Rect, opts CameraOptions) *Camera {
	return &Camera{
		bus:         bus,
		frames:      frames,
		bounds:      bounds,
		opts:        opts.withDefaults(),
		scale:       1,
		targetScale: 1,
	}
}

// Options returns the effective tuning.
func (c *Camera) Options() CameraOptions {
	return c.opts
}

// Enable starts accepting input.
func (c *Camera) Enable() {
	c.enabled = true
}

// Disable stops accepting input and ends any pan in progress.
func (c *Camera) Disable() {
	c.enabled = false
	c.panning = false
	c.lastTouchDist = 0
}

// Enabled reports whether input is accepted.
func (c *Camera) Enabled() bool {
	return c.enabled
}

// State returns the current (interpolated) transform.
func (c *Camera) State() CameraState {
	return CameraState{PanX: c.panX, PanY: c.panY, Scale: c.scale, Multiplier: 1}
}

// Target returns the transform the camera is converging to.
func (c *Camera) Target() CameraState {
	return CameraState{PanX: c.targetPanX, PanY: c.targetPanY, Scale: c.targetScale, Multiplier: 1}
}

// Resetting reports whether a Reset is still converging.
func (c *Camera) Resetting() bool {
	return c.resetting
}

// Panning reports whether a pointer or single-finger pan is in progress.
func (c *Camera) Panning() bool {
	return c.panning
}

// Reset animates back to the identity transform. Calling it again before
// the camera settles does nothing; input is ignored until then.
func (c *Camera) Reset() {
	if c.resetting {
		return
	}
	c.resetting = true
	c.panning = false
	c.scrollTween = nil
	c.targetPanX = 0
	c.targetPanY = 0
	c.targetScale = 1
	c.changed()
}

// ScrollTo tweens the pan target to (panX, panY) over duration seconds.
// Damping still applies on top, so the motion eases out at the end.
func (c *Camera) ScrollTo(panX, panY float64, duration float32, easeFn ease.TweenFunc) {
	if c.resetting {
		return
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.targetPanX), float32(panX), duration, easeFn),
		tweenY: gween.New(float32(c.targetPanY), float32(panY), duration, easeFn),
	}
	c.frames.RequestFrame()
}

// Scrolling reports whether a ScrollTo tween is active.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Tick advances the current values one damping step toward the target.
// When every axis is within epsilon they all snap in the same tick. It
// reports whether the camera is still converging.
func (c *Camera) Tick(dt time.Duration) bool {
	oldX, oldY, oldScale := c.panX, c.panY, c.scale

	c.advanceScroll(dt)

	c.panX = c.smoothStep(c.panX, c.targetPanX)
	c.panY = c.smoothStep(c.panY, c.targetPanY)
	c.scale = c.smoothStep(c.scale, c.targetScale)

	eps := c.opts.Epsilon
	if math.Abs(c.targetPanX-c.panX) < eps &&
		math.Abs(c.targetPanY-c.panY) < eps &&
		math.Abs(c.targetScale-c.scale) < eps {
		c.panX = c.targetPanX
		c.panY = c.targetPanY
		c.scale = c.targetScale
		if c.resetting && c.panX == 0 && c.panY == 0 && c.scale == 1 {
			c.resetting = false
		}
	}

	if oldX != c.panX || oldY != c.panY || oldScale != c.scale {
		Emit(c.bus, CameraChanged, c.State())
	}
	return c.scrollTween != nil || !c.settled()
}

func (c *Camera) settled() bool {
	return c.panX == c.targetPanX && c.panY == c.targetPanY && c.scale == c.targetScale
}

func (c *Camera) smoothStep(current, target float64) float64 {
	return current + (target-current)*c.opts.Damping
}

func (c *Camera) advanceScroll(dt time.Duration) {
	st := c.scrollTween
	if st == nil {
		return
	}
	step := float32(dt.Seconds())
	if !st.doneX {
		v, done := st.tweenX.Update(step)
		c.targetPanX = float64(v)
		st.doneX = done
	}
	if !st.doneY {
		v, done := st.tweenY.Update(step)
		c.targetPanY = float64(v)
		st.doneY = done
	}
	if st.doneX && st.doneY {
		c.scrollTween = nil
	}
}

// changed publishes the new state and keeps the frame loop running so Tick
// can converge.
func (c *Camera) changed() {
	Emit(c.bus, CameraChanged, c.State())
	c.frames.RequestFrame()
}

func (c *Camera) rect() Rect {
	if c.bounds == nil {
		return Rect{}
	}
	return c.bounds()
}

// clampPan keeps the pan target within half the target size, scaled by the
// target zoom.
func (c *Camera) clampPan() {
	r := c.rect()
	maxX := r.Width * 0.5 * c.targetScale
	maxY := r.Height * 0.5 * c.targetScale
	c.targetPanX = math.Max(-maxX, math.Min(maxX, c.targetPanX))
	c.targetPanY = math.Max(-maxY, math.Min(maxY, c.targetPanY))
}

// zoomAround multiplies the target scale by factor while keeping the screen
// point (x, y) fixed.
func (c *Camera) zoomAround(x, y, factor float64) {
	r := c.rect()
	originX := x - r.X - r.Width*0.5
	originY := y - r.Y - r.Height*0.5

	newScale := math.Max(c.opts.MinScale, math.Min(c.opts.MaxScale, c.targetScale*factor))
	ratio := newScale / c.targetScale

	c.targetPanX = originX + (c.targetPanX-originX)*ratio
	c.targetPanY = originY + (c.targetPanY-originY)*ratio
	c.targetScale = newScale
}
