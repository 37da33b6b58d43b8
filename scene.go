package pluton

import (
	"time"

	"github.com/charmbracelet/log"
)

// Scene is the top-level object that wires the engine, the layers, the
// camera and the defs to one render target.
type Scene struct {
	// Theme is inlined into rasterized output. NewScene sets DefaultTheme.
	Theme Theme
	// ClearColor fills the rasterized background. Empty leaves it transparent.
	ClearColor string
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	target *Element
	bus    *EventBus
	engine *Engine
	queue  *FrameQueue

	defs       *Defs
	root       *Element
	background *Background
	geometry   *GeometryLayer
	dimensions *DimensionsLayer
	camera     *Camera
	ctx        *Context

	rootAttrs       attrCache
	unsubs          []func()
	screenshotQueue []string
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	runner          FrameRunner
	filtered        bool
	disposed        bool
}

// NewScene builds a scene inside target, an <svg> element. A nil target
// creates a detached one. initial seeds the params bag and must be flat.
func NewScene(target *Element, initial map[string]any, opts Options) (*Scene, error) {
	if target == nil {
		target = NewElement("svg")
	}
	bus := NewEventBus()

	s := &Scene{
		Theme:         DefaultTheme(),
		ClearColor:    "#ffffff",
		ScreenshotDir: "screenshots",
		target:        target,
		bus:           bus,
		rootAttrs:     attrCache{},
	}

	sched := opts.Scheduler
	if sched == nil {
		s.queue = NewFrameQueue()
		sched = s.queue
	} else if q, ok := sched.(*FrameQueue); ok {
		s.queue = q
	}
	s.runner, _ = sched.(FrameRunner)

	engine, err := NewEngine(bus, initial, sched, float64(opts.FrameRate))
	if err != nil {
		return nil, err
	}
	s.engine = engine

	defsEl := NewElement("defs")
	target.AppendChild(defsEl)
	s.defs = newDefs(defsEl)

	s.root = NewElement("g")
	s.root.AddClass("pluton-root")
	target.AppendChild(s.root)

	s.background = newBackground(s.root)
	s.geometry = newGeometryLayer(s.root, bus)
	s.dimensions = newDimensionsLayer(s.root, bus)

	s.ctx = newContext(target, s.defs, nil, opts.ViewBox, opts.Measured)
	if !opts.NoCamera {
		s.camera = NewCamera(bus, engine, s.ctx.Measured, opts.Camera)
		s.ctx.camera = s.camera
		engine.SetTickFunc(s.camera.Tick)
		s.camera.Enable()
	}
	s.ctx.onResize = func() {
		s.syncViewport()
		s.engine.ScheduleRender()
	}

	s.unsubs = append(s.unsubs,
		On(bus, CameraChanged, func(CameraState) { s.applyTransform() }),
		// registered after the layers so it sees reconciled output
		On(bus, CommitEnd, func(struct{}) { s.flushScreenshots() }),
	)

	s.syncViewport()
	if opts.Debug {
		s.SetDebugMode(true)
	}
	return s, nil
}

// syncViewport resizes the viewport dependent nodes and the transform root.
func (s *Scene) syncViewport() {
	vp := s.ctx.Viewport()
	s.defs.SyncForViewport(vp)
	s.background.Sync(vp)
	s.applyTransform()
}

// applyTransform writes the centred Y-up camera transform to the root
// group if it changed.
func (s *Scene) applyTransform() {
	cam, ok := s.ctx.Camera()
	if !ok {
		cam = CameraState{Scale: 1, Multiplier: 1}
	}
	s.rootAttrs.set(s.root, "transform", sceneTransformAttr(s.ctx.Viewport(), cam))
}

// Params returns the reactive params bag.
func (s *Scene) Params() *Params {
	return s.engine.Params()
}

// Draw registers a draw callback. See Engine.Draw.
func (s *Scene) Draw(fn DrawFunc) (unsubscribe func()) {
	return s.engine.Draw(fn)
}

// Geometry returns the geometry layer.
func (s *Scene) Geometry() *GeometryLayer {
	return s.geometry
}

// Dimensions returns the dimensions layer.
func (s *Scene) Dimensions() *DimensionsLayer {
	return s.dimensions
}

// Camera returns the camera, or nil when built with NoCamera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Context returns the viewport and camera accessor.
func (s *Scene) Context() *Context {
	return s.ctx
}

// Defs returns the definitions registry.
func (s *Scene) Defs() *Defs {
	return s.defs
}

// Background returns the graph paper background.
func (s *Scene) Background() *Background {
	return s.background
}

// EnableGrid shows or hides the graph paper.
func (s *Scene) EnableGrid(enabled bool) {
	if s.disposed || s.background.GridVisible() == enabled {
		return
	}
	s.background.SetGridVisible(enabled)
	s.engine.ScheduleRender()
}

// EnableAxes shows or hides the x/y axes.
func (s *Scene) EnableAxes(enabled bool) {
	if s.disposed || s.background.AxesVisible() == enabled {
		return
	}
	s.background.SetAxesVisible(enabled)
	s.engine.ScheduleRender()
}

// EnableFilter applies the hand-drawn displacement and mask filters to the
// geometry and dimensions layers. Turning it off writes filter="none".
func (s *Scene) EnableFilter(enabled bool) {
	if s.disposed || s.filtered == enabled {
		return
	}
	s.filtered = enabled
	value := "none"
	if enabled {
		value = sketchFilter
	}
	s.geometry.SetFilter(value)
	s.dimensions.SetFilter(value)
	s.engine.ScheduleRender()
}

// FilterEnabled reports whether EnableFilter(true) is in effect.
func (s *Scene) FilterEnabled() bool {
	return s.filtered
}

// sketchFilter chains the displacement wobble and the noise mask.
const sketchFilter = "url(#" + DisplacementFilterID + ") url(#" + MaskFilterID + ")"

// Engine returns the commit loop.
func (s *Scene) Engine() *Engine {
	return s.engine
}

// Events returns the scene's event bus.
func (s *Scene) Events() *EventBus {
	return s.bus
}

// Target returns the <svg> element the scene renders into.
func (s *Scene) Target() *Element {
	return s.target
}

// Root returns the transform root group.
func (s *Scene) Root() *Element {
	return s.root
}

// Frames returns the scene's FrameQueue, or nil when a foreign scheduler was
// supplied.
func (s *Scene) Frames() *FrameQueue {
	return s.queue
}

// ProcessInput steps the attached test runner and feeds one injected event
// to the camera. It reports whether an injected event was consumed, in
// which case hosts skip real input for the frame.
func (s *Scene) ProcessInput() bool {
	if s.disposed {
		return false
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	return s.processInjectedInput()
}

// SelfDriven reports whether the scene's frames are stepped with RunFrame.
func (s *Scene) SelfDriven() bool {
	return s.runner != nil
}

// RunFrame runs the frame callbacks queued before now. It fails with
// ErrNoFrameRunner when the scheduler is driven by someone else.
func (s *Scene) RunFrame(now time.Duration) (bool, error) {
	if s.runner == nil {
		return false, ErrNoFrameRunner
	}
	return s.runner.RunFrame(now), nil
}

// Resize forwards a new measured box from the host.
func (s *Scene) Resize(r Rect) {
	if s.disposed {
		return
	}
	s.ctx.Resize(r)
}

// ScreenToWorld converts a point in measured pixels to scene coordinates.
func (s *Scene) ScreenToWorld(sx, sy float64) (float64, float64) {
	vx, vy := s.screenToViewport(sx, sy)
	return transformPoint(invertAffine(s.viewMatrix()), vx, vy)
}

// WorldToScreen converts scene coordinates to measured pixels.
func (s *Scene) WorldToScreen(wx, wy float64) (float64, float64) {
	vx, vy := transformPoint(s.viewMatrix(), wx, wy)
	meas := s.ctx.Measured()
	vp := s.ctx.Viewport()
	m := s.ctx.Multiplier()
	return meas.X + (vx-vp.X)/m, meas.Y + (vy-vp.Y)/m
}

func (s *Scene) screenToViewport(sx, sy float64) (float64, float64) {
	meas := s.ctx.Measured()
	vp := s.ctx.Viewport()
	m := s.ctx.Multiplier()
	return vp.X + (sx-meas.X)*m, vp.Y + (sy-meas.Y)*m
}

func (s *Scene) viewMatrix() [6]float64 {
	cam, ok := s.ctx.Camera()
	if !ok {
		cam = CameraState{Scale: 1, Multiplier: 1}
	}
	return sceneMatrix(s.ctx.Viewport(), cam)
}

// SetDebugMode toggles commit logging and pool size warnings.
func (s *Scene) SetDebugMode(enabled bool) {
	globalDebug = enabled
	s.engine.SetDebugMode(enabled)
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}

// Dispose stops the engine, detaches the layers and disables the camera.
// It is idempotent.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.engine.Dispose()
	if s.camera != nil {
		s.camera.Disable()
	}
	s.geometry.Dispose()
	s.dimensions.Dispose()
	for _, off := range s.unsubs {
		off()
	}
	s.unsubs = nil
	s.root.Remove()
	s.defs.Element().Remove()
}

// Disposed reports whether Dispose has run.
func (s *Scene) Disposed() bool {
	return s.disposed
}
