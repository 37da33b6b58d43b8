package pluton

import "math"

type syntheticKind uint8

const (
	synthPointerDown syntheticKind = iota
	synthPointerMove
	synthPointerUp
	synthWheel
	synthTouchStart
	synthTouchMove
	synthTouchEnd
	synthReset
)

// syntheticEvent is one injected camera input. Screen coordinates are used,
// identical to real input.
type syntheticEvent struct {
	kind    syntheticKind
	pointer PointerEvent
	wheel   WheelEvent
	touches []Vec2
}

// InjectWheel queues one wheel notch at the given screen coordinates.
// Negative deltaY zooms in.
func (s *Scene) InjectWheel(x, y, deltaY float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind:  synthWheel,
		wheel: WheelEvent{X: x, Y: y, DeltaY: deltaY},
	})
}

// InjectPress queues a middle button press, which starts a pan.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind:    synthPointerDown,
		pointer: PointerEvent{X: x, Y: y, Button: MouseButtonMiddle},
	})
}

// InjectMove queues a pointer move with the middle button held.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind:    synthPointerMove,
		pointer: PointerEvent{X: x, Y: y, Button: MouseButtonMiddle},
	})
}

// InjectRelease queues a middle button release.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind:    synthPointerUp,
		pointer: PointerEvent{X: x, Y: y, Button: MouseButtonMiddle},
	})
}

// InjectDrag queues a full pan: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The last move lands on (toX, toY) so the whole distance is
// panned. Minimum frames is 3.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectPinch queues a two finger pinch centred on (cx, cy) whose finger
// distance goes from fromDist to toDist over frames frames, ending with
// both fingers lifted.
func (s *Scene) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	pair := func(d float64) []Vec2 {
		h := math.Max(d, 0) / 2
		return []Vec2{{X: cx - h, Y: cy}, {X: cx + h, Y: cy}}
	}
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthTouchStart, touches: pair(fromDist)})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.injectQueue = append(s.injectQueue, syntheticEvent{
			kind:    synthTouchMove,
			touches: pair(fromDist + (toDist-fromDist)*t),
		})
	}
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthTouchEnd})
}

// InjectReset queues a camera reset.
func (s *Scene) InjectReset() {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthReset})
}

// PendingInput returns the number of queued synthetic events.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// to the camera. Returns true if an event was consumed (real input should
// be skipped this frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	cam := s.camera
	if cam == nil {
		return true
	}
	switch evt.kind {
	case synthPointerDown:
		cam.PointerDown(evt.pointer)
	case synthPointerMove:
		cam.PointerMove(evt.pointer)
	case synthPointerUp:
		cam.PointerUp(evt.pointer)
	case synthWheel:
		cam.Wheel(evt.wheel)
	case synthTouchStart:
		cam.TouchStart(TouchEvent{Touches: evt.touches})
	case synthTouchMove:
		cam.TouchMove(TouchEvent{Touches: evt.touches})
	case synthTouchEnd:
		cam.TouchEnd(TouchEvent{Touches: evt.touches})
	case synthReset:
		cam.Reset()
	}
	return true
}
