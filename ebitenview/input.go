package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pluton2d/pluton"
)

// readModifiers reads the current keyboard modifier state.
func readModifiers() pluton.KeyModifiers {
	var mods pluton.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= pluton.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= pluton.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= pluton.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= pluton.ModMeta
	}
	return mods
}

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	pl pluton.MouseButton
}{
	{ebiten.MouseButtonLeft, pluton.MouseButtonLeft},
	{ebiten.MouseButtonRight, pluton.MouseButtonRight},
	{ebiten.MouseButtonMiddle, pluton.MouseButtonMiddle},
}

// inputState remembers what the previous poll saw so edges can be turned
// into camera events.
type inputState struct {
	lastX, lastY float64
	touchIDs     []ebiten.TouchID
	touches      []pluton.Vec2
}

// poll forwards this tick's mouse, wheel, keyboard and touch input to cam.
func (in *inputState) poll(cam *pluton.Camera) {
	mods := readModifiers()
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			cam.PointerDown(pluton.PointerEvent{X: x, Y: y, Button: b.pl, Modifiers: mods})
		}
	}
	if x != in.lastX || y != in.lastY {
		cam.PointerMove(pluton.PointerEvent{X: x, Y: y, Modifiers: mods})
		in.lastX, in.lastY = x, y
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			cam.PointerUp(pluton.PointerEvent{X: x, Y: y, Button: b.pl, Modifiers: mods})
		}
	}

	// ebiten reports positive y for scrolling up, which zooms in
	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.Wheel(pluton.WheelEvent{X: x, Y: y, DeltaY: -wy})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		cam.Reset()
	}

	in.pollTouches(cam)
}

func (in *inputState) pollTouches(cam *pluton.Camera) {
	prev := len(in.touches)
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	in.touches = in.touches[:0]
	for _, id := range in.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		in.touches = append(in.touches, pluton.Vec2{X: float64(tx), Y: float64(ty)})
	}

	ev := pluton.TouchEvent{Touches: in.touches}
	switch n := len(in.touches); {
	case n > prev:
		cam.TouchStart(ev)
	case n < prev:
		cam.TouchEnd(ev)
	case n > 0:
		cam.TouchMove(ev)
	}
}
