package pluton

import "testing"

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want, epsilon) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	if got := multiplyAffine(identityTransform, m); got != m {
		t.Errorf("identity * m = %v", got)
	}
	if got := multiplyAffine(m, identityTransform); got != m {
		t.Errorf("m * identity = %v", got)
	}
}

func TestInvertAffineRoundTrip(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, -4}
	got := multiplyAffine(m, invertAffine(m))
	for i := range got {
		assertNear(t, "m*inv", got[i], identityTransform[i])
	}
	if inv := invertAffine([6]float64{0, 0, 0, 0, 1, 1}); inv != identityTransform {
		t.Errorf("singular inverse = %v, want identity", inv)
	}
}

func TestSceneMatrix(t *testing.T) {
	vp := Rect{Width: 400, Height: 300}
	m := sceneMatrix(vp, CameraState{PanX: 10, PanY: -20, Scale: 2, Multiplier: 0.5})

	x, y := transformPoint(m, 0, 0)
	assertNear(t, "origin x", x, 205)
	assertNear(t, "origin y", y, 140)

	// Y up: a positive scene y moves up the screen
	_, y1 := transformPoint(m, 0, 10)
	assertNear(t, "y up", y1, 120)

	zero := sceneMatrix(vp, CameraState{})
	if zero[0] != 1 || zero[3] != -1 {
		t.Errorf("zero camera state = %v, want unit scale", zero)
	}
}

func TestSceneTransformAttr(t *testing.T) {
	got := sceneTransformAttr(Rect{Width: 800, Height: 600}, CameraState{PanX: 50, Scale: 1.5, Multiplier: 1})
	if want := "translate(450, 300) scale(1.5, -1.5)"; got != want {
		t.Errorf("transform = %q, want %q", got, want)
	}
	got = sceneTransformAttr(Rect{X: -100, Y: -100, Width: 200, Height: 200}, CameraState{Scale: 1, Multiplier: 1})
	if want := "translate(0, 0) scale(1, -1)"; got != want {
		t.Errorf("transform = %q, want %q", got, want)
	}
}
