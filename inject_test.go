package pluton

import "testing"

// drainInput feeds every queued synthetic event, one per frame.
func drainInput(s *Scene) int {
	n := 0
	for s.PendingInput() > 0 {
		s.ProcessInput()
		n++
	}
	return n
}

func TestInjectDrag(t *testing.T) {
	s := newTestScene(t, nil)
	s.InjectDrag(100, 100, 160, 70, 5)
	if s.PendingInput() != 5 {
		t.Fatalf("queued = %d, want 5", s.PendingInput())
	}
	drainInput(s)

	tg := s.Camera().Target()
	if !approxEqual(tg.PanX, 60, epsilon) || !approxEqual(tg.PanY, -30, epsilon) {
		t.Errorf("target pan = (%v, %v), want (60, -30)", tg.PanX, tg.PanY)
	}
	if s.Camera().Panning() {
		t.Error("drag left the pan active")
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	s := newTestScene(t, nil)
	s.InjectDrag(0, 0, 10, 10, 1)
	if s.PendingInput() != 3 {
		t.Errorf("queued = %d, want 3", s.PendingInput())
	}
}

func TestInjectWheel(t *testing.T) {
	s := newTestScene(t, nil)
	s.InjectWheel(400, 300, -1)
	s.InjectWheel(400, 300, -1)
	if !s.ProcessInput() {
		t.Fatal("event not consumed")
	}
	if s.PendingInput() != 1 {
		t.Error("more than one event consumed per frame")
	}
	drainInput(s)
	if !approxEqual(s.Camera().Target().Scale, 1.21, 1e-9) {
		t.Errorf("scale = %v, want 1.21", s.Camera().Target().Scale)
	}
	if s.ProcessInput() {
		t.Error("empty queue reported a consumed event")
	}
}

func TestInjectPinch(t *testing.T) {
	s := newTestScene(t, nil)
	s.InjectPinch(400, 300, 100, 200, 4)
	if s.PendingInput() != 4 {
		t.Fatalf("queued = %d, want 4", s.PendingInput())
	}
	drainInput(s)

	if !approxEqual(s.Camera().Target().Scale, 2, 1e-9) {
		t.Errorf("scale = %v, want 2", s.Camera().Target().Scale)
	}
	if s.Camera().Panning() {
		t.Error("pinch end left a pan active")
	}
}

func TestInjectReset(t *testing.T) {
	s := newTestScene(t, nil)
	s.InjectWheel(400, 300, -1)
	s.InjectReset()
	drainInput(s)

	if !s.Camera().Resetting() {
		t.Error("reset not started")
	}
	settleScene(t, s, s.Engine().FrameBudget())
	if st := s.Camera().State(); st.Scale != 1 || st.PanX != 0 {
		t.Errorf("state = %+v, want identity", st)
	}
}
