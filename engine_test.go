package pluton

import (
	"errors"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, initial map[string]any) (*Engine, *FrameQueue) {
	t.Helper()
	q := NewFrameQueue()
	e, err := NewEngine(NewEventBus(), initial, q, 0)
	if err != nil {
		t.Fatal(err)
	}
	return e, q
}

func TestEngineRejectsNestedInitial(t *testing.T) {
	_, err := NewEngine(NewEventBus(), map[string]any{"cfg": map[string]any{}}, NewFrameQueue(), 0)
	if !errors.Is(err, ErrNotFlat) {
		t.Errorf("err = %v, want ErrNotFlat", err)
	}
}

func TestEngineFrameBudget(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	if got, want := e.FrameBudget(), time.Second/60; got < want-time.Microsecond || got > want+time.Microsecond {
		t.Errorf("FrameBudget = %v, want ~%v", got, want)
	}
	q := NewFrameQueue()
	e30, _ := NewEngine(NewEventBus(), nil, q, 30)
	if e30.FrameBudget() <= e.FrameBudget() {
		t.Error("30 fps budget should exceed 60 fps budget")
	}
}

func TestEngineWritesBeforeDrawDoNotSchedule(t *testing.T) {
	e, q := newTestEngine(t, map[string]any{"w": 1.0})
	_ = e.Params().Set("w", 2.0)
	if q.Pending() != 0 || e.RenderPending() {
		t.Error("write before the first Draw scheduled a commit")
	}
}

func TestEngineBatchesWrites(t *testing.T) {
	e, q := newTestEngine(t, map[string]any{"w": 1.0})
	commits := 0
	var seen float64
	e.Draw(func(p *Params) {
		commits++
		seen = p.Float("w")
	})

	_ = e.Params().Set("w", 2.0)
	_ = e.Params().Set("w", 3.0)
	_ = e.Params().Update(map[string]any{"h": 4.0})
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want a single frame request", q.Pending())
	}

	q.RunFrame(e.FrameBudget())
	if commits != 1 {
		t.Errorf("commits = %d, want 1", commits)
	}
	if seen != 3 {
		t.Errorf("draw saw w = %v, want 3", seen)
	}
	if q.Pending() != 0 {
		t.Errorf("idle engine left %d frames queued", q.Pending())
	}
}

func TestEngineFrameCap(t *testing.T) {
	e, q := newTestEngine(t, map[string]any{"w": 1.0})
	commits := 0
	e.Draw(func(*Params) { commits++ })

	q.RunFrame(17 * time.Millisecond)
	if commits != 1 {
		t.Fatalf("commits = %d, want 1", commits)
	}

	_ = e.Params().Set("w", 2.0)
	q.RunFrame(20 * time.Millisecond)
	q.RunFrame(22 * time.Millisecond)
	if commits != 1 {
		t.Errorf("commits inside budget = %d, want 1", commits)
	}
	if !e.RenderPending() {
		t.Error("deferred commit lost")
	}

	q.RunFrame(40 * time.Millisecond)
	if commits != 2 {
		t.Errorf("commits = %d, want 2", commits)
	}
	st := e.Stats()
	if st.Deferred != 2 || st.Commits != 2 || st.Frames != 4 {
		t.Errorf("stats = %+v", st)
	}
}

func TestEngineFirstFrameDeferredAtZero(t *testing.T) {
	e, q := newTestEngine(t, nil)
	commits := 0
	e.Draw(func(*Params) { commits++ })

	q.RunFrame(0)
	if commits != 0 {
		t.Errorf("commit ran at t=0 inside the first budget")
	}
	q.RunFrame(e.FrameBudget())
	if commits != 1 {
		t.Errorf("commits = %d, want 1", commits)
	}
}

func TestEngineCallbackOrder(t *testing.T) {
	e, q := newTestEngine(t, nil)
	var order []int
	e.Draw(func(*Params) { order = append(order, 1) })
	e.Draw(func(*Params) { order = append(order, 2) })
	e.Draw(func(*Params) { order = append(order, 3) })
	q.RunFrame(e.FrameBudget())

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v", order)
	}
}

func TestEngineCommitEvents(t *testing.T) {
	bus := NewEventBus()
	q := NewFrameQueue()
	e, _ := NewEngine(bus, nil, q, 0)
	var order []string
	On(bus, CommitStart, func(struct{}) { order = append(order, "start") })
	On(bus, CommitEnd, func(struct{}) { order = append(order, "end") })
	e.Draw(func(*Params) { order = append(order, "draw") })
	q.RunFrame(e.FrameBudget())

	want := []string{"start", "draw", "end"}
	if len(order) != 3 {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestEngineUnsubscribeDuringCommit(t *testing.T) {
	e, q := newTestEngine(t, map[string]any{"w": 1.0})
	var ranB int
	var offB func()
	e.Draw(func(*Params) { offB() })
	offB = e.Draw(func(*Params) { ranB++ })

	q.RunFrame(e.FrameBudget())
	if ranB != 0 {
		t.Errorf("callback removed earlier in the same commit ran %d times", ranB)
	}
	_ = e.Params().Set("w", 2.0)
	q.RunFrame(3 * e.FrameBudget())
	if ranB != 0 {
		t.Errorf("removed callback ran %d times", ranB)
	}
}

func TestEngineWriteDuringCommitDefers(t *testing.T) {
	e, q := newTestEngine(t, map[string]any{"w": 1.0})
	commits := 0
	e.Draw(func(p *Params) {
		commits++
		if commits == 1 {
			_ = p.Set("w", 2.0)
		}
	})

	q.RunFrame(e.FrameBudget())
	if commits != 1 {
		t.Fatalf("write during commit re-entered: commits = %d", commits)
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}
	q.RunFrame(2 * e.FrameBudget())
	if commits != 2 {
		t.Errorf("commits = %d, want 2", commits)
	}
}

func TestEngineTickKeepsLoopAlive(t *testing.T) {
	e, q := newTestEngine(t, nil)
	var dts []time.Duration
	e.SetTickFunc(func(dt time.Duration) bool {
		dts = append(dts, dt)
		return len(dts) < 3
	})
	e.RequestFrame()
	q.Drain(0, 10*time.Millisecond, 100)

	if len(dts) != 3 {
		t.Fatalf("ticks = %d, want 3", len(dts))
	}
	if dts[0] != e.FrameBudget() {
		t.Errorf("first dt = %v, want the frame budget", dts[0])
	}
	if dts[1] != 10*time.Millisecond {
		t.Errorf("second dt = %v, want 10ms", dts[1])
	}
	if e.RenderPending() {
		t.Error("RequestFrame marked a commit pending")
	}
}

func TestEngineTickDeltaClamped(t *testing.T) {
	e, q := newTestEngine(t, nil)
	var last time.Duration
	e.SetTickFunc(func(dt time.Duration) bool {
		last = dt
		return false
	})
	e.RequestFrame()
	q.RunFrame(0)
	e.RequestFrame()
	q.RunFrame(10 * time.Second)

	if last != e.FrameBudget()*maxTickSteps {
		t.Errorf("dt after idle gap = %v, want %v", last, e.FrameBudget()*maxTickSteps)
	}
}

func TestEngineDispose(t *testing.T) {
	e, q := newTestEngine(t, map[string]any{"w": 1.0})
	commits := 0
	e.Draw(func(*Params) { commits++ })
	e.Dispose()
	e.Dispose()

	if !e.Disposed() {
		t.Error("Disposed = false")
	}
	if q.Pending() != 0 {
		t.Errorf("Pending = %d after Dispose, want 0", q.Pending())
	}
	requests := q.Requests()
	_ = e.Params().Set("w", 2.0)
	e.ScheduleRender()
	e.RequestFrame()
	e.Draw(func(*Params) { commits++ })
	q.Drain(e.FrameBudget(), e.FrameBudget(), 10)

	if commits != 0 {
		t.Errorf("commits after Dispose = %d, want 0", commits)
	}
	if got := q.Requests(); got != requests {
		t.Errorf("frame requests after Dispose = %d, want none", got-requests)
	}
}
