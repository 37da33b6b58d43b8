package pluton

import (
	"time"
)

// DefaultFrameRate caps commits at 60 per second.
const DefaultFrameRate = 60

// maxTickSteps bounds the dt handed to the tick function after an idle gap.
const maxTickSteps = 4

// DrawFunc issues drawing calls against layer groups. It receives the live
// params bag; values read inside reflect the latest writes.
type DrawFunc func(p *Params)

// TickFunc advances an external animation (camera damping) by dt and
// reports whether it needs another frame.
type TickFunc func(dt time.Duration) bool

type drawEntry struct {
	id      uint32
	fn      DrawFunc
	removed bool
}

// EngineStats counts loop activity since the engine was created.
type EngineStats struct {
	Frames         int           // loop passes
	Commits        int           // commits performed
	Deferred       int           // passes that skipped a pending commit for the frame budget
	LastCommitTime time.Duration // wall-clock duration of the most recent commit
}

// Engine owns the params bag and draw callbacks and turns "something
// changed" into at most one commit per frame budget.
type Engine struct {
	bus       *EventBus
	scheduler FrameScheduler
	params    *Params

	draws      []*drawEntry
	nextDrawID uint32

	autoRender    bool
	renderPending bool
	disposed      bool

	frameBudget time.Duration
	lastCommit  time.Duration
	lastTick    time.Duration
	ticked      bool

	frameID  FrameID
	inFlight bool
	tick     TickFunc

	stats EngineStats
	debug bool
}

// NewEngine validates initial and creates an engine that commits through
// scheduler. A frameRate <= 0 selects DefaultFrameRate.
func NewEngine(bus *EventBus, initial map[string]any, scheduler FrameScheduler, frameRate float64) (*Engine, error) {
	params, err := newParams(initial)
	if err != nil {
		return nil, err
	}
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	e := &Engine{
		bus:         bus,
		scheduler:   scheduler,
		params:      params,
		frameBudget: time.Duration(float64(time.Second) / frameRate),
	}
	params.onChange = func() {
		if e.autoRender {
			e.ScheduleRender()
		}
	}
	return e, nil
}

// Params returns the reactive params bag. The bag itself is never replaced.
func (e *Engine) Params() *Params {
	return e.params
}

// FrameBudget returns the minimum interval between two commits.
func (e *Engine) FrameBudget() time.Duration {
	return e.frameBudget
}

// SetTickFunc installs fn to run at the start of every loop pass.
func (e *Engine) SetTickFunc(fn TickFunc) {
	e.tick = fn
}

// Draw registers fn to run on every commit, in registration order. The
// first registration turns on auto-rendering. The returned function removes
// fn; it is safe to call during a commit.
func (e *Engine) Draw(fn DrawFunc) (unsubscribe func()) {
	e.nextDrawID++
	entry := &drawEntry{id: e.nextDrawID, fn: fn}
	e.draws = append(e.draws, entry)
	if !e.autoRender && !e.disposed {
		e.autoRender = true
		e.ScheduleRender()
	}
	return func() { e.removeDraw(entry) }
}

func (e *Engine) removeDraw(entry *drawEntry) {
	for i, d := range e.draws {
		if d == entry {
			d.removed = true
			copy(e.draws[i:], e.draws[i+1:])
			e.draws[len(e.draws)-1] = nil
			e.draws = e.draws[:len(e.draws)-1]
			return
		}
	}
}

// ScheduleRender marks a commit pending and keeps the loop alive.
func (e *Engine) ScheduleRender() {
	if e.disposed {
		return
	}
	e.renderPending = true
	e.ensureLoop()
}

// RequestFrame keeps the loop alive without marking a commit pending.
func (e *Engine) RequestFrame() {
	e.ensureLoop()
}

// RenderPending reports whether a commit is waiting for a frame.
func (e *Engine) RenderPending() bool {
	return e.renderPending
}

// Stats returns loop counters.
func (e *Engine) Stats() EngineStats {
	return e.stats
}

// SetDebugMode logs every commit at debug level when enabled.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

func (e *Engine) ensureLoop() {
	if e.disposed || e.inFlight {
		return
	}
	e.inFlight = true
	e.frameID = e.scheduler.RequestFrame(e.loop)
}

func (e *Engine) loop(now time.Duration) {
	e.inFlight = false
	e.frameID = 0
	if e.disposed {
		return
	}
	e.stats.Frames++

	needsNextFrame := false
	if e.tick != nil {
		needsNextFrame = e.tick(e.tickDelta(now))
	}
	e.lastTick = now
	e.ticked = true

	if e.renderPending {
		elapsed := now - e.lastCommit
		if elapsed >= e.frameBudget {
			// align to the frame grid so jitter does not accumulate
			e.lastCommit = now - elapsed%e.frameBudget
			e.renderPending = false
			e.commit()
		} else {
			e.stats.Deferred++
			needsNextFrame = true
		}
	}

	if needsNextFrame || e.renderPending {
		e.ensureLoop()
	}
}

func (e *Engine) tickDelta(now time.Duration) time.Duration {
	if !e.ticked {
		return e.frameBudget
	}
	dt := now - e.lastTick
	if dt < 0 {
		dt = 0
	}
	if limit := e.frameBudget * maxTickSteps; dt > limit {
		dt = limit
	}
	return dt
}

func (e *Engine) commit() {
	start := time.Now()
	Emit(e.bus, CommitStart, struct{}{})

	draws := make([]*drawEntry, len(e.draws))
	copy(draws, e.draws)
	for _, d := range draws {
		if d.removed {
			continue
		}
		d.fn(e.params)
	}

	Emit(e.bus, CommitEnd, struct{}{})

	e.stats.Commits++
	e.stats.LastCommitTime = time.Since(start)
	if e.debug {
		e.debugLog()
	}
}

// Dispose drops every callback, clears the pending commit and cancels the
// outstanding frame. No commit runs afterwards.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	for _, d := range e.draws {
		d.removed = true
	}
	e.draws = nil
	e.autoRender = false
	e.renderPending = false
	if e.inFlight {
		e.scheduler.CancelFrame(e.frameID)
		e.inFlight = false
		e.frameID = 0
	}
}

// Disposed reports whether Dispose has run.
func (e *Engine) Disposed() bool {
	return e.disposed
}
