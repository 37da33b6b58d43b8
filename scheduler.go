package pluton

import "time"

// FrameID identifies an outstanding frame request. Zero is never issued.
type FrameID uint64

// FrameScheduler is the host's animation-frame primitive. A callback
// requested during a frame runs on a later frame, never synchronously.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Duration)) FrameID
	CancelFrame(id FrameID)
}

// FrameRunner is implemented by schedulers whose frames are driven by the
// caller, such as FrameQueue.
type FrameRunner interface {
	RunFrame(now time.Duration) bool
}

type frameRequest struct {
	id FrameID
	fn func(now time.Duration)
}

// FrameQueue is a FrameScheduler stepped explicitly by its owner: a host
// loop, a headless renderer, or a test. It is not safe for concurrent use.
type FrameQueue struct {
	pending  []frameRequest
	nextID   FrameID
	requests int
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame queues fn for the next RunFrame.
func (q *FrameQueue) RequestFrame(fn func(now time.Duration)) FrameID {
	q.nextID++
	q.requests++
	q.pending = append(q.pending, frameRequest{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame removes a queued request. Unknown ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = frameRequest{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
}

// RunFrame runs every callback that was queued before the call, passing now.
// Callbacks queued while running wait for the next RunFrame. It reports
// whether any callback ran.
func (q *FrameQueue) RunFrame(now time.Duration) bool {
	if len(q.pending) == 0 {
		return false
	}
	batch := q.pending
	q.pending = nil
	for _, r := range batch {
		r.fn(now)
	}
	return true
}

// Drain runs frames at start, start+step, ... until nothing is pending or
// maxFrames frames have run. It returns the time of the last frame run.
func (q *FrameQueue) Drain(start, step time.Duration, maxFrames int) time.Duration {
	last, now := start, start
	for i := 0; i < maxFrames; i++ {
		if !q.RunFrame(now) {
			break
		}
		last = now
		now += step
	}
	return last
}

// Pending returns the number of queued requests.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Requests returns the total number of RequestFrame calls.
func (q *FrameQueue) Requests() int {
	return q.requests
}
