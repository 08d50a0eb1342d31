package grove

import "time"

// FrameID identifies a pending frame request.
type FrameID uint64

type frameRequest struct {
	id FrameID
	fn func(now time.Time)
}

// FrameQueue is the animation-frame scheduler. Callbacks requested with
// RequestFrame run on the next Flush, which the host loop calls once per
// frame (Ebitengine's Update, or a test advancing a ManualClock). Callbacks
// requested while a Flush is running wait for the following Flush.
//
// FrameQueue is not safe for concurrent use; like the rest of grove it lives
// on the single frame thread.
type FrameQueue struct {
	now     func() time.Time
	nextID  FrameID
	pending []frameRequest
	running []frameRequest
}

// NewFrameQueue creates a queue reading time from now. A nil now uses
// time.Now.
func NewFrameQueue(now func() time.Time) *FrameQueue {
	if now == nil {
		now = time.Now
	}
	return &FrameQueue{now: now}
}

// Now returns the queue's current time.
func (q *FrameQueue) Now() time.Time {
	return q.now()
}

// RequestFrame schedules fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn func(now time.Time)) FrameID {
	q.nextID++
	q.pending = append(q.pending, frameRequest{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame removes a pending request. Unknown ids are ignored.
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

// Pending returns the number of outstanding requests.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Flush runs every callback requested before the call, in request order, all
// with the same frame time.
func (q *FrameQueue) Flush() {
	if len(q.pending) == 0 {
		return
	}
	now := q.now()
	q.running, q.pending = q.pending, q.running[:0]
	for i := range q.running {
		q.running[i].fn(now)
		q.running[i] = frameRequest{}
	}
	q.running = q.running[:0]
}

// ManualClock is a deterministic time source for tests and fixed-step hosts.
type ManualClock struct {
	t time.Time
}

// NewManualClock starts a clock at an arbitrary fixed instant.
func NewManualClock() *ManualClock {
	return &ManualClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	return c.t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

var defaultFrames = NewFrameQueue(nil)

// DefaultFrames returns the process-wide frame queue used by DefaultTicker.
func DefaultFrames() *FrameQueue {
	return defaultFrames
}
