package grove

import (
	"slices"
	"time"
)

// Ticker is the single per-frame driver for Runners. Instead of each Runner
// requesting its own frames, active Runners register with a Ticker, which
// requests one frame at a time and ticks them all together.
type Ticker struct {
	frames  *FrameQueue
	active  []*Runner
	frameID FrameID
	queued  bool
	ticking bool
}

// NewTicker creates a ticker driven by frames.
func NewTicker(frames *FrameQueue) *Ticker {
	return &Ticker{frames: frames}
}

// DefaultTicker drives Runners that are not attached to a World.
var DefaultTicker = NewTicker(defaultFrames)

// Now returns the frame clock's current time.
func (tk *Ticker) Now() time.Time {
	return tk.frames.Now()
}

// ActiveRunners returns how many runners are waiting for the next frame.
func (tk *Ticker) ActiveRunners() int {
	n := 0
	for _, r := range tk.active {
		if r != nil {
			n++
		}
	}
	return n
}

func (tk *Ticker) activate(r *Runner) {
	if r.activeIn == tk {
		return
	}
	r.activeIn = tk
	tk.active = append(tk.active, r)
	tk.queue()
}

func (tk *Ticker) deactivate(r *Runner) {
	if r.activeIn != tk {
		return
	}
	r.activeIn = nil
	i := slices.Index(tk.active, r)
	if i < 0 {
		return
	}
	// tick is iterating over active; leave a hole for it to compact.
	if tk.ticking {
		tk.active[i] = nil
		return
	}
	tk.active = slices.Delete(tk.active, i, i+1)
	if len(tk.active) == 0 && tk.queued {
		tk.frames.CancelFrame(tk.frameID)
		tk.queued = false
	}
}

func (tk *Ticker) queue() {
	if tk.queued {
		return
	}
	tk.queued = true
	tk.frameID = tk.frames.RequestFrame(tk.tick)
}

func (tk *Ticker) tick(now time.Time) {
	tk.queued = false
	tk.ticking = true
	// Runners activated during this tick are appended and picked up by the
	// same loop. Runners deactivated during it leave nil slots.
	for i := 0; i < len(tk.active); i++ {
		r := tk.active[i]
		if r == nil {
			continue
		}
		if !r.tick(now) && tk.active[i] == r && r.activeIn == tk {
			r.activeIn = nil
			tk.active[i] = nil
		}
	}
	tk.ticking = false
	tk.active = slices.DeleteFunc(tk.active, func(r *Runner) bool { return r == nil })
	if len(tk.active) > 0 {
		tk.queue()
	} else if tk.queued {
		tk.frames.CancelFrame(tk.frameID)
		tk.queued = false
	}
}

type runEntry struct {
	tween    Tweener
	start    time.Time
	pausedAt time.Time
	paused   bool
	stopped  bool
}

// Runner advances a set of tweens once per frame on behalf of one owner
// (usually an animatable facade). Elapsed time is measured from Start and
// excludes time spent paused.
type Runner struct {
	// OnTweenDone is called when a tween reaches its end naturally.
	OnTweenDone func(t Tweener)
	// OnTick is called after each frame that advanced at least one tween.
	OnTick func()
	// OnIdle is called when the last tween finishes or is stopped.
	OnIdle func()

	ticker    *Ticker
	activeIn  *Ticker
	entries   []*runEntry
	index     map[Tweener]*runEntry
	destroyed bool
}

// NewRunner creates a runner ticked by tk. A nil tk uses DefaultTicker.
func NewRunner(tk *Ticker) *Runner {
	if tk == nil {
		tk = DefaultTicker
	}
	return &Runner{ticker: tk, index: make(map[Tweener]*runEntry)}
}

// Start schedules t. Starting a running tween is a no-op; starting a paused
// tween resumes it with the pause excluded from its elapsed time.
func (r *Runner) Start(t Tweener) {
	if r.destroyed {
		return
	}
	now := r.ticker.Now()
	e := r.index[t]
	switch {
	case e == nil || e.stopped:
		e = &runEntry{tween: t, start: now}
		r.index[t] = e
		r.entries = append(r.entries, e)
	case e.paused:
		e.start = e.start.Add(now.Sub(e.pausedAt))
		e.paused = false
	default:
		return
	}
	r.ticker.activate(r)
}

// Pause freezes t at its current elapsed time.
func (r *Runner) Pause(t Tweener) {
	e := r.index[t]
	if e == nil || e.paused || e.stopped {
		return
	}
	e.paused = true
	e.pausedAt = r.ticker.Now()
}

// Stop unschedules t. The entry is swept on the next tick.
func (r *Runner) Stop(t Tweener) {
	e := r.index[t]
	if e == nil {
		return
	}
	e.stopped = true
	delete(r.index, t)
	if len(r.index) == 0 {
		r.ticker.activate(r) // let the next tick sweep and report idle
	}
}

// StopAll unschedules every tween.
func (r *Runner) StopAll() {
	for t := range r.index {
		r.Stop(t)
	}
}

// Running reports whether t is scheduled and not paused.
func (r *Runner) Running(t Tweener) bool {
	e := r.index[t]
	return e != nil && !e.paused
}

// Paused reports whether t is scheduled and paused.
func (r *Runner) Paused(t Tweener) bool {
	e := r.index[t]
	return e != nil && e.paused
}

// Len returns the number of scheduled tweens, paused ones included.
func (r *Runner) Len() int {
	return len(r.index)
}

// Destroy stops everything and detaches from the ticker. A destroyed runner
// ignores Start.
func (r *Runner) Destroy() {
	r.destroyed = true
	r.entries = nil
	clear(r.index)
	r.OnTweenDone, r.OnTick, r.OnIdle = nil, nil, nil
	r.ticker.deactivate(r)
}

// tick advances every running tween to now and reports whether the runner
// wants another frame.
func (r *Runner) tick(now time.Time) bool {
	if r.destroyed {
		return false
	}
	advanced, running := false, false
	for i := 0; i < len(r.entries); i++ {
		e := r.entries[i]
		if e.stopped || e.paused {
			continue
		}
		elapsed := now.Sub(e.start)
		e.tween.GotoTime(elapsed)
		advanced = true
		if e.tween.IsDoneAt(elapsed) {
			e.stopped = true
			delete(r.index, e.tween)
			if r.OnTweenDone != nil {
				r.OnTweenDone(e.tween)
			}
		} else {
			running = true
		}
		if r.destroyed {
			return false
		}
	}
	r.sweep()
	if advanced && r.OnTick != nil {
		r.OnTick()
	}
	if r.destroyed {
		return false
	}
	if len(r.entries) == 0 {
		if r.OnIdle != nil {
			r.OnIdle()
		}
		return false
	}
	// A callback may have started a new tween after the loop.
	for _, e := range r.entries {
		if !e.stopped && !e.paused {
			running = true
			break
		}
	}
	return running
}

func (r *Runner) sweep() {
	n := 0
	for _, e := range r.entries {
		if !e.stopped {
			r.entries[n] = e
			n++
		}
	}
	clear(r.entries[n:])
	r.entries = r.entries[:n]
}
