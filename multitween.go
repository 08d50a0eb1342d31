package grove

import "time"

// maxMultiDuration bounds a MultiTween timeline that contains infinite
// children, so that easing math stays finite.
const maxMultiDuration = time.Duration(1 << 52)

// MultiTween schedules several Tweeners as one unit on a shared timeline. Its
// own easing, iterations and direction apply to that timeline; each child
// handles its own delay and duration within it.
type MultiTween struct {
	children []Tweener
	timeline *Tween
}

// NewMultiTween wraps children. A zero cfg.Duration spans the longest child.
func NewMultiTween(children []Tweener, cfg TweenConfig) *MultiTween {
	m := &MultiTween{children: children}
	if cfg.Duration <= 0 {
		for _, c := range children {
			cfg.Duration = max(cfg.Duration, c.TotalDuration())
		}
		if cfg.Duration > maxMultiDuration {
			cfg.Duration = maxMultiDuration
		}
	}
	cfg.Interpolate, cfg.InterpolateFunc = "", InterpolateNumber
	var seek func(any)
	if len(children) == 1 {
		only := children[0]
		seek = func(v any) { only.GotoTime(time.Duration(v.(float64))) }
	} else {
		seek = m.broadcast
	}
	m.timeline = NewTween(0.0, float64(cfg.Duration), seek, cfg)
	return m
}

func (m *MultiTween) broadcast(v any) {
	at := time.Duration(v.(float64))
	for _, c := range m.children {
		c.GotoTime(at)
	}
}

// Children returns the wrapped tweeners. The slice MUST NOT be mutated.
func (m *MultiTween) Children() []Tweener {
	return m.children
}

// Duration returns the length of one iteration of the shared timeline.
func (m *MultiTween) Duration() time.Duration {
	return m.timeline.Duration
}

// GotoTime implements Tweener.
func (m *MultiTween) GotoTime(elapsed time.Duration) {
	m.timeline.GotoTime(elapsed)
}

// GotoEnd implements Tweener.
func (m *MultiTween) GotoEnd() {
	m.timeline.GotoEnd()
}

// IsDoneAt implements Tweener.
func (m *MultiTween) IsDoneAt(elapsed time.Duration) bool {
	return m.timeline.IsDoneAt(elapsed)
}

// TotalDuration implements Tweener.
func (m *MultiTween) TotalDuration() time.Duration {
	return m.timeline.TotalDuration()
}
