package grove

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultTweenDuration is used by transitions and animations that do not set
// a duration.
const DefaultTweenDuration = 750 * time.Millisecond

// Tweener is anything a Runner can schedule. Implementations are pure
// functions of elapsed time: GotoTime can be called with any value, in any
// order, which makes scrubbing and restarting drift free.
type Tweener interface {
	GotoTime(elapsed time.Duration)
	GotoEnd()
	IsDoneAt(elapsed time.Duration) bool
	TotalDuration() time.Duration
}

// TweenConfig holds the playback parameters of a Tween. The zero value is a
// single instantaneous linear iteration.
type TweenConfig struct {
	Duration   time.Duration
	Delay      time.Duration
	Easing     string         // named curve, see EasingByName
	EasingFunc ease.TweenFunc // overrides Easing when set
	Iterations float64        // <= 0 means 1; math.Inf(1) repeats forever
	Direction  Direction

	Interpolate     string       // named interpolator, see InterpolatorByName
	InterpolateFunc Interpolator // overrides Interpolate when set
}

// Tween interpolates a single value between From and To and hands each
// computed value to its callback.
type Tween struct {
	From, To   any
	Duration   time.Duration
	Delay      time.Duration
	Iterations float64
	Direction  Direction

	callback    func(any)
	interpolate Interpolator
	progress    *gween.Tween // unit tween; eases [0,1] progress
	total       time.Duration
}

// NewTween creates a tween from from to to. callback receives every
// interpolated value.
func NewTween(from, to any, callback func(any), cfg TweenConfig) *Tween {
	easing := cfg.EasingFunc
	if easing == nil {
		easing = EasingByName(cfg.Easing)
	}
	interp := cfg.InterpolateFunc
	if interp == nil {
		interp = InterpolatorByName(cfg.Interpolate)
	}
	iterations := cfg.Iterations
	if iterations <= 0 || math.IsNaN(iterations) {
		iterations = 1
	}
	duration := max(cfg.Duration, 0)
	delay := max(cfg.Delay, 0)
	return &Tween{
		From:        from,
		To:          to,
		Duration:    duration,
		Delay:       delay,
		Iterations:  iterations,
		Direction:   cfg.Direction,
		callback:    callback,
		interpolate: interp,
		progress:    gween.New(0, 1, 1, easing),
		total:       totalDuration(duration, delay, iterations),
	}
}

func totalDuration(duration, delay time.Duration, iterations float64) time.Duration {
	if math.IsInf(iterations, 1) {
		return Forever
	}
	total := float64(duration)*iterations + float64(delay)
	if total >= float64(Forever) {
		return Forever
	}
	return time.Duration(total)
}

// GotoTime moves the tween to elapsed time since its start and invokes the
// callback. Times before Delay are ignored; times past the end clamp to the
// final value.
func (t *Tween) GotoTime(elapsed time.Duration) {
	if elapsed < t.Delay {
		return
	}
	if elapsed > t.total {
		elapsed = t.total
	}
	p, iteration := t.iterationProgress(elapsed - t.Delay)
	t.apply(p, iteration)
}

// GotoEnd jumps to the final value. Infinite tweens jump to the end of a
// forward iteration.
func (t *Tween) GotoEnd() {
	if t.total == Forever {
		t.apply(1, 0)
		return
	}
	t.GotoTime(t.total)
}

// IsDoneAt reports whether the tween has finished at elapsed. Infinite tweens
// are never done.
func (t *Tween) IsDoneAt(elapsed time.Duration) bool {
	return t.total != Forever && elapsed >= t.total
}

// TotalDuration is Delay plus Duration times Iterations, or Forever.
func (t *Tween) TotalDuration() time.Duration {
	return t.total
}

// iterationProgress splits run time into the progress within the current
// iteration and that iteration's index. An exact iteration boundary reports
// progress 1 of the iteration that just finished.
func (t *Tween) iterationProgress(run time.Duration) (float64, int64) {
	d := t.Duration
	if d <= 0 {
		return 1, 0
	}
	iteration := int64(run / d)
	rem := run % d
	if rem == 0 && run != 0 {
		return 1, iteration - 1
	}
	return float64(rem) / float64(d), iteration
}

func (t *Tween) apply(p float64, iteration int64) {
	v, _ := t.progress.Set(float32(p))
	eased := float64(v)
	if t.Direction == Reverse || (t.Direction == Alternate && iteration%2 == 1) {
		eased = 1 - eased
	}
	t.callback(t.interpolate(t.From, t.To, eased))
}
