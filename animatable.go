package grove

import (
	"maps"
	"slices"
)

// Animatable returns the animatable variant of t: same constructor and
// property table, but instances route property writes through transitions
// and keyframe animations. The result is memoized, so repeated calls return
// the same *Type and reconciled instances keep their identity.
//
// Descriptors that set Transition, Animation or ExitAnimation are wrapped
// automatically.
func Animatable(t *Type) *Type {
	if t.animatable {
		return t
	}
	if t.wrapped == nil {
		t.wrapped = &Type{
			Name:       t.Name,
			New:        t.New,
			Props:      t.Props,
			index:      t.index,
			animatable: true,
			base:       t,
		}
	}
	return t.wrapped
}

// animator is the per-instance state of an animatable facade.
type animator struct {
	fb *FacadeBase
	r  *Runner

	transition  Transition
	transitions map[string]*transitionTween
	tweenProp   map[Tweener]string
	hasValue    map[string]bool

	animations []*compiledAnimation
	owner      map[*MultiTween]*compiledAnimation
	animated   map[string]bool
	exit       []Animation

	// dirty is set by tween callbacks and flushed once per runner tick.
	dirty bool
}

func newAnimator(fb *FacadeBase) *animator {
	return &animator{
		fb:          fb,
		transitions: make(map[string]*transitionTween),
		tweenProp:   make(map[Tweener]string),
		hasValue:    make(map[string]bool),
		owner:       make(map[*MultiTween]*compiledAnimation),
		animated:    make(map[string]bool),
	}
}

// runner creates the Runner on first use, bound to the world's ticker.
func (a *animator) runner() *Runner {
	if a.r != nil {
		return a.r
	}
	var tk *Ticker
	if a.fb.world != nil {
		tk = a.fb.world.ticker
	}
	r := NewRunner(tk)
	r.OnTweenDone = func(t Tweener) {
		if !a.transitionDone(t) {
			a.animationDone(t)
		}
	}
	r.OnTick = a.flush
	r.OnIdle = a.idle
	a.r = r
	return r
}

// flush commits tween-written values: one AfterUpdate and one render
// request per tick.
func (a *animator) flush() {
	if !a.dirty || a.fb.state == stateDestroyed {
		return
	}
	a.dirty = false
	a.fb.This.AfterUpdate()
	a.fb.NotifyWorld(MsgNeedsRender, nil)
}

func (a *animator) idle() {
	if a.fb.state == stateExiting {
		destroyNow(a.fb.This)
	}
}

func (a *animator) setTransition(t Transition) {
	a.transition = t
}

func (a *animator) setExitAnimation(list []Animation) {
	a.exit = list
}

// beginExit swaps in the exit animation. It reports false when there is
// nothing to play, in which case the caller destroys immediately.
func (a *animator) beginExit() bool {
	if len(a.exit) == 0 {
		return false
	}
	running := false
	for i := range a.exit {
		if !a.exit[i].Paused {
			running = true
			break
		}
	}
	if !running {
		return false
	}
	a.fb.state = stateExiting
	a.transition = nil
	a.stopTransitions()
	a.setAnimation(a.exit)
	return true
}

// running reports whether any transition or animation tween is scheduled.
func (a *animator) running() bool {
	return a.r != nil && a.r.Len() > 0
}

func (a *animator) destroy() {
	if a.r != nil {
		a.r.Destroy()
	}
	clear(a.transitions)
	a.animations = nil
	clear(a.owner)
	clear(a.tweenProp)
	clear(a.animated)
}

// Animating reports whether f has a running transition or animation.
func Animating(f Facade) bool {
	a := f.AsFacade().anim
	return a != nil && a.running()
}

// AnimatedProps returns the names of the properties currently driven by an
// animation on f.
func AnimatedProps(f Facade) []string {
	a := f.AsFacade().anim
	if a == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(a.animated))
}
