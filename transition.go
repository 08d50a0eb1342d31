package grove

import "time"

// Transition maps property names to the tween used when a plain write
// changes that property's value.
type Transition map[string]TransitionSpec

// TransitionSpec configures one property's transition. The zero value means
// DefaultTweenDuration, linear easing and the property's own interpolator.
type TransitionSpec struct {
	Duration    time.Duration
	Delay       time.Duration
	Easing      string
	Interpolate string
}

func (s TransitionSpec) config(p *Prop) TweenConfig {
	cfg := TweenConfig{
		Duration:    s.Duration,
		Delay:       s.Delay,
		Easing:      s.Easing,
		Interpolate: s.Interpolate,
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultTweenDuration
	}
	if cfg.Interpolate == "" {
		cfg.Interpolate = p.Interpolate
	}
	return cfg
}

type transitionTween struct {
	tween *Tween
	to    any
}

// set writes v to p, honoring animations and transitions:
//   - animated properties ignore plain writes;
//   - transitioned properties that already hold a value tween toward v from
//     their current value, replacing an in-flight tween with another target;
//   - everything else is written immediately, cancelling any in-flight
//     transition of that property.
func (a *animator) set(p *Prop, v any) {
	if a.animated[p.Name] {
		return
	}
	f := a.fb.This
	spec, hasSpec := a.transition[p.Name]
	if hasSpec && a.hasValue[p.Name] {
		if tt := a.transitions[p.Name]; tt != nil {
			if valuesEqual(tt.to, v) {
				return
			}
			a.stopTransition(p.Name)
		} else if valuesEqual(p.Get(f), v) {
			return
		}
		a.startTransition(p, p.Get(f), v, spec)
		return
	}
	a.hasValue[p.Name] = true
	a.stopTransition(p.Name)
	p.Set(f, v)
}

func (a *animator) startTransition(p *Prop, from, to any, spec TransitionSpec) {
	f := a.fb.This
	t := NewTween(from, to, func(v any) {
		p.Set(f, v)
		a.dirty = true
	}, spec.config(p))
	a.transitions[p.Name] = &transitionTween{tween: t, to: to}
	a.tweenProp[t] = p.Name
	a.runner().Start(t)
}

func (a *animator) stopTransition(name string) {
	tt := a.transitions[name]
	if tt == nil {
		return
	}
	delete(a.transitions, name)
	delete(a.tweenProp, tt.tween)
	a.runner().Stop(tt.tween)
}

func (a *animator) stopTransitions() {
	for name := range a.transitions {
		a.stopTransition(name)
	}
}

// transitionDone forgets a transition tween that reached its target.
func (a *animator) transitionDone(t Tweener) bool {
	name, ok := a.tweenProp[t]
	if !ok {
		return false
	}
	delete(a.tweenProp, t)
	if tt := a.transitions[name]; tt != nil && Tweener(tt.tween) == t {
		delete(a.transitions, name)
	}
	return true
}
