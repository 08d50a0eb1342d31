package grove

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"
)

// Keyframe is a property snapshot at a percentage (0 to 100) of an
// animation's duration.
type Keyframe struct {
	At    float64
	Props Props
}

// From is the 0% keyframe.
func From(p Props) Keyframe { return Keyframe{At: 0, Props: p} }

// To is the 100% keyframe.
func To(p Props) Keyframe { return Keyframe{At: 100, Props: p} }

// At is a keyframe at pct percent.
func At(pct float64, p Props) Keyframe { return Keyframe{At: pct, Props: p} }

// Animation declares a keyframe animation. Two animations are the same
// animation when every field but Paused is equal; the reconciler keeps the
// running instance in that case.
type Animation struct {
	Keyframes  []Keyframe
	Duration   time.Duration // 0 means DefaultTweenDuration
	Delay      time.Duration
	Easing     string
	Iterations float64 // math.Inf(1) loops forever
	Direction  Direction
	// Interpolate overrides the interpolator per property.
	Interpolate map[string]string
	Paused      bool
}

// sameAnimation compares everything except Paused.
func sameAnimation(a, b *Animation) bool {
	if a.Duration != b.Duration || a.Delay != b.Delay || a.Easing != b.Easing ||
		a.Direction != b.Direction || !sameIterations(a.Iterations, b.Iterations) ||
		!maps.Equal(a.Interpolate, b.Interpolate) || len(a.Keyframes) != len(b.Keyframes) {
		return false
	}
	for i := range a.Keyframes {
		ka, kb := &a.Keyframes[i], &b.Keyframes[i]
		if ka.At != kb.At || !sameProps(ka.Props, kb.Props) {
			return false
		}
	}
	return true
}

// sameIterations treats every non-positive count as the default single run.
func sameIterations(a, b float64) bool {
	if a <= 0 || math.IsNaN(a) {
		a = 1
	}
	if b <= 0 || math.IsNaN(b) {
		b = 1
	}
	return a == b
}

func sameProps(a, b Props) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !valuesEqual(va, vb) {
			return false
		}
	}
	return true
}

// compiledAnimation is an Animation turned into a schedulable MultiTween.
type compiledAnimation struct {
	spec   Animation
	tween  *MultiTween
	props  []string
	paused bool
	done   bool
}

type keyValue struct {
	at    float64
	value any
}

// compileAnimation builds one linear Tween per keyframe pair and property,
// placed on the animation's timeline, and wraps them in a MultiTween that
// carries the easing, iterations and direction. A property absent from the
// 0% keyframe starts from its current value.
func (a *animator) compileAnimation(spec Animation) *compiledAnimation {
	f := a.fb.This
	typ := a.fb.typ
	duration := spec.Duration
	if duration <= 0 {
		duration = DefaultTweenDuration
	}

	frames := slices.Clone(spec.Keyframes)
	for i := range frames {
		frames[i].At = min(max(frames[i].At, 0), 100)
	}
	slices.SortStableFunc(frames, func(x, y Keyframe) int {
		switch {
		case x.At < y.At:
			return -1
		case x.At > y.At:
			return 1
		}
		return 0
	})

	tracks := make(map[string][]keyValue)
	var names []string
	for _, kf := range frames {
		for _, name := range slices.Sorted(maps.Keys(kf.Props)) {
			if _, ok := typ.Prop(name); !ok {
				descriptorFault(&DescriptorError{Type: typ.Name,
					Reason: fmt.Sprintf("animation keyframe sets unknown property %q", name)})
				continue
			}
			if _, seen := tracks[name]; !seen {
				names = append(names, name)
			}
			tracks[name] = append(tracks[name], keyValue{at: kf.At, value: kf.Props[name]})
		}
	}

	var children []Tweener
	for _, name := range names {
		p, _ := typ.Prop(name)
		track := tracks[name]
		if track[0].at > 0 {
			track = append([]keyValue{{at: 0, value: p.Get(f)}}, track...)
		}
		interp := spec.Interpolate[name]
		if interp == "" {
			interp = p.Interpolate
		}
		set := func(v any) {
			p.Set(f, v)
			a.dirty = true
		}
		if len(track) == 1 {
			track = append(track, keyValue{at: 100, value: track[0].value})
		}
		for i := 1; i < len(track); i++ {
			from, to := track[i-1], track[i]
			children = append(children, NewTween(from.value, to.value, set, TweenConfig{
				Delay:       time.Duration(from.at / 100 * float64(duration)),
				Duration:    time.Duration((to.at - from.at) / 100 * float64(duration)),
				Interpolate: interp,
			}))
		}
	}

	return &compiledAnimation{
		spec:  spec,
		props: names,
		tween: NewMultiTween(children, TweenConfig{
			Duration:   duration,
			Delay:      spec.Delay,
			Easing:     spec.Easing,
			Iterations: spec.Iterations,
			Direction:  spec.Direction,
		}),
	}
}

// setAnimation reconciles the running animations with list. Entries equal
// to a running animation keep it (applying Paused); running animations with
// no match are stopped and jumped to their end before new entries start.
func (a *animator) setAnimation(list []Animation) {
	if len(list) == 0 && len(a.animations) == 0 {
		return
	}
	r := a.runner()
	used := make([]bool, len(a.animations))
	matched := make([]*compiledAnimation, len(list))
	for i := range list {
		for j, old := range a.animations {
			if !used[j] && sameAnimation(&old.spec, &list[i]) {
				used[j] = true
				matched[i] = old
				break
			}
		}
	}

	changed := false
	for j, old := range a.animations {
		if used[j] {
			continue
		}
		changed = true
		a.forget(old)
		if !old.done {
			r.Stop(old.tween)
			old.tween.GotoEnd()
		}
	}

	next := make([]*compiledAnimation, len(list))
	for i := range list {
		c := matched[i]
		if c == nil {
			changed = true
			c = a.compileAnimation(list[i])
			a.owner[c.tween] = c
			c.tween.GotoTime(0)
			r.Start(c.tween)
			if list[i].Paused {
				r.Pause(c.tween)
				c.paused = true
			}
		} else if !c.done && c.paused != list[i].Paused {
			if list[i].Paused {
				r.Pause(c.tween)
			} else {
				r.Start(c.tween)
			}
			c.paused = list[i].Paused
		}
		c.spec.Paused = list[i].Paused
		next[i] = c
	}
	a.animations = next
	if changed {
		a.recomputeAnimated()
	}
}

func (a *animator) forget(c *compiledAnimation) {
	delete(a.owner, c.tween)
}

// animationDone marks a compiled animation finished. Its properties accept
// plain writes and transitions again.
func (a *animator) animationDone(t Tweener) bool {
	mt, ok := t.(*MultiTween)
	if !ok {
		return false
	}
	c := a.owner[mt]
	if c == nil {
		return false
	}
	c.done = true
	a.recomputeAnimated()
	return true
}

// recomputeAnimated rebuilds the set of animation-driven properties and
// cancels transitions on them.
func (a *animator) recomputeAnimated() {
	clear(a.animated)
	for _, c := range a.animations {
		if c.done {
			continue
		}
		for _, name := range c.props {
			a.animated[name] = true
		}
	}
	for name := range a.animated {
		a.stopTransition(name)
	}
}
