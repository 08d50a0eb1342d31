package grove

import (
	"reflect"
	"slices"
)

// Interpolator returns the value at progress between from and to. Progress is
// usually in [0, 1] but elastic and back easings overshoot it.
type Interpolator func(from, to any, progress float64) any

var interpolators = map[string]Interpolator{
	"number":   InterpolateNumber,
	"color":    InterpolateColor,
	"colorLab": InterpolateColorLab,
	"vec2":     InterpolateVec2,
	"numbers":  InterpolateNumbers,
}

// RegisterInterpolator adds or replaces a named interpolator.
func RegisterInterpolator(name string, fn Interpolator) {
	interpolators[name] = fn
}

// InterpolatorByName returns the named interpolator, falling back to
// InterpolateNumber for empty or unknown names.
func InterpolatorByName(name string) Interpolator {
	if fn, ok := interpolators[name]; ok {
		return fn
	}
	return InterpolateNumber
}

// InterpolateNumber linearly interpolates numeric values and returns a
// float64. Non-numeric input steps from from to to at progress 1.
func InterpolateNumber(from, to any, progress float64) any {
	a, okA := toFloat(from)
	b, okB := toFloat(to)
	if !okA || !okB {
		return stepValue(from, to, progress)
	}
	return a + (b-a)*progress
}

// InterpolateColor blends two Colors in RGB space.
func InterpolateColor(from, to any, progress float64) any {
	a, okA := from.(Color)
	b, okB := to.(Color)
	if !okA || !okB {
		return stepValue(from, to, progress)
	}
	c := a.colorful().BlendRgb(b.colorful(), progress)
	return Color{R: c.R, G: c.G, B: c.B, A: a.A + (b.A-a.A)*progress}
}

// InterpolateColorLab blends two Colors in L*a*b* space.
func InterpolateColorLab(from, to any, progress float64) any {
	a, okA := from.(Color)
	b, okB := to.(Color)
	if !okA || !okB {
		return stepValue(from, to, progress)
	}
	c := a.colorful().BlendLab(b.colorful(), progress).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: a.A + (b.A-a.A)*progress}
}

// InterpolateVec2 interpolates both components of a Vec2.
func InterpolateVec2(from, to any, progress float64) any {
	a, okA := from.(Vec2)
	b, okB := to.(Vec2)
	if !okA || !okB {
		return stepValue(from, to, progress)
	}
	return Vec2{X: a.X + (b.X-a.X)*progress, Y: a.Y + (b.Y-a.Y)*progress}
}

// InterpolateNumbers interpolates []float64 element-wise. The result has the
// length of to; missing from elements count as zero.
func InterpolateNumbers(from, to any, progress float64) any {
	a, okA := from.([]float64)
	b, okB := to.([]float64)
	if !okA || !okB {
		return stepValue(from, to, progress)
	}
	out := make([]float64, len(b))
	for i := range b {
		var av float64
		if i < len(a) {
			av = a[i]
		}
		out[i] = av + (b[i]-av)*progress
	}
	return out
}

func stepValue(from, to any, progress float64) any {
	if progress >= 1 {
		return to
	}
	return from
}

// toFloat converts any Go numeric kind to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// valuesEqual compares property values. Numbers compare by value regardless
// of their Go kind.
func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case Color:
		bv, ok := b.(Color)
		return ok && av == bv
	case Vec2:
		bv, ok := b.(Vec2)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []float64:
		bv, ok := b.([]float64)
		return ok && slices.Equal(av, bv)
	}
	return reflect.DeepEqual(a, b)
}
