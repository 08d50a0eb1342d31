package grove

import "github.com/tanema/gween/ease"

// easings maps descriptor easing names to curves. Names follow the common
// CSS-animation convention (easeInQuad, easeOutBack, ...).
var easings = map[string]ease.TweenFunc{
	"linear": ease.Linear,

	"easeInQuad":    ease.InQuad,
	"easeOutQuad":   ease.OutQuad,
	"easeInOutQuad": ease.InOutQuad,
	"easeOutInQuad": ease.OutInQuad,

	"easeInCubic":    ease.InCubic,
	"easeOutCubic":   ease.OutCubic,
	"easeInOutCubic": ease.InOutCubic,
	"easeOutInCubic": ease.OutInCubic,

	"easeInQuart":    ease.InQuart,
	"easeOutQuart":   ease.OutQuart,
	"easeInOutQuart": ease.InOutQuart,
	"easeOutInQuart": ease.OutInQuart,

	"easeInQuint":    ease.InQuint,
	"easeOutQuint":   ease.OutQuint,
	"easeInOutQuint": ease.InOutQuint,
	"easeOutInQuint": ease.OutInQuint,

	"easeInSine":    ease.InSine,
	"easeOutSine":   ease.OutSine,
	"easeInOutSine": ease.InOutSine,
	"easeOutInSine": ease.OutInSine,

	"easeInExpo":    ease.InExpo,
	"easeOutExpo":   ease.OutExpo,
	"easeInOutExpo": ease.InOutExpo,
	"easeOutInExpo": ease.OutInExpo,

	"easeInCirc":    ease.InCirc,
	"easeOutCirc":   ease.OutCirc,
	"easeInOutCirc": ease.InOutCirc,
	"easeOutInCirc": ease.OutInCirc,

	"easeInElastic":    ease.InElastic,
	"easeOutElastic":   ease.OutElastic,
	"easeInOutElastic": ease.InOutElastic,
	"easeOutInElastic": ease.OutInElastic,

	"easeInBack":    ease.InBack,
	"easeOutBack":   ease.OutBack,
	"easeInOutBack": ease.InOutBack,
	"easeOutInBack": ease.OutInBack,

	"easeInBounce":    ease.InBounce,
	"easeOutBounce":   ease.OutBounce,
	"easeInOutBounce": ease.InOutBounce,
	"easeOutInBounce": ease.OutInBounce,
}

// RegisterEasing adds or replaces a named easing curve. Descriptors refer to
// curves by name so that animation descriptors stay comparable.
func RegisterEasing(name string, fn ease.TweenFunc) {
	easings[name] = fn
}

// EasingByName returns the named curve. Unknown and empty names resolve to
// ease.Linear.
func EasingByName(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}
