package grove

import (
	"fmt"
	"log/slog"
)

// devMode enables descriptor validation, duplicate-key warnings and tree
// diagnostics. Production builds leave it off and skip those checks.
var devMode bool

// SetDebugMode toggles development checks for every world in the process.
func SetDebugMode(on bool) {
	devMode = on
}

// DebugMode reports whether development checks are enabled.
func DebugMode() bool {
	return devMode
}

// customLogger is set by SetLogger. Nil means slog.Default, resolved on
// every call so that a later slog.SetDefault is honored.
var customLogger *slog.Logger

// SetLogger replaces the package logger. A nil l restores slog.Default.
func SetLogger(l *slog.Logger) {
	customLogger = l
}

func logger() *slog.Logger {
	l := customLogger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", "grove")
}

// DescriptorError reports a malformed descriptor. In debug mode it is raised
// during the reconciliation pass and returned from World.Update.
type DescriptorError struct {
	Key    string
	Type   string
	Reason string
}

func (e *DescriptorError) Error() string {
	switch {
	case e.Key != "" && e.Type != "":
		return fmt.Sprintf("grove: descriptor %q (%s): %s", e.Key, e.Type, e.Reason)
	case e.Key != "":
		return fmt.Sprintf("grove: descriptor %q: %s", e.Key, e.Reason)
	default:
		return "grove: descriptor: " + e.Reason
	}
}

// PropertyError reports a value of the wrong type written to a facade
// property. It is raised by the property setter in every build.
type PropertyError struct {
	Type  string
	Prop  string
	Value any
	Want  string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("grove: %s.%s: cannot use %v (%T) as %s", e.Type, e.Prop, e.Value, e.Value, e.Want)
}

// descriptorFault raises err in debug mode. In production it returns false
// so the caller skips the offending entry.
func descriptorFault(err *DescriptorError) bool {
	if devMode {
		panic(err)
	}
	return false
}

// debugCheckDestroyed panics when a destroyed facade is used in a tree
// operation.
func debugCheckDestroyed(fb *FacadeBase, op string) {
	if devMode && fb.state == stateDestroyed {
		panic(fmt.Sprintf("grove debug: %s on destroyed facade %d", op, fb.ID))
	}
}

// debugMaxTreeDepth is the depth past which a warning is logged.
const debugMaxTreeDepth = 64

func debugCheckTreeDepth(fb *FacadeBase) {
	if !devMode {
		return
	}
	depth := 0
	for p := fb; p != nil; {
		depth++
		if p.parent == nil {
			break
		}
		p = p.parent.AsFacade()
	}
	if depth > debugMaxTreeDepth {
		logger().Warn("tree depth exceeds threshold", "depth", depth, "max", debugMaxTreeDepth, "facade", fb.ID)
	}
}

// debugMaxChildCount is the sibling count past which Parent logs a warning
// suggesting a List.
const debugMaxChildCount = 1000

func debugCheckChildCount(fb *FacadeBase, n int) {
	if devMode && n > debugMaxChildCount {
		logger().Warn("parent has many descriptor children; consider a List",
			"facade", fb.ID, "children", n, "threshold", debugMaxChildCount)
	}
}
