package grove

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// testScript is the top-level structure of a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected input and checkpoints across ticks for
// automated interaction tests. Attach it with World.SetTestRunner.
//
// Actions: click, tap, move, press, release, drag, wait, checkpoint.
type TestRunner struct {
	// OnCheckpoint is called for each checkpoint step with its label.
	OnCheckpoint func(label string)

	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML (or JSON) test script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "tap", "move", "press", "release", "drag", "wait", "checkpoint":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches r. Its step method runs at the start of every Tick.
func (w *World) SetTestRunner(r *TestRunner) {
	w.testRunner = r
}

// Done reports whether every step has run and its input was delivered.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *TestRunner) step(w *World) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if w.InjectPending() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "checkpoint":
		if r.OnCheckpoint != nil {
			r.OnCheckpoint(st.Label)
		}
	case "click":
		w.InjectClick(st.X, st.Y)
	case "tap":
		w.InjectTap(st.X, st.Y)
	case "move":
		w.InjectMove(st.X, st.Y)
	case "press":
		w.InjectPress(st.X, st.Y)
	case "release":
		w.InjectRelease(st.X, st.Y)
	case "drag":
		w.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !w.InjectPending() {
		r.done = true
	}
}
