package grove

import (
	"slices"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`
steps:
  - action: checkpoint
    label: initial
  - action: click
    x: 100
    y: 200
  - action: wait
    frames: 3
  - action: drag
    fromX: 1
    fromY: 2
    toX: 30
    toY: 40
    frames: 6
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "checkpoint" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if st := runner.steps[3]; st.FromX != 1 || st.ToY != 40 || st.Frames != 6 {
		t.Errorf("step 3 mismatch: %+v", st)
	}
}

func TestLoadTestScriptJSON(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "tap", "x": 5, "y": 6}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.steps[0].Action != "tap" || runner.steps[0].Y != 6 {
		t.Error("step 0 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":  `steps: [`,
		"empty":   `steps: []`,
		"unknown": `steps: [{action: screenshot}]`,
	}
	for name, src := range tests {
		if _, err := LoadTestScript([]byte(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTestRunnerDrivesWorld(t *testing.T) {
	w, clock, pt := newPointerWorld(t)
	rec := &recorder{}
	mustUpdate(t, w, box("b", rec.props("b", EventClick)))
	pt.under = w.Child("b")

	runner, err := LoadTestScript([]byte(`
steps:
  - action: checkpoint
    label: before
  - action: click
    x: 50
    y: 50
  - action: wait
    frames: 2
  - action: checkpoint
    label: after
`))
	if err != nil {
		t.Fatal(err)
	}
	var checkpoints []string
	runner.OnCheckpoint = func(label string) {
		checkpoints = append(checkpoints, label)
		if label == "after" && len(rec.events) != 1 {
			t.Errorf("clicks at checkpoint %q = %d, want 1", label, len(rec.events))
		}
	}
	w.SetTestRunner(runner)

	for i := 0; i < 20 && !runner.Done(); i++ {
		step(w, clock, 16*ms)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if !slices.Equal(checkpoints, []string{"before", "after"}) {
		t.Errorf("checkpoints = %v", checkpoints)
	}
	if got := rec.take(); !slices.Equal(got, []string{"b:onClick"}) {
		t.Errorf("events = %v", got)
	}
}
