package grove

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"
	"testing"
)

// captureLog routes the package logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestSetDebugMode(t *testing.T) {
	if DebugMode() {
		t.Fatal("debug mode on by default")
	}
	enableDebug(t)
	if !DebugMode() {
		t.Error("SetDebugMode(true) not applied")
	}
}

func TestWorldConfigDebug(t *testing.T) {
	t.Cleanup(func() { SetDebugMode(false) })
	w := NewWorld(WorldConfig{Debug: true, Frames: NewFrameQueue(NewManualClock().Now)})
	t.Cleanup(w.Destroy)
	if !DebugMode() {
		t.Error("WorldConfig.Debug did not enable debug mode")
	}
}

func TestDuplicateKeyWarning(t *testing.T) {
	buf := captureLog(t)
	w, _ := newTestWorld(t)
	mustUpdate(t, w, box("a", nil), box("a", nil))
	if buf.Len() != 0 {
		t.Errorf("production build logged: %s", buf)
	}

	enableDebug(t)
	mustUpdate(t, w, box("b", nil), box("b", nil))
	out := buf.String()
	if !strings.Contains(out, "duplicate descriptor key") || !strings.Contains(out, "key=b") {
		t.Errorf("log = %q, want duplicate key warning", out)
	}
	if !strings.Contains(out, "component=grove") {
		t.Errorf("log = %q, missing component attribute", out)
	}
}

func TestLoggerFollowsSlogDefault(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(old) })
	enableDebug(t)

	w, _ := newTestWorld(t)
	mustUpdate(t, w, box("c", nil), box("c", nil))
	out := buf.String()
	if !strings.Contains(out, "duplicate descriptor key") || !strings.Contains(out, "component=grove") {
		t.Errorf("default logger got %q, want the duplicate key warning", out)
	}
}

func TestChildCountWarning(t *testing.T) {
	buf := captureLog(t)
	enableDebug(t)
	w, _ := newTestWorld(t)
	children := make([]*Descriptor, debugMaxChildCount+1)
	for i := range children {
		children[i] = box("k"+strconv.Itoa(i), nil)
	}
	mustUpdate(t, w, children...)
	if !strings.Contains(buf.String(), "consider a List") {
		t.Errorf("no child count warning in %q", buf.String())
	}
}

func TestTreeDepthWarning(t *testing.T) {
	buf := captureLog(t)
	enableDebug(t)
	var parent Facade
	for range debugMaxTreeDepth + 1 {
		g := &testGroup{}
		g.Init(g, parent)
		parent = g
	}
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("no depth warning in %q", buf.String())
	}
}

func TestDestroyedFacadeUse(t *testing.T) {
	enableDebug(t)
	w, _ := newTestWorld(t)
	mustUpdate(t, w, box("a", nil))
	a := childBox(t, w, "a")
	mustUpdate(t, w)

	defer func() {
		if recover() == nil {
			t.Error("SetParent on a destroyed facade did not panic in debug mode")
		}
	}()
	a.SetParent(w)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&DescriptorError{Key: "a", Type: "Box", Reason: "bad"}, `grove: descriptor "a" (Box): bad`},
		{&DescriptorError{Key: "a", Reason: "bad"}, `grove: descriptor "a": bad`},
		{&DescriptorError{Reason: "missing key"}, "grove: descriptor: missing key"},
		{&PropertyError{Type: "Box", Prop: "x", Value: "1", Want: "number"}, "grove: Box.x: cannot use 1 (string) as number"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
