package grove

import (
	"math"
	"testing"
	"time"
)

// testLog records lifecycle events of the test facades in order.
var testLog []string

func logEvent(s string) {
	testLog = append(testLog, s)
}

func resetLog(t *testing.T) {
	t.Helper()
	testLog = nil
	t.Cleanup(func() { testLog = nil })
}

func indexOf(log []string, s string) int {
	for i, v := range log {
		if v == s {
			return i
		}
	}
	return -1
}

func enableDebug(t *testing.T) {
	t.Helper()
	SetDebugMode(true)
	t.Cleanup(func() { SetDebugMode(false) })
}

// --- testBox: a leaf facade with numeric, color and handler props ---

type testBox struct {
	FacadeBase
	PointerEventTarget

	X, Y    float64
	Opacity float64
	Tint    Color
	Label   string

	updates  int
	destroys int
}

var testBoxType = NewType("testBox",
	func(parent Facade) Facade {
		b := &testBox{Opacity: 1, Tint: ColorWhite}
		b.Init(b, parent)
		logEvent("new")
		return b
	},
	append([]Prop{
		FloatProp("x", func(b *testBox) *float64 { return &b.X }),
		FloatProp("y", func(b *testBox) *float64 { return &b.Y }),
		FloatProp("opacity", func(b *testBox) *float64 { return &b.Opacity }),
		ColorProp("tint", func(b *testBox) *Color { return &b.Tint }),
		ValueProp("label", func(b *testBox) *string { return &b.Label }, ""),
	}, PointerProps()...)...,
)

func (b *testBox) AfterUpdate() {
	b.updates++
	b.FacadeBase.AfterUpdate()
}

func (b *testBox) Destroy() {
	if !b.Destroyed() {
		b.destroys++
		logEvent("destroy:" + b.Label)
	}
	b.FacadeBase.Destroy()
}

// --- testGroup: a Parent ---

type testGroup struct {
	Parent
	PointerEventTarget
	Label   string
	updates int
	skip    bool
}

var testGroupType = NewType("testGroup",
	func(parent Facade) Facade {
		g := &testGroup{}
		g.Init(g, parent)
		logEvent("new")
		return g
	},
	append([]Prop{
		ValueProp("label", func(g *testGroup) *string { return &g.Label }, ""),
		BoolProp("skip", func(g *testGroup) *bool { return &g.skip }),
	}, PointerProps()...)...,
)

func (g *testGroup) AfterUpdate() {
	g.updates++
	g.Parent.AfterUpdate()
}

func (g *testGroup) ShouldUpdateChildren() bool {
	return !g.skip
}

func (g *testGroup) Destroy() {
	if !g.Destroyed() {
		logEvent("destroy:" + g.Label)
	}
	g.Parent.Destroy()
}

// --- testList: a List ---

type testList struct {
	List
}

var testListType = NewType("testList", func(parent Facade) Facade {
	l := &testList{}
	l.Init(l, parent)
	return l
})

// --- world helpers ---

func newTestWorld(t *testing.T) (*World, *ManualClock) {
	t.Helper()
	clock := NewManualClock()
	w := NewWorld(WorldConfig{Frames: NewFrameQueue(clock.Now)})
	t.Cleanup(w.Destroy)
	return w, clock
}

// step advances the clock by d and runs one world tick.
func step(w *World, clock *ManualClock, d time.Duration) {
	clock.Advance(d)
	w.Tick()
}

func box(key string, props Props) *Descriptor {
	if props == nil {
		props = Props{}
	}
	if _, ok := props["label"]; !ok {
		props["label"] = key
	}
	return &Descriptor{Key: key, Facade: testBoxType, Props: props}
}

func mustUpdate(t *testing.T, w *World, children ...*Descriptor) {
	t.Helper()
	if err := w.Update(children...); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func childBox(t *testing.T, p interface{ Child(string) Facade }, key string) *testBox {
	t.Helper()
	f := p.Child(key)
	if f == nil {
		t.Fatalf("no child %q", key)
	}
	b, ok := f.(*testBox)
	if !ok {
		t.Fatalf("child %q is %T, want *testBox", key, f)
	}
	return b
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}
