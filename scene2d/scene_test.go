package scene2d

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/phanxgames/grove"
)

const ms = time.Millisecond

func newTestScene(t *testing.T) (*Scene, *grove.ManualClock) {
	t.Helper()
	clock := grove.NewManualClock()
	s := NewScene(grove.WorldConfig{Frames: grove.NewFrameQueue(clock.Now)})
	t.Cleanup(s.Close)
	return s, clock
}

func step(s *Scene, clock *grove.ManualClock, d time.Duration) {
	clock.Advance(d)
	s.Tick()
}

func mustUpdate(t *testing.T, s *Scene, children ...*grove.Descriptor) {
	t.Helper()
	if err := s.Update(children...); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func rect(key string, props grove.Props) *grove.Descriptor {
	return &grove.Descriptor{Key: key, Facade: RectType, Props: props}
}

func group(key string, props grove.Props, children ...*grove.Descriptor) *grove.Descriptor {
	return &grove.Descriptor{Key: key, Facade: GroupType, Props: props, Children: children}
}

func box(x, y, w, h float64) grove.Props {
	return grove.Props{"x": x, "y": y, "width": w, "height": h}
}

func TestNodesFollowFacades(t *testing.T) {
	s, _ := newTestScene(t)
	mustUpdate(t, s,
		group("g", grove.Props{"x": 10.0}, rect("a", nil), rect("b", nil)),
		rect("c", nil),
	)
	g := s.Child("g").(*Group)
	a := g.Child("a").(*Sprite)
	if g.Node().Parent != s.Root || a.Node().Parent != g.Node() {
		t.Fatal("nodes not attached under their parent facades")
	}
	if a.Node().Facade != grove.Facade(a) {
		t.Error("node does not point back to its facade")
	}
	if !equalNames(s.Root.Children(), "group", "sprite") {
		t.Errorf("root children = %v", names(s.Root.Children()))
	}

	mustUpdate(t, s,
		rect("c", nil),
		group("g", nil, rect("b", nil), rect("a", nil)),
	)
	c := s.Child("c").(*Sprite)
	if s.Root.Children()[0] != c.Node() || s.Root.Children()[1] != g.Node() {
		t.Error("root nodes not in descriptor order")
	}
	b := g.Child("b").(*Sprite)
	if g.Node().Children()[0] != b.Node() || g.Node().Children()[1] != a.Node() {
		t.Error("group nodes not in descriptor order")
	}

	mustUpdate(t, s, rect("c", nil))
	if !g.Node().IsDisposed() || !a.Node().IsDisposed() {
		t.Error("removed facades kept their nodes")
	}
	if s.Root.NumChildren() != 1 {
		t.Errorf("root has %d children, want 1", s.Root.NumChildren())
	}
}

func TestPropsWriteNode(t *testing.T) {
	s, _ := newTestScene(t)
	mustUpdate(t, s, rect("r", grove.Props{
		"x": 1, "y": 2.5, "scaleX": 2, "rotation": 0.5, "alpha": 0.25,
		"zIndex": 3, "visible": false, "color": grove.Hex("#ff0000"),
		"hitShape": HitCircle{Radius: 4},
	}))
	n := s.Child("r").(*Sprite).Node()
	if n.X != 1 || n.Y != 2.5 || n.ScaleX != 2 || n.Rotation != 0.5 || n.Alpha != 0.25 {
		t.Errorf("transform not written: %+v", n)
	}
	if n.ZIndex != 3 || n.Visible || n.Color != (grove.Color{R: 1, A: 1}) {
		t.Errorf("ZIndex=%d Visible=%v Color=%v", n.ZIndex, n.Visible, n.Color)
	}
	if _, ok := n.HitShape.(HitCircle); !ok {
		t.Errorf("HitShape = %T", n.HitShape)
	}
	if !n.transformDirty {
		t.Error("prop write did not mark the node dirty")
	}
	if v, ok := grove.GetProp(s.Child("r"), "zIndex"); !ok || v != 3 {
		t.Errorf("GetProp zIndex = %v, %v", v, ok)
	}

	err := s.Update(rect("r", grove.Props{"zIndex": "top"}))
	var pe *grove.PropertyError
	if !errors.As(err, &pe) || pe.Prop != "zIndex" {
		t.Errorf("err = %v, want zIndex PropertyError", err)
	}
}

func TestNeedsDrawFollowsRender(t *testing.T) {
	s, clock := newTestScene(t)
	if !s.NeedsDraw() {
		t.Error("new scene does not need a first draw")
	}
	s.needsDraw = false
	step(s, clock, 16*ms)
	if s.NeedsDraw() {
		t.Error("idle tick marked the scene for redraw")
	}
	mustUpdate(t, s, rect("a", nil))
	step(s, clock, 16*ms)
	if !s.NeedsDraw() {
		t.Error("update did not mark the scene for redraw")
	}
}

func TestTransitionMovesNode(t *testing.T) {
	s, clock := newTestScene(t)
	withTransition := func(x float64) *grove.Descriptor {
		d := rect("a", grove.Props{"x": x})
		d.Transition = grove.Transition{"x": {Duration: 100 * ms}}
		return d
	}
	mustUpdate(t, s, withTransition(0))
	n := s.Child("a").(*Sprite).Node()
	mustUpdate(t, s, withTransition(100))
	for range 12 {
		s.needsDraw = false
		step(s, clock, 10*ms)
	}
	if math.Abs(n.X-100) > 1e-6 {
		t.Errorf("X = %v after transition, want 100", n.X)
	}
}

func TestExitingNodeStaysUntilAnimationEnds(t *testing.T) {
	s, clock := newTestScene(t)
	d := rect("a", grove.Props{"alpha": 1.0})
	d.ExitAnimation = []grove.Animation{{
		Keyframes: []grove.Keyframe{grove.To(grove.Props{"alpha": 0.0})},
		Duration:  200 * ms,
	}}
	mustUpdate(t, s, d, rect("b", nil))
	a := s.Child("a").(*Sprite)

	mustUpdate(t, s, rect("b", nil), rect("c", nil))
	if a.Node().IsDisposed() {
		t.Fatal("node disposed while its facade exits")
	}
	if last := s.Root.Children()[s.Root.NumChildren()-1]; last != a.Node() {
		t.Error("exiting node not kept after the live ones")
	}
	for range 30 {
		step(s, clock, 16*ms)
	}
	if !a.Destroyed() || !a.Node().IsDisposed() {
		t.Error("node survived the end of the exit animation")
	}
	if s.Root.NumChildren() != 2 {
		t.Errorf("root has %d children, want 2", s.Root.NumChildren())
	}
}

func TestParentNodeWithoutScene(t *testing.T) {
	w := grove.NewWorld(grove.WorldConfig{Frames: grove.NewFrameQueue(grove.NewManualClock().Now)})
	t.Cleanup(w.Destroy)
	if err := w.Update(rect("a", nil)); err != nil {
		t.Fatal(err)
	}
	if n := w.Child("a").(*Sprite).Node(); n.Parent != nil {
		t.Error("node attached without a scene")
	}
}

func TestCloseDisposesTree(t *testing.T) {
	clock := grove.NewManualClock()
	s := NewScene(grove.WorldConfig{Frames: grove.NewFrameQueue(clock.Now)})
	mustUpdate(t, s, group("g", nil, rect("a", nil)))
	a := s.Child("g").(*Group).Child("a").(*Sprite)
	s.Close()
	if !a.Destroyed() || !a.Node().IsDisposed() || !s.Root.IsDisposed() {
		t.Error("Close left facades or nodes alive")
	}
}

func TestSceneFoundThroughWorld(t *testing.T) {
	clock := grove.NewManualClock()
	s := NewScene(grove.WorldConfig{Frames: grove.NewFrameQueue(clock.Now)})
	if got := s.World.HitTester(); got != s {
		t.Fatalf("got hit tester %v, want the scene", got)
	}
	mustUpdate(t, s, rect("a", nil))
	if n := s.Child("a").(*Sprite).Node(); n.Parent != s.Root {
		t.Error("top-level node not attached to the scene root")
	}

	// Replacing the hit tester detaches new top-level nodes from the scene.
	s.World.SetHitTester(nil)
	mustUpdate(t, s, rect("a", nil), rect("b", nil))
	if n := s.Child("b").(*Sprite).Node(); n.Parent != nil {
		t.Error("node attached after the world left the scene")
	}
}
