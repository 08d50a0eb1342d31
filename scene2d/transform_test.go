package scene2d

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLocalTransform(t *testing.T) {
	tests := []struct {
		name                   string
		x, y, sx, sy, r        float64
		px, py                 float64
		inX, inY, wantX, wantY float64
	}{
		{"identity", 0, 0, 1, 1, 0, 0, 0, 3, 4, 3, 4},
		{"translate", 10, 20, 1, 1, 0, 0, 0, 1, 1, 11, 21},
		{"scale", 0, 0, 2, 3, 0, 0, 0, 1, 1, 2, 3},
		{"rotate", 0, 0, 1, 1, math.Pi / 2, 0, 0, 1, 0, 0, 1},
		{"pivot", 5, 5, 2, 2, 0, 1, 1, 1, 1, 5, 5},
		{"pivot rotate", 0, 0, 1, 1, math.Pi, 1, 0, 2, 0, -1, 0},
	}
	for _, tt := range tests {
		m := localTransform(tt.x, tt.y, tt.sx, tt.sy, tt.r, tt.px, tt.py)
		gx, gy := apply(m, tt.inX, tt.inY)
		if !near(gx, tt.wantX) || !near(gy, tt.wantY) {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tt.name, gx, gy, tt.wantX, tt.wantY)
		}
	}
}

func TestInvert(t *testing.T) {
	m := localTransform(7, -3, 2, 0.5, 0.3, 4, 1)
	x, y := apply(m, 12, 9)
	bx, by := apply(invert(m), x, y)
	if !near(bx, 12) || !near(by, 9) {
		t.Errorf("round trip = (%v, %v)", bx, by)
	}
	if invert([6]float64{0, 0, 0, 0, 1, 1}) != identity {
		t.Error("singular matrix did not invert to identity")
	}
}

func TestWorldTransformHierarchy(t *testing.T) {
	root, parent, child := NewNode("root"), NewNode("parent"), NewNode("child")
	root.AddChild(parent)
	parent.AddChild(child)
	parent.X, parent.Y = 100, 50
	parent.ScaleX, parent.ScaleY = 2, 2
	parent.Alpha = 0.5
	child.X = 10
	child.Alpha = 0.5

	updateWorld(root, identity, 1, false)
	if x, y := child.LocalToWorld(0, 0); !near(x, 120) || !near(y, 50) {
		t.Errorf("child origin = (%v, %v), want (120, 50)", x, y)
	}
	if !near(child.worldAlpha, 0.25) {
		t.Errorf("worldAlpha = %v, want 0.25", child.worldAlpha)
	}
	if x, y := child.WorldToLocal(122, 54); !near(x, 1) || !near(y, 2) {
		t.Errorf("WorldToLocal = (%v, %v), want (1, 2)", x, y)
	}

	// Only the moved parent is dirty; the child follows.
	parent.X = 0
	parent.touch()
	updateWorld(root, identity, 1, false)
	if x, _ := child.LocalToWorld(0, 0); !near(x, 20) {
		t.Errorf("child x after parent move = %v, want 20", x)
	}
}
