package scene2d

import (
	"testing"

	"github.com/phanxgames/grove"
)

func TestHitShapes(t *testing.T) {
	tri := HitPolygon{Points: []grove.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}}
	tests := []struct {
		name  string
		shape HitShape
		x, y  float64
		want  bool
	}{
		{"rect inside", HitRect{X: 0, Y: 0, Width: 10, Height: 5}, 5, 2, true},
		{"rect edge", HitRect{X: 0, Y: 0, Width: 10, Height: 5}, 10, 5, true},
		{"rect outside", HitRect{X: 0, Y: 0, Width: 10, Height: 5}, 11, 2, false},
		{"circle inside", HitCircle{CenterX: 5, CenterY: 5, Radius: 2}, 6, 6, true},
		{"circle outside", HitCircle{CenterX: 5, CenterY: 5, Radius: 2}, 7, 7, false},
		{"polygon inside", tri, 2, 2, true},
		{"polygon outside", tri, 8, 8, false},
		{"polygon degenerate", HitPolygon{Points: tri.Points[:2]}, 1, 0, false},
	}
	for _, tt := range tests {
		if got := tt.shape.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Contains(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

// hitFacades indexes hits by facade.
func hitFacades(hits []grove.Hit) map[grove.Facade]grove.Hit {
	out := make(map[grove.Facade]grove.Hit, len(hits))
	for _, h := range hits {
		out[h.Facade] = h
	}
	return out
}

func TestFacadesAtPosition(t *testing.T) {
	s, _ := newTestScene(t)
	mustUpdate(t, s, rect("a", box(0, 0, 100, 100)), rect("b", box(50, 50, 100, 100)))
	a, b := s.Child("a"), s.Child("b")

	hits := hitFacades(s.FacadesAtPosition(75, 80))
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[b].Distance >= hits[a].Distance {
		t.Errorf("later sibling not closer: a=%v b=%v", hits[a].Distance, hits[b].Distance)
	}
	if h := hits[b]; h.LocalX != 25 || h.LocalY != 30 {
		t.Errorf("local = (%v, %v), want (25, 30)", h.LocalX, h.LocalY)
	}

	if hits := s.FacadesAtPosition(10, 10); len(hits) != 1 || hits[0].Facade != a {
		t.Errorf("hits at (10, 10) = %v, want a only", hits)
	}
	if hits := s.FacadesAtPosition(500, 500); len(hits) != 0 {
		t.Errorf("hits in empty space = %v", hits)
	}

	// Raising a above b flips the order.
	a0 := box(0, 0, 100, 100)
	a0["zIndex"] = 1
	mustUpdate(t, s, rect("a", a0), rect("b", box(50, 50, 100, 100)))
	hits = hitFacades(s.FacadesAtPosition(75, 80))
	if hits[a].Distance >= hits[b].Distance {
		t.Errorf("zIndex did not raise a: a=%v b=%v", hits[a].Distance, hits[b].Distance)
	}

	// Invisible nodes are not hit.
	b0 := box(50, 50, 100, 100)
	b0["visible"] = false
	mustUpdate(t, s, rect("a", a0), rect("b", b0))
	if _, ok := hitFacades(s.FacadesAtPosition(75, 80))[b]; ok {
		t.Error("invisible node was hit")
	}
}

func TestHitThroughTransformedGroup(t *testing.T) {
	s, _ := newTestScene(t)
	mustUpdate(t, s, group("g", grove.Props{"x": 100, "scaleX": 2, "scaleY": 2},
		rect("r", box(0, 0, 10, 10)),
	))
	r := s.Child("g").(*Group).Child("r")
	hits := s.FacadesAtPosition(115, 5)
	if len(hits) != 1 || hits[0].Facade != r {
		t.Fatalf("hits = %v, want r", hits)
	}
	if hits[0].LocalX != 7.5 || hits[0].LocalY != 2.5 {
		t.Errorf("local = (%v, %v), want (7.5, 2.5)", hits[0].LocalX, hits[0].LocalY)
	}
	if hits := s.FacadesAtPosition(125, 5); len(hits) != 0 {
		t.Errorf("hit outside scaled rect: %v", hits)
	}
}

func TestGroupHitShape(t *testing.T) {
	s, _ := newTestScene(t)
	mustUpdate(t, s,
		group("plain", nil),
		group("round", grove.Props{"x": 50, "y": 50, "hitShape": HitCircle{Radius: 10}}),
	)
	hits := s.FacadesAtPosition(55, 50)
	if len(hits) != 1 || hits[0].Facade != s.Child("round") {
		t.Errorf("hits = %v, want round only", hits)
	}
}

func TestOverlayPaintsLast(t *testing.T) {
	s, _ := newTestScene(t)
	over := box(0, 0, 100, 100)
	over["overlay"] = true
	mustUpdate(t, s, rect("a", over), rect("b", box(0, 0, 100, 100)))
	a, b := s.Child("a"), s.Child("b")
	if got := s.Overlays(); len(got) != 1 || got[0] != a {
		t.Fatalf("Overlays = %v", got)
	}
	hits := hitFacades(s.FacadesAtPosition(10, 10))
	if hits[a].Distance >= hits[b].Distance {
		t.Errorf("overlay not on top: a=%v b=%v", hits[a].Distance, hits[b].Distance)
	}
	if order := s.paintOrder(); order[len(order)-1] != a.(*Sprite).Node() {
		t.Error("overlay not painted last")
	}

	under := box(0, 0, 100, 100)
	under["overlay"] = false
	mustUpdate(t, s, rect("a", under), rect("b", box(0, 0, 100, 100)))
	if len(s.Overlays()) != 0 {
		t.Error("overlay not removed")
	}
}

func TestPointerEventsReachTopmost(t *testing.T) {
	s, clock := newTestScene(t)
	var got []string
	handler := func(name string) func(*grove.PointerEvent) {
		return func(e *grove.PointerEvent) {
			got = append(got, name)
			if e.Hit == nil || e.Hit.LocalX != 10 {
				t.Errorf("%s: hit = %+v", name, e.Hit)
			}
		}
	}
	pa := box(0, 0, 100, 100)
	pa["onClick"] = handler("a")
	pb := box(50, 0, 100, 100)
	pb["onClick"] = handler("b")
	mustUpdate(t, s, rect("a", pa), rect("b", pb))

	s.InjectClick(60, 20)
	for range 3 {
		step(s, clock, 16*ms)
	}
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("clicks = %v, want [b]", got)
	}
}
