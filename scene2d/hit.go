package scene2d

import (
	"github.com/phanxgames/grove"
)

// HitShape defines a custom hit area in a node's local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates, in either
// winding order.
type HitPolygon struct {
	Points []grove.Vec2
}

// Contains reports whether (x, y) is on the same side of every edge.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var pos, neg bool
	for i := range n {
		a, b := p.Points[i], p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// containsLocal tests a local point against the node's HitShape, or its
// Width x Height box. Nodes with neither are not hit-testable.
func (n *Node) containsLocal(lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width <= 0 || n.Height <= 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectPainter appends the visible nodes below n in draw order, skipping
// the subtrees rooted at skip.
func collectPainter(n *Node, skip map[*Node]bool, out []*Node) []*Node {
	for _, c := range n.sorted() {
		if !c.Visible || c.disposed || skip[c] {
			continue
		}
		out = append(out, c)
		out = collectPainter(c, skip, out)
	}
	return out
}

// FacadesAtPosition implements grove.HitTester. Nodes drawn later are
// closer: the last node painted gets Distance 0. Overlays are painted
// after the rest of the scene.
func (s *Scene) FacadesAtPosition(x, y float64) []grove.Hit {
	s.updateTransforms()
	order := s.paintOrder()
	var hits []grove.Hit
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n.Facade == nil {
			continue
		}
		dist := float64(len(order) - 1 - i)
		if n.hit != nil {
			hits = n.hit(n, x, y, dist, hits)
			continue
		}
		lx, ly := n.WorldToLocal(x, y)
		if n.containsLocal(lx, ly) {
			hits = append(hits, grove.Hit{Facade: n.Facade, Distance: dist, LocalX: lx, LocalY: ly})
		}
	}
	return hits
}
