package scene2d

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identity is the identity affine matrix. Matrices are laid out as
// [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
var identity = [6]float64{1, 0, 0, 1, 0, 0}

// localTransform composes Translate(-pivot), Scale, Rotate and
// Translate(X, Y), in that order.
func localTransform(x, y, sx, sy, rot, px, py float64) [6]float64 {
	sin, cos := math.Sincos(rot)
	a, b := cos*sx, sin*sx
	c, d := -sin*sy, cos*sy
	return [6]float64{a, b, c, d, x - (a*px + c*py), y - (b*px + d*py)}
}

func (n *Node) localTransform() [6]float64 {
	return localTransform(n.X, n.Y, n.ScaleX, n.ScaleY, n.Rotation, n.PivotX, n.PivotY)
}

// multiply returns p * c.
func multiply(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invert returns the inverse of m, or identity when m is singular.
func invert(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identity
	}
	inv := 1 / det
	a, b := m[3]*inv, -m[1]*inv
	c, d := -m[2]*inv, m[0]*inv
	return [6]float64{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

func apply(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// updateWorld recomputes world transforms and alpha below n. A node is
// recomputed when it or an ancestor changed since the last call.
func updateWorld(n *Node, parent [6]float64, parentAlpha float64, force bool) {
	recompute := n.transformDirty || force
	if recompute {
		n.worldTransform = multiply(parent, n.localTransform())
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, c := range n.children {
		updateWorld(c, n.worldTransform, n.worldAlpha, recompute)
	}
}

// WorldToLocal converts a scene point into n's local space. It reflects the
// transforms as of the last draw or hit test.
func (n *Node) WorldToLocal(wx, wy float64) (float64, float64) {
	return apply(invert(n.worldTransform), wx, wy)
}

// LocalToWorld converts a point in n's local space into scene space.
func (n *Node) LocalToWorld(lx, ly float64) (float64, float64) {
	return apply(n.worldTransform, lx, ly)
}
