package scene2d

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/grove"
)

// nodeIDCounter is a plain counter (no atomic, scene2d is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the retained render element behind a scene2d facade. Facades write
// their properties straight into their node; the scene reads nodes when it
// draws and hit tests.
type Node struct {
	ID   uint32
	Name string

	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	Alpha   float64
	Visible bool
	ZIndex  int

	// Width and Height size the drawn quad and the default hit area. A node
	// with neither and no HitShape is not hit-testable.
	Width, Height float64

	// Image is drawn stretched to Width x Height and tinted by Color. Nil
	// draws a solid quad.
	Image    *ebiten.Image
	Color    grove.Color
	HitShape HitShape

	// Facade owns the node and is reported by hit testing.
	Facade grove.Facade

	// draw and hit replace the default quad drawing and hit test.
	draw func(target *ebiten.Image, n *Node)
	hit  func(n *Node, wx, wy, distance float64, out []grove.Hit) []grove.Hit

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

// NewNode creates an empty, visible node with unit scale and opaque white
// color.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Visible:        true,
		Color:          grove.ColorWhite,
		transformDirty: true,
		childrenSorted: true,
	}
}

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scene2d: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("scene2d: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scene2d: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// touch marks the transform dirty and the sibling order stale after a
// facade wrote fields directly.
func (n *Node) touch() {
	n.transformDirty = true
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// reorder puts the given children first, in that order, followed by the
// remaining children in their current order.
func (n *Node) reorder(first []*Node) {
	if len(first) == 0 {
		return
	}
	out := make([]*Node, 0, len(n.children))
	seen := make(map[*Node]bool, len(first))
	for _, c := range first {
		if c.Parent == n && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range n.children {
		if !seen[c] {
			out = append(out, c)
		}
	}
	n.children = out
	n.childrenSorted = false
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.Image = nil
	n.Facade = nil
	n.draw = nil
	n.hit = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// sorted returns the children in draw order: ZIndex ascending, stable.
func (n *Node) sorted() []*Node {
	if n.childrenSorted && n.sortedChildren != nil {
		return n.sortedChildren
	}
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	// Stable insertion sort by ZIndex.
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
	return n.sortedChildren
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
