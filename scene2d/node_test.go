package scene2d

import (
	"testing"
)

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func equalNames(got []*Node, want ...string) bool {
	g := names(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	if n.Name != "test" {
		t.Errorf("Name = %q", n.Name)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 || n.Alpha != 1 || !n.Visible {
		t.Errorf("unexpected defaults: %+v", n)
	}
	if n.ID == 0 {
		t.Error("ID not assigned")
	}
	if other := NewNode("other"); other.ID == n.ID {
		t.Error("IDs not unique")
	}
}

func TestAddChildReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)
	if c.Parent != b {
		t.Fatal("child not reparented")
	}
	if a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Errorf("children: a=%d b=%d", a.NumChildren(), b.NumChildren())
	}
}

func TestAddChildPanics(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	root, child := NewNode("root"), NewNode("child")
	root.AddChild(child)
	mustPanic("nil", func() { root.AddChild(nil) })
	mustPanic("cycle", func() { child.AddChild(root) })
	mustPanic("self", func() { root.AddChild(root) })
	mustPanic("foreign remove", func() { NewNode("x").RemoveChild(child) })
}

func TestRemoveFromParent(t *testing.T) {
	root := NewNode("root")
	a, b := NewNode("a"), NewNode("b")
	root.AddChild(a)
	root.AddChild(b)
	a.RemoveFromParent()
	if a.Parent != nil || !equalNames(root.Children(), "b") {
		t.Errorf("children = %v", names(root.Children()))
	}
	a.RemoveFromParent()
}

func TestSortedByZIndexIsStable(t *testing.T) {
	root := NewNode("root")
	for _, name := range []string{"a", "b", "c", "d"} {
		root.AddChild(NewNode(name))
	}
	root.Children()[0].SetZIndex(2)
	root.Children()[2].SetZIndex(-1)
	if got := root.sorted(); !equalNames(got, "c", "b", "d", "a") {
		t.Errorf("sorted = %v", names(got))
	}
	root.Children()[0].SetZIndex(0)
	if got := root.sorted(); !equalNames(got, "c", "a", "b", "d") {
		t.Errorf("sorted after reset = %v", names(got))
	}
}

func TestReorder(t *testing.T) {
	root := NewNode("root")
	a, b, c, x := NewNode("a"), NewNode("b"), NewNode("c"), NewNode("x")
	for _, n := range []*Node{a, b, c} {
		root.AddChild(n)
	}
	root.reorder([]*Node{c, a, x})
	if !equalNames(root.Children(), "c", "a", "b") {
		t.Errorf("children = %v", names(root.Children()))
	}
}

func TestDisposeRecursive(t *testing.T) {
	root, mid, leaf := NewNode("root"), NewNode("mid"), NewNode("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	mid.Dispose()
	if !mid.IsDisposed() || !leaf.IsDisposed() {
		t.Error("subtree not disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node still attached")
	}
	if leaf.Parent != nil {
		t.Error("leaf keeps parent")
	}
	mid.Dispose()
}
