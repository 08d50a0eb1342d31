package scene2d

import (
	"time"

	"github.com/phanxgames/grove"
)

// Scene binds a grove World to a node tree drawn with Ebitengine. The scene
// is the world's hit tester, and a render queued by the world marks the
// scene for redraw.
type Scene struct {
	*grove.World

	// Root holds the nodes of the top-level facades.
	Root       *Node
	ClearColor grove.Color

	// ScreenshotDir receives the PNGs written by Screenshot.
	ScreenshotDir string

	needsDraw   bool
	screenshots []string
	paint       []*Node
	skip        map[*Node]bool
}

// NewScene creates a world from cfg and the scene that draws it.
func NewScene(cfg grove.WorldConfig) *Scene {
	s := &Scene{
		Root:          NewNode("root"),
		ClearColor:    grove.Color{A: 1},
		ScreenshotDir: "screenshots",
		needsDraw:     true,
		skip:          make(map[*Node]bool),
	}
	cfg.HitTester = s
	s.World = grove.NewWorld(cfg)
	s.World.OnRender = func(time.Time) { s.needsDraw = true }
	return s
}

// Update reconciles the top-level children and puts their nodes in
// descriptor order.
func (s *Scene) Update(children ...*grove.Descriptor) error {
	err := s.World.Update(children...)
	syncOrder(s.Root, s.World)
	return err
}

// NeedsDraw reports whether a render was queued since the last Draw.
func (s *Scene) NeedsDraw() bool {
	return s.needsDraw
}

// Close destroys the world and every facade in it.
func (s *Scene) Close() {
	s.World.Destroy()
	s.Root.Dispose()
}

func (s *Scene) updateTransforms() {
	updateWorld(s.Root, identity, 1, false)
}

// paintOrder returns every visible node in draw order, overlays last.
func (s *Scene) paintOrder() []*Node {
	clear(s.skip)
	overlays := s.World.Overlays()
	for _, f := range overlays {
		if n := nodeOf(f); n != nil {
			s.skip[n] = true
		}
	}
	s.paint = collectPainter(s.Root, s.skip, s.paint[:0])
	for _, f := range overlays {
		n := nodeOf(f)
		if n == nil || !n.Visible || n.disposed || !isAncestor(s.Root, n) {
			continue
		}
		s.paint = append(s.paint, n)
		s.paint = collectPainter(n, s.skip, s.paint)
	}
	return s.paint
}

// noder is a facade backed by a node.
type noder interface {
	grove.Facade
	Node() *Node
}

func nodeOf(f grove.Facade) *Node {
	if nf, ok := f.(noder); ok {
		return nf.Node()
	}
	return nil
}

// parentNode finds the node a facade constructed under parent attaches to:
// the nearest ancestor node, or the scene root. A world belongs to a scene
// when the scene is its hit tester. It is nil for worlds without a scene.
func parentNode(parent grove.Facade) *Node {
	for p := parent; p != nil; p = p.AsFacade().ParentFacade() {
		if n := nodeOf(p); n != nil {
			return n
		}
		if w, ok := p.(*grove.World); ok {
			if s, ok := w.HitTester().(*Scene); ok && s.World == w {
				return s.Root
			}
			return nil
		}
	}
	return nil
}

// syncOrder orders n's children like the facades of cv. Nodes of exiting
// facades keep their place after the live ones.
func syncOrder(n *Node, cv grove.ChildVisitor) {
	var order []*Node
	cv.ForEachChildOrdered(func(c grove.Facade) {
		if cn := nodeOf(c); cn != nil {
			order = append(order, cn)
		}
	})
	n.reorder(order)
}
