package scene2d

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/grove"
)

// nodeFacade is embedded by facades backed by a node.
type nodeFacade struct {
	node    *Node
	overlay bool
}

// Node returns the facade's backing node.
func (nf *nodeFacade) Node() *Node {
	return nf.node
}

func (nf *nodeFacade) bindNode(f grove.Facade, parent grove.Facade, name string) {
	nf.node = NewNode(name)
	nf.node.Facade = f
	if pn := parentNode(parent); pn != nil {
		pn.AddChild(nf.node)
	}
}

// touching wraps p so that every write marks the node dirty.
func touching(p grove.Prop) grove.Prop {
	set := p.Set
	p.Set = func(f grove.Facade, v any) {
		set(f, v)
		nodeOf(f).touch()
	}
	return p
}

// nodeProps returns the properties shared by node-backed facades.
func nodeProps[F noder]() []grove.Prop {
	float := func(name string, field func(n *Node) *float64) grove.Prop {
		return touching(grove.FloatProp[F](name, func(f F) *float64 { return field(f.Node()) }))
	}
	return []grove.Prop{
		float("x", func(n *Node) *float64 { return &n.X }),
		float("y", func(n *Node) *float64 { return &n.Y }),
		float("scaleX", func(n *Node) *float64 { return &n.ScaleX }),
		float("scaleY", func(n *Node) *float64 { return &n.ScaleY }),
		float("rotation", func(n *Node) *float64 { return &n.Rotation }),
		float("pivotX", func(n *Node) *float64 { return &n.PivotX }),
		float("pivotY", func(n *Node) *float64 { return &n.PivotY }),
		float("alpha", func(n *Node) *float64 { return &n.Alpha }),
		float("width", func(n *Node) *float64 { return &n.Width }),
		float("height", func(n *Node) *float64 { return &n.Height }),
		grove.ColorProp[F]("color", func(f F) *grove.Color { return &f.Node().Color }),
		grove.BoolProp[F]("visible", func(f F) *bool { return &f.Node().Visible }),
		grove.ValueProp[F, HitShape]("hitShape", func(f F) *HitShape { return &f.Node().HitShape }, ""),
		{
			Name: "zIndex",
			Get:  func(f grove.Facade) any { return nodeOf(f).ZIndex },
			Set: func(f grove.Facade, v any) {
				switch z := v.(type) {
				case nil:
					nodeOf(f).SetZIndex(0)
				case int:
					nodeOf(f).SetZIndex(z)
				case float64:
					nodeOf(f).SetZIndex(int(math.Round(z)))
				default:
					panic(&grove.PropertyError{Type: fmt.Sprintf("%T", f), Prop: "zIndex", Value: v, Want: "int"})
				}
			},
			Interpolate: "number",
		},
		{
			Name: "overlay",
			Get:  func(f grove.Facade) any { return f.(overlayer).overlayState().overlay },
			Set: func(f grove.Facade, v any) {
				on, ok := v.(bool)
				if !ok && v != nil {
					panic(&grove.PropertyError{Type: fmt.Sprintf("%T", f), Prop: "overlay", Value: v, Want: "bool"})
				}
				nf := f.(overlayer).overlayState()
				if on == nf.overlay {
					return
				}
				nf.overlay = on
				msg := grove.MsgRemoveOverlay
				if on {
					msg = grove.MsgAddOverlay
				}
				f.AsFacade().NotifyWorld(msg, nil)
			},
		},
	}
}

type overlayer interface {
	overlayState() *nodeFacade
}

func (nf *nodeFacade) overlayState() *nodeFacade {
	return nf
}

func imageProp[F noder]() grove.Prop {
	return grove.ValueProp[F, *ebiten.Image]("image", func(f F) **ebiten.Image { return &f.Node().Image }, "")
}

func withPointer(props []grove.Prop) []grove.Prop {
	return append(props, grove.PointerProps()...)
}

// Group is a container facade. It draws nothing itself; its children are
// positioned relative to it and drawn in descriptor order, then by zIndex.
type Group struct {
	grove.Parent
	grove.PointerEventTarget
	nodeFacade
}

// GroupType declares Group. A group is hit-testable only when it has a
// size or a hitShape.
var GroupType = grove.NewType("Group", newGroup, withPointer(nodeProps[*Group]())...)

func newGroup(parent grove.Facade) grove.Facade {
	g := &Group{}
	g.Init(g, parent)
	g.bindNode(g, parent, "group")
	g.node.draw = func(*ebiten.Image, *Node) {}
	return g
}

// AfterUpdate reconciles the children, then orders their nodes.
func (g *Group) AfterUpdate() {
	g.Parent.AfterUpdate()
	syncOrder(g.node, g)
}

// Destroy destroys the children, then releases the node.
func (g *Group) Destroy() {
	g.Parent.Destroy()
	g.node.Dispose()
}

// Sprite draws an image, or a solid quad of its color, at width x height.
type Sprite struct {
	grove.FacadeBase
	grove.PointerEventTarget
	nodeFacade
}

var (
	// SpriteType declares Sprite.
	SpriteType = grove.NewType("Sprite", newSprite, withPointer(append(nodeProps[*Sprite](), imageProp[*Sprite]()))...)
	// RectType declares a Sprite without an image: a solid colored rectangle.
	RectType = grove.NewType("Rect", newSprite, withPointer(nodeProps[*Sprite]())...)
)

func newSprite(parent grove.Facade) grove.Facade {
	s := &Sprite{}
	s.Init(s, parent)
	s.bindNode(s, parent, "sprite")
	return s
}

// Destroy releases the node.
func (s *Sprite) Destroy() {
	s.FacadeBase.Destroy()
	s.node.Dispose()
}
