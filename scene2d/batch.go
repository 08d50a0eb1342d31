package scene2d

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/grove"
)

// instanceSlot is the arena record of one Instance.
type instanceSlot struct {
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	Width    float64
	Height   float64
	Alpha    float64
	Color    grove.Color

	owner *Instance
	live  bool
	// listed is scratch for rebuilding the draw order.
	listed bool
}

// Batch draws one Instance per data item from a shared image in a single
// DrawTriangles32 call. Instance state lives in a slot arena owned by the
// batch; freed slots are reused.
type Batch struct {
	grove.List
	nodeFacade

	slots []instanceSlot
	free  []int32
	// order lists slots in draw order: live items in data order, then
	// exiting ones.
	order []int32

	verts []ebiten.Vertex
	inds  []uint32
}

// BatchType declares Batch. Its Template must build InstanceType items.
var BatchType = grove.NewType("Batch", newBatch, append(nodeProps[*Batch](), imageProp[*Batch]())...)

func newBatch(parent grove.Facade) grove.Facade {
	b := &Batch{}
	b.Init(b, parent)
	b.bindNode(b, parent, "batch")
	b.node.draw = b.drawInstances
	b.node.hit = b.hitInstances
	return b
}

// Len returns the number of slots in use, exiting instances included.
func (b *Batch) Len() int {
	return len(b.slots) - len(b.free)
}

func (b *Batch) alloc(owner *Instance) int32 {
	s := instanceSlot{ScaleX: 1, ScaleY: 1, Alpha: 1, Color: grove.ColorWhite, owner: owner, live: true}
	if n := len(b.free); n > 0 {
		i := b.free[n-1]
		b.free = b.free[:n-1]
		b.slots[i] = s
		return i
	}
	b.slots = append(b.slots, s)
	return int32(len(b.slots) - 1)
}

func (b *Batch) release(i int32) {
	b.slots[i] = instanceSlot{}
	b.free = append(b.free, i)
}

// AfterUpdate reconciles the items, then rebuilds the draw order.
func (b *Batch) AfterUpdate() {
	b.List.AfterUpdate()
	b.order = b.order[:0]
	b.ForEachChildOrdered(func(c grove.Facade) {
		if in, ok := c.(*Instance); ok {
			b.order = append(b.order, in.slot)
			b.slots[in.slot].listed = true
		}
	})
	for i := range b.slots {
		s := &b.slots[i]
		if s.live && !s.listed {
			b.order = append(b.order, int32(i))
		}
		s.listed = false
	}
}

// Destroy destroys the instances, then releases the node.
func (b *Batch) Destroy() {
	b.List.Destroy()
	b.node.Dispose()
}

// instanceTransform is the world transform of slot s under the batch node.
func (b *Batch) instanceTransform(s *instanceSlot) [6]float64 {
	return multiply(b.node.worldTransform, localTransform(s.X, s.Y, s.ScaleX, s.ScaleY, s.Rotation, 0, 0))
}

func (b *Batch) drawInstances(target *ebiten.Image, n *Node) {
	img := n.Image
	if img == nil {
		img = whitePixel()
	}
	bounds := img.Bounds()
	su0, sv0 := float32(bounds.Min.X), float32(bounds.Min.Y)
	su1, sv1 := float32(bounds.Max.X), float32(bounds.Max.Y)

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	for _, i := range b.order {
		s := &b.slots[i]
		if !s.live || s.Width <= 0 || s.Height <= 0 {
			continue
		}
		alpha := n.worldAlpha * s.Alpha * s.Color.A
		if alpha <= 0 {
			continue
		}
		m := b.instanceTransform(s)
		r, g, bl, a := float32(s.Color.R*alpha), float32(s.Color.G*alpha), float32(s.Color.B*alpha), float32(alpha)
		base := uint32(len(b.verts))
		for _, c := range [4][4]float64{
			{0, 0, 0, 0},
			{s.Width, 0, 1, 0},
			{0, s.Height, 0, 1},
			{s.Width, s.Height, 1, 1},
		} {
			x, y := apply(m, c[0], c[1])
			u := su0 + (su1-su0)*float32(c[2])
			v := sv0 + (sv1-sv0)*float32(c[3])
			b.verts = append(b.verts, ebiten.Vertex{
				DstX: float32(x), DstY: float32(y),
				SrcX: u, SrcY: v,
				ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
			})
		}
		b.inds = append(b.inds, base, base+1, base+2, base+1, base+3, base+2)
	}
	if len(b.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(b.verts, b.inds, img, &op)
}

// hitInstances reports every instance under (wx, wy). All share the batch's
// paint distance; instances drawn later get a lower bias.
func (b *Batch) hitInstances(n *Node, wx, wy, dist float64, out []grove.Hit) []grove.Hit {
	for k := len(b.order) - 1; k >= 0; k-- {
		s := &b.slots[b.order[k]]
		if !s.live || s.owner == nil {
			continue
		}
		lx, ly := apply(invert(b.instanceTransform(s)), wx, wy)
		if lx < 0 || ly < 0 || lx > s.Width || ly > s.Height {
			continue
		}
		out = append(out, grove.Hit{
			Facade:       s.owner,
			Distance:     dist,
			DistanceBias: float64(len(b.order) - 1 - k),
			LocalX:       lx,
			LocalY:       ly,
		})
	}
	return out
}

// Instance is one item of a Batch. It has no node of its own; its
// properties are stored in the batch's slot arena.
type Instance struct {
	grove.FacadeBase
	grove.PointerEventTarget
	batch *Batch
	slot  int32
}

func (in *Instance) state() *instanceSlot {
	return &in.batch.slots[in.slot]
}

func instanceFloat(name string, field func(s *instanceSlot) *float64) grove.Prop {
	return grove.FloatProp[*Instance](name, func(in *Instance) *float64 { return field(in.state()) })
}

// InstanceType declares Instance. It may only be built inside a Batch.
var InstanceType = grove.NewType("Instance", newInstance, withPointer([]grove.Prop{
	instanceFloat("x", func(s *instanceSlot) *float64 { return &s.X }),
	instanceFloat("y", func(s *instanceSlot) *float64 { return &s.Y }),
	instanceFloat("scaleX", func(s *instanceSlot) *float64 { return &s.ScaleX }),
	instanceFloat("scaleY", func(s *instanceSlot) *float64 { return &s.ScaleY }),
	instanceFloat("rotation", func(s *instanceSlot) *float64 { return &s.Rotation }),
	instanceFloat("width", func(s *instanceSlot) *float64 { return &s.Width }),
	instanceFloat("height", func(s *instanceSlot) *float64 { return &s.Height }),
	instanceFloat("alpha", func(s *instanceSlot) *float64 { return &s.Alpha }),
	grove.ColorProp[*Instance]("color", func(in *Instance) *grove.Color { return &in.state().Color }),
})...)

func newInstance(parent grove.Facade) grove.Facade {
	b, ok := parent.(*Batch)
	if !ok {
		panic(&grove.DescriptorError{Type: "Instance", Reason: "instance outside a Batch"})
	}
	in := &Instance{batch: b}
	in.Init(in, parent)
	in.slot = b.alloc(in)
	return in
}

// Destroy releases the instance's slot.
func (in *Instance) Destroy() {
	if in.Destroyed() {
		return
	}
	in.FacadeBase.Destroy()
	in.batch.release(in.slot)
	in.batch = nil
}
