package grove

import "fmt"

// Facade is a stateful proxy whose lifecycle is driven by the reconciler.
// Implementations embed FacadeBase (or Parent / List) and call Init from
// their constructor.
//
// Overrides of AfterUpdate and Destroy must call through to the embedded
// implementation; Destroy overrides release owned resources first.
type Facade interface {
	AsFacade() *FacadeBase
	AfterUpdate()
	Destroy()
}

// NotifyHandler intercepts messages bubbled by NotifyWorld from descendant
// facades. Returning true keeps forwarding the message toward the root.
type NotifyHandler interface {
	OnNotifyWorld(source Facade, msg Message, data any) (forward bool)
}

// ChildVisitor is implemented by facades that own reconciled children.
type ChildVisitor interface {
	ForEachChild(fn func(child Facade))
	ForEachChildOrdered(fn func(child Facade))
}

// Ref receives the facade built from the descriptor that carries it. When a
// descriptor's Ref changes, the previous Ref is cleared before the new one
// is set. Refs compare by pointer.
type Ref struct {
	Current Facade
	Func    func(f Facade)
}

func (r *Ref) set(f Facade) {
	r.Current = f
	if r.Func != nil {
		r.Func(f)
	}
}

type lifeState uint8

const (
	stateLive lifeState = iota
	stateExiting
	stateDestroying
	stateDestroyed
)

// facadeIDCounter is a plain counter (no atomic, grove is single-threaded).
var facadeIDCounter uint64

func nextFacadeID() uint64 {
	facadeIDCounter++
	return facadeIDCounter
}

// FacadeBase carries the lifecycle state shared by every facade.
type FacadeBase struct {
	// This is the outermost facade value, used wherever the base must hand
	// itself to callbacks or the world.
	This Facade
	ID   uint64
	// Ref is assigned from the descriptor on each pass.
	Ref *Ref

	parent  Facade
	world   *World
	notify  NotifyHandler
	lastRef *Ref
	typ     *Type
	state   lifeState
	anim    *animator
}

// Init attaches the facade to parent and assigns its id. Constructors call
// it before returning.
func (fb *FacadeBase) Init(this Facade, parent Facade) {
	fb.This = this
	fb.ID = nextFacadeID()
	fb.attach(parent)
	debugCheckTreeDepth(fb)
}

// AsFacade implements Facade.
func (fb *FacadeBase) AsFacade() *FacadeBase {
	return fb
}

// ParentFacade returns the facade this one was constructed under, or nil for
// a root or a destroyed facade.
func (fb *FacadeBase) ParentFacade() Facade {
	return fb.parent
}

// World returns the root the facade belongs to, or nil when detached.
func (fb *FacadeBase) World() *World {
	return fb.world
}

// Type returns the facade type the reconciler built this instance from. It is
// nil for facades constructed by hand.
func (fb *FacadeBase) Type() *Type {
	return fb.typ
}

// Destroyed reports whether Destroy has completed.
func (fb *FacadeBase) Destroyed() bool {
	return fb.state == stateDestroyed
}

// Exiting reports whether the facade is playing its exit animation. Exiting
// facades are no longer part of their parent's logical children.
func (fb *FacadeBase) Exiting() bool {
	return fb.state == stateExiting
}

func (fb *FacadeBase) attach(parent Facade) {
	fb.parent = parent
	fb.notify = nil
	fb.world = nil
	if parent == nil {
		return
	}
	pb := parent.AsFacade()
	fb.world = pb.world
	for p := parent; p != nil; p = p.AsFacade().parent {
		if h, ok := p.(NotifyHandler); ok {
			fb.notify = h
			return
		}
	}
}

// SetParent moves the facade under parent. The notification route and world
// are recomputed for the facade and its whole subtree.
func (fb *FacadeBase) SetParent(parent Facade) {
	debugCheckDestroyed(fb, "SetParent")
	fb.attach(parent)
	relinkChildren(fb.This)
}

func relinkChildren(f Facade) {
	cv, ok := f.(ChildVisitor)
	if !ok {
		return
	}
	cv.ForEachChild(func(c Facade) {
		cb := c.AsFacade()
		cb.attach(f)
		relinkChildren(c)
	})
}

// NotifyWorld bubbles msg toward the root. Each ancestor implementing
// NotifyHandler sees it in turn until one declines to forward.
func (fb *FacadeBase) NotifyWorld(msg Message, data any) {
	for h := fb.notify; h != nil; {
		if !h.OnNotifyWorld(fb.This, msg, data) {
			return
		}
		f, ok := h.(Facade)
		if !ok {
			return
		}
		h = f.AsFacade().notify
	}
}

// AfterUpdate implements Facade. It reconciles the Ref.
func (fb *FacadeBase) AfterUpdate() {
	if fb.Ref == fb.lastRef {
		return
	}
	if fb.lastRef != nil {
		fb.lastRef.set(nil)
	}
	fb.lastRef = fb.Ref
	if fb.Ref != nil {
		fb.Ref.set(fb.This)
	}
}

// Destroy implements Facade. It unregisters every event listener, clears the
// ref, stops animations and detaches from the parent. Later calls are no-ops.
func (fb *FacadeBase) Destroy() {
	if fb.state == stateDestroyed {
		return
	}
	fb.NotifyWorld(MsgRemoveAllEventListeners, nil)
	if fb.lastRef != nil {
		fb.lastRef.set(nil)
		fb.lastRef = nil
	}
	if fb.anim != nil {
		fb.anim.destroy()
	}
	fb.state = stateDestroyed
	fb.parent = nil
	fb.notify = nil
}

// beginDestroy marks the facade as mid-destruction so that its children
// skip their exit animations. It returns false once destruction completed.
func (fb *FacadeBase) beginDestroy() bool {
	if fb.state == stateDestroyed {
		return false
	}
	fb.state = stateDestroying
	return true
}

func (fb *FacadeBase) parentDestroying() bool {
	if fb.parent == nil {
		return false
	}
	s := fb.parent.AsFacade().state
	return s == stateDestroying || s == stateDestroyed
}

// teardown is the reconciler's only way to remove an instance. It returns
// true when the facade entered its exit animation instead of being
// destroyed.
func teardown(f Facade) (exiting bool) {
	fb := f.AsFacade()
	if fb.state != stateLive {
		return false
	}
	if fb.anim != nil && !fb.parentDestroying() && fb.anim.beginExit() {
		return true
	}
	destroyNow(f)
	return false
}

// destroyNow destroys f whatever its state, ending an exit animation early.
func destroyNow(f Facade) {
	fb := f.AsFacade()
	if fb.state == stateDestroyed {
		return
	}
	fb.state = stateDestroying
	f.Destroy()
}

// Type describes a facade kind: how to construct it and which properties a
// descriptor may set on it. Types are declared once at package level.
type Type struct {
	Name  string
	New   func(parent Facade) Facade
	Props []Prop

	index      map[string]int
	animatable bool
	base       *Type
	wrapped    *Type
}

// NewType declares a facade type. Property names must be unique.
func NewType(name string, newFn func(parent Facade) Facade, props ...Prop) *Type {
	t := &Type{Name: name, New: newFn, Props: props, index: make(map[string]int, len(props))}
	for i, p := range props {
		if _, dup := t.index[p.Name]; dup {
			panic(fmt.Sprintf("grove: type %s declares property %q twice", name, p.Name))
		}
		t.index[p.Name] = i
	}
	return t
}

// Prop looks up a property by name.
func (t *Type) Prop(name string) (*Prop, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.Props[i], true
}

// IsAnimatable reports whether instances of t carry an animator.
func (t *Type) IsAnimatable() bool {
	return t.animatable
}

// Base returns the undecorated type for an Animatable type, or t itself.
func (t *Type) Base() *Type {
	if t.base != nil {
		return t.base
	}
	return t
}

func (t *Type) String() string {
	return t.Name
}

func (t *Type) construct(parent Facade) Facade {
	f := t.New(parent)
	fb := f.AsFacade()
	if fb.This == nil {
		panic(fmt.Sprintf("grove: constructor of %s did not call Init", t.Name))
	}
	fb.typ = t
	if t.animatable {
		fb.anim = newAnimator(fb)
	}
	return f
}

// Prop is one entry of a facade type's property table: a typed slot with an
// accessor pair and the interpolator transitions use by default.
type Prop struct {
	Name        string
	Get         func(f Facade) any
	Set         func(f Facade, v any)
	Interpolate string
}

// FloatProp declares a numeric property stored in a float64 field. Any Go
// numeric kind is accepted.
func FloatProp[F Facade](name string, field func(f F) *float64) Prop {
	return Prop{
		Name: name,
		Get:  func(f Facade) any { return *field(f.(F)) },
		Set: func(f Facade, v any) {
			n, ok := toFloat(v)
			if !ok {
				panic(&PropertyError{Type: fmt.Sprintf("%T", f), Prop: name, Value: v, Want: "number"})
			}
			*field(f.(F)) = n
		},
		Interpolate: "number",
	}
}

// ValueProp declares a property of type V. A nil value stores the zero V.
func ValueProp[F Facade, V any](name string, field func(f F) *V, interpolate string) Prop {
	return Prop{
		Name: name,
		Get:  func(f Facade) any { return *field(f.(F)) },
		Set: func(f Facade, v any) {
			if v == nil {
				var zero V
				*field(f.(F)) = zero
				return
			}
			tv, ok := v.(V)
			if !ok {
				var zero V
				panic(&PropertyError{Type: fmt.Sprintf("%T", f), Prop: name, Value: v, Want: fmt.Sprintf("%T", zero)})
			}
			*field(f.(F)) = tv
		},
		Interpolate: interpolate,
	}
}

// BoolProp declares a boolean property. Transitions step it at the end.
func BoolProp[F Facade](name string, field func(f F) *bool) Prop {
	return ValueProp(name, field, "")
}

// ColorProp declares a Color property interpolated in RGB space.
func ColorProp[F Facade](name string, field func(f F) *Color) Prop {
	return ValueProp(name, field, "color")
}

// SetProp writes one property through the facade's property table, going
// through its transitions and animations when it is animatable.
func SetProp(f Facade, name string, v any) error {
	fb := f.AsFacade()
	if fb.typ == nil {
		return fmt.Errorf("grove: SetProp %q: facade %d has no type", name, fb.ID)
	}
	p, ok := fb.typ.Prop(name)
	if !ok {
		return &DescriptorError{Type: fb.typ.Name, Reason: fmt.Sprintf("unknown property %q", name)}
	}
	applyProp(f, p, v)
	return nil
}

// GetProp reads one property through the facade's property table.
func GetProp(f Facade, name string) (any, bool) {
	fb := f.AsFacade()
	if fb.typ == nil {
		return nil, false
	}
	p, ok := fb.typ.Prop(name)
	if !ok {
		return nil, false
	}
	return p.Get(f), true
}

func applyProp(f Facade, p *Prop, v any) {
	if a := f.AsFacade().anim; a != nil {
		a.set(p, v)
		return
	}
	p.Set(f, v)
}
