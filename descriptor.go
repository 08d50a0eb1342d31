package grove

// Props holds a descriptor's target property values by name. In a List
// template a value may be an Accessor, evaluated once per data item.
type Props map[string]any

// Accessor computes a template property for one data item.
type Accessor func(item any, i int, data []any) any

// Descriptor is plain data describing one facade for one reconciliation
// pass. Descriptors are not retained: the reconciler copies their values
// onto facades and drops them.
type Descriptor struct {
	Key    string // unique among siblings
	Facade *Type

	Ref *Ref

	// Children is for facades embedding Parent.
	Children []*Descriptor
	// Data and Template are for facades embedding List.
	Data     []any
	Template *Template

	Transition    Transition
	Animation     []Animation
	ExitAnimation []Animation

	Props Props

	resolved *Type // set by List so every item shares one type
}

// Template describes every item of a List. Key and Facade are required.
type Template struct {
	Key    func(item any, i int, data []any) string
	Facade *Type

	Transition     Transition
	TransitionFunc func(item any, i int, data []any) Transition
	Animation      []Animation
	AnimationFunc  func(item any, i int, data []any) []Animation
	ExitAnimation  []Animation

	Props Props
}

// animated reports whether a facade built from d needs an animator.
func (d *Descriptor) animated() bool {
	return len(d.Transition) > 0 || len(d.Animation) > 0 || len(d.ExitAnimation) > 0
}

// facadeType is the type the reconciler instantiates for d.
func (d *Descriptor) facadeType() *Type {
	if d.resolved != nil {
		return d.resolved
	}
	if d.animated() {
		return Animatable(d.Facade)
	}
	return d.Facade
}

func (t *Template) animated() bool {
	return len(t.Transition) > 0 || t.TransitionFunc != nil ||
		len(t.Animation) > 0 || t.AnimationFunc != nil || len(t.ExitAnimation) > 0
}

// ParentSetter is implemented by facades that reconcile descriptor children.
type ParentSetter interface {
	SetChildren(children []*Descriptor)
}

// ListSetter is implemented by facades that reconcile a data-driven list.
type ListSetter interface {
	SetData(data []any)
	SetTemplate(t *Template)
}
