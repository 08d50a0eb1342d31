package grove

// Parent is the embeddable base of facades that own a list of descriptor
// children. The children are reconciled in AfterUpdate.
type Parent struct {
	FacadeBase
	children []*Descriptor
	set      childSet
}

// UpdateChildrenChecker lets a Parent or List skip reconciliation of its
// children for a pass, e.g. for static subtrees.
type UpdateChildrenChecker interface {
	ShouldUpdateChildren() bool
}

// SetChildren implements ParentSetter. Nil entries are skipped.
func (p *Parent) SetChildren(children []*Descriptor) {
	p.children = children
}

// Children returns the descriptors of the last SetChildren call.
func (p *Parent) Children() []*Descriptor {
	return p.children
}

// AfterUpdate reconciles the children, then runs the base AfterUpdate.
func (p *Parent) AfterUpdate() {
	p.updateChildren()
	p.FacadeBase.AfterUpdate()
}

func (p *Parent) updateChildren() {
	if c, ok := p.This.(UpdateChildrenChecker); ok && !c.ShouldUpdateChildren() {
		return
	}
	children := p.children
	debugCheckChildCount(&p.FacadeBase, len(children))
	p.set.reconcile(p.This, len(children),
		func(i int) (string, bool) {
			d := children[i]
			if d == nil {
				return "", false
			}
			if d.Key == "" {
				return "", descriptorFault(&DescriptorError{Reason: "missing key"})
			}
			if d.Facade == nil {
				return "", descriptorFault(&DescriptorError{Key: d.Key, Reason: "missing facade type"})
			}
			return d.Key, true
		},
		func(i int) *Descriptor { return children[i] },
	)
}

// Child returns the live child reconciled under key, or nil.
func (p *Parent) Child(key string) Facade {
	return p.set.byKey[key]
}

// ChildCount returns the number of live reconciled children, exiting ones
// excluded.
func (p *Parent) ChildCount() int {
	return p.set.len()
}

// ForEachChild visits the live children in unspecified order.
func (p *Parent) ForEachChild(fn func(child Facade)) {
	p.set.forEach(fn)
}

// ForEachChildOrdered visits the live children in descriptor order.
func (p *Parent) ForEachChildOrdered(fn func(child Facade)) {
	p.set.forEachOrdered(fn)
}

// Destroy destroys every child, exiting ones included, then the facade.
func (p *Parent) Destroy() {
	if !p.beginDestroy() {
		return
	}
	p.set.destroyAll()
	p.FacadeBase.Destroy()
}

// Traverse calls fn for f and every descendant, depth first, children in
// unspecified order.
func Traverse(f Facade, fn func(Facade)) {
	fn(f)
	if cv, ok := f.(ChildVisitor); ok {
		cv.ForEachChild(func(c Facade) { Traverse(c, fn) })
	}
}

// TraverseOrdered is Traverse with children in descriptor order, for
// callers that need document order such as layout.
func TraverseOrdered(f Facade, fn func(Facade)) {
	fn(f)
	if cv, ok := f.(ChildVisitor); ok {
		cv.ForEachChildOrdered(func(c Facade) { TraverseOrdered(c, fn) })
	}
}
