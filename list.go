package grove

// List is the embeddable base of facades that reconcile one child per data
// item from a single Template, avoiding a descriptor per item.
type List struct {
	FacadeBase
	data     []any
	template *Template
	set      childSet

	scratch      Descriptor
	scratchProps Props
}

// SetData implements ListSetter.
func (l *List) SetData(data []any) {
	l.data = data
}

// SetTemplate implements ListSetter.
func (l *List) SetTemplate(t *Template) {
	l.template = t
}

// Data returns the items of the last SetData call.
func (l *List) Data() []any {
	return l.data
}

// AfterUpdate reconciles the items, then runs the base AfterUpdate.
func (l *List) AfterUpdate() {
	l.updateChildren()
	l.FacadeBase.AfterUpdate()
}

func (l *List) updateChildren() {
	if c, ok := l.This.(UpdateChildrenChecker); ok && !c.ShouldUpdateChildren() {
		return
	}
	t, data := l.template, l.data
	if t == nil || !l.validTemplate(t) {
		data = nil
	}
	var typ *Type
	if t != nil && t.Facade != nil {
		typ = t.Facade
		if t.animated() {
			typ = Animatable(typ)
		}
	}
	if l.scratchProps == nil {
		l.scratchProps = make(Props)
	}
	l.set.reconcile(l.This, len(data),
		func(i int) (string, bool) {
			return t.Key(data[i], i, data), true
		},
		func(i int) *Descriptor {
			return l.describe(t, typ, data, i)
		},
	)
}

func (l *List) validTemplate(t *Template) bool {
	if t.Key == nil {
		return descriptorFault(&DescriptorError{Reason: "list template missing key func"})
	}
	if t.Facade == nil {
		return descriptorFault(&DescriptorError{Reason: "list template missing facade type"})
	}
	return true
}

// describe fills the scratch descriptor for item i, evaluating accessors.
// Every item shares typ, even when its funcs return no transition.
func (l *List) describe(t *Template, typ *Type, data []any, i int) *Descriptor {
	item := data[i]
	clear(l.scratchProps)
	for name, v := range t.Props {
		switch fn := v.(type) {
		case Accessor:
			v = fn(item, i, data)
		case func(item any, i int, data []any) any:
			v = fn(item, i, data)
		}
		l.scratchProps[name] = v
	}
	d := &l.scratch
	*d = Descriptor{
		Facade:        typ.Base(),
		Transition:    t.Transition,
		Animation:     t.Animation,
		ExitAnimation: t.ExitAnimation,
		Props:         l.scratchProps,
		resolved:      typ,
	}
	if t.TransitionFunc != nil {
		d.Transition = t.TransitionFunc(item, i, data)
	}
	if t.AnimationFunc != nil {
		d.Animation = t.AnimationFunc(item, i, data)
	}
	return d
}

// Child returns the live item reconciled under key, or nil.
func (l *List) Child(key string) Facade {
	return l.set.byKey[key]
}

// ChildCount returns the number of live items, exiting ones excluded.
func (l *List) ChildCount() int {
	return l.set.len()
}

// ForEachChild visits the live items in unspecified order.
func (l *List) ForEachChild(fn func(child Facade)) {
	l.set.forEach(fn)
}

// ForEachChildOrdered visits the live items in data order.
func (l *List) ForEachChildOrdered(fn func(child Facade)) {
	l.set.forEachOrdered(fn)
}

// Destroy destroys every item, exiting ones included, then the facade.
func (l *List) Destroy() {
	if !l.beginDestroy() {
		return
	}
	l.set.destroyAll()
	l.FacadeBase.Destroy()
}
