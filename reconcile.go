package grove

import (
	"fmt"
	"strconv"
)

// childSet is the keyed child table shared by Parent and List.
type childSet struct {
	byKey   map[string]Facade
	order   []string // keys of the last pass, in descriptor order
	spare   []string
	exiting []Facade

	// scratch, reused between passes
	keys  []string
	next  map[string]struct{}
	count map[string]int
}

// reconcile matches n entries against the live children. keyAt returns the
// key of entry i, or false to skip it; descAt returns its descriptor and is
// called at most once per entry, after every key is known, so List can hand
// back one reused scratch descriptor.
//
// Children whose keys disappear are torn down before any entry is built,
// in previous-pass order. A stale instance under a reused key is torn down
// just before its replacement is constructed.
func (cs *childSet) reconcile(owner Facade, n int, keyAt func(i int) (string, bool), descAt func(i int) *Descriptor) {
	if cs.byKey == nil {
		cs.byKey = make(map[string]Facade, n)
		cs.next = make(map[string]struct{}, n)
		cs.count = make(map[string]int)
	}
	cs.pruneExiting()

	keys := cs.keys[:0]
	clear(cs.next)
	clear(cs.count)
	for i := range n {
		key, ok := keyAt(i)
		if !ok {
			keys = append(keys, "")
			continue
		}
		if _, dup := cs.next[key]; dup {
			key = cs.dedupe(owner, key)
		}
		cs.next[key] = struct{}{}
		keys = append(keys, key)
	}
	cs.keys = keys

	for _, key := range cs.order {
		if _, keep := cs.next[key]; keep {
			continue
		}
		if f := cs.byKey[key]; f != nil {
			delete(cs.byKey, key)
			cs.remove(f)
		}
	}
	// Entries left behind by a pass aborted with a descriptor error.
	for key, f := range cs.byKey {
		if _, keep := cs.next[key]; !keep {
			delete(cs.byKey, key)
			cs.remove(f)
		}
	}

	order := cs.spare[:0]
	for i, key := range keys {
		if key == "" {
			continue
		}
		d := descAt(i)
		if d == nil {
			delete(cs.next, key)
			if f := cs.byKey[key]; f != nil {
				delete(cs.byKey, key)
				cs.remove(f)
			}
			continue
		}
		typ := d.facadeType()
		f := cs.byKey[key]
		if f != nil && f.AsFacade().typ != typ {
			delete(cs.byKey, key)
			cs.remove(f)
			f = nil
		}
		if f == nil {
			f = typ.construct(owner)
			cs.byKey[key] = f
		}
		order = append(order, key)
		applyDescriptor(f, d, key)
	}
	cs.order, cs.spare = order, cs.order
}

// dedupe suffixes a repeated key so the sibling is kept rather than merged.
func (cs *childSet) dedupe(owner Facade, key string) string {
	if devMode {
		logger().Warn("duplicate descriptor key among siblings; suffixing",
			"key", key, "parent", owner.AsFacade().ID)
	}
	for {
		cs.count[key]++
		k := key + "#" + strconv.Itoa(cs.count[key]+1)
		if _, taken := cs.next[k]; !taken {
			return k
		}
	}
}

func (cs *childSet) remove(f Facade) {
	if teardown(f) {
		cs.exiting = append(cs.exiting, f)
	}
}

func (cs *childSet) pruneExiting() {
	n := 0
	for _, f := range cs.exiting {
		if f.AsFacade().state == stateExiting {
			cs.exiting[n] = f
			n++
		}
	}
	clear(cs.exiting[n:])
	cs.exiting = cs.exiting[:n]
}

// destroyAll destroys every child, ending exit animations early.
func (cs *childSet) destroyAll() {
	for _, key := range cs.order {
		if f := cs.byKey[key]; f != nil {
			destroyNow(f)
		}
	}
	for _, f := range cs.byKey {
		destroyNow(f) // no-op for those already destroyed above
	}
	for _, f := range cs.exiting {
		destroyNow(f)
	}
	clear(cs.byKey)
	cs.order = cs.order[:0]
	cs.exiting = nil
}

func (cs *childSet) forEach(fn func(Facade)) {
	for _, f := range cs.byKey {
		fn(f)
	}
}

func (cs *childSet) forEachOrdered(fn func(Facade)) {
	for _, key := range cs.order {
		if f := cs.byKey[key]; f != nil {
			fn(f)
		}
	}
}

func (cs *childSet) len() int {
	return len(cs.byKey)
}

// applyDescriptor copies d onto f: transition, animation and exit animation
// first so later writes are intercepted, then ref, nested children or list
// data, then props in the type's declaration order, then AfterUpdate.
func applyDescriptor(f Facade, d *Descriptor, key string) {
	fb := f.AsFacade()
	if a := fb.anim; a != nil {
		a.setTransition(d.Transition)
		a.setAnimation(d.Animation)
		a.setExitAnimation(d.ExitAnimation)
	}
	fb.Ref = d.Ref

	if ps, ok := f.(ParentSetter); ok {
		ps.SetChildren(d.Children)
	} else if len(d.Children) > 0 {
		descriptorFault(&DescriptorError{Key: key, Type: fb.typ.Name, Reason: "facade does not accept children"})
	}
	if ls, ok := f.(ListSetter); ok {
		ls.SetData(d.Data)
		ls.SetTemplate(d.Template)
	} else if d.Data != nil || d.Template != nil {
		descriptorFault(&DescriptorError{Key: key, Type: fb.typ.Name, Reason: "facade does not accept data or template"})
	}

	applyProps(f, fb.typ, d.Props, key)
	f.AfterUpdate()
}

func applyProps(f Facade, typ *Type, props Props, key string) {
	if len(props) == 0 {
		return
	}
	applied := 0
	for i := range typ.Props {
		p := &typ.Props[i]
		v, ok := props[p.Name]
		if !ok {
			continue
		}
		applied++
		applyProp(f, p, v)
	}
	if devMode && applied < len(props) {
		for name := range props {
			if _, ok := typ.Prop(name); !ok {
				panic(&DescriptorError{Key: key, Type: typ.Name, Reason: fmt.Sprintf("unknown property %q", name)})
			}
		}
	}
}
