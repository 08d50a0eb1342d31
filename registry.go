package grove

// EventType names a pointer event by its handler property, e.g. "onClick".
type EventType string

const (
	EventMouseOver   EventType = "onMouseOver"
	EventMouseOut    EventType = "onMouseOut"
	EventMouseMove   EventType = "onMouseMove"
	EventMouseDown   EventType = "onMouseDown"
	EventMouseUp     EventType = "onMouseUp"
	EventClick       EventType = "onClick"
	EventDoubleClick EventType = "onDoubleClick"
	EventWheel       EventType = "onWheel"
	EventDragStart   EventType = "onDragStart"
	EventDrag        EventType = "onDrag"
	EventDragEnter   EventType = "onDragEnter"
	EventDragOver    EventType = "onDragOver"
	EventDragLeave   EventType = "onDragLeave"
	EventDrop        EventType = "onDrop"
	EventDragEnd     EventType = "onDragEnd"
)

// PointerEventTypes lists every pointer handler property in declaration
// order.
var PointerEventTypes = []EventType{
	EventMouseOver, EventMouseOut, EventMouseMove, EventMouseDown, EventMouseUp,
	EventClick, EventDoubleClick, EventWheel,
	EventDragStart, EventDrag, EventDragEnter, EventDragOver, EventDragLeave, EventDrop, EventDragEnd,
}

// Handler receives a dispatched pointer event.
type Handler func(e *PointerEvent)

// ListenerChange is the data of MsgAddEventListener and
// MsgRemoveEventListener.
type ListenerChange struct {
	Type    EventType
	Handler Handler
}

type listener struct {
	facade  Facade
	handler Handler
}

// EventRegistry records which facades listen for which event types, so the
// world can skip hit testing for events nobody handles. A facade has at most
// one handler per type; adding again replaces it.
type EventRegistry struct {
	byType map[EventType]map[uint64]listener
}

// NewEventRegistry creates an empty registry.
func NewEventRegistry() *EventRegistry {
	return &EventRegistry{byType: make(map[EventType]map[uint64]listener)}
}

// Add registers h as f's handler for typ. A nil h removes it.
func (r *EventRegistry) Add(f Facade, typ EventType, h Handler) {
	if h == nil {
		r.Remove(f, typ)
		return
	}
	m := r.byType[typ]
	if m == nil {
		m = make(map[uint64]listener)
		r.byType[typ] = m
	}
	m[f.AsFacade().ID] = listener{facade: f, handler: h}
}

// Remove unregisters f's handler for typ.
func (r *EventRegistry) Remove(f Facade, typ EventType) {
	m := r.byType[typ]
	if m == nil {
		return
	}
	delete(m, f.AsFacade().ID)
	if len(m) == 0 {
		delete(r.byType, typ)
	}
}

// RemoveAll unregisters every handler of f.
func (r *EventRegistry) RemoveAll(f Facade) {
	id := f.AsFacade().ID
	for typ, m := range r.byType {
		delete(m, id)
		if len(m) == 0 {
			delete(r.byType, typ)
		}
	}
}

// HasListener reports whether f handles typ itself.
func (r *EventRegistry) HasListener(f Facade, typ EventType) bool {
	_, ok := r.byType[typ][f.AsFacade().ID]
	return ok
}

// HasAnyListener reports whether any facade handles typ.
func (r *EventRegistry) HasAnyListener(typ EventType) bool {
	return len(r.byType[typ]) > 0
}

// Len returns the number of registered (facade, type) pairs.
func (r *EventRegistry) Len() int {
	n := 0
	for _, m := range r.byType {
		n += len(m)
	}
	return n
}

// ForEachListenerOfType calls fn for every facade handling typ, in
// unspecified order.
func (r *EventRegistry) ForEachListenerOfType(typ EventType, fn func(f Facade, h Handler)) {
	for _, l := range r.byType[typ] {
		fn(l.facade, l.handler)
	}
}

// FindBubblingTarget returns the nearest of f and its ancestors that handles
// typ, or nil.
func (r *EventRegistry) FindBubblingTarget(f Facade, typ EventType) Facade {
	m := r.byType[typ]
	if m == nil {
		return nil
	}
	for ; f != nil; f = f.AsFacade().parent {
		if _, ok := m[f.AsFacade().ID]; ok {
			return f
		}
	}
	return nil
}

// Dispatch delivers e to e.Target and then to each ancestor handling
// e.Type, until a handler calls StopPropagation.
func (r *EventRegistry) Dispatch(e *PointerEvent) {
	m := r.byType[e.Type]
	if m == nil {
		return
	}
	for f := e.Target; f != nil; f = f.AsFacade().parent {
		l, ok := m[f.AsFacade().ID]
		if !ok {
			continue
		}
		e.CurrentTarget = f
		l.handler(e)
		if e.propagationStopped {
			return
		}
		// A handler may have changed the registry.
		if m = r.byType[e.Type]; m == nil {
			return
		}
	}
}
