package grove

import (
	"fmt"
	"time"
)

// PointerEventsMode controls whether a facade intercepts pointer events.
type PointerEventsMode uint8

const (
	// PointerAuto intercepts only when a pointer handler is set.
	PointerAuto PointerEventsMode = iota
	// PointerOn always intercepts.
	PointerOn
	// PointerOff never intercepts, even with handlers set.
	PointerOff
)

// PointerTarget is a facade that can be the target of pointer events.
type PointerTarget interface {
	Facade
	Pointer() *PointerEventTarget
}

// PointerEventTarget is embedded by facades that take pointer events. Its
// handlers are set through the properties returned by PointerProps.
type PointerEventTarget struct {
	PointerEvents PointerEventsMode
	handlers      map[EventType]Handler
}

// Pointer implements PointerTarget.
func (t *PointerEventTarget) Pointer() *PointerEventTarget {
	return t
}

// Intercepts reports whether hit testing stops at this facade: explicitly
// on, or auto with at least one handler.
func (t *PointerEventTarget) Intercepts() bool {
	switch t.PointerEvents {
	case PointerOn:
		return true
	case PointerOff:
		return false
	}
	return len(t.handlers) > 0
}

// Handler returns the handler set for typ, or nil.
func (t *PointerEventTarget) Handler(typ EventType) Handler {
	return t.handlers[typ]
}

// setHandler stores h and tells the world's registry about it.
func (t *PointerEventTarget) setHandler(f Facade, typ EventType, h Handler) {
	fb := f.AsFacade()
	if h == nil {
		if _, ok := t.handlers[typ]; !ok {
			return
		}
		delete(t.handlers, typ)
		fb.NotifyWorld(MsgRemoveEventListener, ListenerChange{Type: typ})
		return
	}
	if t.handlers == nil {
		t.handlers = make(map[EventType]Handler)
	}
	t.handlers[typ] = h
	fb.NotifyWorld(MsgAddEventListener, ListenerChange{Type: typ, Handler: h})
}

// PointerProps returns the property table entries for every pointer handler
// plus "pointerEvents". Facade types embedding PointerEventTarget append
// them to their own props.
func PointerProps() []Prop {
	props := make([]Prop, 0, len(PointerEventTypes)+1)
	props = append(props, Prop{
		Name: "pointerEvents",
		Get: func(f Facade) any {
			return f.(PointerTarget).Pointer().PointerEvents
		},
		Set: func(f Facade, v any) {
			t := f.(PointerTarget).Pointer()
			switch m := v.(type) {
			case nil:
				t.PointerEvents = PointerAuto
			case PointerEventsMode:
				t.PointerEvents = m
			case bool:
				t.PointerEvents = PointerOff
				if m {
					t.PointerEvents = PointerOn
				}
			default:
				panic(&PropertyError{Type: fmt.Sprintf("%T", f), Prop: "pointerEvents", Value: v, Want: "bool or PointerEventsMode"})
			}
		},
	})
	for _, typ := range PointerEventTypes {
		props = append(props, handlerProp(typ))
	}
	return props
}

func handlerProp(typ EventType) Prop {
	return Prop{
		Name: string(typ),
		Get: func(f Facade) any {
			return f.(PointerTarget).Pointer().handlers[typ]
		},
		Set: func(f Facade, v any) {
			var h Handler
			switch fn := v.(type) {
			case nil:
			case Handler:
				h = fn
			case func(e *PointerEvent):
				h = fn
			default:
				panic(&PropertyError{Type: fmt.Sprintf("%T", f), Prop: string(typ), Value: v, Want: "Handler"})
			}
			f.(PointerTarget).Pointer().setHandler(f, typ, h)
		},
	}
}

// Touch is one touch point of a NativeEvent.
type Touch struct {
	ID               int
	ClientX, ClientY float64
}

// NativeEvent is raw pointer input as delivered by the host: mouse, touch or
// wheel. Type uses the DOM names: mousemove, mousedown, mouseup, mouseleave,
// click, dblclick, wheel, touchstart, touchmove, touchend, touchcancel.
type NativeEvent struct {
	Type             string
	ClientX, ClientY float64
	Button           int
	Buttons          int
	DeltaX, DeltaY   float64
	AltKey           bool
	CtrlKey          bool
	ShiftKey         bool
	MetaKey          bool
	// Touches are the touches still down; ChangedTouches the ones this event
	// is about.
	Touches        []Touch
	ChangedTouches []Touch
	TimeStamp      time.Time
}

func (e *NativeEvent) isTouch() bool {
	switch e.Type {
	case "touchstart", "touchmove", "touchend", "touchcancel":
		return true
	}
	return false
}

// normalize gives single-touch events the client position of their touch.
func (e *NativeEvent) normalize() {
	if !e.isTouch() {
		return
	}
	var t *Touch
	switch {
	case len(e.ChangedTouches) > 0:
		t = &e.ChangedTouches[0]
	case len(e.Touches) > 0:
		t = &e.Touches[0]
	default:
		return
	}
	e.ClientX, e.ClientY = t.ClientX, t.ClientY
}

// PointerEvent is the synthetic event handed to handlers. Native fields are
// copied in; Type, Target and RelatedTarget describe the dispatch.
type PointerEvent struct {
	Type             EventType
	ClientX, ClientY float64
	Button           int
	Buttons          int
	DeltaX, DeltaY   float64
	AltKey           bool
	CtrlKey          bool
	ShiftKey         bool
	MetaKey          bool
	Touches          []Touch
	TimeStamp        time.Time

	Target        Facade
	RelatedTarget Facade
	// CurrentTarget is the facade whose handler is running.
	CurrentTarget Facade
	Native        *NativeEvent
	// Hit is the hit test result for the facade under the pointer, if any.
	Hit *Hit

	propagationStopped bool
}

// StopPropagation keeps the event from bubbling past the current handler.
func (e *PointerEvent) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *PointerEvent) PropagationStopped() bool {
	return e.propagationStopped
}

// Hit is one hit test candidate. Lower Distance is closer; DistanceBias
// breaks ties.
type Hit struct {
	Facade       Facade
	Distance     float64
	DistanceBias float64
	// LocalX and LocalY are the pointer position in the facade's space, when
	// the backend knows it.
	LocalX, LocalY float64
}

// HitTester finds the facades under a client position. Results may be in
// any order.
type HitTester interface {
	FacadesAtPosition(x, y float64) []Hit
}

// HitTesterFunc adapts a function to HitTester.
type HitTesterFunc func(x, y float64) []Hit

// FacadesAtPosition implements HitTester.
func (fn HitTesterFunc) FacadesAtPosition(x, y float64) []Hit {
	return fn(x, y)
}
