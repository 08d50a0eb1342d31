package grove

import (
	"math"
	"slices"
	"time"

	"github.com/jinzhu/copier"
)

// Gesture thresholds used when WorldConfig leaves them zero.
const (
	DefaultTapDistance       = 10.0
	DefaultTapDuration       = 300 * time.Millisecond
	DefaultDoubleClickWindow = 300 * time.Millisecond
)

type dragState struct {
	facade     Facade
	startFired bool
	startEvent NativeEvent
}

type tapState struct {
	facade Facade
	x, y   float64
	start  time.Time
}

type lastTap struct {
	facade Facade
	at     time.Time
}

// pointerState is the world's gesture state.
type pointerState struct {
	hovered Facade
	drag    *dragState
	tap     *tapState
	last    lastTap
}

// InteractionEvent is the flat record of a dispatched pointer event handed
// to an EntityStore.
type InteractionEvent struct {
	Type     EventType
	FacadeID uint64
	ClientX  float64
	ClientY  float64
	LocalX   float64
	LocalY   float64
	Button   int
}

// EntityStore receives every dispatched pointer event, e.g. to publish it
// into an ECS world.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// FacadeForgetter is implemented by entity stores that keep per-facade
// state. The world calls ForgetFacade once a facade is destroyed.
type FacadeForgetter interface {
	ForgetFacade(id uint64)
}

// HandleEvent feeds one native pointer event through hit testing and the
// hover, drag and tap state machines.
func (w *World) HandleEvent(e NativeEvent) {
	if e.TimeStamp.IsZero() {
		e.TimeStamp = w.frames.Now()
	}
	e.normalize()
	switch e.Type {
	case "mousemove", "touchmove":
		w.onPointerMotion(&e)
	case "mouseleave":
		w.onPointerLeave(&e)
	case "mousedown", "touchstart", "mouseup", "touchend", "touchcancel", "click", "dblclick", "wheel":
		w.onPointerAction(&e)
	}
}

// hitAt returns the first intercepting pointer target under e.
func (w *World) hitAt(e *NativeEvent) (Facade, *Hit) {
	if w.hitTester == nil || w.registry.Len() == 0 {
		return nil, nil
	}
	hits := w.hitTester.FacadesAtPosition(e.ClientX, e.ClientY)
	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		case a.DistanceBias < b.DistanceBias:
			return -1
		case a.DistanceBias > b.DistanceBias:
			return 1
		}
		return 0
	})
	for i := range hits {
		f := hits[i].Facade
		pt, ok := f.(PointerTarget)
		if !ok || f.AsFacade().state != stateLive {
			continue
		}
		if pt.Pointer().Intercepts() {
			return f, &hits[i]
		}
	}
	return nil, nil
}

func (w *World) onPointerMotion(e *NativeEvent) {
	if e.isTouch() && len(e.Touches) > 1 {
		return
	}
	hovered, hit := w.hitAt(e)
	last := w.ptr.hovered
	w.ptr.hovered = hovered

	if drag := w.ptr.drag; drag != nil {
		if !drag.startFired {
			w.fire(EventDragStart, &drag.startEvent, drag.facade, nil, hit)
			drag.startFired = true
		}
		w.fire(EventDrag, e, drag.facade, nil, hit)
	}
	if hovered != last {
		if last != nil {
			w.fire(EventMouseOut, e, last, hovered, hit)
			if w.ptr.drag != nil {
				w.fire(EventDragLeave, e, last, hovered, hit)
			}
		}
		if hovered != nil {
			w.fire(EventMouseOver, e, hovered, last, hit)
			if w.ptr.drag != nil {
				w.fire(EventDragEnter, e, hovered, last, hit)
			}
		}
	}
	if hovered != nil {
		w.fire(EventMouseMove, e, hovered, nil, hit)
		if w.ptr.drag != nil {
			w.fire(EventDragOver, e, hovered, nil, hit)
		}
	}
	if tap := w.ptr.tap; tap != nil && math.Hypot(e.ClientX-tap.x, e.ClientY-tap.y) > w.cfg.TapDistance {
		w.ptr.tap = nil
	}
}

func (w *World) onPointerLeave(e *NativeEvent) {
	if last := w.ptr.hovered; last != nil {
		w.ptr.hovered = nil
		w.fire(EventMouseOut, e, last, nil, nil)
		if w.ptr.drag != nil {
			w.fire(EventDragLeave, e, last, nil, nil)
		}
	}
}

var actionEventTypes = map[string]EventType{
	"mousedown":   EventMouseDown,
	"touchstart":  EventMouseDown,
	"mouseup":     EventMouseUp,
	"touchend":    EventMouseUp,
	"touchcancel": EventMouseUp,
	"click":       EventClick,
	"dblclick":    EventDoubleClick,
	"wheel":       EventWheel,
}

func (w *World) onPointerAction(e *NativeEvent) {
	target, hit := w.hitAt(e)
	if target != nil {
		w.fire(actionEventTypes[e.Type], e, target, nil, hit)

		switch e.Type {
		case "mousedown", "touchstart":
			if e.Type == "touchstart" && len(e.Touches) <= 1 {
				w.ptr.tap = nil
				if w.registry.FindBubblingTarget(target, EventClick) != nil ||
					w.registry.FindBubblingTarget(target, EventDoubleClick) != nil {
					w.ptr.tap = &tapState{facade: target, x: e.ClientX, y: e.ClientY, start: e.TimeStamp}
				}
			}
			if w.ptr.drag == nil {
				if df := w.registry.FindBubblingTarget(target, EventDragStart); df != nil {
					w.ptr.drag = &dragState{facade: df, startEvent: *e}
				}
			}
		case "touchend":
			w.endTap(e, target, hit)
		}
	}

	switch e.Type {
	case "mouseup", "touchend", "touchcancel":
		w.endDrag(e, target, hit)
		if e.Type != "touchend" || target == nil {
			w.ptr.tap = nil
		}
	}
}

// endTap synthesizes onClick, and onDoubleClick for a second tap on the same
// facade within the window.
func (w *World) endTap(e *NativeEvent, target Facade, hit *Hit) {
	tap := w.ptr.tap
	w.ptr.tap = nil
	if tap == nil || tap.facade != target {
		return
	}
	if e.TimeStamp.Sub(tap.start) > w.cfg.TapDuration ||
		math.Hypot(e.ClientX-tap.x, e.ClientY-tap.y) > w.cfg.TapDistance {
		return
	}
	w.fire(EventClick, e, target, nil, hit)
	if w.ptr.last.facade == target && e.TimeStamp.Sub(w.ptr.last.at) <= w.cfg.DoubleClickWindow {
		w.fire(EventDoubleClick, e, target, nil, hit)
		w.ptr.last = lastTap{}
		return
	}
	w.ptr.last = lastTap{facade: target, at: e.TimeStamp}
}

// endDrag fires onDrop under the pointer and onDragEnd on the dragged facade.
// Releases anywhere end the drag.
func (w *World) endDrag(e *NativeEvent, target Facade, hit *Hit) {
	drag := w.ptr.drag
	if drag == nil {
		return
	}
	w.ptr.drag = nil
	if !drag.startFired {
		return
	}
	if target != nil {
		w.fire(EventDrop, e, target, drag.facade, hit)
	}
	w.fire(EventDragEnd, e, drag.facade, target, hit)
}

// fire builds a synthetic event from native and dispatches it with bubbling.
func (w *World) fire(typ EventType, native *NativeEvent, target, related Facade, hit *Hit) {
	if target == nil || target.AsFacade().state == stateDestroyed {
		return
	}
	ev := &PointerEvent{}
	if err := copier.Copy(ev, native); err != nil {
		logger().Error("copy native event", "type", native.Type, "error", err)
	}
	ev.Type = typ
	ev.Target = target
	ev.RelatedTarget = related
	ev.Native = native
	if hit != nil && hit.Facade == target {
		ev.Hit = hit
	}
	w.registry.Dispatch(ev)
	w.emit(ev)
}

func (w *World) emit(ev *PointerEvent) {
	if w.store == nil {
		return
	}
	ie := InteractionEvent{
		Type:     ev.Type,
		FacadeID: ev.Target.AsFacade().ID,
		ClientX:  ev.ClientX,
		ClientY:  ev.ClientY,
		Button:   ev.Button,
	}
	if ev.Hit != nil {
		ie.LocalX, ie.LocalY = ev.Hit.LocalX, ev.Hit.LocalY
	}
	w.store.EmitEvent(ie)
}

// forgetPointerTarget drops gesture and entity store state that refers to a
// facade being destroyed.
func (w *World) forgetPointerTarget(f Facade) {
	if w.ptr.hovered == f {
		w.ptr.hovered = nil
	}
	if w.ptr.drag != nil && w.ptr.drag.facade == f {
		w.ptr.drag = nil
	}
	if w.ptr.tap != nil && w.ptr.tap.facade == f {
		w.ptr.tap = nil
	}
	if w.ptr.last.facade == f {
		w.ptr.last = lastTap{}
	}
	if ff, ok := w.store.(FacadeForgetter); ok {
		ff.ForgetFacade(f.AsFacade().ID)
	}
}
