package grove

import (
	"fmt"
	"time"
)

// WorldConfig configures a World. The zero value is usable.
type WorldConfig struct {
	// Debug turns on development checks (see SetDebugMode).
	Debug bool
	// Frames is the frame queue the world and its animations run on. Nil
	// creates a queue on the wall clock.
	Frames *FrameQueue
	// HitTester locates facades under the pointer. Without one, pointer
	// events hit nothing.
	HitTester HitTester

	TapDistance       float64       // default DefaultTapDistance
	TapDuration       time.Duration // default DefaultTapDuration
	DoubleClickWindow time.Duration // default DefaultDoubleClickWindow
}

// World is the root facade. It reconciles the top-level descriptors and owns
// the event registry, overlay registry, frame queue and gesture state.
type World struct {
	Parent

	// OnRender is called once per frame in which a render was queued.
	OnRender func(now time.Time)

	cfg       WorldConfig
	frames    *FrameQueue
	ticker    *Ticker
	registry  *EventRegistry
	hitTester HitTester
	store     EntityStore

	overlays     []Facade
	renderQueued bool
	renderFrame  FrameID
	ptr          pointerState

	injectQueue []NativeEvent
	testRunner  *TestRunner
}

// NewWorld creates an empty world.
func NewWorld(cfg WorldConfig) *World {
	if cfg.Debug {
		SetDebugMode(true)
	}
	if cfg.Frames == nil {
		cfg.Frames = NewFrameQueue(nil)
	}
	if cfg.TapDistance <= 0 {
		cfg.TapDistance = DefaultTapDistance
	}
	if cfg.TapDuration <= 0 {
		cfg.TapDuration = DefaultTapDuration
	}
	if cfg.DoubleClickWindow <= 0 {
		cfg.DoubleClickWindow = DefaultDoubleClickWindow
	}
	w := &World{
		cfg:       cfg,
		frames:    cfg.Frames,
		ticker:    NewTicker(cfg.Frames),
		registry:  NewEventRegistry(),
		hitTester: cfg.HitTester,
	}
	w.Init(w, nil)
	w.world = w
	return w
}

// Update reconciles the top-level children against children and queues a
// render. Descriptor and property errors abort the pass and are returned;
// facades already updated in the pass keep their new state.
func (w *World) Update(children ...*Descriptor) (err error) {
	if w.Destroyed() {
		return fmt.Errorf("grove: update of destroyed world")
	}
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *DescriptorError:
				err = e
			case *PropertyError:
				err = e
			default:
				panic(r)
			}
		}
	}()
	w.SetChildren(children)
	w.AfterUpdate()
	w.QueueRender()
	return nil
}

// OnNotifyWorld implements NotifyHandler. The world is the end of every
// notification route.
func (w *World) OnNotifyWorld(source Facade, msg Message, data any) bool {
	switch msg {
	case MsgAddEventListener:
		if ch, ok := data.(ListenerChange); ok {
			w.registry.Add(source, ch.Type, ch.Handler)
		}
	case MsgRemoveEventListener:
		if ch, ok := data.(ListenerChange); ok {
			w.registry.Remove(source, ch.Type)
		}
	case MsgRemoveAllEventListeners:
		w.registry.RemoveAll(source)
		w.forgetPointerTarget(source)
		w.removeOverlay(source)
	case MsgNeedsRender:
		w.QueueRender()
	case MsgAddOverlay:
		w.addOverlay(source)
	case MsgRemoveOverlay:
		w.removeOverlay(source)
	}
	return false
}

// QueueRender requests a render on the next frame. Calls before that frame
// coalesce into one.
func (w *World) QueueRender() {
	if w.renderQueued || w.Destroyed() {
		return
	}
	w.renderQueued = true
	w.renderFrame = w.frames.RequestFrame(w.render)
}

// RenderQueued reports whether a render is pending.
func (w *World) RenderQueued() bool {
	return w.renderQueued
}

func (w *World) render(now time.Time) {
	w.renderQueued = false
	if w.OnRender != nil {
		w.OnRender(now)
	}
}

// Tick advances the world by one host frame: it steps the test runner,
// delivers one injected pointer event and flushes the frame queue, which
// ticks animations and renders.
func (w *World) Tick() {
	if w.testRunner != nil {
		w.testRunner.step(w)
	}
	w.processInjectedInput()
	w.frames.Flush()
}

// Frames returns the world's frame queue.
func (w *World) Frames() *FrameQueue {
	return w.frames
}

// Ticker returns the ticker driving the world's animations.
func (w *World) Ticker() *Ticker {
	return w.ticker
}

// Registry returns the world's event registry.
func (w *World) Registry() *EventRegistry {
	return w.registry
}

// HitTester returns the world's hit tester, or nil.
func (w *World) HitTester() HitTester {
	return w.hitTester
}

// SetHitTester replaces the hit tester.
func (w *World) SetHitTester(h HitTester) {
	w.hitTester = h
}

// SetEntityStore forwards every dispatched pointer event to s. Nil detaches.
func (w *World) SetEntityStore(s EntityStore) {
	w.store = s
}

// Hovered returns the facade currently under the pointer, or nil.
func (w *World) Hovered() Facade {
	return w.ptr.hovered
}

// Dragging returns the facade being dragged, or nil.
func (w *World) Dragging() Facade {
	if w.ptr.drag == nil {
		return nil
	}
	return w.ptr.drag.facade
}

// Overlays returns the facades registered as overlays, in registration
// order. The slice MUST NOT be mutated.
func (w *World) Overlays() []Facade {
	return w.overlays
}

func (w *World) addOverlay(f Facade) {
	for _, o := range w.overlays {
		if o == f {
			return
		}
	}
	w.overlays = append(w.overlays, f)
	w.QueueRender()
}

func (w *World) removeOverlay(f Facade) {
	for i, o := range w.overlays {
		if o == f {
			w.overlays = append(w.overlays[:i], w.overlays[i+1:]...)
			w.QueueRender()
			return
		}
	}
}

// Destroy tears down every facade and cancels the pending render.
func (w *World) Destroy() {
	if w.Destroyed() {
		return
	}
	w.Parent.Destroy()
	if w.renderQueued {
		w.frames.CancelFrame(w.renderFrame)
		w.renderQueued = false
	}
	w.overlays = nil
	w.ptr = pointerState{}
	w.injectQueue = nil
}
