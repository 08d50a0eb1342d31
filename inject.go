package grove

// InjectEvent queues a native pointer event. One queued event is delivered
// per Tick, before the frame queue is flushed. Real host input should be
// skipped while InjectPending reports true.
func (w *World) InjectEvent(e NativeEvent) {
	w.injectQueue = append(w.injectQueue, e)
}

// InjectPending reports whether injected events are still queued.
func (w *World) InjectPending() bool {
	return len(w.injectQueue) > 0
}

// InjectPress queues a left-button press at the given client position.
func (w *World) InjectPress(x, y float64) {
	w.InjectEvent(NativeEvent{Type: "mousedown", ClientX: x, ClientY: y, Buttons: 1})
}

// InjectMove queues a pointer motion. Use it between InjectPress and
// InjectRelease to drag.
func (w *World) InjectMove(x, y float64) {
	w.InjectEvent(NativeEvent{Type: "mousemove", ClientX: x, ClientY: y})
}

// InjectRelease queues a left-button release.
func (w *World) InjectRelease(x, y float64) {
	w.InjectEvent(NativeEvent{Type: "mouseup", ClientX: x, ClientY: y})
}

// InjectClick queues press, release and click at the same position.
// Consumes three ticks.
func (w *World) InjectClick(x, y float64) {
	w.InjectPress(x, y)
	w.InjectRelease(x, y)
	w.InjectEvent(NativeEvent{Type: "click", ClientX: x, ClientY: y})
}

// InjectTap queues a single-finger touchstart and touchend at the same
// position, which synthesizes a click when the tap is short enough.
// Consumes two ticks.
func (w *World) InjectTap(x, y float64) {
	touch := []Touch{{ID: 0, ClientX: x, ClientY: y}}
	w.InjectEvent(NativeEvent{Type: "touchstart", Touches: touch, ChangedTouches: touch})
	w.InjectEvent(NativeEvent{Type: "touchend", ChangedTouches: touch})
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2
// interpolated moves, and release at (toX, toY). The sequence consumes
// frames ticks, minimum 3 so that at least one move starts the drag.
func (w *World) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	w.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		w.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	w.InjectRelease(toX, toY)
}

// processInjectedInput delivers one queued event. It reports whether an event
// was consumed.
func (w *World) processInjectedInput() bool {
	if len(w.injectQueue) == 0 {
		return false
	}
	e := w.injectQueue[0]
	copy(w.injectQueue, w.injectQueue[1:])
	w.injectQueue[len(w.injectQueue)-1] = NativeEvent{}
	w.injectQueue = w.injectQueue[:len(w.injectQueue)-1]
	w.HandleEvent(e)
	return true
}
