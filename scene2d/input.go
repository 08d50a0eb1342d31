package scene2d

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/grove"
)

// mouseButtons maps Ebitengine buttons to DOM button numbers and button
// mask bits.
var mouseButtons = []struct {
	button ebiten.MouseButton
	dom    int
	mask   int
}{
	{ebiten.MouseButtonLeft, 0, 1},
	{ebiten.MouseButtonRight, 2, 2},
	{ebiten.MouseButtonMiddle, 1, 4},
}

// inputState turns polled Ebitengine input into grove native events.
type inputState struct {
	width, height int

	cursorX, cursorY float64
	inside           bool
	pressX, pressY   float64
	pressed          bool
	lastClick        time.Time
	lastClickX       float64
	lastClickY       float64

	touchIDs []ebiten.TouchID
	touchPos map[ebiten.TouchID][2]float64
}

func readModifiers(e *grove.NativeEvent) {
	e.ShiftKey = ebiten.IsKeyPressed(ebiten.KeyShift)
	e.CtrlKey = ebiten.IsKeyPressed(ebiten.KeyControl)
	e.AltKey = ebiten.IsKeyPressed(ebiten.KeyAlt)
	e.MetaKey = ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func buttonMask() int {
	mask := 0
	for _, b := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b.button) {
			mask |= b.mask
		}
	}
	return mask
}

// poll delivers this tick's input to w.
func (in *inputState) poll(w *grove.World) {
	in.pollMouse(w)
	in.pollTouches(w)
}

func (in *inputState) emit(w *grove.World, e grove.NativeEvent) {
	readModifiers(&e)
	w.HandleEvent(e)
}

func (in *inputState) pollMouse(w *grove.World) {
	ix, iy := ebiten.CursorPosition()
	x, y := float64(ix), float64(iy)
	inside := ix >= 0 && iy >= 0 && ix < in.width && iy < in.height
	buttons := buttonMask()

	if !inside {
		if in.inside {
			in.emit(w, grove.NativeEvent{Type: "mouseleave", ClientX: x, ClientY: y, Buttons: buttons})
		}
		in.inside = false
	} else if !in.inside || x != in.cursorX || y != in.cursorY {
		in.emit(w, grove.NativeEvent{Type: "mousemove", ClientX: x, ClientY: y, Buttons: buttons})
		in.inside = true
	}
	in.cursorX, in.cursorY = x, y

	for _, b := range mouseButtons {
		switch {
		case inpututil.IsMouseButtonJustPressed(b.button):
			in.emit(w, grove.NativeEvent{Type: "mousedown", ClientX: x, ClientY: y, Button: b.dom, Buttons: buttons})
			if b.dom == 0 {
				in.pressed = true
				in.pressX, in.pressY = x, y
			}
		case inpututil.IsMouseButtonJustReleased(b.button):
			in.emit(w, grove.NativeEvent{Type: "mouseup", ClientX: x, ClientY: y, Button: b.dom, Buttons: buttons})
			if b.dom == 0 && in.pressed {
				in.pressed = false
				in.click(w, x, y)
			}
		}
	}

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		in.emit(w, grove.NativeEvent{Type: "wheel", ClientX: x, ClientY: y, DeltaX: dx, DeltaY: dy, Buttons: buttons})
	}
}

// click follows a left release that stayed near its press with a click,
// and a second nearby click within the double click window with dblclick.
func (in *inputState) click(w *grove.World, x, y float64) {
	if math.Hypot(x-in.pressX, y-in.pressY) > grove.DefaultTapDistance {
		return
	}
	in.emit(w, grove.NativeEvent{Type: "click", ClientX: x, ClientY: y})
	now := w.Frames().Now()
	if !in.lastClick.IsZero() && now.Sub(in.lastClick) <= grove.DefaultDoubleClickWindow &&
		math.Hypot(x-in.lastClickX, y-in.lastClickY) <= grove.DefaultTapDistance {
		in.emit(w, grove.NativeEvent{Type: "dblclick", ClientX: x, ClientY: y})
		in.lastClick = time.Time{}
		return
	}
	in.lastClick = now
	in.lastClickX, in.lastClickY = x, y
}

func (in *inputState) pollTouches(w *grove.World) {
	if in.touchPos == nil {
		in.touchPos = make(map[ebiten.TouchID][2]float64)
	}
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	down := make([]grove.Touch, 0, len(in.touchIDs))
	for _, id := range in.touchIDs {
		x, y := ebiten.TouchPosition(id)
		down = append(down, grove.Touch{ID: int(id), ClientX: float64(x), ClientY: float64(y)})
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		changed := []grove.Touch{{ID: int(id), ClientX: float64(x), ClientY: float64(y)}}
		in.emit(w, grove.NativeEvent{Type: "touchend", Touches: down, ChangedTouches: changed})
		delete(in.touchPos, id)
	}
	for _, t := range down {
		id := ebiten.TouchID(t.ID)
		prev, seen := in.touchPos[id]
		in.touchPos[id] = [2]float64{t.ClientX, t.ClientY}
		changed := []grove.Touch{t}
		switch {
		case !seen:
			in.emit(w, grove.NativeEvent{Type: "touchstart", Touches: down, ChangedTouches: changed})
		case prev[0] != t.ClientX || prev[1] != t.ClientY:
			in.emit(w, grove.NativeEvent{Type: "touchmove", Touches: down, ChangedTouches: changed})
		}
	}
}
