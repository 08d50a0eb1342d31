package grove

import (
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// Hex parses a "#rrggbb" string into an opaque Color. Invalid input yields
// opaque black.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{A: 1}
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Direction selects how a tween walks its iterations.
type Direction uint8

const (
	Forward   Direction = iota // every iteration runs from -> to
	Reverse                    // every iteration runs to -> from
	Alternate                  // odd iterations run backward
)

// String returns the descriptor name of the direction.
func (d Direction) String() string {
	switch d {
	case Reverse:
		return "reverse"
	case Alternate:
		return "alternate"
	default:
		return "forward"
	}
}

// Forever is the total duration reported by tweens that never finish.
const Forever = time.Duration(1<<63 - 1)

// Message identifies a notification bubbled from a facade toward the world root.
type Message uint8

const (
	MsgAddEventListener        Message = iota // data: ListenerChange
	MsgRemoveEventListener                    // data: ListenerChange
	MsgRemoveAllEventListeners                // data: nil
	MsgNeedsRender                            // data: nil
	MsgAddOverlay                             // data: nil, source is the overlay
	MsgRemoveOverlay                          // data: nil, source is the overlay
)

func (m Message) String() string {
	switch m {
	case MsgAddEventListener:
		return "addEventListener"
	case MsgRemoveEventListener:
		return "removeEventListener"
	case MsgRemoveAllEventListeners:
		return "removeAllEventListeners"
	case MsgNeedsRender:
		return "needsRender"
	case MsgAddOverlay:
		return "addOverlay"
	case MsgRemoveOverlay:
		return "removeOverlay"
	default:
		return "unknown"
	}
}
