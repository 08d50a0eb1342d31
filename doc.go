// Package grove is a declarative scene-graph reconciler with a property
// animation runtime.
//
// Client code describes what should exist as a tree of plain [Descriptor]
// values. On each [World.Update] grove diffs that tree against the live
// facades, constructing, updating and destroying them, and animates property
// changes declared with transitions and keyframe animations. Rendering is
// left to a backend; the [scene2d] package is one built on [Ebitengine].
//
// # Quick start
//
//	world := grove.NewWorld(grove.WorldConfig{})
//	err := world.Update(
//		&grove.Descriptor{Key: "hero", Facade: scene2d.SpriteType, Props: grove.Props{
//			"x": 100.0, "y": 50.0,
//		}},
//	)
//
// Call [World.Tick] once per host frame. It delivers input, advances
// animations and fires [World.OnRender] when something changed.
//
// # Facades
//
// A facade embeds [FacadeBase] (or [Parent] / [List] when it has children)
// and is declared once as a [Type] whose property table lists the values a
// descriptor may set:
//
//	type Box struct {
//		grove.FacadeBase
//		X, Y float64
//	}
//
//	var BoxType = grove.NewType("Box",
//		func(parent grove.Facade) grove.Facade {
//			b := &Box{}
//			b.Init(b, parent)
//			return b
//		},
//		grove.FloatProp("x", func(b *Box) *float64 { return &b.X }),
//		grove.FloatProp("y", func(b *Box) *float64 { return &b.Y }),
//	)
//
// # Animation
//
// A descriptor with Transition tweens its listed properties whenever their
// value changes. A descriptor with Animation runs keyframe animations built
// from [Keyframe] snapshots; easing curves come from [gween] and colors blend
// through [go-colorful]. ExitAnimation plays before a removed facade is
// destroyed.
//
// # Pointer events
//
// Facades embedding [PointerEventTarget] accept handler props such as
// "onClick" and "onDrag". The world hit-tests through a [HitTester],
// tracks hover, drag and tap gestures, and bubbles [PointerEvent]s up the
// tree. An [EntityStore] receives every dispatched event (see grove/ecs for
// a [Donburi] adapter).
//
// [scene2d]: https://pkg.go.dev/github.com/phanxgames/grove/scene2d
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [go-colorful]: https://github.com/lucasb-eyer/go-colorful
// [Donburi]: https://github.com/yohamta/donburi
package grove
