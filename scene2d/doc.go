// Package scene2d renders a grove World with Ebitengine.
//
// Every scene2d facade owns a [Node]: a retained 2D element with a local
// transform, alpha, z-index and optional hit shape. Facade properties write
// straight into the node, so transitions and animations move nodes without
// another reconciliation pass. The [Scene] draws the node tree in painter
// order and serves as the world's hit tester, reporting later-painted nodes
// as closer.
//
// Facade types:
//
//   - [GroupType]: a container; children inherit its transform and alpha.
//   - [SpriteType]: an image stretched to width x height, tinted by color.
//   - [RectType]: a solid colored rectangle.
//   - [BatchType] with [InstanceType] items: one facade per data item drawn
//     in a single triangle batch from a shared image.
//
// A minimal program:
//
//	s := scene2d.NewScene(grove.WorldConfig{})
//	s.Update(&grove.Descriptor{
//		Key:    "box",
//		Facade: scene2d.RectType,
//		Props:  grove.Props{"x": 20, "y": 20, "width": 64, "height": 64},
//	})
//	if err := scene2d.Run(s, scene2d.RunConfig{Title: "demo"}); err != nil {
//		log.Fatal(err)
//	}
package scene2d
