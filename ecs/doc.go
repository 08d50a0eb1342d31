// Package ecs publishes grove pointer events into an ECS world.
//
// [DonburiStore] implements grove.EntityStore on a [Donburi] world. Every
// dispatched pointer event is published as an [Event] on
// [InteractionEventType]; facades bound to an entity with Bind carry that
// entity in the event.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	store.Bind(scene.Child("player"), playerEntity)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
