package ecs

import (
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Event is a grove interaction event plus the entity bound to its target
// facade, or donburi.Null.
type Event struct {
	grove.InteractionEvent
	Entity donburi.Entity
}

// InteractionEventType is the Donburi event type for grove pointer events.
// Subscribe to it in ECS systems and drain it with ProcessEvents.
var InteractionEventType = events.NewEventType[Event]()

// DonburiStore is a grove.EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint64]donburi.Entity
}

// NewDonburiStore creates a store publishing into world.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[uint64]donburi.Entity)}
}

// Bind attaches entity to the events targeting f.
func (s *DonburiStore) Bind(f grove.Facade, entity donburi.Entity) {
	s.entities[f.AsFacade().ID] = entity
}

// Unbind forgets the entity bound to f. Bindings of destroyed facades are
// dropped automatically while the store is attached to their world.
func (s *DonburiStore) Unbind(f grove.Facade) {
	delete(s.entities, f.AsFacade().ID)
}

// ForgetFacade implements grove.FacadeForgetter.
func (s *DonburiStore) ForgetFacade(id uint64) {
	delete(s.entities, id)
}

// EmitEvent implements grove.EntityStore. Bindings to entities removed from
// the world are dropped.
func (s *DonburiStore) EmitEvent(event grove.InteractionEvent) {
	e := Event{InteractionEvent: event, Entity: donburi.Null}
	if entity, ok := s.entities[event.FacadeID]; ok {
		if s.world.Valid(entity) {
			e.Entity = entity
		} else {
			delete(s.entities, event.FacadeID)
		}
	}
	InteractionEventType.Publish(s.world, e)
}
