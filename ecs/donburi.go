package ecs

import (
	"github.com/phanxgames/swell"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// TrainEventType is the Donburi event type for swell pool events.
var TrainEventType = events.NewEventType[swell.TrainEvent]()

// TrainData is the component attached to the entity mirroring a live
// pooled train. It is a snapshot taken at spawn time.
type TrainData struct {
	ID         uint32
	Anchor     swell.Vec2
	Size       swell.Vec2
	Heading    float64
	Wavelength float64
}

// TrainComponent marks entities that mirror pooled trains.
var TrainComponent = donburi.NewComponentType[TrainData]()

// DonburiSink is a swell.EventSink backed by a Donburi world.
type DonburiSink struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

var _ swell.EventSink = (*DonburiSink)(nil)

// NewDonburiSink creates an EventSink that publishes every event to
// TrainEventType and maintains a TrainComponent entity per live train.
// Published events are consumed with Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, entities: make(map[uint32]donburi.Entity)}
}

// EmitTrainEvent implements swell.EventSink.
func (s *DonburiSink) EmitTrainEvent(event swell.TrainEvent) {
	switch event.Type {
	case swell.TrainSpawned:
		entity := s.world.Create(TrainComponent)
		TrainComponent.SetValue(s.world.Entry(entity), TrainData{
			ID:         event.TrainID,
			Anchor:     event.Anchor,
			Size:       event.Size,
			Heading:    event.Heading,
			Wavelength: event.Wavelength,
		})
		s.entities[event.TrainID] = entity
	case swell.TrainRetired:
		if entity, ok := s.entities[event.TrainID]; ok {
			s.world.Remove(entity)
			delete(s.entities, event.TrainID)
		}
	}
	TrainEventType.Publish(s.world, event)
}

// Entity returns the entity mirroring the given train, if it is live.
func (s *DonburiSink) Entity(trainID uint32) (donburi.Entity, bool) {
	e, ok := s.entities[trainID]
	return e, ok
}

// LiveTrains returns how many train entities currently exist in the world.
func LiveTrains(world donburi.World) int {
	return donburi.NewQuery(filter.Contains(TrainComponent)).Count(world)
}
