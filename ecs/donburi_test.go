package ecs

import (
	"testing"

	"github.com/phanxgames/swell"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitTrainEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []swell.TrainEvent
	TrainEventType.Subscribe(world, func(w donburi.World, e swell.TrainEvent) {
		received = append(received, e)
	})

	sink.EmitTrainEvent(swell.TrainEvent{
		Type:       swell.TrainSpawned,
		TrainID:    7,
		Anchor:     swell.Vec2{X: -120, Z: 4},
		Size:       swell.Vec2{X: 60, Z: 80},
		Heading:    0.25,
		Wavelength: 6,
	})
	sink.EmitTrainEvent(swell.TrainEvent{Type: swell.TrainRetired, TrainID: 7})

	// Events are queued; process them.
	TrainEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != swell.TrainSpawned || received[0].TrainID != 7 {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[0].Anchor.X != -120 || received[0].Anchor.Z != 4 {
		t.Errorf("event 0 anchor: %+v", received[0].Anchor)
	}
	if received[1].Type != swell.TrainRetired {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_TracksLiveTrains(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	for id := uint32(1); id <= 3; id++ {
		sink.EmitTrainEvent(swell.TrainEvent{Type: swell.TrainSpawned, TrainID: id, Wavelength: float64(id)})
	}
	if got := LiveTrains(world); got != 3 {
		t.Fatalf("LiveTrains = %d, want 3", got)
	}

	entity, ok := sink.Entity(2)
	if !ok {
		t.Fatal("train 2 has no entity")
	}
	data := TrainComponent.Get(world.Entry(entity))
	if data.ID != 2 || data.Wavelength != 2 {
		t.Errorf("train 2 data = %+v", *data)
	}

	sink.EmitTrainEvent(swell.TrainEvent{Type: swell.TrainRetired, TrainID: 2})
	if got := LiveTrains(world); got != 2 {
		t.Errorf("LiveTrains after retire = %d, want 2", got)
	}
	if _, ok := sink.Entity(2); ok {
		t.Error("retired train still has an entity")
	}

	// Retiring an unknown train is ignored.
	sink.EmitTrainEvent(swell.TrainEvent{Type: swell.TrainRetired, TrainID: 99})
	if got := LiveTrains(world); got != 2 {
		t.Errorf("LiveTrains after unknown retire = %d, want 2", got)
	}
}

func TestDonburiSink_FieldIntegration(t *testing.T) {
	cfg := swell.DefaultConfig()
	cfg.Grid = swell.GridConfig{Width: 16, Height: 16, Scale: 1}
	cfg.NumTrains = 4
	cfg.NumHoles = 0
	field := swell.NewWaveField(&cfg, swell.FlatBathymetry(100), nil)

	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	field.SetEventSink(sink)

	var spawned int
	TrainEventType.Subscribe(world, func(w donburi.World, e swell.TrainEvent) {
		if e.Type == swell.TrainSpawned {
			spawned++
		}
	})

	field.Tick(1.0 / 60)
	events.ProcessAllEvents(world)

	if spawned != 4 {
		t.Errorf("spawned = %d, want 4", spawned)
	}
	if got := LiveTrains(world); got != len(field.PoolTrains()) {
		t.Errorf("LiveTrains = %d, pool = %d", got, len(field.PoolTrains()))
	}

	field.SetTrainPoolSize(1)
	field.Tick(1.0 / 60)
	if got := LiveTrains(world); got != 1 {
		t.Errorf("LiveTrains after shrink = %d, want 1", got)
	}
}
