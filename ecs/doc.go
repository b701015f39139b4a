// Package ecs provides ECS adapters for swell's train pool events.
//
// The primary adapter is [NewDonburiSink], which bridges pool lifecycle
// events (spawn, retire) into a [Donburi] world as typed events and keeps
// one entity per live pooled train. Subscribe to [TrainEventType] in your
// ECS systems to receive the events, or query [TrainComponent] to iterate
// the live trains.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	field.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
