// Package ecs provides ECS adapters for vellum's event system.
//
// The primary adapter is [NewDonburiSink], which forwards every event a
// vellum scene fires (mouse, keyboard and custom) into a [Donburi] world as
// a typed event. Subscribe to [SceneEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
