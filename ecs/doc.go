// Package ecs provides ECS adapters for fortress game notices.
//
// The primary adapter is [NewDonburiSink], which bridges game notices (tips,
// phase changes, commits, launches, turn switches, game over) into a
// [Donburi] world as typed events. Subscribe to [NoticeEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	game.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
