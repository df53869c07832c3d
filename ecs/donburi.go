package ecs

import (
	"github.com/phanxgames/fortress"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NoticeEventType is the Donburi event type for game notices.
var NoticeEventType = events.NewEventType[fortress.Notice]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Notices are published to NoticeEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) fortress.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(n fortress.Notice) {
	NoticeEventType.Publish(s.world, n)
}
