package ecs

import (
	"github.com/google/uuid"
	"github.com/phanxgames/vellum"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEvent is the flattened form of a vellum event published to the
// world. TargetID is the zero UUID when the event had no target.
type SceneEvent struct {
	Type     string
	TargetID uuid.UUID
	Kind     vellum.ShapeKind
	X, Y     float64
	HasPos   bool
	Key      string
	Detail   any
	Event    vellum.Event
}

// SceneEventType is the Donburi event type for vellum scene events.
var SceneEventType = events.NewEventType[SceneEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns an EventSink publishing to SceneEventType in
// world. Events are queued; consume them with events.Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World) vellum.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(e vellum.Event) {
	SceneEventType.Publish(s.world, flatten(e))
}

func flatten(e vellum.Event) SceneEvent {
	se := SceneEvent{Type: e.Type(), Event: e}
	if t := e.Target(); t != nil {
		se.TargetID = t.ID()
		se.Kind = t.Kind()
	}
	se.X, se.Y, se.HasPos = e.Position()
	switch v := e.(type) {
	case vellum.KeyboardEvent:
		se.Key = v.Key
	case vellum.CustomEvent:
		se.Detail = v.Detail
	}
	return se
}
