package vellum

// syntheticEvent is a single injected pointer or key event.
type syntheticEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
	key     *KeyEdge
}

// InjectPress queues a left-button press at (x, y) in scene coordinates.
// Each injected event is consumed by one update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move at (x, y) with the button held down. Use
// this between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectHover queues a pointer move at (x, y) with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectRelease queues a pointer release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same position.
// Consumes two updates.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag: a press at (fromX, fromY), frames-2
// linearly interpolated moves and a release at (toX, toY). Minimum frames
// is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues a key press and release of key.
func (s *Scene) InjectKey(key string) {
	s.injectQueue = append(s.injectQueue,
		syntheticEvent{key: &KeyEdge{Key: key, Down: true}},
		syntheticEvent{key: &KeyEdge{Key: key}},
	)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer state machine or the key path. It reports whether an
// event was consumed, in which case real input is skipped.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.key != nil {
		s.fireKey(*evt.key, 0)
		return true
	}
	s.processPointer(evt.x, evt.y, evt.pressed, evt.button, 0)
	return true
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int { return len(s.injectQueue) }
