package vellum

import "math"

// InputSource is polled once per update for pointer and keyboard state.
type InputSource interface {
	// Pointer returns the cursor position in scene coordinates and the
	// pressed button, if any.
	Pointer() (x, y float64, pressed bool, button MouseButton)
	Modifiers() KeyModifiers
	// AppendKeyEdges appends the key transitions since the last poll.
	AppendKeyEdges(buf []KeyEdge) []KeyEdge
}

// KeyEdge is a single key press or release.
type KeyEdge struct {
	Key  string
	Code int
	Down bool
}

// --- Per-scene pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	moved    bool
	hit      Shape
	hover    Shape       // shape under the pointer (for mouseover/mouseout)
	dragging bool
	button   MouseButton // button captured at press time
}

// --- Hit testing ---

// hitTest finds the topmost shape at (x, y) in scene coordinates, searching
// layers and shapes in reverse render order. Transparent groups resolve to
// the child that was hit.
func (s *Scene) hitTest(x, y float64) Shape {
	for i := len(s.layers) - 1; i >= 0; i-- {
		l := s.layers[i]
		for j := len(l.shapes) - 1; j >= 0; j-- {
			if hit := hitShape(l.shapes[j], x, y); hit != nil {
				return hit
			}
		}
	}
	return nil
}

func hitShape(sh Shape, x, y float64) Shape {
	if g, ok := sh.(*Group); ok {
		for i := len(g.children) - 1; i >= 0; i-- {
			if hit := hitShape(g.children[i], x, y); hit != nil {
				return hit
			}
		}
		return nil
	}
	if sh.IsColliding(x, y) {
		return sh
	}
	return nil
}

// --- Input processing ---

// processInput is called once per update. Injected events take precedence
// over the real source; when neither the mouse category is in use nor hover
// styles are on, the pointer is not tracked at all.
func (s *Scene) processInput(src InputSource) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if s.processInjectedInput() {
		return
	}
	if src == nil || (!s.pointerEnabled && !s.cfg.HoverStyles) {
		return
	}
	x, y, pressed, button := src.Pointer()
	s.processPointer(x, y, pressed, button, src.Modifiers())
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	target := s.hitTest(x, y)

	if target != ps.hover {
		if ps.hover != nil {
			s.fireMouse(EventMouseOut, ps.hover, x, y, button, mods)
			s.hoverState(ps.hover, StateDefault)
		}
		if target != nil {
			s.fireMouse(EventMouseOver, target, x, y, button, mods)
			if !ps.down {
				s.hoverState(target, StateHover)
			}
		}
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hit = target
		ps.dragging = false
		s.fireMouse(EventMouseDown, target, x, y, button, mods)
		s.hoverState(target, StateActive)
	case !pressed && ps.down:
		if ps.dragging {
			s.fireDrag(EventDragEnd, ps.hit, x, y, x-ps.lastX, y-ps.lastY, mods)
		} else if ps.hit != nil && ps.hit == target {
			s.fireMouse(EventClick, target, x, y, ps.button, mods)
		}
		s.fireMouse(EventMouseUp, target, x, y, ps.button, mods)
		if ps.hit != nil && ps.hit != target {
			s.hoverState(ps.hit, StateDefault)
		}
		s.hoverState(target, StateHover)
		ps.down = false
		ps.hit = nil
		ps.dragging = false
		ps.lastX, ps.lastY = x, y
	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				if math.Hypot(x-ps.startX, y-ps.startY) > s.Config().DragDeadZone {
					ps.dragging = true
					s.fireDrag(EventDragStart, ps.hit, x, y, x-ps.startX, y-ps.startY, mods)
				}
			}
			if ps.dragging {
				s.fireDrag(EventDrag, ps.hit, x, y, x-ps.lastX, y-ps.lastY, mods)
			}
		}
		ps.lastX, ps.lastY = x, y
	default:
		if !ps.moved || x != ps.lastX || y != ps.lastY {
			s.fireMouse(EventMouseMove, target, x, y, button, mods)
			ps.lastX, ps.lastY = x, y
		}
	}
	ps.moved = true
}

// hoverState switches shape to state when hover styles are enabled and the
// shape's style defines it. Unknown states fall back to default.
func (s *Scene) hoverState(shape Shape, state string) {
	if shape == nil || !s.cfg.HoverStyles {
		return
	}
	if state != StateDefault && !shape.Style().Has(state) {
		state = StateDefault
	}
	if shape.State() == state {
		return
	}
	shape.SetState(state)
	if err := s.RequestRendering(shape, nil); err != nil {
		Logger().Debug("hover restyle skipped", "shape", shape.ID(), "error", err)
	}
}

func (s *Scene) fireMouse(typ string, target Shape, x, y float64, button MouseButton, mods KeyModifiers) {
	s.fire(MouseEvent{
		BaseEvent: BaseEvent{EventType: typ, TargetShape: target},
		X:         x, Y: y,
		Button:    button,
		Modifiers: mods,
	})
}

func (s *Scene) fireDrag(typ string, target Shape, x, y, dx, dy float64, mods KeyModifiers) {
	ps := &s.pointer
	s.fire(MouseEvent{
		BaseEvent: BaseEvent{EventType: typ, TargetShape: target},
		X:         x, Y: y,
		Button:    ps.button,
		Modifiers: mods,
		StartX:    ps.startX, StartY: ps.startY,
		DeltaX: dx, DeltaY: dy,
	})
}

// fireKey delivers a key transition to the shape under the pointer and the
// scene-wide handlers.
func (s *Scene) fireKey(k KeyEdge, mods KeyModifiers) {
	typ := EventKeyUp
	if k.Down {
		typ = EventKeyDown
	}
	s.fire(KeyboardEvent{
		BaseEvent: BaseEvent{EventType: typ, TargetShape: s.pointer.hover},
		Key:       k.Key,
		Code:      k.Code,
		Modifiers: mods,
	})
}

// Hovered returns the shape under the pointer, or nil.
func (s *Scene) Hovered() Shape { return s.pointer.hover }
