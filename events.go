package vellum

import (
	"slices"
	"sync"
)

// Mouse event types.
const (
	EventMouseDown = "mousedown"
	EventMouseUp   = "mouseup"
	EventMouseMove = "mousemove"
	EventMouseOver = "mouseover"
	EventMouseOut  = "mouseout"
	EventClick     = "click"
	EventDragStart = "dragstart"
	EventDrag      = "drag"
	EventDragEnd   = "dragend"
)

// Keyboard event types.
const (
	EventKeyDown = "keydown"
	EventKeyUp   = "keyup"
)

// Category names of the built-in event categories.
const (
	CategoryMouse    = "mouse"
	CategoryKeyboard = "keyboard"
	CategoryCustom   = "custom"
)

// Event is what handlers receive. Mouse events carry a position; keyboard
// and custom events do not.
type Event interface {
	Type() string
	Target() Shape
	Position() (x, y float64, ok bool)
}

// BaseEvent is the common part of every event.
type BaseEvent struct {
	EventType   string
	TargetShape Shape
}

// Type returns the event type name.
func (e BaseEvent) Type() string { return e.EventType }

// Target returns the shape the event is aimed at, or nil.
func (e BaseEvent) Target() Shape { return e.TargetShape }

// Position reports no position.
func (e BaseEvent) Position() (float64, float64, bool) { return 0, 0, false }

// MouseEvent is a pointer event in scene coordinates.
type MouseEvent struct {
	BaseEvent
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Drag fields (valid for dragstart, drag and dragend).
	StartX, StartY float64
	DeltaX, DeltaY float64
}

// Position returns the pointer position.
func (e MouseEvent) Position() (float64, float64, bool) { return e.X, e.Y, true }

// KeyboardEvent is a key transition. Key is the key's name as reported by
// the input source.
type KeyboardEvent struct {
	BaseEvent
	Key       string
	Code      int
	Modifiers KeyModifiers
}

// CustomEvent is any event outside the typed categories.
type CustomEvent struct {
	BaseEvent
	Detail any
}

// Handler wraps an event callback. Handlers are compared by identity, so
// keep the pointer returned by NewHandler to remove it later.
type Handler struct {
	fn func(Event)
}

// NewHandler returns a handler calling fn.
func NewHandler(fn func(Event)) *Handler {
	return &Handler{fn: fn}
}

// HandlerFilter selects registrations to remove. Zero fields match
// anything, but at least Type or Handler must be set.
type HandlerFilter struct {
	Type    string
	Handler *Handler
	Context any
}

type handlerEntry struct {
	handler *Handler
	ctx     any
}

// handlerTable is a scene's per-type handler list.
type handlerTable struct {
	byType map[string][]handlerEntry
}

// add registers h for typ, replacing an identical registration so that it
// moves to the end of the list. ctx must be comparable; Scene.On checks it.
func (t *handlerTable) add(typ string, h *Handler, ctx any) {
	if t.byType == nil {
		t.byType = make(map[string][]handlerEntry)
	}
	list := slices.DeleteFunc(t.byType[typ], func(e handlerEntry) bool {
		return e.handler == h && e.ctx == ctx
	})
	t.byType[typ] = append(list, handlerEntry{handler: h, ctx: ctx})
}

func (t *handlerTable) remove(f HandlerFilter) int {
	removed := 0
	for typ, list := range t.byType {
		if f.Type != "" && typ != f.Type {
			continue
		}
		n := len(list)
		list = slices.DeleteFunc(list, func(e handlerEntry) bool {
			return (f.Handler == nil || e.handler == f.Handler) &&
				(f.Context == nil || e.ctx == f.Context)
		})
		removed += n - len(list)
		if len(list) == 0 {
			delete(t.byType, typ)
		} else {
			t.byType[typ] = list
		}
	}
	return removed
}

// matching returns a snapshot of the handlers for typ whose context is ctx,
// or every handler for typ when ctx is nil.
func (t *handlerTable) matching(typ string, ctx any) []*Handler {
	var out []*Handler
	for _, e := range t.byType[typ] {
		if ctx == nil || e.ctx == ctx {
			out = append(out, e.handler)
		}
	}
	return out
}

func (t *handlerTable) count(typ string) int {
	return len(t.byType[typ])
}

// EventCategory groups event types under one input source. A category
// without Types is the custom catch-all.
type EventCategory struct {
	Name  string
	Types []string
	// New builds an event of the category's base variant.
	New func(typ string, target Shape) Event
	// Install enables the category's input source for target, a *Scene for
	// per-scene categories or a *Renderer for renderer-wide ones. It runs
	// once per target.
	Install func(target any)
	// PerRenderer installs once for the whole renderer instead of per scene.
	PerRenderer bool
}

func (c *EventCategory) handles(typ string) bool {
	return slices.Contains(c.Types, typ)
}

// EventRegistry maps event types to categories. At most one category may
// be the custom catch-all.
type EventRegistry struct {
	mu         sync.Mutex
	categories []*EventCategory
	installed  map[*EventCategory]map[any]bool
}

// NewEventRegistry returns a registry holding the mouse, keyboard and
// custom categories.
func NewEventRegistry() *EventRegistry {
	r := &EventRegistry{installed: make(map[*EventCategory]map[any]bool)}
	for _, c := range builtinCategories() {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

func builtinCategories() []*EventCategory {
	return []*EventCategory{
		{
			Name: CategoryMouse,
			Types: []string{
				EventMouseDown, EventMouseUp, EventMouseMove, EventMouseOver,
				EventMouseOut, EventClick, EventDragStart, EventDrag, EventDragEnd,
			},
			New: func(typ string, target Shape) Event {
				return MouseEvent{BaseEvent: BaseEvent{EventType: typ, TargetShape: target}}
			},
			Install: func(target any) {
				if s, ok := target.(*Scene); ok {
					s.pointerEnabled = true
				}
			},
		},
		{
			Name:  CategoryKeyboard,
			Types: []string{EventKeyDown, EventKeyUp},
			New: func(typ string, target Shape) Event {
				return KeyboardEvent{BaseEvent: BaseEvent{EventType: typ, TargetShape: target}}
			},
			Install: func(target any) {
				if r, ok := target.(*Renderer); ok {
					r.keyboardEnabled = true
				}
			},
			PerRenderer: true,
		},
		{
			Name: CategoryCustom,
			New: func(typ string, target Shape) Event {
				return CustomEvent{BaseEvent: BaseEvent{EventType: typ, TargetShape: target}}
			},
		},
	}
}

// Register adds c. Registering a second catch-all or a duplicate name
// fails with ErrIllegalOperation.
func (r *EventRegistry) Register(c *EventCategory) error {
	const op = "EventRegistry.Register"
	if c == nil || c.Name == "" {
		return argumentError(op, "category needs a name")
	}
	if c.New == nil {
		return argumentError(op, "category %q has no event constructor", c.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return illegalOperation(op, "category %q already registered", c.Name)
		}
		if len(c.Types) == 0 && len(existing.Types) == 0 {
			return illegalOperation(op, "category %q: custom category %q already registered", c.Name, existing.Name)
		}
	}
	r.categories = append(r.categories, c)
	return nil
}

// Unregister removes the category called name.
func (r *EventRegistry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.categories {
		if c.Name == name {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			delete(r.installed, c)
			return true
		}
	}
	return false
}

// Category returns the category handling typ: the typed category listing
// it, else the custom catch-all.
func (r *EventRegistry) Category(typ string) (*EventCategory, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.category(typ)
}

func (r *EventRegistry) category(typ string) (*EventCategory, bool) {
	var custom *EventCategory
	for _, c := range r.categories {
		if len(c.Types) == 0 {
			custom = c
			continue
		}
		if c.handles(typ) {
			return c, true
		}
	}
	return custom, custom != nil
}

// NewEvent builds an event of the variant registered for typ.
func (r *EventRegistry) NewEvent(typ string, target Shape) (Event, error) {
	c, ok := r.Category(typ)
	if !ok {
		return nil, illegalOperation("NewEvent", "no category handles %q", typ)
	}
	return c.New(typ, target), nil
}

// ensureInstalled runs the installer of typ's category once for sc, or
// once for sc's renderer when the category is renderer-wide.
func (r *EventRegistry) ensureInstalled(typ string, sc *Scene) error {
	r.mu.Lock()
	c, ok := r.category(typ)
	if !ok {
		r.mu.Unlock()
		return illegalOperation("On", "no category handles %q", typ)
	}
	if c.Install == nil {
		r.mu.Unlock()
		return nil
	}
	var target any = sc
	if c.PerRenderer {
		target = sc.renderer
	}
	done := r.installed[c]
	if done == nil {
		done = make(map[any]bool)
		r.installed[c] = done
	}
	if done[target] {
		r.mu.Unlock()
		return nil
	}
	done[target] = true
	r.mu.Unlock()
	c.Install(target)
	return nil
}
