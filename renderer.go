package vellum

import (
	"time"

	"github.com/google/uuid"
)

// Renderer is the top-level context. It owns the scenes, the registry that
// resolves weak references by id, the event categories, the frame
// scheduler and the clock. Independent renderers share no state.
type Renderer struct {
	cfg       Config
	registry  *Registry
	events    *EventRegistry
	loop      *FrameLoop
	scheduler Scheduler
	clock     Clock
	input     InputSource
	elements  map[string]Element
	scenes    []*Scene

	keyboardEnabled bool
	keyBuf          []KeyEdge
}

// NewRenderer returns a renderer using cfg. Zero fields of cfg take their
// defaults.
func NewRenderer(cfg Config) *Renderer {
	loop := NewFrameLoop()
	return &Renderer{
		cfg:       cfg.withDefaults(),
		registry:  NewRegistry(),
		events:    NewEventRegistry(),
		loop:      loop,
		scheduler: loop,
		clock:     SystemClock{},
		elements:  make(map[string]Element),
	}
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Registry returns the renderer's id registry.
func (r *Renderer) Registry() *Registry { return r.registry }

// Events returns the renderer's event categories.
func (r *Renderer) Events() *EventRegistry { return r.events }

// Loop returns the built-in frame loop.
func (r *Renderer) Loop() *FrameLoop { return r.loop }

// Clock returns the renderer's clock.
func (r *Renderer) Clock() Clock { return r.clock }

// SetClock replaces the clock used by Update and Render.
func (r *Renderer) SetClock(c Clock) {
	if c == nil {
		c = SystemClock{}
	}
	r.clock = c
}

// SetScheduler routes frame requests to sc instead of the built-in loop.
// Update then no longer ticks anything; the caller drives sc.
func (r *Renderer) SetScheduler(sc Scheduler) {
	if sc == nil {
		sc = r.loop
	}
	r.scheduler = sc
}

// SetInput sets the source polled by Update. nil disables real input;
// injected events still work.
func (r *Renderer) SetInput(src InputSource) { r.input = src }

// RegisterElement makes el available to scenes configured by id.
func (r *Renderer) RegisterElement(id string, el Element) {
	r.elements[id] = el
}

// NewScene validates cfg and creates a scene. Exactly one of cfg.ID and
// cfg.Element must resolve to a surface and the size must be positive.
func (r *Renderer) NewScene(cfg SceneConfig) (*Scene, error) {
	const op = "NewScene"
	var el Element
	switch {
	case cfg.ID != "" && cfg.Element != nil:
		return nil, validationError(op, "both id %q and element given", cfg.ID)
	case cfg.Element != nil:
		el = cfg.Element
	case cfg.ID != "":
		found, ok := r.elements[cfg.ID]
		if !ok {
			return nil, validationError(op, "no element with id %q", cfg.ID)
		}
		el = found
	default:
		return nil, validationError(op, "an id or an element is required")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, validationError(op, "width and height must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	s := newScene(r, cfg, el)
	r.scenes = append(r.scenes, s)
	Logger().Debug("scene created", "scene", s.id, "width", cfg.Width, "height", cfg.Height)
	return s, nil
}

func (r *Renderer) removeScene(s *Scene) {
	for i, x := range r.scenes {
		if x == s {
			r.scenes = append(r.scenes[:i], r.scenes[i+1:]...)
			return
		}
	}
}

// Scenes returns a copy of the scene list.
func (r *Renderer) Scenes() []*Scene { return append([]*Scene(nil), r.scenes...) }

// AddShapes adds shapes to the default layer of the first scene.
func (r *Renderer) AddShapes(shapes ...Shape) error {
	if len(r.scenes) == 0 {
		return illegalOperation("AddShapes", "renderer has no scene")
	}
	return r.scenes[0].AddShapes(shapes...)
}

// Lookup returns the shape registered under id.
func (r *Renderer) Lookup(id uuid.UUID) (Shape, bool) { return r.registry.Shape(id) }

// Render drains every scene's request queue now.
func (r *Renderer) Render() {
	for _, s := range r.Scenes() {
		s.Render()
	}
}

// Update processes input for every scene and, when the built-in loop is the
// scheduler, runs the frame callbacks due at now.
func (r *Renderer) Update(now time.Time) {
	for _, s := range r.Scenes() {
		s.processInput(r.input)
	}
	r.processKeys()
	if r.scheduler == Scheduler(r.loop) {
		r.loop.Tick(now)
	}
}

// Step is Update at the clock's current time.
func (r *Renderer) Step() {
	r.Update(r.clock.Now())
}

// processKeys polls key transitions once for the whole renderer and fans
// them out to every scene.
func (r *Renderer) processKeys() {
	if !r.keyboardEnabled || r.input == nil {
		return
	}
	r.keyBuf = r.input.AppendKeyEdges(r.keyBuf[:0])
	if len(r.keyBuf) == 0 {
		return
	}
	mods := r.input.Modifiers()
	for _, s := range r.Scenes() {
		for _, k := range r.keyBuf {
			s.fireKey(k, mods)
		}
	}
}
