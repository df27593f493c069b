package vellum

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// SceneConfig configures a scene. Exactly one of ID and Element must
// resolve to a host surface; ID is looked up among the elements registered
// with the renderer.
type SceneConfig struct {
	ID      string
	Element Element
	Width   int
	Height  int

	// RenderOffScreen composites every layer onto an off-screen main canvas
	// after each render pass.
	RenderOffScreen bool
	// RelativeRendering switches every shape added to the scene to
	// percentage coordinates.
	RelativeRendering bool
	// HoverStyles moves shapes into their hover and active style states
	// while the pointer is over or pressing them.
	HoverStyles bool
	// Debug logs per-pass render statistics at debug level.
	Debug bool
}

// SceneInterface is the capability bundle a scene grants to the shapes it
// holds. It is the only way a shape reaches back into its scene.
type SceneInterface interface {
	NewLayer(shape Shape, opts ...LayerOption) (*Layer, error)
	Layer(target any) (*Layer, error)
	AddShape(shape Shape, l *Layer) (*Layer, error)
	On(eventType string, h *Handler, ctx any) error
	Off(f HandlerFilter) (int, error)
	Dispatch(e Event, ctx any) int
	RequestRendering(shape Shape, hook Hook) error
	BeforeRender(fn func())
	Lookup(id uuid.UUID) (Shape, bool)
	Config() Config

	debugEnabled() bool
	adopt(s Shape)
	release(s Shape)
}

var _ SceneInterface = (*Scene)(nil)

// EventSink receives every event a scene fires, after its handlers ran.
type EventSink interface {
	EmitEvent(e Event)
}

// Scene owns a host surface, its layers, the shape→layer assignment and
// the handler table. All methods must be called from the goroutine driving
// the renderer.
type Scene struct {
	id       uuid.UUID
	renderer *Renderer
	cfg      SceneConfig
	element  Element

	layers []*Layer
	assign map[uuid.UUID]*Layer
	main   Canvas

	handlers handlerTable
	sink     EventSink

	requested    map[*Layer][]Hook
	beforeRender []func()
	framePending bool
	destroyed    bool

	pointer        pointerState
	pointerEnabled bool
	injectQueue    []syntheticEvent
	testRunner     *TestRunner

	screenshotQueue []string
}

func newScene(r *Renderer, cfg SceneConfig, el Element) *Scene {
	return &Scene{
		id:        uuid.New(),
		renderer:  r,
		cfg:       cfg,
		element:   el,
		assign:    make(map[uuid.UUID]*Layer),
		requested: make(map[*Layer][]Hook),
	}
}

// ID returns the scene's id.
func (s *Scene) ID() uuid.UUID { return s.id }

// Width returns the scene width in pixels.
func (s *Scene) Width() int { return s.cfg.Width }

// Height returns the scene height in pixels.
func (s *Scene) Height() int { return s.cfg.Height }

// SceneConfig returns the configuration the scene was created with.
func (s *Scene) SceneConfig() SceneConfig { return s.cfg }

// Config returns the renderer configuration.
func (s *Scene) Config() Config { return s.renderer.cfg }

// Renderer returns the owning renderer.
func (s *Scene) Renderer() *Renderer { return s.renderer }

// Layers returns a copy of the layer list in render order.
func (s *Scene) Layers() []*Layer { return append([]*Layer(nil), s.layers...) }

// MainCanvas returns the off-screen composite, or nil when the scene does
// not render off screen or has not rendered yet.
func (s *Scene) MainCanvas() Canvas { return s.main }

// SetEventSink forwards every fired event to sink. Pass nil to stop.
func (s *Scene) SetEventSink(sink EventSink) { s.sink = sink }

// SetDebugMode toggles per-pass render statistics.
func (s *Scene) SetDebugMode(enabled bool) { s.cfg.Debug = enabled }

// debugEnabled reports whether the scene or the whole renderer is in debug
// mode.
func (s *Scene) debugEnabled() bool { return s.cfg.Debug || s.renderer.cfg.Debug }

// --- Layers ---

// NewLayer creates a layer on top of the existing ones and, when shape is
// not nil, assigns shape to it. The caller must not pass a shape that is a
// child of a group already on the scene.
func (s *Scene) NewLayer(shape Shape, opts ...LayerOption) (*Layer, error) {
	const op = "NewLayer"
	if s.destroyed {
		return nil, illegalOperation(op, "scene destroyed")
	}
	o := layerOptions{width: s.cfg.Width, height: s.cfg.Height}
	for _, fn := range opts {
		fn(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, argumentError(op, "layer size must be positive, got %dx%d", o.width, o.height)
	}
	if !o.offsetSet {
		o.left = float64(max(s.cfg.Width-o.width, 0)) / 2
		o.top = float64(max(s.cfg.Height-o.height, 0)) / 2
	}
	l := &Layer{
		id:     uuid.New(),
		scene:  s,
		width:  o.width,
		height: o.height,
		left:   o.left,
		top:    o.top,
		canvas: s.element.NewCanvas(o.width, o.height),
	}
	s.layers = append(s.layers, l)
	if shape != nil {
		if _, err := s.AddShape(shape, l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// defaultLayer returns the first layer without shapes, else the first
// layer, creating a full-size layer when the scene has none.
func (s *Scene) defaultLayer() *Layer {
	for _, l := range s.layers {
		if len(l.shapes) == 0 {
			return l
		}
	}
	if len(s.layers) > 0 {
		return s.layers[0]
	}
	l, err := s.NewLayer(nil)
	if err != nil {
		// Only reachable once the scene is destroyed.
		return nil
	}
	return l
}

// Layer looks up a layer. With a nil target it returns the default layer;
// with a Shape, the layer the shape (or its closest assigned ancestor) is
// on; with a *Layer, the layer itself if it belongs to the scene. A nil
// layer and no error mean "not found". Other targets fail with
// ErrIllegalOperation.
func (s *Scene) Layer(target any) (*Layer, error) {
	switch t := target.(type) {
	case nil:
		return s.defaultLayer(), nil
	case Shape:
		for p := t; p != nil; p = p.base().parent {
			if l, ok := s.assign[p.ID()]; ok {
				return l, nil
			}
		}
		return nil, nil
	case *Layer:
		if t != nil && t.scene == s {
			return t, nil
		}
		return nil, nil
	}
	return nil, illegalOperation("Layer", "cannot look up a layer by %T", target)
}

// --- Shapes ---

// AddShape assigns shape to l, or to the default layer when l is nil. A
// shape is on at most one layer: any previous assignment, on this or another
// scene, is removed first. The layer is queued for rendering.
func (s *Scene) AddShape(shape Shape, l *Layer) (*Layer, error) {
	const op = "AddShape"
	if shape == nil {
		return nil, argumentError(op, "shape is nil")
	}
	if s.destroyed {
		return nil, illegalOperation(op, "scene destroyed")
	}
	if l == nil {
		l = s.defaultLayer()
	} else if l.scene != s {
		return nil, illegalOperation(op, "layer %s belongs to another scene", l.id)
	}
	if old, ok := shape.Scene().(*Scene); ok && old != s {
		old.RemoveShape(shape)
	}
	if prev, ok := s.assign[shape.ID()]; ok {
		prev.remove(shape)
		s.queue(prev, nil)
	}
	l.shapes = append(l.shapes, shape)
	s.assign[shape.ID()] = l
	if s.cfg.RelativeRendering {
		shape.SetRelativeRendering(true)
	}
	s.adopt(shape)
	s.queue(l, nil)
	return l, nil
}

// AddShapes adds every shape to the default layer.
func (s *Scene) AddShapes(shapes ...Shape) error {
	for _, sh := range shapes {
		if _, err := s.AddShape(sh, nil); err != nil {
			return err
		}
	}
	return nil
}

// RemoveShape takes shape off the scene and drops the handlers registered
// with it as context. It reports whether the shape was on the scene.
func (s *Scene) RemoveShape(shape Shape) bool {
	l, ok := s.assign[shape.ID()]
	if !ok {
		return false
	}
	l.remove(shape)
	delete(s.assign, shape.ID())
	s.release(shape)
	s.queue(l, nil)
	return true
}

func (s *Scene) adopt(shape Shape) {
	shape.attach(s)
	s.renderer.registry.registerTree(shape)
}

func (s *Scene) release(shape Shape) {
	s.renderer.registry.unregisterTree(shape)
	var drop func(Shape)
	drop = func(x Shape) {
		s.handlers.remove(HandlerFilter{Context: x})
		if c, ok := x.(composite); ok {
			for _, child := range c.Children() {
				drop(child)
			}
		}
	}
	drop(shape)
	if s.pointer.hover != nil && s.pointer.hover.Scene() == nil {
		s.pointer.hover = nil
	}
	shape.detach()
}

// Lookup resolves a weak reference through the renderer's registry.
func (s *Scene) Lookup(id uuid.UUID) (Shape, bool) {
	return s.renderer.registry.Shape(id)
}

// --- Rendering ---

// RequestRendering queues the layer holding shape for the next render pass.
// hook, if not nil, runs after that pass has redrawn every queued layer.
func (s *Scene) RequestRendering(shape Shape, hook Hook) error {
	const op = "RequestRendering"
	if shape == nil {
		return argumentError(op, "shape is nil")
	}
	if s.destroyed {
		return illegalOperation(op, "scene destroyed")
	}
	l, _ := s.Layer(shape)
	if l == nil {
		return illegalOperation(op, "shape %s is not on a layer of this scene", shape.ID())
	}
	s.queue(l, hook)
	return nil
}

// BeforeRender runs fn at the start of the next render pass, before any
// layer is redrawn.
func (s *Scene) BeforeRender(fn func()) {
	if fn == nil || s.destroyed {
		return
	}
	s.beforeRender = append(s.beforeRender, fn)
	s.scheduleFrame()
}

func (s *Scene) queue(l *Layer, hook Hook) {
	hooks := s.requested[l]
	if hook != nil {
		hooks = append(hooks, hook)
	}
	s.requested[l] = hooks
	s.scheduleFrame()
}

// scheduleFrame asks the scheduler for one frame; further requests are
// coalesced into it.
func (s *Scene) scheduleFrame() {
	if s.framePending {
		return
	}
	s.framePending = true
	s.renderer.scheduler.RequestFrame(func(now time.Time) {
		s.framePending = false
		s.renderPass(now)
	})
}

// Pending returns the number of layers queued for the next render pass.
func (s *Scene) Pending() int { return len(s.requested) }

// Render drains the request queue now instead of waiting for the frame.
func (s *Scene) Render() {
	s.renderPass(s.renderer.clock.Now())
}

// renderPass runs before-render hooks, redraws every queued layer in full,
// composites, and only then runs the queued hooks.
func (s *Scene) renderPass(now time.Time) {
	if s.destroyed {
		return
	}
	var stats debugStats
	t0 := time.Now()

	before := s.beforeRender
	s.beforeRender = nil
	for _, fn := range before {
		fn()
	}
	stats.beforeHooks = len(before)

	requested := s.requested
	s.requested = make(map[*Layer][]Hook)
	var hooks []Hook
	for _, l := range s.layers {
		h, ok := requested[l]
		if !ok {
			continue
		}
		stats.shapes += l.redraw()
		stats.layers++
		hooks = append(hooks, h...)
	}
	if s.cfg.RenderOffScreen && stats.layers > 0 {
		s.composite()
	}
	s.flushScreenshots()
	stats.renderTime = time.Since(t0)

	for _, h := range hooks {
		h(now)
	}
	stats.hooks = len(hooks)
	s.debugLog(stats)
}

// RenderShape clears and redraws the layer holding shape.
func (s *Scene) RenderShape(shape Shape) error {
	l, err := s.Layer(shape)
	if err != nil {
		return err
	}
	if l == nil {
		return illegalOperation("RenderShape", "shape %s is not on this scene", shape.ID())
	}
	l.redraw()
	if s.cfg.RenderOffScreen {
		s.composite()
	}
	return nil
}

// RenderAll redraws every layer, whether queued or not. Queued hooks are
// left for the next pass.
func (s *Scene) RenderAll() {
	for _, l := range s.layers {
		l.redraw()
	}
	if s.cfg.RenderOffScreen {
		s.composite()
	}
}

func (s *Scene) composite() {
	if s.main == nil {
		s.main = s.element.NewCanvas(s.cfg.Width, s.cfg.Height)
	}
	s.main.Clear()
	for _, l := range s.layers {
		s.main.DrawCanvas(l.canvas, l.left, l.top)
	}
}

// --- Events ---

// On registers h for eventType. A nil ctx registers a scene-wide handler
// that receives every event of the type; otherwise h only receives events
// dispatched with ctx. Registering the same handler and context again moves
// it to the end of the list. The event's category input is enabled on first
// use.
func (s *Scene) On(eventType string, h *Handler, ctx any) error {
	const op = "On"
	if eventType == "" {
		return argumentError(op, "event type is empty")
	}
	if h == nil || h.fn == nil {
		return argumentError(op, "handler is nil")
	}
	if err := s.renderer.events.ensureInstalled(eventType, s); err != nil {
		return err
	}
	if ctx == nil {
		ctx = s
	} else if !reflect.ValueOf(ctx).Comparable() {
		return argumentError(op, "context of type %T is not comparable", ctx)
	}
	s.handlers.add(eventType, h, ctx)
	return nil
}

// Off removes the registrations matching f and returns how many were
// removed. The filter must name a type or a handler.
func (s *Scene) Off(f HandlerFilter) (int, error) {
	if f.Type == "" && f.Handler == nil {
		return 0, argumentError("Off", "filter needs a type or a handler")
	}
	return s.handlers.remove(f), nil
}

// Dispatch calls the handlers registered for e's type with context ctx, or
// every handler of the type when ctx is nil. It returns how many ran.
func (s *Scene) Dispatch(e Event, ctx any) int {
	hs := s.handlers.matching(e.Type(), ctx)
	for _, h := range hs {
		h.fn(e)
	}
	return len(hs)
}

// Emit builds an event of the variant registered for eventType and fires
// it at target. detail is attached to custom events.
func (s *Scene) Emit(eventType string, target Shape, detail any) error {
	e, err := s.renderer.events.NewEvent(eventType, target)
	if err != nil {
		return err
	}
	if ce, ok := e.(CustomEvent); ok {
		ce.Detail = detail
		e = ce
	}
	s.fire(e)
	return nil
}

// fire delivers e to the target and each of its ancestors, then to the
// scene-wide handlers, then to the sink.
func (s *Scene) fire(e Event) {
	for p := e.Target(); p != nil; p = p.base().parent {
		s.Dispatch(e, p)
	}
	s.Dispatch(e, s)
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}

// HandlerCount returns the number of registrations for eventType.
func (s *Scene) HandlerCount(eventType string) int { return s.handlers.count(eventType) }

// Destroy removes every shape and handler and detaches the scene from its
// renderer. The scene is unusable afterwards.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	for _, l := range s.layers {
		for _, sh := range l.Shapes() {
			s.RemoveShape(sh)
		}
		l.canvas.Clear()
	}
	s.handlers = handlerTable{}
	s.requested = make(map[*Layer][]Hook)
	s.beforeRender = nil
	s.destroyed = true
	s.renderer.removeScene(s)
}
