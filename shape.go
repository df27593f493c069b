package vellum

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
)

// Renderable is implemented by everything that can draw itself onto a
// layer.
type Renderable interface {
	// Render draws the shape onto l. With ContinuePath set the shape only
	// extends the current path: it neither begins, closes nor styles it.
	Render(l *Layer, opts RenderOptions)
	// RenderingCoordinates returns the shape's coordinates converted into
	// l's pixel space.
	RenderingCoordinates(l *Layer) []Coord
}

// Coordinated is implemented by shapes with positional data.
type Coordinated interface {
	Coordinates() []Coord
	CentreCoordinates() Coord
}

// Interactive is implemented by shapes that take part in hit testing and
// event routing. The event methods fail with ErrIllegalOperation while the
// shape is not on a scene.
type Interactive interface {
	IsColliding(x, y float64) bool
	On(eventType string, h *Handler) error
	OnContext(eventType string, h *Handler, ctx any) error
	Off(f HandlerFilter) error
	Dispatch(e Event) error
}

// Animatable is implemented by shapes driven by the frame scheduler.
type Animatable interface {
	Animate(d time.Duration, step func(ratio float64), done func()) (*AnimationFrame, error)
	Translate(d time.Duration, dx, dy float64, done func()) (*AnimationFrame, error)
}

// Shape is the polymorphic drawable. The set of implementations is closed:
// every variant embeds the package's shape base and is identified by Kind.
type Shape interface {
	Identified
	Renderable
	Coordinated
	Interactive
	Animatable

	Kind() ShapeKind
	Style() *Style
	SetStyle(st *Style, deep bool)
	State() string
	SetState(state string)
	RelativeRendering() bool
	SetRelativeRendering(relative bool)
	Scene() SceneInterface
	RequestRendering() error
	Cache() *RenderCache

	base() *shapeBase
	attach(sc SceneInterface)
	detach()
	touch()
	coordRefs() []*Coord
	// outline is the shape's polyline approximation in l's pixel space.
	outline(l *Layer) []Coord
	closedOutline() bool
}

// composite is implemented by shapes that own children.
type composite interface {
	Children() []Shape
}

// RenderOptions controls how a shape contributes to the current path.
type RenderOptions struct {
	// ContinuePath extends the current path instead of starting, closing
	// and styling a new one.
	ContinuePath bool
	// EndPoint, when set, is where the previous sub-path ended. The shape
	// joins it with a line and traces itself backwards when its end, not
	// its start, touches EndPoint.
	EndPoint *Coord
}

// RenderCache is a shape-local memo for per-layer computations. Entries are
// keyed by everything they depend on and are never evicted.
type RenderCache struct {
	entries map[string]any
}

// Get returns the value stored under key.
func (c *RenderCache) Get(key string) (any, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Set stores v under key.
func (c *RenderCache) Set(key string, v any) {
	if c.entries == nil {
		c.entries = make(map[string]any)
	}
	c.entries[key] = v
}

// Len returns the number of cached entries.
func (c *RenderCache) Len() int { return len(c.entries) }

// shapeBase carries the state shared by every shape variant.
type shapeBase struct {
	id       uuid.UUID
	kind     ShapeKind
	self     Shape
	parent   Shape
	style    *Style
	state    string
	relative bool
	scene    SceneInterface
	cache    RenderCache
	version  uint64
	easing   ease.TweenFunc

	// transitional overrides the style while a Style.Transition runs.
	transitional StyleDefinition

	// collisionRatio scales the hit-test tolerance (curves and relations).
	collisionRatio float64
}

func (b *shapeBase) init(self Shape, kind ShapeKind) {
	b.id = uuid.New()
	b.kind = kind
	b.self = self
	b.style = NewStyle(nil)
	b.state = StateDefault
	b.easing = ease.Linear
	b.collisionRatio = 1
}

func (b *shapeBase) base() *shapeBase { return b }

// ID returns the shape's process-wide unique id.
func (b *shapeBase) ID() uuid.UUID { return b.id }

// Kind returns the concrete variant.
func (b *shapeBase) Kind() ShapeKind { return b.kind }

// Style returns the shape's style.
func (b *shapeBase) Style() *Style { return b.style }

// SetStyle replaces the style. Styles may be shared between shapes.
// Composite shapes propagate the style to their children when deep is set.
func (b *shapeBase) SetStyle(st *Style, deep bool) {
	if st == nil {
		st = NewStyle(nil)
	}
	b.style = st
}

// State returns the style state used when rendering.
func (b *shapeBase) State() string { return b.state }

// SetState selects the style state used when rendering.
func (b *shapeBase) SetState(state string) {
	if state == "" {
		state = StateDefault
	}
	b.state = state
}

// RelativeRendering reports whether coordinates are layer percentages.
func (b *shapeBase) RelativeRendering() bool { return b.relative }

// SetRelativeRendering switches between absolute pixels and percentages of
// the layer size. The flag is per shape and not inherited by children.
func (b *shapeBase) SetRelativeRendering(relative bool) {
	if b.relative != relative {
		b.relative = relative
		b.touch()
	}
}

// Scene returns the interface granted by the owning scene, or nil.
func (b *shapeBase) Scene() SceneInterface { return b.scene }

// Cache returns the shape's render cache.
func (b *shapeBase) Cache() *RenderCache { return &b.cache }

// SetEasing sets the easing used by this shape's animations.
func (b *shapeBase) SetEasing(fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	b.easing = fn
}

// SetCollisionRatio scales the hit-test tolerance of this shape.
func (b *shapeBase) SetCollisionRatio(r float64) {
	if r <= 0 {
		r = 1
	}
	b.collisionRatio = r
}

func (b *shapeBase) attach(sc SceneInterface) { b.scene = sc }
func (b *shapeBase) detach()                  { b.scene = nil }
func (b *shapeBase) touch()                   { b.version++ }
func (b *shapeBase) closedOutline() bool      { return false }

// RequestRendering asks the owning scene to redraw this shape's layer on the
// next render pass.
func (b *shapeBase) RequestRendering() error {
	if b.scene == nil {
		return illegalOperation("RequestRendering", "shape %s is not on a scene", b.id)
	}
	return b.scene.RequestRendering(b.self, nil)
}

// --- Events ---

// On registers h for eventType with the shape as context.
func (b *shapeBase) On(eventType string, h *Handler) error {
	return b.OnContext(eventType, h, b.self)
}

// OnContext registers h for eventType with an explicit context.
func (b *shapeBase) OnContext(eventType string, h *Handler, ctx any) error {
	if b.scene == nil {
		return illegalOperation("On", "shape %s is not on a scene", b.id)
	}
	return b.scene.On(eventType, h, ctx)
}

// Off removes handlers matching f. A filter without a context is scoped to
// this shape.
func (b *shapeBase) Off(f HandlerFilter) error {
	if b.scene == nil {
		return illegalOperation("Off", "shape %s is not on a scene", b.id)
	}
	if f.Context == nil {
		f.Context = b.self
	}
	_, err := b.scene.Off(f)
	return err
}

// Dispatch delivers e to the handlers registered with this shape as
// context.
func (b *shapeBase) Dispatch(e Event) error {
	if b.scene == nil {
		return illegalOperation("Dispatch", "shape %s is not on a scene", b.id)
	}
	b.scene.Dispatch(e, b.self)
	return nil
}

// --- Coordinates and layers ---

// layer returns the layer this shape renders to, or nil.
func (b *shapeBase) layer() *Layer {
	if b.scene == nil {
		return nil
	}
	l, err := b.scene.Layer(b.self)
	if err != nil {
		return nil
	}
	return l
}

func (b *shapeBase) process(coords []Coord, l *Layer) []Coord {
	return ProcessCoordinates(coords, l, b.relative)
}

func (b *shapeBase) processOne(c Coord, l *Layer) Coord {
	return ProcessCoordinate(c, l, b.relative)
}

// tolerance is the hit-test slack in l's pixels.
func (b *shapeBase) tolerance() float64 {
	t := defaultCollisionTolerance
	if b.scene != nil {
		t = b.scene.Config().CollisionTolerance
	}
	return t * b.collisionRatio
}

// toLayerSpace converts scene coordinates into the pixel space of the layer
// this shape renders to.
func (b *shapeBase) toLayerSpace(x, y float64) (Coord, *Layer) {
	l := b.layer()
	if l == nil {
		return Coord{X: x, Y: y}, nil
	}
	return Coord{X: x - l.left, Y: y - l.top}, l
}

func (b *shapeBase) applyStyle(l *Layer) {
	if b.transitional != nil {
		b.transitional.Apply(l.canvas)
		return
	}
	b.style.Set(l, b.state)
}

// --- Animation ---

// Animate runs step with the eased progress ratio in [0, 1] once per render
// pass for d, then calls done. The final step always receives exactly 1.
func (b *shapeBase) Animate(d time.Duration, step func(ratio float64), done func()) (*AnimationFrame, error) {
	if step == nil {
		return nil, argumentError("Animate", "step callback is nil")
	}
	easing := b.easing
	return b.run(d, func(elapsed time.Duration) {
		step(easedRatio(elapsed, d, easing))
	}, func() { step(1) }, done)
}

// Translate moves the shape by (dx, dy) over d.
func (b *shapeBase) Translate(d time.Duration, dx, dy float64, done func()) (*AnimationFrame, error) {
	refs := b.self.coordRefs()
	targets := make([]Coord, len(refs))
	for i, r := range refs {
		targets[i] = r.Add(dx, dy)
	}
	return b.moveRefs(d, refs, targets, done)
}

// moveRefs animates every coordinate in refs towards the matching target.
func (b *shapeBase) moveRefs(d time.Duration, refs []*Coord, targets []Coord, done func()) (*AnimationFrame, error) {
	if len(refs) != len(targets) {
		return nil, argumentError("Move", "expected %d target coordinates, got %d", len(refs), len(targets))
	}
	var ts tweenSet
	for i, r := range refs {
		ts.addCoord(r, targets[i], d, b.easing)
	}
	return b.run(d, ts.set, ts.finish, done)
}

// run schedules an animation. Durations below the scene's minimum
// animation time skip the scheduler: final is applied by a before-render
// hook and done fires after that single pass.
func (b *shapeBase) run(d time.Duration, step StepFunc, final func(), done func()) (*AnimationFrame, error) {
	const op = "Animate"
	if d < 0 {
		return nil, argumentError(op, "negative duration %v", d)
	}
	sc := b.scene
	if sc == nil {
		return nil, illegalOperation(op, "shape %s is not on a scene", b.id)
	}
	self := b.self

	if d < max(sc.Config().MinAnimationTime, 0) {
		af, err := NewAnimationFrame(self, 0, func(time.Duration) {}, done)
		if err != nil {
			return nil, err
		}
		// final runs before the redraw, nothing left to draw afterwards.
		af.settled = true
		sc.BeforeRender(func() {
			final()
			self.touch()
		})
		return af, sc.RequestRendering(self, af.Next)
	}

	af, err := NewAnimationFrame(self, d, func(elapsed time.Duration) {
		if elapsed >= d {
			final()
		} else {
			step(elapsed)
		}
		self.touch()
	}, done)
	if err != nil {
		return nil, err
	}
	return af, af.Start()
}

// --- Path helpers shared by the primitives ---

// beginPath starts a new path unless the shape continues one.
func beginPath(c Canvas, opts RenderOptions) {
	if !opts.ContinuePath {
		c.BeginPath()
	}
}

// startAt positions the pen on the first point of a sub-shape: a move for a
// fresh path, a connecting line when continuing after a previous sub-shape.
func startAt(c Canvas, p Coord, opts RenderOptions) {
	if opts.ContinuePath && opts.EndPoint != nil {
		c.LineTo(p.X, p.Y)
		return
	}
	c.MoveTo(p.X, p.Y)
}

// finishPath closes and styles the path unless the shape continues one.
func finishPath(b *shapeBase, l *Layer, opts RenderOptions, closed bool) {
	if opts.ContinuePath {
		return
	}
	if closed {
		l.canvas.ClosePath()
	}
	b.applyStyle(l)
}

// tracePolyline emits pts as a polyline, backwards when reverse is set.
func tracePolyline(c Canvas, pts []Coord, reverse bool, opts RenderOptions) {
	if len(pts) == 0 {
		return
	}
	if reverse {
		pts = reversed(pts)
	}
	startAt(c, pts[0], opts)
	for _, p := range pts[1:] {
		c.LineTo(p.X, p.Y)
	}
}

// shouldReverse reports whether a sub-shape running start→end must be
// traced backwards to continue from opts.EndPoint.
func shouldReverse(start, end Coord, opts RenderOptions, tol float64) bool {
	if opts.EndPoint == nil {
		return false
	}
	ep := *opts.EndPoint
	return !start.EqualWithin(ep, tol) && end.EqualWithin(ep, tol)
}

func reversed(pts []Coord) []Coord {
	out := make([]Coord, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// fullTurn is one revolution in radians.
const fullTurn = 2 * math.Pi
