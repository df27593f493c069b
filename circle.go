package vellum

import (
	"math"
	"time"
)

// arcStep is the angular resolution used to flatten arcs for hit testing.
const arcStep = math.Pi / 32

// Circle is a full circle around a centre.
type Circle struct {
	shapeBase
	centre Coord
	radius float64
}

var _ Shape = (*Circle)(nil)

// NewCircle returns a circle of radius r around centre.
func NewCircle(centre Coord, r float64) (*Circle, error) {
	if err := validateRadius("NewCircle", r); err != nil {
		return nil, err
	}
	c := &Circle{centre: centre, radius: r}
	c.init(c, ShapeCircle)
	return c, nil
}

func validateRadius(op string, r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return validationError(op, "radius must be positive and finite, got %v", r)
	}
	return nil
}

// Radius returns the radius in coordinate units.
func (c *Circle) Radius() float64 { return c.radius }

// Coordinates returns the centre.
func (c *Circle) Coordinates() []Coord { return []Coord{c.centre} }

// CentreCoordinates returns the centre.
func (c *Circle) CentreCoordinates() Coord { return c.centre }

// RenderingCoordinates returns the centre in l's pixel space.
func (c *Circle) RenderingCoordinates(l *Layer) []Coord {
	return []Coord{c.processOne(c.centre, l)}
}

func (c *Circle) coordRefs() []*Coord { return []*Coord{&c.centre} }

func (c *Circle) closedOutline() bool { return true }

func (c *Circle) outline(l *Layer) []Coord {
	p := c.processOne(c.centre, l)
	return TessellateArc(p.X, p.Y, scaleLength(c.radius, l, c.relative), 0, fullTurn, false, arcStep)
}

// Move animates the centre to target.
func (c *Circle) Move(d time.Duration, target Coord, done func()) (*AnimationFrame, error) {
	return c.moveRefs(d, c.coordRefs(), []Coord{target}, done)
}

// Resize animates the radius to r.
func (c *Circle) Resize(d time.Duration, r float64, done func()) (*AnimationFrame, error) {
	if err := validateRadius("Circle.Resize", r); err != nil {
		return nil, err
	}
	var ts tweenSet
	ts.add(&c.radius, r, d, c.easing)
	return c.run(d, ts.set, ts.finish, done)
}

// Render draws the circle.
func (c *Circle) Render(l *Layer, opts RenderOptions) {
	p := c.processOne(c.centre, l)
	cv := l.canvas
	beginPath(cv, opts)
	cv.Arc(p.X, p.Y, scaleLength(c.radius, l, c.relative), 0, fullTurn, false)
	finishPath(&c.shapeBase, l, opts, true)
}

// IsColliding reports whether (x, y) lies on or inside the circle.
func (c *Circle) IsColliding(x, y float64) bool {
	at, l := c.toLayerSpace(x, y)
	r := scaleLength(c.radius, l, c.relative)
	return Distance(at, c.processOne(c.centre, l)) <= r+c.tolerance()
}

// Arc is an open circular arc. Angles are in radians, clockwise on screen.
type Arc struct {
	shapeBase
	centre           Coord
	radius           float64
	start, end       float64
	counterClockwise bool
}

var _ Shape = (*Arc)(nil)

// NewArc returns the arc of radius r around centre from start to end.
func NewArc(centre Coord, r, start, end float64, counterClockwise bool) (*Arc, error) {
	if err := validateRadius("NewArc", r); err != nil {
		return nil, err
	}
	for _, v := range []float64{start, end} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, validationError("NewArc", "non-finite angle %v", v)
		}
	}
	a := &Arc{centre: centre, radius: r, start: start, end: end, counterClockwise: counterClockwise}
	a.init(a, ShapeArc)
	return a, nil
}

// Angles returns the start and end angles.
func (a *Arc) Angles() (start, end float64) { return a.start, a.end }

// Coordinates returns the centre.
func (a *Arc) Coordinates() []Coord { return []Coord{a.centre} }

// CentreCoordinates returns the centre.
func (a *Arc) CentreCoordinates() Coord { return a.centre }

// RenderingCoordinates returns the centre in l's pixel space.
func (a *Arc) RenderingCoordinates(l *Layer) []Coord {
	return []Coord{a.processOne(a.centre, l)}
}

func (a *Arc) coordRefs() []*Coord { return []*Coord{&a.centre} }

func (a *Arc) outline(l *Layer) []Coord {
	p := a.processOne(a.centre, l)
	return TessellateArc(p.X, p.Y, scaleLength(a.radius, l, a.relative), a.start, a.end, a.counterClockwise, arcStep)
}

// Sweep animates the end angle to end.
func (a *Arc) Sweep(d time.Duration, end float64, done func()) (*AnimationFrame, error) {
	var ts tweenSet
	ts.add(&a.end, end, d, a.easing)
	return a.run(d, ts.set, ts.finish, done)
}

// Render strokes the arc. Continuing a path whose end touches the arc's end
// point traces the arc backwards.
func (a *Arc) Render(l *Layer, opts RenderOptions) {
	p := a.processOne(a.centre, l)
	r := scaleLength(a.radius, l, a.relative)
	cv := l.canvas
	beginPath(cv, opts)
	first := ArcPoint(p.X, p.Y, r, a.start)
	last := ArcPoint(p.X, p.Y, r, a.end)
	if shouldReverse(first, last, opts, EqualityAllowedError) {
		cv.Arc(p.X, p.Y, r, a.end, a.start, !a.counterClockwise)
	} else {
		cv.Arc(p.X, p.Y, r, a.start, a.end, a.counterClockwise)
	}
	finishPath(&a.shapeBase, l, opts, false)
}

// IsColliding reports whether (x, y) lies on the arc.
func (a *Arc) IsColliding(x, y float64) bool {
	at, l := a.toLayerSpace(x, y)
	return PointOnPolyline(at, a.outline(l), a.tolerance())
}
