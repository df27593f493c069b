package vellum

import (
	"math"
	"time"
)

// Polygon is a closed outline. Rectangle, Square and Triangle are polygons
// with construction constraints; Kind tells them apart.
type Polygon struct {
	shapeBase
	coords []Coord
}

var _ Shape = (*Polygon)(nil)

func newPolygon(kind ShapeKind, coords []Coord) *Polygon {
	p := &Polygon{coords: append([]Coord(nil), coords...)}
	p.init(p, kind)
	return p
}

// NewPolygon returns a polygon through at least three coordinates.
func NewPolygon(coords []Coord) (*Polygon, error) {
	if len(coords) < 3 {
		return nil, validationError("NewPolygon", "a polygon needs at least 3 coordinates, got %d", len(coords))
	}
	return newPolygon(ShapePolygon, coords), nil
}

// NewTriangle returns a triangle through exactly three coordinates.
func NewTriangle(coords []Coord) (*Polygon, error) {
	if err := validateTriangle("NewTriangle", coords); err != nil {
		return nil, err
	}
	return newPolygon(ShapeTriangle, coords), nil
}

// NewRectangle returns a rectangle from three coordinates A, B, C where the
// angle at B is a right angle. The fourth corner A+C-B is synthesized. A
// fourth coordinate may be passed if it matches that corner.
func NewRectangle(coords []Coord) (*Polygon, error) {
	full, err := completeRectangle("NewRectangle", coords, false)
	if err != nil {
		return nil, err
	}
	return newPolygon(ShapeRectangle, full), nil
}

// NewSquare is NewRectangle with the additional constraint that both legs
// from B have equal length.
func NewSquare(coords []Coord) (*Polygon, error) {
	full, err := completeRectangle("NewSquare", coords, true)
	if err != nil {
		return nil, err
	}
	return newPolygon(ShapeSquare, full), nil
}

func validateTriangle(op string, coords []Coord) error {
	if len(coords) != 3 {
		return validationError(op, "a triangle needs exactly 3 coordinates, got %d", len(coords))
	}
	a, b, c := coords[0], coords[1], coords[2]
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if math.Abs(cross) <= EqualityAllowedError {
		return validationError(op, "triangle coordinates are collinear")
	}
	return nil
}

func completeRectangle(op string, coords []Coord, square bool) ([]Coord, error) {
	if len(coords) != 3 && len(coords) != 4 {
		return nil, validationError(op, "expected 3 or 4 coordinates, got %d", len(coords))
	}
	a, b, c := coords[0], coords[1], coords[2]
	la, lc := Distance(b, a), Distance(b, c)
	if la <= EqualityAllowedError || lc <= EqualityAllowedError {
		return nil, validationError(op, "degenerate side")
	}
	cos := ((a.X-b.X)*(c.X-b.X) + (a.Y-b.Y)*(c.Y-b.Y)) / (la * lc)
	if math.Abs(cos) > EqualityAllowedError {
		return nil, validationError(op, "angle at %v is %.12g°, want 90°", b, math.Acos(cos)*180/math.Pi)
	}
	if square && math.Abs(la-lc) > EqualityAllowedError*math.Max(la, lc) {
		return nil, validationError(op, "legs differ: %g and %g", la, lc)
	}
	d := Coord{X: a.X + c.X - b.X, Y: a.Y + c.Y - b.Y, Z: a.Z + c.Z - b.Z}
	if len(coords) == 4 && !coords[3].EqualWithin(d, EqualityAllowedError*math.Max(1, math.Max(la, lc))) {
		return nil, validationError(op, "fourth coordinate %v does not complete the rectangle, want %v", coords[3], d)
	}
	return []Coord{a, b, c, d}, nil
}

func (p *Polygon) validate(op string, coords []Coord) error {
	switch p.kind {
	case ShapeTriangle:
		return validateTriangle(op, coords)
	case ShapeRectangle, ShapeSquare:
		_, err := completeRectangle(op, coords, p.kind == ShapeSquare)
		return err
	}
	if len(coords) < 3 {
		return validationError(op, "a polygon needs at least 3 coordinates, got %d", len(coords))
	}
	return nil
}

// Coordinates returns a copy of the vertices.
func (p *Polygon) Coordinates() []Coord { return ProcessCoordinates(p.coords, nil, false) }

// CentreCoordinates returns the mean of the vertices.
func (p *Polygon) CentreCoordinates() Coord { return Centre(p.coords) }

// RenderingCoordinates returns the vertices in l's pixel space.
func (p *Polygon) RenderingCoordinates(l *Layer) []Coord { return p.process(p.coords, l) }

func (p *Polygon) coordRefs() []*Coord { return refsOf(p.coords) }

func (p *Polygon) closedOutline() bool { return true }

// outline is the closed ring: the first vertex is repeated at the end.
func (p *Polygon) outline(l *Layer) []Coord {
	pts := p.RenderingCoordinates(l)
	return append(pts, pts[0])
}

// Move animates the vertices to targets. Constrained kinds reject targets
// that break their constraint.
func (p *Polygon) Move(d time.Duration, targets []Coord, done func()) (*AnimationFrame, error) {
	if len(targets) == len(p.coords) {
		if err := p.validate("Polygon.Move", targets); err != nil {
			return nil, err
		}
	}
	return p.moveRefs(d, p.coordRefs(), targets, done)
}

// Render traces and closes the outline.
func (p *Polygon) Render(l *Layer, opts RenderOptions) {
	cv := l.canvas
	beginPath(cv, opts)
	if opts.ContinuePath {
		ring := p.outline(l)
		tracePolyline(cv, ring, false, opts)
		return
	}
	tracePolyline(cv, p.RenderingCoordinates(l), false, opts)
	finishPath(&p.shapeBase, l, opts, true)
}

// IsColliding reports whether (x, y) is inside the polygon or on its
// outline.
func (p *Polygon) IsColliding(x, y float64) bool {
	at, l := p.toLayerSpace(x, y)
	return PointInPolygon(at, p.RenderingCoordinates(l), p.tolerance())
}
