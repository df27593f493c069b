package vellum

import (
	"time"

	"github.com/google/uuid"
)

// PointRadius is the radius in pixels of a point drawn without a face.
const PointRadius = 2.0

// Point is a single coordinate. A point may reference a Circle by id as its
// face; the face's radius and style are then used to draw and hit-test the
// point. The reference is weak: a face that left its scene is ignored.
type Point struct {
	shapeBase
	coord Coord
	face  uuid.UUID
}

var _ Shape = (*Point)(nil)

// NewPoint returns a point at c.
func NewPoint(c Coord) *Point {
	p := &Point{coord: c}
	p.init(p, ShapePoint)
	return p
}

// SetFace makes the circle registered under id the point's face. The zero
// UUID clears it.
func (p *Point) SetFace(id uuid.UUID) {
	p.face = id
	p.touch()
}

// Face returns the point's face, if it resolves.
func (p *Point) Face() (*Circle, bool) {
	if p.face == uuid.Nil || p.scene == nil {
		return nil, false
	}
	s, ok := p.scene.Lookup(p.face)
	if !ok {
		return nil, false
	}
	c, ok := s.(*Circle)
	return c, ok
}

// Coordinates returns the point's coordinate.
func (p *Point) Coordinates() []Coord { return []Coord{p.coord} }

// CentreCoordinates returns the point's coordinate.
func (p *Point) CentreCoordinates() Coord { return p.coord }

// RenderingCoordinates returns the point in l's pixel space.
func (p *Point) RenderingCoordinates(l *Layer) []Coord {
	return []Coord{p.processOne(p.coord, l)}
}

func (p *Point) coordRefs() []*Coord { return []*Coord{&p.coord} }

func (p *Point) outline(l *Layer) []Coord { return p.RenderingCoordinates(l) }

// Move animates the point to target.
func (p *Point) Move(d time.Duration, target Coord, done func()) (*AnimationFrame, error) {
	return p.moveRefs(d, p.coordRefs(), []Coord{target}, done)
}

func (p *Point) radius(l *Layer) (float64, *Style) {
	if face, ok := p.Face(); ok {
		return scaleLength(face.radius, l, face.relative), face.style
	}
	return PointRadius, p.style
}

// Render draws the point as a small disc, or as its face.
func (p *Point) Render(l *Layer, opts RenderOptions) {
	c := p.processOne(p.coord, l)
	r, st := p.radius(l)
	cv := l.canvas
	beginPath(cv, opts)
	cv.Arc(c.X, c.Y, r, 0, fullTurn, false)
	if !opts.ContinuePath {
		cv.ClosePath()
		if p.transitional != nil {
			p.applyStyle(l)
		} else {
			st.Set(l, p.state)
		}
	}
}

// IsColliding reports whether (x, y) lies within the point's radius.
func (p *Point) IsColliding(x, y float64) bool {
	at, l := p.toLayerSpace(x, y)
	r, _ := p.radius(l)
	return Distance(at, p.processOne(p.coord, l)) <= r+p.tolerance()
}
