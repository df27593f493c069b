package vellum

import (
	"fmt"
	"time"
)

// bezierFlatness is the longest segment, in pixels, of a flattened curve.
const bezierFlatness = 1.5

// BezierCurve is a chain of cubic Bézier segments: a start coordinate
// followed by (control, control, end) triples.
type BezierCurve struct {
	shapeBase
	coords []Coord
}

var _ Shape = (*BezierCurve)(nil)

// NewBezierCurve returns a curve from 1+3k coordinates, k >= 1.
func NewBezierCurve(coords []Coord) (*BezierCurve, error) {
	if len(coords) < 4 || (len(coords)-1)%3 != 0 {
		return nil, validationError("NewBezierCurve", "expected 1+3k coordinates, got %d", len(coords))
	}
	b := &BezierCurve{coords: append([]Coord(nil), coords...)}
	b.init(b, ShapeBezierCurve)
	return b, nil
}

// Coordinates returns a copy of the start, control and end coordinates.
func (b *BezierCurve) Coordinates() []Coord { return ProcessCoordinates(b.coords, nil, false) }

// CentreCoordinates returns the mean of every coordinate.
func (b *BezierCurve) CentreCoordinates() Coord { return Centre(b.coords) }

// RenderingCoordinates returns the coordinates in l's pixel space.
func (b *BezierCurve) RenderingCoordinates(l *Layer) []Coord { return b.process(b.coords, l) }

func (b *BezierCurve) coordRefs() []*Coord { return refsOf(b.coords) }

type tessellation struct {
	version uint64
	pts     []Coord
}

// outline flattens the curve. Results are cached per layer and rendering
// mode and recomputed after the curve changes.
func (b *BezierCurve) outline(l *Layer) []Coord {
	key := "bezier"
	if l != nil {
		key = fmt.Sprintf("bezier:%s:%t", l.id, b.relative)
	}
	if v, ok := b.cache.Get(key); ok {
		if t := v.(tessellation); t.version == b.version {
			return t.pts
		}
	}
	c := b.RenderingCoordinates(l)
	pts := []Coord{c[0]}
	for i := 1; i+2 < len(c); i += 3 {
		pts = append(pts, TessellateCubic(c[i-1], c[i], c[i+1], c[i+2], bezierFlatness)[1:]...)
	}
	b.cache.Set(key, tessellation{version: b.version, pts: pts})
	return pts
}

// Move animates every coordinate to targets.
func (b *BezierCurve) Move(d time.Duration, targets []Coord, done func()) (*AnimationFrame, error) {
	if len(targets) != len(b.coords) {
		return nil, validationError("BezierCurve.Move", "expected %d coordinates, got %d", len(b.coords), len(targets))
	}
	return b.moveRefs(d, b.coordRefs(), targets, done)
}

// Render emits the cubic segments.
func (b *BezierCurve) Render(l *Layer, opts RenderOptions) {
	c := b.RenderingCoordinates(l)
	if shouldReverse(c[0], c[len(c)-1], opts, EqualityAllowedError) {
		c = reversed(c)
	}
	cv := l.canvas
	beginPath(cv, opts)
	startAt(cv, c[0], opts)
	for i := 1; i+2 < len(c); i += 3 {
		cv.CubicTo(c[i].X, c[i].Y, c[i+1].X, c[i+1].Y, c[i+2].X, c[i+2].Y)
	}
	finishPath(&b.shapeBase, l, opts, false)
}

// IsColliding reports whether (x, y) lies on the curve within the
// collision tolerance.
func (b *BezierCurve) IsColliding(x, y float64) bool {
	at, l := b.toLayerSpace(x, y)
	return PointOnPolyline(at, b.outline(l), b.tolerance())
}
