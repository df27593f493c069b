package vellum

import "time"

// Line is an open polyline through two or more coordinates.
type Line struct {
	shapeBase
	coords []Coord
}

var _ Shape = (*Line)(nil)

// NewLine returns a line through coords.
func NewLine(coords []Coord) (*Line, error) {
	if len(coords) < 2 {
		return nil, validationError("NewLine", "a line needs at least 2 coordinates, got %d", len(coords))
	}
	l := &Line{coords: append([]Coord(nil), coords...)}
	l.init(l, ShapeLine)
	return l, nil
}

// Coordinates returns a copy of the line's coordinates.
func (s *Line) Coordinates() []Coord { return ProcessCoordinates(s.coords, nil, false) }

// CentreCoordinates returns the mean of the line's coordinates.
func (s *Line) CentreCoordinates() Coord { return Centre(s.coords) }

// RenderingCoordinates returns the line in l's pixel space.
func (s *Line) RenderingCoordinates(l *Layer) []Coord { return s.process(s.coords, l) }

func (s *Line) coordRefs() []*Coord { return refsOf(s.coords) }

func (s *Line) outline(l *Layer) []Coord { return s.RenderingCoordinates(l) }

// Move animates every coordinate to targets, which must match in length.
func (s *Line) Move(d time.Duration, targets []Coord, done func()) (*AnimationFrame, error) {
	return s.moveRefs(d, s.coordRefs(), targets, done)
}

// Render strokes the polyline.
func (s *Line) Render(l *Layer, opts RenderOptions) {
	pts := s.RenderingCoordinates(l)
	beginPath(l.canvas, opts)
	tracePolyline(l.canvas, pts, shouldReverse(pts[0], pts[len(pts)-1], opts, EqualityAllowedError), opts)
	finishPath(&s.shapeBase, l, opts, false)
}

// IsColliding reports whether (x, y) lies on one of the segments.
func (s *Line) IsColliding(x, y float64) bool {
	at, l := s.toLayerSpace(x, y)
	return PointOnPolyline(at, s.RenderingCoordinates(l), s.tolerance())
}

func refsOf(coords []Coord) []*Coord {
	out := make([]*Coord, len(coords))
	for i := range coords {
		out[i] = &coords[i]
	}
	return out
}
