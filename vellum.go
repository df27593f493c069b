package vellum

import (
	"fmt"
	"math"
)

// EqualityAllowedError is the tolerance used when comparing coordinates,
// angles and lengths for equality.
const EqualityAllowedError = 1e-10

// Coord is a single shape coordinate. Z is optional and defaults to zero.
// The coordinate system has its origin at the top-left, with Y increasing
// downward.
type Coord struct {
	X, Y, Z float64
}

// C is shorthand for a two-dimensional Coord.
func C(x, y float64) Coord {
	return Coord{X: x, Y: y}
}

// Equal reports whether c and o match within EqualityAllowedError on every
// axis.
func (c Coord) Equal(o Coord) bool {
	return c.EqualWithin(o, EqualityAllowedError)
}

// EqualWithin reports whether c and o match within tolerance on every axis.
func (c Coord) EqualWithin(o Coord, tolerance float64) bool {
	return math.Abs(c.X-o.X) <= tolerance &&
		math.Abs(c.Y-o.Y) <= tolerance &&
		math.Abs(c.Z-o.Z) <= tolerance
}

// Add returns c translated by (dx, dy).
func (c Coord) Add(dx, dy float64) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy, Z: c.Z}
}

// Lerp interpolates between c and o by t in [0, 1].
func (c Coord) Lerp(o Coord, t float64) Coord {
	return Coord{
		X: c.X + (o.X-c.X)*t,
		Y: c.Y + (o.Y-c.Y)*t,
		Z: c.Z + (o.Z-c.Z)*t,
	}
}

func (c Coord) String() string {
	if c.Z != 0 {
		return fmt.Sprintf("[%g %g %g]", c.X, c.Y, c.Z)
	}
	return fmt.Sprintf("[%g %g]", c.X, c.Y)
}

// ParseCoords validates raw numeric coordinate input. Every entry must hold
// exactly two (x, y) or three (x, y, z) finite numbers.
func ParseCoords(raw [][]float64) ([]Coord, error) {
	out := make([]Coord, len(raw))
	for i, r := range raw {
		c, err := ParseCoord(r)
		if err != nil {
			return nil, validationError("ParseCoords", "coordinate %d: %v", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// ParseCoord validates a single raw coordinate.
func ParseCoord(raw []float64) (Coord, error) {
	if len(raw) != 2 && len(raw) != 3 {
		return Coord{}, validationError("ParseCoord", "expected 2 or 3 values, got %d", len(raw))
	}
	for _, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Coord{}, validationError("ParseCoord", "non-finite value %v", v)
		}
	}
	c := Coord{X: raw[0], Y: raw[1]}
	if len(raw) == 3 {
		c.Z = raw[2]
	}
	return c, nil
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ShapeKind tags the concrete variant behind a Shape.
type ShapeKind uint8

const (
	ShapePoint ShapeKind = iota
	ShapeLine
	ShapePolygon
	ShapeRectangle
	ShapeSquare
	ShapeTriangle
	ShapeCircle
	ShapeArc
	ShapeBezierCurve
	ShapeRelation
	ShapeGroup
	ShapeGroupShape
)

var shapeKindNames = [...]string{
	ShapePoint:       "point",
	ShapeLine:        "line",
	ShapePolygon:     "polygon",
	ShapeRectangle:   "rectangle",
	ShapeSquare:      "square",
	ShapeTriangle:    "triangle",
	ShapeCircle:      "circle",
	ShapeArc:         "arc",
	ShapeBezierCurve: "bezier-curve",
	ShapeRelation:    "relation",
	ShapeGroup:       "group",
	ShapeGroupShape:  "group-shape",
}

func (k ShapeKind) String() string {
	if int(k) < len(shapeKindNames) {
		return shapeKindNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", k)
}

// IsPolygonal reports whether the kind is a polygon or one of its
// constrained variants.
func (k ShapeKind) IsPolygonal() bool {
	switch k {
	case ShapePolygon, ShapeRectangle, ShapeSquare, ShapeTriangle:
		return true
	}
	return false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
