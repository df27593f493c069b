package vellum

import "fmt"

// ProcessCoordinates returns a shallow copy of coords. When relative is set
// and a layer is supplied, x and y are read as percentages (0–100) of the
// layer's pixel width and height.
func ProcessCoordinates(coords []Coord, l *Layer, relative bool) []Coord {
	out := make([]Coord, len(coords))
	for i, c := range coords {
		out[i] = ProcessCoordinate(c, l, relative)
	}
	return out
}

// ProcessCoordinate is the single-coordinate form of ProcessCoordinates.
func ProcessCoordinate(c Coord, l *Layer, relative bool) Coord {
	if !relative || l == nil {
		return c
	}
	return Coord{
		X: c.X * float64(l.width) / 100,
		Y: c.Y * float64(l.height) / 100,
		Z: c.Z,
	}
}

// scaleLength converts a length (radius, tolerance) into layer pixels. Under
// relative rendering lengths are percentages of the layer's smaller side.
func scaleLength(v float64, l *Layer, relative bool) float64 {
	if !relative || l == nil {
		return v
	}
	return v * float64(min(l.width, l.height)) / 100
}

// ResolveCoords flattens mixed coordinate input into a validated slice.
// Accepted items are Coord, []Coord, []float64 (one coordinate),
// [][]float64, and shapes (their current coordinates).
func ResolveCoords(items ...any) ([]Coord, error) {
	var out []Coord
	for i, it := range items {
		switch v := it.(type) {
		case Coord:
			out = append(out, v)
		case []Coord:
			out = append(out, v...)
		case []float64:
			c, err := ParseCoord(v)
			if err != nil {
				return nil, validationError("ResolveCoords", "item %d: %v", i, err)
			}
			out = append(out, c)
		case [][]float64:
			cs, err := ParseCoords(v)
			if err != nil {
				return nil, validationError("ResolveCoords", "item %d: %v", i, err)
			}
			out = append(out, cs...)
		case Coordinated:
			out = append(out, v.Coordinates()...)
		default:
			return nil, validationError("ResolveCoords", "item %d: unsupported type %s", i, fmt.Sprintf("%T", it))
		}
	}
	return out, nil
}
