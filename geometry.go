package vellum

import "math"

// Distance returns the planar distance between a and b. Z is ignored.
func Distance(a, b Coord) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// AngleAt returns the angle in radians at vertex between the rays towards a
// and b, in [0, π].
func AngleAt(vertex, a, b Coord) float64 {
	ax, ay := a.X-vertex.X, a.Y-vertex.Y
	bx, by := b.X-vertex.X, b.Y-vertex.Y
	la := math.Hypot(ax, ay)
	lb := math.Hypot(bx, by)
	if la == 0 || lb == 0 {
		return 0
	}
	cos := (ax*bx + ay*by) / (la * lb)
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// Direction returns the angle in radians of the vector from a to b.
func Direction(a, b Coord) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// FloatEqual reports whether a and b differ by at most tolerance.
func FloatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// SegmentDistance returns the shortest planar distance from p to the
// segment a-b.
func SegmentDistance(p, a, b Coord) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// PointOnSegment reports whether p lies on segment a-b within tolerance.
func PointOnSegment(p, a, b Coord, tolerance float64) bool {
	return SegmentDistance(p, a, b) <= tolerance
}

// PointOnPolyline reports whether p lies within tolerance of any segment of
// the open polyline pts.
func PointOnPolyline(p Coord, pts []Coord, tolerance float64) bool {
	switch len(pts) {
	case 0:
		return false
	case 1:
		return Distance(p, pts[0]) <= tolerance
	}
	for i := 1; i < len(pts); i++ {
		if PointOnSegment(p, pts[i-1], pts[i], tolerance) {
			return true
		}
	}
	return false
}

// PointInPolygon reports whether p lies inside the polygon using ray
// casting (even-odd rule). Points within tolerance of the outline count as
// inside. The polygon is implicitly closed.
func PointInPolygon(p Coord, poly []Coord, tolerance float64) bool {
	n := len(poly)
	if n == 0 {
		return false
	}
	if n < 3 {
		return PointOnPolyline(p, poly, tolerance)
	}
	for i := 0; i < n; i++ {
		if PointOnSegment(p, poly[i], poly[(i+1)%n], tolerance) {
			return true
		}
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// Centre returns the arithmetic mean of pts on every axis. An empty slice
// yields the zero coordinate.
func Centre(pts []Coord) Coord {
	if len(pts) == 0 {
		return Coord{}
	}
	var c Coord
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(pts))
	return Coord{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// CubicPoint evaluates the cubic Bézier p0..p3 at t in [0, 1].
func CubicPoint(p0, p1, p2, p3 Coord, t float64) Coord {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Coord{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		Z: a*p0.Z + b*p1.Z + c*p2.Z + d*p3.Z,
	}
}

// ArcPoint returns the point at angle on the circle (cx, cy, r).
func ArcPoint(cx, cy, r, angle float64) Coord {
	sin, cos := math.Sincos(angle)
	return Coord{X: cx + r*cos, Y: cy + r*sin}
}

// CubicSegment is one cubic Bézier piece of an approximated arc.
type CubicSegment struct {
	C1, C2, End Coord
}

// ArcToCubics approximates the arc (cx, cy, r) from start to end as cubic
// Bézier segments of at most a quarter turn each. Positive angles turn
// clockwise on screen (Y down); counterClockwise reverses the sweep. The
// returned coordinate is the arc's start point.
func ArcToCubics(cx, cy, r, start, end float64, counterClockwise bool) (Coord, []CubicSegment) {
	const twoPi = 2 * math.Pi
	sweep := end - start
	if counterClockwise {
		if sweep > 0 {
			sweep = math.Mod(sweep, twoPi) - twoPi
		}
		if sweep < -twoPi {
			sweep = -twoPi
		}
	} else {
		if sweep < 0 {
			sweep = math.Mod(sweep, twoPi) + twoPi
		}
		if sweep > twoPi {
			sweep = twoPi
		}
	}
	first := ArcPoint(cx, cy, r, start)
	if sweep == 0 || r == 0 {
		return first, nil
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	segs := make([]CubicSegment, 0, n)
	a1 := start
	for i := 0; i < n; i++ {
		a2 := a1 + step
		sin1, cos1 := math.Sincos(a1)
		sin2, cos2 := math.Sincos(a2)
		segs = append(segs, CubicSegment{
			C1:  Coord{X: cx + r*(cos1-k*sin1), Y: cy + r*(sin1+k*cos1)},
			C2:  Coord{X: cx + r*(cos2+k*sin2), Y: cy + r*(sin2-k*cos2)},
			End: Coord{X: cx + r*cos2, Y: cy + r*sin2},
		})
		a1 = a2
	}
	return first, segs
}

// TessellateArc samples the arc into points, at least one per step
// radians, including both endpoints.
func TessellateArc(cx, cy, r, start, end float64, counterClockwise bool, step float64) []Coord {
	first, segs := ArcToCubics(cx, cy, r, start, end, counterClockwise)
	pts := []Coord{first}
	prev := first
	for _, s := range segs {
		pts = append(pts, TessellateCubic(prev, s.C1, s.C2, s.End, step*r)[1:]...)
		prev = s.End
	}
	return pts
}

// TessellateCubic flattens a cubic Bézier into a polyline whose segments are
// at most roughly maxLen long. The result always holds both endpoints.
func TessellateCubic(p0, p1, p2, p3 Coord, maxLen float64) []Coord {
	approx := Distance(p0, p1) + Distance(p1, p2) + Distance(p2, p3)
	n := 1
	if maxLen > 0 {
		n = int(math.Ceil(approx / maxLen))
	}
	n = max(1, min(n, 1024))
	pts := make([]Coord, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, CubicPoint(p0, p1, p2, p3, float64(i)/float64(n)))
	}
	return pts
}
