package vellum

import (
	"image"
	"image/color"
)

// Canvas is a drawing surface with an HTML-canvas-like path model: BeginPath
// discards the current path, Fill and Stroke paint it without clearing it.
// Every layer owns exactly one Canvas.
type Canvas interface {
	PathBuilder

	Width() int
	Height() int

	// Clear erases every pixel to transparent.
	Clear()

	BeginPath()
	Arc(cx, cy, r, start, end float64, counterClockwise bool)
	ClosePath()

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)

	Stroke()
	Fill()

	// DrawCanvas composites src onto this canvas with its top-left corner at
	// (x, y). Backends may ignore sources of a foreign type.
	DrawCanvas(src Canvas, x, y float64)
}

// PathBuilder is the segment-emitting subset of Canvas.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
}

// Element is the host surface a Scene is mounted on. It manufactures the
// canvases backing the scene's layers.
type Element interface {
	NewCanvas(width, height int) Canvas
}

// Snapshotter is implemented by canvases that can read back their pixels.
type Snapshotter interface {
	Snapshot() image.Image
}

// AppendArc emits an arc into p as cubic segments. When hasCurrent is true
// the arc is joined to the current point with a straight line, otherwise a
// new sub-path starts at the arc's first point.
func AppendArc(p PathBuilder, hasCurrent bool, cx, cy, r, start, end float64, counterClockwise bool) {
	first, segs := ArcToCubics(cx, cy, r, start, end, counterClockwise)
	if hasCurrent {
		p.LineTo(first.X, first.Y)
	} else {
		p.MoveTo(first.X, first.Y)
	}
	for _, s := range segs {
		p.CubicTo(s.C1.X, s.C1.Y, s.C2.X, s.C2.Y, s.End.X, s.End.Y)
	}
}
