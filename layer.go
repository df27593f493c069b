package vellum

import "github.com/google/uuid"

// Layer is an independent drawing surface inside a scene. A layer may be
// smaller than its scene and offset within it; coordinates of the shapes it
// holds are relative to its top-left corner.
type Layer struct {
	id     uuid.UUID
	scene  *Scene
	width  int
	height int
	left   float64
	top    float64
	canvas Canvas
	shapes []Shape
}

type layerOptions struct {
	width, height int
	left, top     float64
	offsetSet     bool
}

// LayerOption configures NewLayer.
type LayerOption func(*layerOptions)

// WithSize sets the layer's pixel size. The default is the scene's size.
func WithSize(width, height int) LayerOption {
	return func(o *layerOptions) {
		o.width = width
		o.height = height
	}
}

// WithOffset places the layer's top-left corner at (left, top) in scene
// coordinates. Layers smaller than their scene are centred by default.
func WithOffset(left, top float64) LayerOption {
	return func(o *layerOptions) {
		o.left = left
		o.top = top
		o.offsetSet = true
	}
}

// ID returns the layer's id, used to key per-layer render caches.
func (l *Layer) ID() uuid.UUID { return l.id }

// Width returns the layer width in pixels.
func (l *Layer) Width() int { return l.width }

// Height returns the layer height in pixels.
func (l *Layer) Height() int { return l.height }

// Offset returns the position of the layer's top-left corner in the scene.
func (l *Layer) Offset() (left, top float64) { return l.left, l.top }

// Bounds returns the layer's rectangle in scene coordinates.
func (l *Layer) Bounds() Rect {
	return Rect{X: l.left, Y: l.top, Width: float64(l.width), Height: float64(l.height)}
}

// Canvas returns the layer's drawing surface.
func (l *Layer) Canvas() Canvas { return l.canvas }

// Scene returns the owning scene.
func (l *Layer) Scene() *Scene { return l.scene }

// Shapes returns a copy of the shapes assigned to the layer, in render
// order.
func (l *Layer) Shapes() []Shape { return append([]Shape(nil), l.shapes...) }

// Len returns the number of shapes assigned to the layer.
func (l *Layer) Len() int { return len(l.shapes) }

// Contains reports whether s is directly assigned to the layer.
func (l *Layer) Contains(s Shape) bool {
	return l.indexOf(s) >= 0
}

func (l *Layer) indexOf(s Shape) int {
	for i, x := range l.shapes {
		if x == s {
			return i
		}
	}
	return -1
}

func (l *Layer) remove(s Shape) bool {
	i := l.indexOf(s)
	if i < 0 {
		return false
	}
	l.shapes = append(l.shapes[:i], l.shapes[i+1:]...)
	return true
}

// redraw clears the canvas and renders every assigned shape. It returns the
// number of shapes drawn.
func (l *Layer) redraw() int {
	l.canvas.Clear()
	for _, s := range l.shapes {
		s.Render(l, RenderOptions{})
	}
	return len(l.shapes)
}
