package vellum

import (
	"fmt"
	"image/color"
	"testing"
	"time"
)

// recordCanvas is a Canvas that records every call as a short string.
type recordCanvas struct {
	w, h  int
	ops   []string
	draws []string
}

func (c *recordCanvas) record(format string, args ...any) {
	c.ops = append(c.ops, fmt.Sprintf(format, args...))
}

func (c *recordCanvas) Width() int  { return c.w }
func (c *recordCanvas) Height() int { return c.h }
func (c *recordCanvas) Clear()      { c.record("clear") }
func (c *recordCanvas) BeginPath()  { c.record("begin") }
func (c *recordCanvas) MoveTo(x, y float64) {
	c.record("move %g %g", x, y)
}
func (c *recordCanvas) LineTo(x, y float64) {
	c.record("line %g %g", x, y)
}
func (c *recordCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.record("cubic %g %g", x, y)
}
func (c *recordCanvas) Arc(cx, cy, r, start, end float64, ccw bool) {
	c.record("arc %g %g %g", cx, cy, r)
}
func (c *recordCanvas) ClosePath()                 { c.record("close") }
func (c *recordCanvas) SetStrokeColor(color.Color) {}
func (c *recordCanvas) SetFillColor(color.Color)   {}
func (c *recordCanvas) SetLineWidth(w float64)     { c.record("width %g", w) }
func (c *recordCanvas) Stroke()                    { c.record("stroke") }
func (c *recordCanvas) Fill()                      { c.record("fill") }
func (c *recordCanvas) DrawCanvas(src Canvas, x, y float64) {
	c.draws = append(c.draws, fmt.Sprintf("%g %g", x, y))
}

func (c *recordCanvas) count(op string) int {
	n := 0
	for _, o := range c.ops {
		if o == op {
			n++
		}
	}
	return n
}

func (c *recordCanvas) reset() { c.ops = c.ops[:0] }

// recordElement hands out recordCanvas values and remembers them.
type recordElement struct {
	canvases []*recordCanvas
}

func (e *recordElement) NewCanvas(w, h int) Canvas {
	c := &recordCanvas{w: w, h: h}
	e.canvases = append(e.canvases, c)
	return c
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// testEnv bundles a renderer with a fake clock and a recording element.
type testEnv struct {
	r     *Renderer
	s     *Scene
	clock *fakeClock
	el    *recordElement
}

func newTestEnv(t *testing.T, w, h int) *testEnv {
	t.Helper()
	return newTestEnvConfig(t, Config{}, SceneConfig{Width: w, Height: h})
}

func newTestEnvConfig(t *testing.T, cfg Config, sc SceneConfig) *testEnv {
	t.Helper()
	r := NewRenderer(cfg)
	clock := &fakeClock{now: time.Unix(1000, 0)}
	r.SetClock(clock)
	el := &recordElement{}
	sc.Element = el
	s, err := r.NewScene(sc)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return &testEnv{r: r, s: s, clock: clock, el: el}
}

// step advances the clock by d and runs one update.
func (e *testEnv) step(d time.Duration) {
	e.clock.advance(d)
	e.r.Step()
}

func (e *testEnv) add(t *testing.T, sh Shape) *Layer {
	t.Helper()
	l, err := e.s.AddShape(sh, nil)
	if err != nil {
		t.Fatalf("AddShape: %v", err)
	}
	return l
}

func canvasOf(l *Layer) *recordCanvas { return l.canvas.(*recordCanvas) }

func mustCircle(t *testing.T, x, y, r float64) *Circle {
	t.Helper()
	c, err := NewCircle(C(x, y), r)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	return c
}

func mustLine(t *testing.T, coords ...Coord) *Line {
	t.Helper()
	l, err := NewLine(coords)
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	return l
}

func mustRect(t *testing.T, coords ...Coord) *Polygon {
	t.Helper()
	p, err := NewRectangle(coords)
	if err != nil {
		t.Fatalf("NewRectangle: %v", err)
	}
	return p
}

// approx compares with float32 slack, the precision gween tweens run at.
func approx(a, b float64) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}
