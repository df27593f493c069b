// Package ggcanvas is a headless vellum backend rasterizing on the CPU with
// gogpu/gg. It needs no window or GPU, which makes it the backend for
// tests, servers and the vellum-snapshot tool.
//
//	r := vellum.NewRenderer(vellum.Config{})
//	scene, _ := r.NewScene(vellum.SceneConfig{Element: ggcanvas.Element{}, Width: 200, Height: 100})
package ggcanvas

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/phanxgames/vellum"
)

// Element manufactures gg-backed canvases.
type Element struct{}

// NewCanvas returns a transparent canvas of the given size.
func (Element) NewCanvas(width, height int) vellum.Canvas {
	return New(width, height)
}

// Canvas implements vellum.Canvas over a gg.Context.
type Canvas struct {
	ctx        *gg.Context
	hasCurrent bool
	stroke     gg.RGBA
	fill       gg.RGBA
}

var (
	_ vellum.Canvas      = (*Canvas)(nil)
	_ vellum.Snapshotter = (*Canvas)(nil)
)

// New returns a transparent canvas.
func New(width, height int) *Canvas {
	c := &Canvas{
		ctx:    gg.NewContext(width, height),
		stroke: gg.FromColor(color.Black),
		fill:   gg.FromColor(color.Black),
	}
	c.ctx.SetFillRule(gg.FillRuleNonZero)
	return c
}

// Context exposes the underlying gg context for style functions that draw
// directly.
func (c *Canvas) Context() *gg.Context { return c.ctx }

func (c *Canvas) Width() int  { return c.ctx.Width() }
func (c *Canvas) Height() int { return c.ctx.Height() }

func (c *Canvas) Clear() { c.ctx.Clear() }

func (c *Canvas) BeginPath() {
	c.ctx.ClearPath()
	c.hasCurrent = false
}

func (c *Canvas) MoveTo(x, y float64) {
	c.ctx.MoveTo(x, y)
	c.hasCurrent = true
}

func (c *Canvas) LineTo(x, y float64) {
	if !c.hasCurrent {
		c.MoveTo(x, y)
		return
	}
	c.ctx.LineTo(x, y)
}

func (c *Canvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !c.hasCurrent {
		c.MoveTo(c1x, c1y)
	}
	c.ctx.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (c *Canvas) Arc(cx, cy, r, start, end float64, counterClockwise bool) {
	vellum.AppendArc(c, c.hasCurrent, cx, cy, r, start, end, counterClockwise)
}

func (c *Canvas) ClosePath() { c.ctx.ClosePath() }

func (c *Canvas) SetStrokeColor(col color.Color) { c.stroke = gg.FromColor(col) }
func (c *Canvas) SetFillColor(col color.Color)   { c.fill = gg.FromColor(col) }
func (c *Canvas) SetLineWidth(w float64)         { c.ctx.SetLineWidth(w) }

// Stroke paints the outline of the current path and keeps the path.
func (c *Canvas) Stroke() {
	c.ctx.SetStrokeBrush(gg.Solid(c.stroke))
	if err := c.ctx.StrokePreserve(); err != nil {
		vellum.Logger().Warn("ggcanvas: stroke", "error", err)
	}
}

// Fill paints the interior of the current path and keeps the path.
func (c *Canvas) Fill() {
	c.ctx.SetFillBrush(gg.Solid(c.fill))
	if err := c.ctx.FillPreserve(); err != nil {
		vellum.Logger().Warn("ggcanvas: fill", "error", err)
	}
}

// DrawCanvas composites src at (x, y). Sources other than *Canvas are
// drawn through their snapshot when they provide one.
func (c *Canvas) DrawCanvas(src vellum.Canvas, x, y float64) {
	var img image.Image
	switch s := src.(type) {
	case *Canvas:
		img = s.ctx.Image()
	case vellum.Snapshotter:
		img = s.Snapshot()
	default:
		return
	}
	c.ctx.DrawImage(gg.ImageBufFromImage(img), x, y)
}

// Snapshot returns the canvas pixels.
func (c *Canvas) Snapshot() image.Image { return c.ctx.Image() }

// SavePNG writes the canvas to path.
func (c *Canvas) SavePNG(path string) error { return c.ctx.SavePNG(path) }

// Close releases the context.
func (c *Canvas) Close() error { return c.ctx.Close() }
