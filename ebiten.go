package vellum

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// EbitenElement backs layers with *ebiten.Image canvases.
type EbitenElement struct {
	// AntiAlias enables anti-aliased path rendering.
	AntiAlias bool
}

// NewCanvas returns an ebiten-backed canvas.
func (e EbitenElement) NewCanvas(width, height int) Canvas {
	return &EbitenCanvas{
		img:       ebiten.NewImage(width, height),
		path:      &vector.Path{},
		lineWidth: 1,
		stroke:    color.Black,
		fill:      color.Black,
		antiAlias: e.AntiAlias,
	}
}

// EbitenCanvas draws paths with ebiten's vector package.
type EbitenCanvas struct {
	img        *ebiten.Image
	path       *vector.Path
	hasCurrent bool
	lineWidth  float64
	stroke     color.Color
	fill       color.Color
	antiAlias  bool
	vertices   []ebiten.Vertex
	indices    []uint16
}

// Image returns the backing image.
func (c *EbitenCanvas) Image() *ebiten.Image { return c.img }

func (c *EbitenCanvas) Width() int  { return c.img.Bounds().Dx() }
func (c *EbitenCanvas) Height() int { return c.img.Bounds().Dy() }

func (c *EbitenCanvas) Clear() { c.img.Clear() }

func (c *EbitenCanvas) BeginPath() {
	c.path = &vector.Path{}
	c.hasCurrent = false
}

func (c *EbitenCanvas) MoveTo(x, y float64) {
	c.path.MoveTo(float32(x), float32(y))
	c.hasCurrent = true
}

func (c *EbitenCanvas) LineTo(x, y float64) {
	if !c.hasCurrent {
		c.MoveTo(x, y)
		return
	}
	c.path.LineTo(float32(x), float32(y))
}

func (c *EbitenCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !c.hasCurrent {
		c.MoveTo(c1x, c1y)
	}
	c.path.CubicTo(float32(c1x), float32(c1y), float32(c2x), float32(c2y), float32(x), float32(y))
}

func (c *EbitenCanvas) Arc(cx, cy, r, start, end float64, counterClockwise bool) {
	AppendArc(c, c.hasCurrent, cx, cy, r, start, end, counterClockwise)
}

func (c *EbitenCanvas) ClosePath() { c.path.Close() }

func (c *EbitenCanvas) SetStrokeColor(col color.Color) { c.stroke = col }
func (c *EbitenCanvas) SetFillColor(col color.Color)   { c.fill = col }
func (c *EbitenCanvas) SetLineWidth(w float64)         { c.lineWidth = w }

// Stroke paints the outline of the current path.
func (c *EbitenCanvas) Stroke() {
	c.vertices, c.indices = c.path.AppendVerticesAndIndicesForStroke(c.vertices[:0], c.indices[:0], &vector.StrokeOptions{
		Width:    float32(c.lineWidth),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	c.draw(c.stroke, ebiten.FillRuleFillAll)
}

// Fill paints the interior of the current path with the non-zero rule.
func (c *EbitenCanvas) Fill() {
	c.vertices, c.indices = c.path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	c.draw(c.fill, ebiten.FillRuleNonZero)
}

func (c *EbitenCanvas) draw(col color.Color, rule ebiten.FillRule) {
	if len(c.indices) == 0 {
		return
	}
	r, g, b, a := col.RGBA()
	for i := range c.vertices {
		c.vertices[i].SrcX = 1
		c.vertices[i].SrcY = 1
		c.vertices[i].ColorR = float32(r) / 0xffff
		c.vertices[i].ColorG = float32(g) / 0xffff
		c.vertices[i].ColorB = float32(b) / 0xffff
		c.vertices[i].ColorA = float32(a) / 0xffff
	}
	c.img.DrawTriangles(c.vertices, c.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: c.antiAlias,
		FillRule:  rule,
	})
}

// DrawCanvas composites another EbitenCanvas at (x, y).
func (c *EbitenCanvas) DrawCanvas(src Canvas, x, y float64) {
	s, ok := src.(*EbitenCanvas)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	c.img.DrawImage(s.img, op)
}

// Snapshot reads the pixels back as straight-alpha NRGBA. Only valid while
// the game loop runs.
func (c *EbitenCanvas) Snapshot() image.Image {
	return readNRGBA(c.img)
}

func readNRGBA(src *ebiten.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	src.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, bl, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			bl = uint8(min(int(bl)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = bl
		img.Pix[i+3] = a
	}
	return img
}

var _ Canvas = (*EbitenCanvas)(nil)
var _ Snapshotter = (*EbitenCanvas)(nil)

// Draw composites the scene onto screen: the off-screen main canvas when
// there is one, else every layer at its offset.
func (s *Scene) Draw(screen *ebiten.Image) {
	if m, ok := s.main.(*EbitenCanvas); ok {
		screen.DrawImage(m.img, nil)
		return
	}
	for _, l := range s.layers {
		lc, ok := l.canvas.(*EbitenCanvas)
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(l.left, l.top)
		screen.DrawImage(lc.img, op)
	}
}

// --- Input ---

// EbitenInput reads the mouse and keyboard through ebiten.
type EbitenInput struct {
	keys []ebiten.Key
}

// Pointer returns the cursor position and the first pressed button.
func (in *EbitenInput) Pointer() (float64, float64, bool, MouseButton) {
	mx, my := ebiten.CursorPosition()
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return float64(mx), float64(my), true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return float64(mx), float64(my), true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return float64(mx), float64(my), true, MouseButtonMiddle
	}
	return float64(mx), float64(my), false, MouseButtonLeft
}

// Modifiers reads the current keyboard modifier state.
func (in *EbitenInput) Modifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// AppendKeyEdges appends the keys pressed and released this tick.
func (in *EbitenInput) AppendKeyEdges(buf []KeyEdge) []KeyEdge {
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		buf = append(buf, KeyEdge{Key: k.String(), Code: int(k), Down: true})
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		buf = append(buf, KeyEdge{Key: k.String(), Code: int(k)})
	}
	return buf
}

var _ InputSource = (*EbitenInput)(nil)

// --- Game loop ---

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Background is painted behind the layers. nil leaves the screen clear.
	Background color.Color
	// Update, if set, runs once per tick before the renderer updates.
	Update func() error
}

type game struct {
	r     *Renderer
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	g.r.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		screen.Fill(g.cfg.Background)
	}
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(int, int) (int, int) {
	return g.scene.Width(), g.scene.Height()
}

// Run opens a window showing scene and drives r from ebiten's game loop.
// Real mouse and keyboard input is wired in. It blocks until the window
// closes.
func Run(r *Renderer, scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = scene.Width()
	}
	if cfg.Height <= 0 {
		cfg.Height = scene.Height()
	}
	r.SetInput(&EbitenInput{})
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	scene.RenderAll()
	return ebiten.RunGame(&game{r: r, scene: scene, cfg: cfg})
}
