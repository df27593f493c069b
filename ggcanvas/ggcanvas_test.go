package ggcanvas

import (
	"image/color"
	"testing"

	"github.com/phanxgames/vellum"
)

func alphaAt(c *Canvas, x, y int) uint8 {
	return color.NRGBAModel.Convert(c.Snapshot().At(x, y)).(color.NRGBA).A
}

func TestFillRectangle(t *testing.T) {
	c := New(40, 40)
	defer c.Close()
	c.BeginPath()
	c.MoveTo(10, 10)
	c.LineTo(30, 10)
	c.LineTo(30, 30)
	c.LineTo(10, 30)
	c.ClosePath()
	c.SetFillColor(color.NRGBA{R: 255, A: 255})
	c.Fill()

	if a := alphaAt(c, 20, 20); a < 250 {
		t.Errorf("inside alpha = %d, want opaque", a)
	}
	if a := alphaAt(c, 2, 2); a != 0 {
		t.Errorf("outside alpha = %d, want 0", a)
	}

	c.Clear()
	if a := alphaAt(c, 20, 20); a != 0 {
		t.Errorf("alpha after Clear = %d, want 0", a)
	}
}

func TestLineToWithoutMoveTo(t *testing.T) {
	c := New(10, 10)
	defer c.Close()
	c.BeginPath()
	c.LineTo(1, 1)
	if !c.hasCurrent {
		t.Error("LineTo on an empty path should start a subpath")
	}
}

func TestSceneSnapshot(t *testing.T) {
	r := vellum.NewRenderer(vellum.Config{})
	s, err := r.NewScene(vellum.SceneConfig{Element: Element{}, Width: 60, Height: 40, RenderOffScreen: true})
	if err != nil {
		t.Fatal(err)
	}
	circle, err := vellum.NewCircle(vellum.C(20, 20), 10)
	if err != nil {
		t.Fatal(err)
	}
	circle.SetStyle(vellum.PropsStyle(vellum.Props{Fill: true, FillColor: vellum.MustParseColor("blue")}), false)
	if _, err := s.AddShape(circle, nil); err != nil {
		t.Fatal(err)
	}
	s.Render()

	img := s.Snapshot()
	if got := img.NRGBAAt(20, 20); got.B < 250 || got.A < 250 {
		t.Errorf("centre = %v, want opaque blue", got)
	}
	if got := img.NRGBAAt(50, 20); got.A != 0 {
		t.Errorf("background = %v, want transparent", got)
	}
}
