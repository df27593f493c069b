package vellum

import (
	"errors"
	"testing"
	"time"
)

func TestSceneEndToEnd(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	line := mustLine(t, C(0, 0), C(50, 50))
	if err := e.r.AddShapes(line); err != nil {
		t.Fatal(err)
	}

	layers := e.s.Layers()
	if len(layers) != 1 {
		t.Fatalf("layers = %d, want 1", len(layers))
	}
	if layers[0].Len() != 1 || !layers[0].Contains(line) {
		t.Fatal("the line should be the only shape on the layer")
	}
	if line.Scene() == nil {
		t.Fatal("line should be attached to the scene")
	}
	if e.r.Loop().Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", e.r.Loop().Pending())
	}

	e.step(time.Millisecond)
	cv := canvasOf(layers[0])
	if cv.count("stroke") != 1 {
		t.Errorf("strokes = %d, want 1", cv.count("stroke"))
	}
	if e.s.Pending() != 0 {
		t.Errorf("queued layers after the pass = %d, want 0", e.s.Pending())
	}
}

func TestRendererWithoutScene(t *testing.T) {
	r := NewRenderer(Config{})
	err := r.AddShapes(mustLine(t, C(0, 0), C(1, 1)))
	if !errors.Is(err, ErrIllegalOperation) {
		t.Errorf("err = %v, want ErrIllegalOperation", err)
	}
}

func TestSceneLayerLookup(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	other := newTestEnv(t, 100, 100)

	def, err := e.s.Layer(nil)
	if err != nil || def == nil {
		t.Fatalf("default layer = %v, %v", def, err)
	}
	if again, _ := e.s.Layer(nil); again != def {
		t.Error("an empty default layer should be reused")
	}

	c := mustCircle(t, 10, 10, 5)
	if got, err := e.s.Layer(c); got != nil || err != nil {
		t.Errorf("unassigned shape: got %v, %v", got, err)
	}
	l := e.add(t, c)
	if got, _ := e.s.Layer(c); got != l {
		t.Error("lookup by shape should find its layer")
	}
	if got, _ := e.s.Layer(l); got != l {
		t.Error("lookup by layer should return it")
	}
	otherLayer, _ := other.s.Layer(nil)
	if got, err := e.s.Layer(otherLayer); got != nil || err != nil {
		t.Errorf("foreign layer: got %v, %v", got, err)
	}
	if _, err := e.s.Layer("layer-1"); !errors.Is(err, ErrIllegalOperation) {
		t.Errorf("err = %v, want ErrIllegalOperation", err)
	}
}

func TestSceneNewLayer(t *testing.T) {
	e := newTestEnv(t, 200, 100)
	l, err := e.s.NewLayer(nil, WithSize(100, 50))
	if err != nil {
		t.Fatal(err)
	}
	if left, top := l.Offset(); left != 50 || top != 25 {
		t.Errorf("offset = %v, %v, want centred at 50, 25", left, top)
	}
	if l.Bounds() != (Rect{X: 50, Y: 25, Width: 100, Height: 50}) {
		t.Errorf("bounds = %v", l.Bounds())
	}
	if _, err := e.s.NewLayer(nil, WithSize(0, 10)); !errors.Is(err, ErrArgument) {
		t.Errorf("err = %v, want ErrArgument", err)
	}

	c := mustCircle(t, 0, 0, 1)
	l2, err := e.s.NewLayer(c)
	if err != nil {
		t.Fatal(err)
	}
	if !l2.Contains(c) {
		t.Error("NewLayer should assign the given shape")
	}
	if got := e.s.Layers(); len(got) != 2 || got[1] != l2 {
		t.Error("new layers go on top")
	}
}

func TestSceneMoveShapeBetweenLayers(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	a, _ := e.s.NewLayer(nil)
	b, _ := e.s.NewLayer(nil)
	c := mustCircle(t, 0, 0, 1)

	if _, err := e.s.AddShape(c, a); err != nil {
		t.Fatal(err)
	}
	if _, err := e.s.AddShape(c, b); err != nil {
		t.Fatal(err)
	}
	if a.Contains(c) || !b.Contains(c) {
		t.Error("a shape is on at most one layer")
	}
	if e.s.Pending() != 2 {
		t.Errorf("queued layers = %d, want both", e.s.Pending())
	}

	other := newTestEnv(t, 100, 100)
	if _, err := e.s.AddShape(c, mustLayer(t, other.s)); !errors.Is(err, ErrIllegalOperation) {
		t.Errorf("foreign layer: err = %v, want ErrIllegalOperation", err)
	}
}

func mustLayer(t *testing.T, s *Scene) *Layer {
	t.Helper()
	l, err := s.Layer(nil)
	if err != nil || l == nil {
		t.Fatalf("Layer(nil) = %v, %v", l, err)
	}
	return l
}

func TestSceneMoveShapeBetweenScenes(t *testing.T) {
	e1 := newTestEnv(t, 100, 100)
	e2 := newTestEnv(t, 100, 100)
	c := mustCircle(t, 0, 0, 1)
	l1 := e1.add(t, c)
	if err := c.On(EventClick, NewHandler(func(Event) {})); err != nil {
		t.Fatal(err)
	}

	e2.add(t, c)
	if l1.Contains(c) {
		t.Error("shape should leave its old scene")
	}
	if c.Scene() != SceneInterface(e2.s) {
		t.Error("shape should report its new scene")
	}
	if e1.s.HandlerCount(EventClick) != 0 {
		t.Error("handlers scoped to the shape should be dropped from the old scene")
	}
}

func TestRequestRenderingCoalesces(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	a := mustCircle(t, 0, 0, 1)
	b := mustCircle(t, 5, 5, 1)
	l := e.add(t, a)
	e.add(t, b)
	e.step(0)

	for i := 0; i < 5; i++ {
		if err := a.RequestRendering(); err != nil {
			t.Fatal(err)
		}
		if err := b.RequestRendering(); err != nil {
			t.Fatal(err)
		}
	}
	if e.r.Loop().Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", e.r.Loop().Pending())
	}

	cv := canvasOf(l)
	cv.reset()
	e.step(0)
	if cv.count("clear") != 1 {
		t.Errorf("layer cleared %d times, want once per pass", cv.count("clear"))
	}
	if cv.count("stroke") != 2 {
		t.Errorf("strokes = %d, want every shape on the layer redrawn", cv.count("stroke"))
	}
}

func TestRequestRenderingErrors(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	c := mustCircle(t, 0, 0, 1)
	if err := c.RequestRendering(); !errors.Is(err, ErrIllegalOperation) {
		t.Errorf("detached shape: err = %v, want ErrIllegalOperation", err)
	}
	if err := e.s.RequestRendering(c, nil); !errors.Is(err, ErrIllegalOperation) {
		t.Errorf("shape not on the scene: err = %v, want ErrIllegalOperation", err)
	}
	if err := e.s.RequestRendering(nil, nil); !errors.Is(err, ErrArgument) {
		t.Errorf("nil shape: err = %v, want ErrArgument", err)
	}
}

func TestRenderPassOrder(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	a := mustCircle(t, 0, 0, 1)
	b := mustCircle(t, 0, 0, 1)
	la, _ := e.s.NewLayer(a)
	lb, _ := e.s.NewLayer(b)
	e.step(0)
	ca, cb := canvasOf(la), canvasOf(lb)
	ca.reset()
	cb.reset()

	var log []string
	e.s.BeforeRender(func() {
		log = append(log, "before")
		if len(ca.ops) != 0 || len(cb.ops) != 0 {
			t.Error("before-render hooks must run before any layer is drawn")
		}
	})
	if err := e.s.RequestRendering(a, func(time.Time) {
		log = append(log, "hook a")
		if cb.count("clear") != 1 {
			t.Error("hooks must run after every queued layer is redrawn")
		}
	}); err != nil {
		t.Fatal(err)
	}
	if err := e.s.RequestRendering(b, func(time.Time) { log = append(log, "hook b") }); err != nil {
		t.Fatal(err)
	}
	e.step(0)

	want := []string{"before", "hook a", "hook b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestRenderOffScreen(t *testing.T) {
	e := newTestEnvConfig(t, Config{}, SceneConfig{Width: 200, Height: 100, RenderOffScreen: true})
	if _, err := e.s.NewLayer(mustCircle(t, 0, 0, 1), WithSize(100, 100)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.s.NewLayer(mustCircle(t, 0, 0, 1)); err != nil {
		t.Fatal(err)
	}
	if e.s.MainCanvas() != nil {
		t.Fatal("main canvas should be created lazily")
	}
	e.s.Render()

	main, ok := e.s.MainCanvas().(*recordCanvas)
	if !ok {
		t.Fatal("main canvas missing after a pass")
	}
	if len(main.draws) != 2 || main.draws[0] != "50 0" || main.draws[1] != "0 0" {
		t.Errorf("composite draws = %v, want layers at their offsets in order", main.draws)
	}
}

func TestRenderShapeAndAll(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	c := mustCircle(t, 0, 0, 1)
	l := e.add(t, c)
	cv := canvasOf(l)

	if err := e.s.RenderShape(c); err != nil {
		t.Fatal(err)
	}
	if cv.count("clear") != 1 {
		t.Error("RenderShape should redraw the shape's layer")
	}
	if err := e.s.RenderShape(mustCircle(t, 0, 0, 1)); !errors.Is(err, ErrIllegalOperation) {
		t.Errorf("err = %v, want ErrIllegalOperation", err)
	}
	e.s.RenderAll()
	if cv.count("clear") != 2 {
		t.Error("RenderAll should redraw every layer")
	}
}

func TestSceneRemoveShape(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	c := mustCircle(t, 0, 0, 1)
	l := e.add(t, c)
	if !e.s.RemoveShape(c) {
		t.Fatal("RemoveShape should report true")
	}
	if l.Contains(c) || c.Scene() != nil {
		t.Error("shape should be gone")
	}
	if e.s.RemoveShape(c) {
		t.Error("second RemoveShape should report false")
	}
	if _, ok := e.r.Lookup(c.ID()); ok {
		t.Error("removed shape should be unregistered")
	}
}

func TestSceneDestroy(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	c := mustCircle(t, 0, 0, 1)
	e.add(t, c)
	e.s.Destroy()

	if len(e.r.Scenes()) != 0 {
		t.Error("destroyed scene should leave its renderer")
	}
	if c.Scene() != nil {
		t.Error("shapes should be detached")
	}
	if _, err := e.s.AddShape(c, nil); !errors.Is(err, ErrIllegalOperation) {
		t.Errorf("err = %v, want ErrIllegalOperation", err)
	}
	e.s.Destroy()
}
