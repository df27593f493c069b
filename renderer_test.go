package vellum

import (
	"errors"
	"testing"
	"time"
)

func TestNewSceneValidation(t *testing.T) {
	r := NewRenderer(Config{})
	r.RegisterElement("main", &recordElement{})

	tests := []struct {
		name string
		cfg  SceneConfig
		ok   bool
	}{
		{"element", SceneConfig{Element: &recordElement{}, Width: 10, Height: 10}, true},
		{"registered id", SceneConfig{ID: "main", Width: 10, Height: 10}, true},
		{"both", SceneConfig{ID: "main", Element: &recordElement{}, Width: 10, Height: 10}, false},
		{"neither", SceneConfig{Width: 10, Height: 10}, false},
		{"unknown id", SceneConfig{ID: "nope", Width: 10, Height: 10}, false},
		{"zero width", SceneConfig{Element: &recordElement{}, Height: 10}, false},
		{"negative height", SceneConfig{Element: &recordElement{}, Width: 10, Height: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := r.NewScene(tt.cfg)
			if tt.ok {
				if err != nil || s == nil {
					t.Fatalf("NewScene: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
	if n := len(r.Scenes()); n != 2 {
		t.Errorf("scenes = %d, want 2", n)
	}
}

func TestRenderersAreIndependent(t *testing.T) {
	a := newTestEnv(t, 10, 10)
	b := newTestEnv(t, 10, 10)
	c := mustCircle(t, 5, 5, 2)
	a.add(t, c)
	if _, ok := b.r.Lookup(c.ID()); ok {
		t.Error("shape visible from another renderer")
	}
	if err := b.s.On("custom-a", NewHandler(func(Event) {}), nil); err != nil {
		t.Fatal(err)
	}
	if a.s.HandlerCount("custom-a") != 0 {
		t.Error("handler leaked across renderers")
	}
}

// manualScheduler collects frame requests without running them.
type manualScheduler struct {
	fns []func(time.Time)
}

func (m *manualScheduler) RequestFrame(fn func(time.Time)) { m.fns = append(m.fns, fn) }

func TestSetScheduler(t *testing.T) {
	e := newTestEnv(t, 10, 10)
	sched := &manualScheduler{}
	e.r.SetScheduler(sched)
	l := e.add(t, mustCircle(t, 5, 5, 2))

	e.step(0)
	if e.s.Pending() != 1 {
		t.Fatal("Update should not tick the built-in loop under a custom scheduler")
	}
	if len(sched.fns) != 1 {
		t.Fatalf("requests = %d, want 1", len(sched.fns))
	}
	sched.fns[0](e.clock.Now())
	if e.s.Pending() != 0 || canvasOf(l).count("stroke") != 1 {
		t.Errorf("custom scheduler frame did not render, ops %v", canvasOf(l).ops)
	}
}
