package vellum

import (
	"testing"

	"github.com/google/uuid"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	c := mustCircle(t, 0, 0, 1)
	st := PropsStyle(DefaultProps)
	r.Register(c)
	r.Register(st)

	if got, ok := r.Shape(c.ID()); !ok || got != Shape(c) {
		t.Errorf("Shape = %v, %v", got, ok)
	}
	if _, ok := r.Shape(st.ID()); ok {
		t.Error("a style is not a shape")
	}
	if _, ok := r.Style(c.ID()); ok {
		t.Error("a shape is not a style")
	}
	if _, ok := r.Lookup(uuid.New()); ok {
		t.Error("unknown id resolved")
	}
	r.Unregister(c.ID())
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistryTracksSceneMembership(t *testing.T) {
	e := newTestEnv(t, 10, 10)
	a := mustCircle(t, 1, 1, 1)
	b := mustCircle(t, 2, 2, 1)
	g := NewGroup(a, b)
	e.add(t, g)
	for _, sh := range []Shape{g, a, b} {
		if _, ok := e.r.Lookup(sh.ID()); !ok {
			t.Errorf("%s not registered", sh.Kind())
		}
	}
	e.s.RemoveShape(g)
	for _, sh := range []Shape{g, a, b} {
		if _, ok := e.r.Lookup(sh.ID()); ok {
			t.Errorf("%s still registered after removal", sh.Kind())
		}
	}
}
