package vellum

import (
	"strings"
	"testing"
)

func TestGroupAddRemove(t *testing.T) {
	a := mustCircle(t, 0, 0, 1)
	b := mustCircle(t, 10, 0, 1)
	g := NewGroup(a, b)

	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
	if got := g.CentreCoordinates(); got != C(5, 0) {
		t.Errorf("centre = %v, want [5 0]", got)
	}
	if len(g.Coordinates()) != 2 {
		t.Errorf("coordinates = %v", g.Coordinates())
	}

	other := NewGroup()
	other.Add(a)
	if g.Len() != 1 {
		t.Errorf("re-parenting should remove the child from its old group, Len = %d", g.Len())
	}
	if !other.Remove(a) || other.Len() != 0 {
		t.Error("Remove failed")
	}
	if other.Remove(a) {
		t.Error("second Remove should report false")
	}
}

func TestGroupAddPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewGroup().Add(nil) }},
		{"self", func() {
			g := NewGroup()
			g.Add(g)
		}},
		{"ancestor", func() {
			inner := NewGroup()
			outer := NewGroup(inner)
			inner.Add(outer)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if s, ok := r.(string); !ok || !strings.HasPrefix(s, "vellum: ") {
					t.Errorf("panic = %v, want vellum-prefixed message", r)
				}
			}()
			tt.fn()
		})
	}
}

func TestGroupSetStyleDeep(t *testing.T) {
	a := mustCircle(t, 0, 0, 1)
	g := NewGroup(a)
	st := PropsStyle(Props{Fill: true})

	g.SetStyle(st, false)
	if a.Style() == st {
		t.Error("shallow SetStyle should not touch children")
	}
	g.SetStyle(st, true)
	if a.Style() != st {
		t.Error("deep SetStyle should propagate to children")
	}
}

func TestGroupOnScene(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	a := mustCircle(t, 20, 20, 5)
	b := mustCircle(t, 80, 80, 5)
	g := NewGroup(a)
	l := e.add(t, g)

	if a.Scene() == nil {
		t.Fatal("children should be attached with the group")
	}
	if got, _ := e.s.Layer(a); got != l {
		t.Error("child should resolve to its group's layer")
	}
	g.Add(b)
	if _, ok := e.s.Lookup(b.ID()); !ok {
		t.Error("child added later should be registered")
	}
	if !g.IsColliding(80, 80) || g.IsColliding(50, 50) {
		t.Error("group collision should be the union of its children")
	}

	cv := canvasOf(l)
	e.s.Render()
	if cv.count("stroke") != 2 {
		t.Errorf("strokes = %d, want one per child", cv.count("stroke"))
	}

	e.s.RemoveShape(g)
	if a.Scene() != nil || b.Scene() != nil {
		t.Error("children should be detached with the group")
	}
	if _, ok := e.s.Lookup(b.ID()); ok {
		t.Error("children should be unregistered with the group")
	}
}

func TestGroupShapeContinuity(t *testing.T) {
	tests := []struct {
		name       string
		lines      [][]Coord
		continuous bool
		closed     bool
	}{
		{
			name:       "open chain",
			lines:      [][]Coord{{C(0, 0), C(10, 0)}, {C(10, 0), C(10, 10)}},
			continuous: true,
		},
		{
			name:       "closed triangle",
			lines:      [][]Coord{{C(0, 0), C(10, 0)}, {C(10, 0), C(10, 10)}, {C(10, 10), C(0, 0)}},
			continuous: true,
			closed:     true,
		},
		{
			name:       "reversed child",
			lines:      [][]Coord{{C(0, 0), C(10, 0)}, {C(10, 10), C(10, 0)}, {C(10, 10), C(0, 0)}},
			continuous: true,
			closed:     true,
		},
		{
			name:  "gap",
			lines: [][]Coord{{C(0, 0), C(10, 0)}, {C(20, 0), C(30, 0)}},
		},
		{
			name:       "one gap closed by the ends",
			lines:      [][]Coord{{C(0, 0), C(10, 0)}, {C(20, 0), C(0, 0)}},
			continuous: true,
			closed:     true,
		},
		{
			name:  "two gaps with meeting ends",
			lines: [][]Coord{{C(0, 0), C(10, 0)}, {C(20, 0), C(30, 0)}, {C(40, 0), C(0, 0)}},
		},
		{
			name:       "single child",
			lines:      [][]Coord{{C(0, 0), C(10, 0), C(10, 10)}},
			continuous: true,
		},
		{
			name:       "single child ending at its start",
			lines:      [][]Coord{{C(0, 0), C(10, 0), C(10, 10), C(0, 0)}},
			continuous: true,
			closed:     true,
		},
		{
			name:       "two children touching at both ends",
			lines:      [][]Coord{{C(0, 0), C(10, 0)}, {C(10, 0), C(0, 0)}},
			continuous: true,
			closed:     true,
		},
		{
			name:       "two children touching at both ends, same direction",
			lines:      [][]Coord{{C(0, 0), C(10, 0)}, {C(0, 0), C(10, 0)}},
			continuous: true,
			closed:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var children []Shape
			for _, pts := range tt.lines {
				children = append(children, mustLine(t, pts...))
			}
			gs := NewGroupShape(children...)
			if got := gs.IsContinuous(); got != tt.continuous {
				t.Errorf("IsContinuous = %v, want %v", got, tt.continuous)
			}
			if got := gs.IsClosed(); got != tt.closed {
				t.Errorf("IsClosed = %v, want %v", got, tt.closed)
			}
			if gs.IsOpen() == gs.IsClosed() {
				t.Error("IsOpen must negate IsClosed")
			}
		})
	}
}

func TestGroupShapeSinglePolygon(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	gs := NewGroupShape(mustRect(t, C(10, 10), C(30, 10), C(30, 30)))
	e.add(t, gs)
	if !gs.IsClosed() || !gs.IsContinuous() {
		t.Errorf("closed = %v continuous = %v, want both", gs.IsClosed(), gs.IsContinuous())
	}
	if !gs.IsColliding(20, 20) {
		t.Error("interior of a single closed child should collide")
	}
}

func TestGroupShapeGapClosedCollision(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	gs := NewGroupShape(
		mustLine(t, C(0, 0), C(10, 0)),
		mustLine(t, C(10, 10), C(0, 0)),
	)
	e.add(t, gs)
	if !gs.IsColliding(8, 4) {
		t.Error("closed path with one gap should collide inside its outline")
	}
	if gs.IsColliding(2, 8) {
		t.Error("point outside the outline should not collide")
	}
}

func TestGroupShapeRendersOnePath(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	gs := NewGroupShape(
		mustLine(t, C(0, 0), C(10, 0)),
		mustLine(t, C(10, 10), C(10, 0)),
		mustLine(t, C(10, 10), C(0, 0)),
	)
	gs.SetStyle(PropsStyle(Props{Fill: true}), false)
	l := e.add(t, gs)
	cv := canvasOf(l)
	e.s.Render()

	want := []string{
		"clear", "begin",
		"move 0 0", "line 10 0",
		"line 10 0", "line 10 10",
		"line 10 10", "line 0 0",
		"close", "width 1", "fill",
	}
	if strings.Join(cv.ops, ",") != strings.Join(want, ",") {
		t.Errorf("ops =\n%v\nwant\n%v", cv.ops, want)
	}
	if !gs.IsColliding(8, 4) {
		t.Error("closed group shape should collide inside its outline")
	}
	if gs.IsColliding(2, 8) {
		t.Error("point outside the triangle should not collide")
	}
}
