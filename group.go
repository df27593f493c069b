package vellum

import "fmt"

// Group is a transparent aggregate: every child renders, styles and
// collides on its own. Coordinates and centre are folds over the children.
type Group struct {
	shapeBase
	children []Shape
}

var _ Shape = (*Group)(nil)

// NewGroup returns a group holding children.
func NewGroup(children ...Shape) *Group {
	g := &Group{}
	g.init(g, ShapeGroup)
	for _, c := range children {
		g.Add(c)
	}
	return g
}

// Add appends child. It panics if child is nil or is an ancestor of the
// group.
func (g *Group) Add(child Shape) {
	if child == nil {
		panic("vellum: cannot add nil child to group")
	}
	for p := g.self; p != nil; p = p.base().parent {
		if p == child {
			panic(fmt.Sprintf("vellum: adding %s %s would create a cycle", child.Kind(), child.ID()))
		}
	}
	if old, ok := child.base().parent.(interface{ Remove(Shape) bool }); ok {
		old.Remove(child)
	}
	child.base().parent = g.self
	g.children = append(g.children, child)
	if g.scene != nil {
		g.scene.adopt(child)
		if g.scene.debugEnabled() {
			debugCheckDepth(child)
		}
	}
	g.self.touch()
}

// Remove detaches child from the group. It reports whether child was found.
func (g *Group) Remove(child Shape) bool {
	for i, c := range g.children {
		if c == child {
			g.children = append(g.children[:i], g.children[i+1:]...)
			child.base().parent = nil
			if g.scene != nil {
				g.scene.release(child)
			}
			g.self.touch()
			return true
		}
	}
	return false
}

// Children returns a copy of the child list.
func (g *Group) Children() []Shape {
	return append([]Shape(nil), g.children...)
}

// Len returns the number of children.
func (g *Group) Len() int { return len(g.children) }

// SetStyle sets the group's style and, when deep is set, every
// descendant's.
func (g *Group) SetStyle(st *Style, deep bool) {
	g.shapeBase.SetStyle(st, deep)
	if deep {
		for _, c := range g.children {
			c.SetStyle(g.style, true)
		}
	}
}

func (g *Group) attach(sc SceneInterface) {
	g.scene = sc
	for _, c := range g.children {
		c.attach(sc)
	}
}

func (g *Group) detach() {
	g.scene = nil
	for _, c := range g.children {
		c.detach()
	}
}

func (g *Group) touch() {
	g.version++
	for _, c := range g.children {
		c.touch()
	}
}

// Coordinates concatenates the children's coordinates.
func (g *Group) Coordinates() []Coord {
	var out []Coord
	for _, c := range g.children {
		out = append(out, c.Coordinates()...)
	}
	return out
}

// CentreCoordinates is the mean of the children's centres. An empty group
// is centred on the origin.
func (g *Group) CentreCoordinates() Coord {
	centres := make([]Coord, len(g.children))
	for i, c := range g.children {
		centres[i] = c.CentreCoordinates()
	}
	return Centre(centres)
}

// RenderingCoordinates concatenates the children's rendering coordinates.
func (g *Group) RenderingCoordinates(l *Layer) []Coord {
	var out []Coord
	for _, c := range g.children {
		out = append(out, c.RenderingCoordinates(l)...)
	}
	return out
}

func (g *Group) coordRefs() []*Coord {
	var out []*Coord
	for _, c := range g.children {
		out = append(out, c.coordRefs()...)
	}
	return out
}

func (g *Group) outline(l *Layer) []Coord {
	var out []Coord
	for _, c := range g.children {
		out = append(out, c.outline(l)...)
	}
	return out
}

// Render renders every child independently.
func (g *Group) Render(l *Layer, opts RenderOptions) {
	for _, c := range g.children {
		c.Render(l, opts)
	}
}

// IsColliding reports whether any child collides.
func (g *Group) IsColliding(x, y float64) bool {
	for _, c := range g.children {
		if c.IsColliding(x, y) {
			return true
		}
	}
	return false
}

// GroupShape is an opaque aggregate: its children form one continuous path
// that is closed, filled and stroked once with the group's style.
type GroupShape struct {
	Group
}

var _ Shape = (*GroupShape)(nil)

// NewGroupShape returns a group shape from children, traced in order.
func NewGroupShape(children ...Shape) *GroupShape {
	g := &GroupShape{}
	g.init(g, ShapeGroupShape)
	for _, c := range children {
		g.Add(c)
	}
	return g
}

// pathTrace is the result of walking the children as one path.
type pathTrace struct {
	points   []Coord
	gaps     int  // discontinuities between consecutive children
	endsMeet bool // the last child ends where the first began
}

// continuous tolerates a single gap, and only on a path whose ends meet.
func (t pathTrace) continuous() bool {
	return t.gaps == 0 || (t.gaps == 1 && t.endsMeet)
}

func (t pathTrace) closed() bool { return t.endsMeet && t.continuous() }

// trace walks the children in render order, flipping any child whose end
// rather than start meets the previous child's end.
func (g *GroupShape) trace(l *Layer) pathTrace {
	var t pathTrace
	var first, prev *Coord
	for _, c := range g.children {
		pts := c.outline(l)
		if len(pts) == 0 {
			continue
		}
		s, e := pts[0], pts[len(pts)-1]
		if prev != nil {
			if !s.EqualWithin(*prev, EqualityAllowedError) && e.EqualWithin(*prev, EqualityAllowedError) {
				pts = reversed(pts)
				s, e = e, s
			}
			if !s.EqualWithin(*prev, EqualityAllowedError) {
				t.gaps++
			}
		} else {
			first = &s
		}
		t.points = append(t.points, pts...)
		prev = &e
	}
	if first != nil {
		t.endsMeet = prev.EqualWithin(*first, EqualityAllowedError)
	}
	return t
}

// IsClosed reports whether the last child ends where the first began on a
// continuous path.
func (g *GroupShape) IsClosed() bool { return g.trace(nil).closed() }

// IsOpen is the negation of IsClosed.
func (g *GroupShape) IsOpen() bool { return !g.IsClosed() }

// IsContinuous reports whether every child starts where the previous one
// ended. One gap is allowed when the path closes first-to-last.
func (g *GroupShape) IsContinuous() bool { return g.trace(nil).continuous() }

func (g *GroupShape) closedOutline() bool { return g.IsClosed() }

func (g *GroupShape) outline(l *Layer) []Coord { return g.trace(l).points }

// Render traces every child into a single path and styles it once.
func (g *GroupShape) Render(l *Layer, opts RenderOptions) {
	cv := l.canvas
	beginPath(cv, opts)
	end := opts.EndPoint
	for _, c := range g.children {
		pts := c.outline(l)
		if len(pts) == 0 {
			continue
		}
		c.Render(l, RenderOptions{ContinuePath: true, EndPoint: end})
		s, e := pts[0], pts[len(pts)-1]
		if shouldReverse(s, e, RenderOptions{EndPoint: end}, EqualityAllowedError) {
			e = s
		}
		end = &e
	}
	finishPath(&g.shapeBase, l, opts, g.IsClosed())
}

// IsColliding tests every child, then the interior of the merged outline
// when the shape is closed.
func (g *GroupShape) IsColliding(x, y float64) bool {
	if g.Group.IsColliding(x, y) {
		return true
	}
	at, l := g.toLayerSpace(x, y)
	t := g.trace(l)
	if !t.closed() {
		return false
	}
	return PointInPolygon(at, t.points, g.tolerance())
}
