package vellum

import (
	"fmt"
	"math"
	"time"
)

// RelationFunc maps x and the animation's time ratio in [0, 1] to one y
// value per plotted component. A NaN component lifts the pen at x.
type RelationFunc func(x, timeRatio float64) []float64

// Relation plots a function across the width of its layer. In absolute
// mode x runs over the layer's pixels; under relative rendering it runs
// from 0 to 100 and y values are percentages of the layer height. The plot
// is drawn relative to the relation's origin.
type Relation struct {
	shapeBase
	fn        RelationFunc
	fnVersion uint64
	timeRatio float64
	origin    Coord
	anim      *AnimationFrame // the running Move, if any
}

var _ Shape = (*Relation)(nil)

// NewRelation returns a relation plotting fn.
func NewRelation(fn RelationFunc) (*Relation, error) {
	if fn == nil {
		return nil, validationError("NewRelation", "function is nil")
	}
	r := &Relation{fn: fn, timeRatio: 1}
	r.init(r, ShapeRelation)
	return r, nil
}

// SetFunc replaces the plotted function. Cached samples are invalidated.
func (r *Relation) SetFunc(fn RelationFunc) {
	if fn == nil {
		return
	}
	r.fn = fn
	r.fnVersion++
	r.touch()
}

// TimeRatio returns the ratio passed to the function.
func (r *Relation) TimeRatio() float64 { return r.timeRatio }

// Coordinates returns the plot origin.
func (r *Relation) Coordinates() []Coord { return []Coord{r.origin} }

// CentreCoordinates returns the plot origin.
func (r *Relation) CentreCoordinates() Coord { return r.origin }

// RenderingCoordinates returns the origin in l's pixel space.
func (r *Relation) RenderingCoordinates(l *Layer) []Coord {
	return []Coord{r.processOne(r.origin, l)}
}

func (r *Relation) coordRefs() []*Coord { return []*Coord{&r.origin} }

// Move replaces the function with fn and animates the time ratio from 0 to
// 1 over d.
func (r *Relation) Move(d time.Duration, fn RelationFunc, done func()) (*AnimationFrame, error) {
	if fn == nil {
		return nil, argumentError("Relation.Move", "function is nil")
	}
	if r.scene == nil {
		return nil, illegalOperation("Relation.Move", "shape %s is not on a scene", r.id)
	}
	r.SetFunc(fn)
	r.timeRatio = 0
	af, err := r.Animate(d, func(ratio float64) {
		r.timeRatio = math.Max(0, math.Min(1, ratio))
	}, done)
	if err != nil {
		return nil, err
	}
	r.anim = af
	return af, nil
}

// animating reports whether a Move is in flight. Cancelled and completed
// moves no longer count.
func (r *Relation) animating() bool {
	if r.anim == nil {
		return false
	}
	switch r.anim.State() {
	case AnimationPending, AnimationRunning:
		return true
	}
	r.anim = nil
	return false
}

type relationSamples struct {
	fnVersion uint64
	origin    Coord
	timeRatio float64
	runs      [][]Coord
}

// Runs samples the function into pen-down polylines in l's pixel space.
// Samples are cached per layer and rendering mode; the cache is bypassed
// while the relation is animating.
func (r *Relation) Runs(l *Layer) [][]Coord {
	key := "relation"
	if l != nil {
		key = fmt.Sprintf("relation:%s:%t", l.id, r.relative)
	}
	animating := r.animating()
	if !animating {
		if v, ok := r.cache.Get(key); ok {
			s := v.(relationSamples)
			if s.fnVersion == r.fnVersion && s.timeRatio == r.timeRatio && s.origin == r.origin {
				return s.runs
			}
		}
	}
	runs := r.sample(l)
	if !animating {
		r.cache.Set(key, relationSamples{fnVersion: r.fnVersion, origin: r.origin, timeRatio: r.timeRatio, runs: runs})
	}
	return runs
}

func (r *Relation) sample(l *Layer) [][]Coord {
	width, height := 100.0, 100.0
	if l != nil {
		width, height = float64(l.width), float64(l.height)
	}
	o := r.processOne(r.origin, l)
	n := int(math.Ceil(width))

	var runs [][]Coord
	var open []int // index into runs per component, -1 when the pen is up
	for i := 0; i <= n; i++ {
		px := float64(i)
		x := px
		if r.relative {
			x = px * 100 / width
		}
		ys := r.fn(x, r.timeRatio)
		for len(open) < len(ys) {
			open = append(open, -1)
		}
		for k := range open {
			if k >= len(ys) || math.IsNaN(ys[k]) || math.IsInf(ys[k], 0) {
				open[k] = -1
				continue
			}
			y := ys[k]
			if r.relative {
				y = y * height / 100
			}
			p := Coord{X: o.X + px, Y: o.Y + y}
			if open[k] < 0 {
				runs = append(runs, nil)
				open[k] = len(runs) - 1
			}
			runs[open[k]] = append(runs[open[k]], p)
		}
	}
	return runs
}

func (r *Relation) outline(l *Layer) []Coord {
	var out []Coord
	for _, run := range r.Runs(l) {
		out = append(out, run...)
	}
	return out
}

// Render draws one polyline per pen-down run.
func (r *Relation) Render(l *Layer, opts RenderOptions) {
	cv := l.canvas
	beginPath(cv, opts)
	for i, run := range r.Runs(l) {
		if i == 0 {
			startAt(cv, run[0], opts)
		} else {
			cv.MoveTo(run[0].X, run[0].Y)
		}
		for _, p := range run[1:] {
			cv.LineTo(p.X, p.Y)
		}
	}
	finishPath(&r.shapeBase, l, opts, false)
}

// IsColliding reports whether (x, y) lies on any plotted run.
func (r *Relation) IsColliding(x, y float64) bool {
	at, l := r.toLayerSpace(x, y)
	tol := r.tolerance()
	for _, run := range r.Runs(l) {
		if PointOnPolyline(at, run, tol) {
			return true
		}
	}
	return false
}
