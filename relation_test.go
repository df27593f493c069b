package vellum

import (
	"math"
	"testing"
	"time"
)

func TestRelationSampling(t *testing.T) {
	e := newTestEnv(t, 100, 50)
	rel, err := NewRelation(func(x, _ float64) []float64 { return []float64{x / 2} })
	if err != nil {
		t.Fatal(err)
	}
	l := e.add(t, rel)

	runs := rel.Runs(l)
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	if len(runs[0]) != 101 {
		t.Errorf("samples = %d, want one per pixel column plus the end", len(runs[0]))
	}
	if last := runs[0][100]; last != C(100, 50) {
		t.Errorf("last sample = %v, want [100 50]", last)
	}
	if !rel.IsColliding(40, 20) {
		t.Error("point on the plot should collide")
	}
	if rel.IsColliding(40, 40) {
		t.Error("point off the plot should not collide")
	}
}

func TestRelationGapsAndComponents(t *testing.T) {
	e := newTestEnv(t, 100, 100)
	rel, err := NewRelation(func(x, _ float64) []float64 {
		if x >= 40 && x <= 60 {
			return []float64{math.NaN(), 80}
		}
		return []float64{10, 80}
	})
	if err != nil {
		t.Fatal(err)
	}
	l := e.add(t, rel)

	runs := rel.Runs(l)
	if len(runs) != 3 {
		t.Fatalf("runs = %d, want 3 (two pieces of the first component, one of the second)", len(runs))
	}

	cv := canvasOf(l)
	e.s.Render()
	moves := 0
	for _, op := range cv.ops {
		if len(op) > 4 && op[:4] == "move" {
			moves++
		}
	}
	if moves != 3 {
		t.Errorf("pen lifts = %d, want 3", moves)
	}
}

func TestRelationRelativeDomain(t *testing.T) {
	e := newTestEnv(t, 200, 100)
	var maxX float64
	rel, err := NewRelation(func(x, _ float64) []float64 {
		maxX = math.Max(maxX, x)
		return []float64{50}
	})
	if err != nil {
		t.Fatal(err)
	}
	rel.SetRelativeRendering(true)
	l := e.add(t, rel)

	runs := rel.Runs(l)
	if !approx(maxX, 100) {
		t.Errorf("domain max = %v, want 100", maxX)
	}
	if y := runs[0][0].Y; y != 50 {
		t.Errorf("y = %v, want 50 (50%% of 100px)", y)
	}
	if x := runs[0][len(runs[0])-1].X; x != 200 {
		t.Errorf("last x = %v, want 200", x)
	}
}

func TestRelationCache(t *testing.T) {
	e := newTestEnv(t, 10, 10)
	calls := 0
	rel, err := NewRelation(func(x, _ float64) []float64 {
		calls++
		return []float64{x}
	})
	if err != nil {
		t.Fatal(err)
	}
	l := e.add(t, rel)

	rel.Runs(l)
	first := calls
	rel.Runs(l)
	if calls != first {
		t.Errorf("cached samples recomputed: %d calls, want %d", calls, first)
	}

	rel.SetFunc(func(x, _ float64) []float64 { return []float64{-x} })
	if got := rel.Runs(l)[0][5].Y; got != -5 {
		t.Errorf("y after SetFunc = %v, want -5", got)
	}
}

func TestRelationMove(t *testing.T) {
	e := newTestEnv(t, 10, 10)
	rel, err := NewRelation(func(x, tr float64) []float64 { return []float64{0} })
	if err != nil {
		t.Fatal(err)
	}
	l := e.add(t, rel)

	done := 0
	_, err = rel.Move(100*time.Millisecond, func(x, tr float64) []float64 {
		return []float64{10 * tr}
	}, func() { done++ })
	if err != nil {
		t.Fatal(err)
	}
	if rel.TimeRatio() != 0 {
		t.Errorf("time ratio = %v, want 0 at start", rel.TimeRatio())
	}

	e.step(0)
	e.step(50 * time.Millisecond)
	if got := rel.Runs(l)[0][0].Y; !approx(got, 5) {
		t.Errorf("halfway y = %v, want 5", got)
	}
	e.step(50 * time.Millisecond)
	e.step(0)
	if rel.TimeRatio() != 1 || done != 1 {
		t.Fatalf("ratio = %v done = %d, want 1 and 1", rel.TimeRatio(), done)
	}
	if got := rel.Runs(l)[0][0].Y; got != 10 {
		t.Errorf("final y = %v, want 10", got)
	}
}

func TestRelationCacheResumesAfterMove(t *testing.T) {
	sameRuns := func(a, b [][]Coord) bool { return &a[0][0] == &b[0][0] }
	tests := []struct {
		name   string
		finish func(e *testEnv, af *AnimationFrame)
	}{
		{"cancelled", func(e *testEnv, af *AnimationFrame) { af.Cancel() }},
		{"completed", func(e *testEnv, af *AnimationFrame) {
			for i := 0; i < 5; i++ {
				e.step(50 * time.Millisecond)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t, 10, 10)
			rel, err := NewRelation(func(x, tr float64) []float64 { return []float64{x} })
			if err != nil {
				t.Fatal(err)
			}
			l := e.add(t, rel)
			af, err := rel.Move(100*time.Millisecond, func(x, tr float64) []float64 {
				return []float64{x * tr}
			}, nil)
			if err != nil {
				t.Fatal(err)
			}
			e.step(0)
			if sameRuns(rel.Runs(l), rel.Runs(l)) {
				t.Error("samples should not be cached while moving")
			}
			tt.finish(e, af)
			if !sameRuns(rel.Runs(l), rel.Runs(l)) {
				t.Error("samples should be cached again once the move has stopped")
			}
		})
	}
}
