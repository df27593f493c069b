package vellum

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimationState is the lifecycle position of an AnimationFrame.
type AnimationState uint8

const (
	AnimationPending   AnimationState = iota // created, not yet ticked
	AnimationRunning                         // start time fixed, ticking
	AnimationCompleted                       // completion callback fired
	AnimationCancelled                       // stopped by Cancel
)

func (s AnimationState) String() string {
	switch s {
	case AnimationPending:
		return "pending"
	case AnimationRunning:
		return "running"
	case AnimationCompleted:
		return "completed"
	case AnimationCancelled:
		return "cancelled"
	}
	return "unknown"
}

// StepFunc receives the time elapsed since an animation's first tick.
type StepFunc func(elapsed time.Duration)

// AnimationFrame drives one animation across render passes. Each call to
// Next performs a single step and, until the duration has elapsed,
// re-enqueues itself through the shape's scene so that it advances once
// per render pass.
type AnimationFrame struct {
	shape    Shape
	duration time.Duration
	step     StepFunc
	done     func()

	// Vars holds arbitrary per-animation values for step callbacks.
	Vars map[string]any

	startTime      time.Time
	started        bool
	settled        bool // final step applied, waiting for the pass that draws it
	callbackCalled bool
	cancelled      bool
}

// NewAnimationFrame validates its arguments and returns a pending frame.
// done may be nil.
func NewAnimationFrame(shape Shape, duration time.Duration, step StepFunc, done func()) (*AnimationFrame, error) {
	const op = "NewAnimationFrame"
	if shape == nil {
		return nil, argumentError(op, "shape is nil")
	}
	if duration < 0 {
		return nil, argumentError(op, "negative duration %v", duration)
	}
	if step == nil {
		return nil, argumentError(op, "step callback is nil")
	}
	return &AnimationFrame{
		shape:    shape,
		duration: duration,
		step:     step,
		done:     done,
		Vars:     make(map[string]any),
	}, nil
}

// Next advances the animation to now. The first call fixes the start time.
// While the elapsed time is below the duration the frame requests another
// render pass. Once it is reached the step runs a final time and one more
// pass is requested so the final state gets drawn; the completion callback
// fires on that pass, exactly once however often Next is called.
func (a *AnimationFrame) Next(now time.Time) {
	if a.cancelled || a.callbackCalled {
		return
	}
	if !a.started {
		a.startTime = now
		a.started = true
	}
	elapsed := now.Sub(a.startTime)
	if elapsed < a.duration {
		a.step(elapsed)
		a.request()
		return
	}
	if !a.settled {
		a.settled = true
		a.step(elapsed)
		// Hooks run after the redraw, so the final state needs its own pass.
		if sc := a.shape.Scene(); sc != nil && sc.RequestRendering(a.shape, a.Next) == nil {
			return
		}
	}
	a.callbackCalled = true
	if a.done != nil {
		a.done()
	}
}

// Start enqueues the first tick with the shape's scene.
func (a *AnimationFrame) Start() error {
	sc := a.shape.Scene()
	if sc == nil {
		return illegalOperation("AnimationFrame.Start", "shape %s is not on a scene", a.shape.ID())
	}
	return sc.RequestRendering(a.shape, a.Next)
}

func (a *AnimationFrame) request() {
	sc := a.shape.Scene()
	if sc == nil {
		Logger().Warn("animation stopped: shape left its scene", "shape", a.shape.ID())
		a.cancelled = true
		return
	}
	if err := sc.RequestRendering(a.shape, a.Next); err != nil {
		Logger().Warn("animation stopped", "shape", a.shape.ID(), "error", err)
		a.cancelled = true
	}
}

// Reset returns the frame to the pending state so it can be started again.
func (a *AnimationFrame) Reset() {
	a.callbackCalled = false
	a.started = false
	a.settled = false
	a.cancelled = false
	a.startTime = time.Time{}
}

// Cancel stops the animation. Pending ticks become no-ops and the
// completion callback never fires.
func (a *AnimationFrame) Cancel() {
	a.cancelled = true
}

// State reports where the frame is in its lifecycle.
func (a *AnimationFrame) State() AnimationState {
	switch {
	case a.cancelled:
		return AnimationCancelled
	case a.callbackCalled:
		return AnimationCompleted
	case a.started:
		return AnimationRunning
	default:
		return AnimationPending
	}
}

// Duration returns the total animation time.
func (a *AnimationFrame) Duration() time.Duration { return a.duration }

// Shape returns the animated shape.
func (a *AnimationFrame) Shape() Shape { return a.shape }

// --- Interpolation ---

// tweenSet animates a set of float64 fields towards fixed targets. Values
// are produced by gween tweens while running; finish writes the exact
// targets so the final state never carries tween rounding.
type tweenSet struct {
	tweens  []*gween.Tween
	fields  []*float64
	targets []float64
}

func (ts *tweenSet) add(field *float64, to float64, d time.Duration, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	secs := float32(d.Seconds())
	if secs <= 0 {
		secs = 1
	}
	ts.tweens = append(ts.tweens, gween.New(float32(*field), float32(to), secs, fn))
	ts.fields = append(ts.fields, field)
	ts.targets = append(ts.targets, to)
}

// addCoord registers the X, Y and Z components of c.
func (ts *tweenSet) addCoord(c *Coord, to Coord, d time.Duration, fn ease.TweenFunc) {
	ts.add(&c.X, to.X, d, fn)
	ts.add(&c.Y, to.Y, d, fn)
	ts.add(&c.Z, to.Z, d, fn)
}

// set writes the interpolated values at elapsed.
func (ts *tweenSet) set(elapsed time.Duration) {
	t := float32(elapsed.Seconds())
	for i, tw := range ts.tweens {
		v, _ := tw.Set(t)
		*ts.fields[i] = float64(v)
	}
}

func (ts *tweenSet) finish() {
	for i, f := range ts.fields {
		*f = ts.targets[i]
	}
}

// easedRatio maps elapsed/d through fn, clamped to [0, 1].
func easedRatio(elapsed, d time.Duration, fn ease.TweenFunc) float64 {
	if d <= 0 || elapsed >= d {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	if fn == nil {
		fn = ease.Linear
	}
	r := float64(fn(float32(elapsed.Seconds()), 0, 1, float32(d.Seconds())))
	return r
}

// --- Sequences ---

// SequenceStep starts one animation and arranges for done to run when it
// completes.
type SequenceStep func(done func()) (*AnimationFrame, error)

// Sequence plays steps one after another on the shared scheduler.
type Sequence struct {
	steps     []SequenceStep
	index     int
	current   *AnimationFrame
	done      func()
	cancelled bool
	finished  bool
	err       error
}

// Play starts steps in order and calls done after the last one completes.
// An error from the first step is returned; errors from later steps stop
// the sequence and are reported by Err.
func Play(done func(), steps ...SequenceStep) (*Sequence, error) {
	if len(steps) == 0 {
		return nil, argumentError("Play", "empty sequence")
	}
	for i, s := range steps {
		if s == nil {
			return nil, argumentError("Play", "step %d is nil", i)
		}
	}
	seq := &Sequence{steps: steps, done: done}
	if err := seq.run(); err != nil {
		return nil, err
	}
	return seq, nil
}

func (s *Sequence) run() error {
	if s.cancelled {
		return nil
	}
	if s.index >= len(s.steps) {
		s.finished = true
		s.current = nil
		if s.done != nil {
			s.done()
		}
		return nil
	}
	step := s.steps[s.index]
	af, err := step(func() {
		s.index++
		if err := s.run(); err != nil {
			s.err = err
			Logger().Warn("sequence stopped", "step", s.index, "error", err)
		}
	})
	if err != nil {
		return err
	}
	if af != nil && !af.callbackCalled {
		s.current = af
	}
	return nil
}

// Cancel stops the running step and skips the rest.
func (s *Sequence) Cancel() {
	s.cancelled = true
	if s.current != nil {
		s.current.Cancel()
	}
}

// Index returns the position of the running step.
func (s *Sequence) Index() int { return s.index }

// Len returns the number of steps.
func (s *Sequence) Len() int { return len(s.steps) }

// Done reports whether every step completed.
func (s *Sequence) Done() bool { return s.finished }

// Err returns the error that stopped the sequence, if any.
func (s *Sequence) Err() error { return s.err }

// TranslateStep is a SequenceStep that moves s by (dx, dy) over d.
func TranslateStep(s Shape, d time.Duration, dx, dy float64) SequenceStep {
	return func(done func()) (*AnimationFrame, error) {
		return s.Translate(d, dx, dy, done)
	}
}

// WaitStep is a SequenceStep that holds s still for d.
func WaitStep(s Shape, d time.Duration) SequenceStep {
	return func(done func()) (*AnimationFrame, error) {
		return s.Animate(d, func(float64) {}, done)
	}
}
