package vellum

import (
	"sync"
	"time"
)

// Hook runs after a render pass has redrawn every affected layer. Hooks are
// either an AnimationFrame advance (AnimationFrame.Next) or plain callbacks.
type Hook func(now time.Time)

// Clock supplies frame timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Scheduler is the "run this before the next repaint" abstraction. Scenes
// request at most one frame at a time.
type Scheduler interface {
	RequestFrame(fn func(now time.Time))
}

// FrameLoop is a manually ticked Scheduler. Callbacks requested while a tick
// is running are deferred to the following tick, so a callback that
// re-requests itself runs once per tick.
type FrameLoop struct {
	mu      sync.Mutex
	pending []func(time.Time)
	running []func(time.Time)
	frame   uint64
}

// NewFrameLoop returns an empty frame loop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// RequestFrame queues fn for the next Tick.
func (l *FrameLoop) RequestFrame(fn func(now time.Time)) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

// Tick runs every callback queued before the call and returns how many ran.
func (l *FrameLoop) Tick(now time.Time) int {
	l.mu.Lock()
	l.running, l.pending = l.pending, l.running[:0]
	batch := l.running
	l.frame++
	l.mu.Unlock()

	for i, fn := range batch {
		fn(now)
		batch[i] = nil
	}
	return len(batch)
}

// Pending returns the number of callbacks waiting for the next Tick.
func (l *FrameLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Frame returns the number of ticks run so far.
func (l *FrameLoop) Frame() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame
}
