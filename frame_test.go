package vellum

import (
	"testing"
	"time"
)

func TestFrameLoopDefersReRequests(t *testing.T) {
	loop := NewFrameLoop()
	runs := 0
	var fn func(time.Time)
	fn = func(time.Time) {
		runs++
		if runs < 3 {
			loop.RequestFrame(fn)
		}
	}
	loop.RequestFrame(fn)

	now := time.Unix(0, 0)
	for i, want := range []int{1, 1, 1, 0} {
		if got := loop.Tick(now); got != want {
			t.Errorf("tick %d ran %d callbacks, want %d", i, got, want)
		}
	}
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
	if loop.Frame() != 4 {
		t.Errorf("Frame = %d, want 4", loop.Frame())
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", loop.Pending())
	}
}

func TestFrameLoopPassesTimestamp(t *testing.T) {
	loop := NewFrameLoop()
	var got []time.Time
	loop.RequestFrame(func(now time.Time) { got = append(got, now) })
	loop.RequestFrame(func(now time.Time) { got = append(got, now) })
	if loop.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", loop.Pending())
	}
	at := time.Unix(42, 0)
	loop.Tick(at)
	if len(got) != 2 || !got[0].Equal(at) || !got[1].Equal(at) {
		t.Errorf("timestamps = %v", got)
	}
}
