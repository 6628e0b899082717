package main

import "time"

const (
	tickDuration = time.Second / 60
	tickSeconds  = 1.0 / 60.0

	// slow frames are clamped so a stall doesn't trigger a step avalanche
	maxFrameDelta = time.Second / 4
)

// ticker is a fixed-timestep accumulator: it converts variable wall-clock
// frame deltas into a whole number of physics steps, carrying the remainder
// forward so simulation speed is independent of display framerate.
type ticker struct {
	last time.Time
	acc  time.Duration
}

// advance reports how many fixed steps fit into the time elapsed since the
// previous call. The first call primes the clock and yields no steps.
func (t *ticker) advance(now time.Time) int {
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	frame := now.Sub(t.last)
	t.last = now
	if frame < 0 {
		frame = 0
	}
	if frame > maxFrameDelta {
		frame = maxFrameDelta
	}
	t.acc += frame

	steps := int(t.acc / tickDuration)
	t.acc -= time.Duration(steps) * tickDuration
	return steps
}

// reset drops accumulated time, e.g. across a level load so the new level
// doesn't begin with a burst of catch-up steps.
func (t *ticker) reset() {
	t.last = time.Time{}
	t.acc = 0
}
