package main

import (
	"testing"
	"time"
)

func TestTickerFirstCallPrimes(t *testing.T) {
	var tk ticker
	if steps := tk.advance(time.Unix(0, 0)); steps != 0 {
		t.Fatalf("first call should prime without steps, got %d", steps)
	}
}

func TestTickerCarriesRemainder(t *testing.T) {
	var tk ticker
	now := time.Unix(0, 0)
	tk.advance(now)

	// 1.5 ticks of frame time: one step now, half a tick carried
	now = now.Add(tickDuration + tickDuration/2)
	if steps := tk.advance(now); steps != 1 {
		t.Fatalf("expected 1 step, got %d", steps)
	}

	// another half tick completes the carried remainder
	now = now.Add(tickDuration / 2)
	if steps := tk.advance(now); steps != 1 {
		t.Fatalf("remainder should carry forward, got %d steps", steps)
	}
}

func TestTickerMultipleStepsPerSlowFrame(t *testing.T) {
	var tk ticker
	now := time.Unix(0, 0)
	tk.advance(now)

	now = now.Add(3*tickDuration + tickDuration/4)
	if steps := tk.advance(now); steps != 3 {
		t.Fatalf("slow frame should yield 3 steps, got %d", steps)
	}
}

func TestTickerClampsStalls(t *testing.T) {
	var tk ticker
	now := time.Unix(0, 0)
	tk.advance(now)

	// a multi-second stall must not produce an avalanche of steps
	now = now.Add(10 * time.Second)
	steps := tk.advance(now)
	if max := int(maxFrameDelta / tickDuration); steps > max {
		t.Fatalf("stall produced %d steps, cap is %d", steps, max)
	}
}

func TestTickerStepRateIsFramerateIndependent(t *testing.T) {
	// the same span of wall time must yield the same total steps whether
	// it arrives as 60 Hz or 24 Hz frames
	run := func(frame time.Duration) int {
		var tk ticker
		now := time.Unix(0, 0)
		tk.advance(now)
		total := 0
		for elapsed := time.Duration(0); elapsed < time.Second; elapsed += frame {
			now = now.Add(frame)
			total += tk.advance(now)
		}
		return total
	}

	fast := run(time.Second / 60)
	slow := run(time.Second / 24)
	if diff := fast - slow; diff < -1 || diff > 1 {
		t.Fatalf("step counts diverged: 60Hz=%d 24Hz=%d", fast, slow)
	}
}

func TestTickerReset(t *testing.T) {
	var tk ticker
	now := time.Unix(0, 0)
	tk.advance(now)
	tk.advance(now.Add(tickDuration / 2))

	tk.reset()
	if steps := tk.advance(now.Add(time.Second)); steps != 0 {
		t.Fatalf("reset ticker should re-prime, got %d steps", steps)
	}
}
