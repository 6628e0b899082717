package audio

import (
	"testing"
	"time"
)

func drain(t *testing.T, st interface {
	Stream([][2]float64) (int, bool)
}) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := st.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
}

func TestOscillatorFiniteAndBounded(t *testing.T) {
	st := newOscillator(440, waveSine, 50*time.Millisecond)
	out := drain(t, st)

	want := sampleRate.N(50 * time.Millisecond)
	if len(out) != want {
		t.Fatalf("streamed %d samples, want %d", len(out), want)
	}
	for i, v := range out {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestEnvelopeStartsAndEndsSilent(t *testing.T) {
	st := newEnvelope(newOscillator(440, waveSine, 100*time.Millisecond), 10*time.Millisecond, 80*time.Millisecond, 0.5)
	out := drain(t, st)

	if len(out) != sampleRate.N(80*time.Millisecond) {
		t.Fatalf("envelope should truncate to its total length, got %d", len(out))
	}
	if out[0] != 0 {
		t.Fatalf("attack should start at zero volume, got %v", out[0])
	}
	peak := 0.0
	for _, v := range out {
		if v > peak {
			peak = v
		}
	}
	if peak > 0.5+1e-9 {
		t.Fatalf("gain cap exceeded: peak %v", peak)
	}
	if tail := out[len(out)-1]; tail > 0.01 || tail < -0.01 {
		t.Fatalf("release should end near silence, got %v", tail)
	}
}

func TestMutedSoundsAreNoOps(t *testing.T) {
	// never initialized: play must be a harmless no-op
	s := &Sounds{}
	s.Footstep()
	s.GoalChime()
	s.SetMuted(true)
	s.Footstep()
}
