// Package audio plays the walker's sound effects: footsteps scaled to
// actual displacement and a chime on reaching the goal. Everything is
// synthesized; there are no sample assets.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sounds owns the speaker and mixer. Safe to use as a no-op when muted or
// when speaker init fails (e.g. headless machines).
type Sounds struct {
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSounds initializes the speaker. Initialization failure disables audio
// rather than failing the game.
func NewSounds(muted bool) *Sounds {
	s := &Sounds{mixer: &beep.Mixer{}, muted: muted}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return s
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return s
}

// SetMuted toggles all effect playback.
func (s *Sounds) SetMuted(muted bool) { s.muted = muted }

// Footstep plays a short filtered noise burst.
func (s *Sounds) Footstep() {
	s.play(newEnvelope(newOscillator(90, waveNoise, 80*time.Millisecond), 5*time.Millisecond, 60*time.Millisecond, 0.25))
}

// GoalChime plays a rising two-note arpeggio.
func (s *Sounds) GoalChime() {
	first := newEnvelope(newOscillator(523.25, waveSine, 180*time.Millisecond), 10*time.Millisecond, 120*time.Millisecond, 0.5)
	second := newEnvelope(newOscillator(783.99, waveSine, 320*time.Millisecond), 10*time.Millisecond, 220*time.Millisecond, 0.5)
	s.play(beep.Seq(first, second))
}

func (s *Sounds) play(st beep.Streamer) {
	if !s.initialized || s.muted {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

type waveType int

const (
	waveSine waveType = iota
	waveNoise
)

// oscillator is a finite beep.Streamer producing a raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	wave     waveType
	position int
	duration int
}

func newOscillator(freq float64, wave waveType, d time.Duration) beep.Streamer {
	return &oscillator{freq: freq, wave: wave, duration: sampleRate.N(d)}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}
		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a streamer with linear attack and release and an overall
// gain, so bursts don't click.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
	gain     float64
}

func newEnvelope(st beep.Streamer, attack, total time.Duration, gain float64) beep.Streamer {
	totalN := sampleRate.N(total)
	attackN := sampleRate.N(attack)
	release := totalN - attackN
	if release < 0 {
		release = 0
	}
	return &envelope{streamer: st, attack: attackN, release: release, total: totalN, gain: gain}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, false
		}
		vol := e.gain
		if e.position < e.attack && e.attack > 0 {
			vol *= float64(e.position) / float64(e.attack)
		} else if e.release > 0 {
			remaining := e.total - e.position
			vol *= float64(remaining) / float64(e.release)
			if vol > e.gain {
				vol = e.gain
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return nil }
