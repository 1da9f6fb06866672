// Package audio synthesizes and plays the game's sound cues through beep
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/lixenwraith/colormix/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a streamer of one wave shape for duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq*1000), uint64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; zero or less is silent
// math.Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one enveloped oscillator
func tone(freq float64, d time.Duration, wave WaveType, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// Cue durations
const (
	countdownDuration = 120 * time.Millisecond
	removalDuration   = 450 * time.Millisecond
	fireworkDuration  = 220 * time.Millisecond
	victoryNote       = 140 * time.Millisecond
)

// createCountdownSound is a bright two-partial pling
func createCountdownSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(1318.51, countdownDuration, WaveSine, 5*time.Millisecond, 100*time.Millisecond, rate), 0.7),
		newVolume(tone(2637.02, countdownDuration, WaveSine, 5*time.Millisecond, 60*time.Millisecond, rate), 0.3),
	)
}

// createRemovalSound is a noise burst over a low rumble
func createRemovalSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(0, removalDuration, WaveNoise, 2*time.Millisecond, 400*time.Millisecond, rate), 0.5),
		newVolume(tone(60, removalDuration, WaveSaw, 2*time.Millisecond, 300*time.Millisecond, rate), 0.4),
	)
}

// createFireworkSound is a rising whistle followed by a crackle
func createFireworkSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newVolume(tone(1760, fireworkDuration/2, WaveSine, 20*time.Millisecond, 20*time.Millisecond, rate), 0.25),
		newVolume(tone(0, fireworkDuration, WaveNoise, 1*time.Millisecond, 180*time.Millisecond, rate), 0.45),
	)
}

// createVictorySound is a major arpeggio ending on the octave
func createVictorySound(rate beep.SampleRate) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.50}
	seq := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		d := victoryNote
		if i == len(notes)-1 {
			d *= 3
		}
		seq[i] = tone(f, d, WaveSquare, 5*time.Millisecond, d/2, rate)
	}
	return newVolume(beep.Seq(seq...), 0.35)
}

// Cue builds the streamer for s, nil for unknown types
func Cue(s core.SoundType, rate beep.SampleRate) beep.Streamer {
	switch s {
	case core.SoundCountdown:
		return createCountdownSound(rate)
	case core.SoundRemoval:
		return createRemovalSound(rate)
	case core.SoundFirework:
		return createFireworkSound(rate)
	case core.SoundVictory:
		return createVictorySound(rate)
	default:
		return nil
	}
}
