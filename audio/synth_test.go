package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/colormix/core"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 50*time.Millisecond, wave, rate)
		total, peak := drain(osc)
		if total != rate.N(50*time.Millisecond) {
			t.Errorf("wave %d streamed %d samples, want %d", wave, total, rate.N(50*time.Millisecond))
		}
		if peak > 1.0 || peak == 0 {
			t.Errorf("wave %d peak %f out of range", wave, peak)
		}
	}
}

func TestEnvelopeEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	env := NewEnvelope(NewOscillator(0, time.Second, WaveSquare, rate), time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	if n != 1000 {
		t.Fatalf("streamed %d, want 1000", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("attack must start silent, got %f", buf[0][0])
	}
	if buf[500][0] != 1 {
		t.Errorf("sustain must be full gain, got %f", buf[500][0])
	}
	if buf[999][0] > 0.02 {
		t.Errorf("release must end near silence, got %f", buf[999][0])
	}
}

func TestCuesAreFinite(t *testing.T) {
	for s := core.SoundType(0); s < core.SoundTypeCount; s++ {
		cue := Cue(s, sampleRate)
		if cue == nil {
			t.Fatalf("no cue for %s", s)
		}
		total, peak := drain(cue)
		if total == 0 || total > sampleRate.N(2*time.Second) {
			t.Errorf("%s length %d samples", s, total)
		}
		if peak == 0 || peak > 1.5 {
			t.Errorf("%s peak %f", s, peak)
		}
	}
	if Cue(core.SoundTypeCount, sampleRate) != nil {
		t.Error("unknown sound must have no cue")
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager(DefaultConfig())
	sm.Play(core.SoundVictory)
	sm.Cleanup()
	if sm.Played(core.SoundVictory) != 0 {
		t.Error("uninitialized manager must not queue cues")
	}
	if !sm.ToggleMute() || !sm.IsMuted() {
		t.Error("first toggle should mute")
	}
	if sm.ToggleMute() {
		t.Error("second toggle should unmute")
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewService(false, DefaultConfig())
	if err := svc.Init(); err != nil {
		t.Fatal(err)
	}
	if err := svc.Start(); err != nil {
		t.Fatal(err)
	}
	if !svc.IsDisabled() {
		t.Error("service with audio off must report disabled")
	}
	svc.Play(core.SoundCountdown)
	if err := svc.Stop(); err != nil {
		t.Fatal(err)
	}
}
