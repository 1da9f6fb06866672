package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/colormix/core"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferSize = 100 * time.Millisecond
)

// Config holds per-cue and master gain
type Config struct {
	MasterVolume float64
	Volumes      [core.SoundTypeCount]float64
}

// DefaultConfig plays every cue at full gain
func DefaultConfig() Config {
	cfg := Config{MasterVolume: 0.8}
	for i := range cfg.Volumes {
		cfg.Volumes[i] = 1.0
	}
	cfg.Volumes[core.SoundFirework] = 0.6
	return cfg
}

// SoundManager mixes cues into the speaker
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool
	played      [core.SoundTypeCount]atomic.Int64
}

// NewSoundManager creates an uninitialized manager; Play is a no-op until Initialize
func NewSoundManager(cfg Config) *SoundManager {
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops queued cues and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Play queues the cue for s, never blocking the caller on audio output
func (sm *SoundManager) Play(s core.SoundType) {
	if s < 0 || s >= core.SoundTypeCount || sm.muted.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	streamer := sm.build(s)
	if streamer == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played[s].Add(1)
}

// build applies the configured gain to the cue
func (sm *SoundManager) build(s core.SoundType) beep.Streamer {
	cue := Cue(s, sampleRate)
	if cue == nil {
		return nil
	}
	return newVolume(cue, sm.cfg.Volumes[s]*sm.cfg.MasterVolume)
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports whether cues are dropped
func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// Played returns how many times s reached the mixer
func (sm *SoundManager) Played(s core.SoundType) int64 {
	if s < 0 || s >= core.SoundTypeCount {
		return 0
	}
	return sm.played[s].Load()
}
