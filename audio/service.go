package audio

import (
	"sync/atomic"

	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/logger"
)

// Service wraps SoundManager as a host service
// A missing audio device disables sound instead of failing startup
type Service struct {
	enabled  bool
	manager  *SoundManager
	disabled atomic.Bool
}

// NewService creates the audio service; enabled false keeps it silent
func NewService(enabled bool, cfg Config) *Service {
	return &Service{
		enabled: enabled,
		manager: NewSoundManager(cfg),
	}
}

// Name implements service.Service
func (s *Service) Name() string { return "audio" }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return nil }

// Init implements service.Service
func (s *Service) Init() error {
	if !s.enabled {
		s.disabled.Store(true)
	}
	return nil
}

// Start opens the speaker; failure disables audio, no error returned
func (s *Service) Start() error {
	if s.disabled.Load() {
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		logger.Warn("audio unavailable", "err", err)
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	s.manager.Cleanup()
	return nil
}

// Play implements effects.SoundPlayer
func (s *Service) Play(t core.SoundType) {
	if s.disabled.Load() {
		return
	}
	s.manager.Play(t)
}

// IsDisabled reports whether audio is unavailable
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// Manager returns the underlying sound manager
func (s *Service) Manager() *SoundManager {
	return s.manager
}
