package engine

import "github.com/lixenwraith/colormix/logger"

// Service runs a ClockScheduler as a hub-managed service
// deps name services whose output the tick hooks use, so they start first
type Service struct {
	clock *ClockScheduler
	deps  []string
}

// NewService wraps clock
func NewService(clock *ClockScheduler, deps ...string) *Service {
	return &Service{clock: clock, deps: deps}
}

func (s *Service) Name() string           { return "engine" }
func (s *Service) Dependencies() []string { return s.deps }
func (s *Service) Init() error            { return nil }

// Start begins ticking
func (s *Service) Start() error {
	s.clock.Start()
	logger.Info("engine started", "tick", s.clock.TickInterval())
	return nil
}

// Stop halts the tick goroutine; timers stay in the table
func (s *Service) Stop() error {
	s.clock.Stop()
	return nil
}
