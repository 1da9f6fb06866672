package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a controllable clock for tests
// Hook Step to a scheduler with BeforeTick to keep it in lockstep with ticks
type MockTimeProvider struct {
	mu      sync.RWMutex
	current time.Time
	step    time.Duration
}

// NewMockTimeProvider starts at start and advances by step on each Step call
func NewMockTimeProvider(start time.Time, step time.Duration) *MockTimeProvider {
	return &MockTimeProvider{current: start, step: step}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}

// Step advances by the configured step; its signature matches TickHook
func (m *MockTimeProvider) Step(int64) {
	m.Advance(m.step)
}
