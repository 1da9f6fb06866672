package area

import "github.com/lixenwraith/colormix/core"

// SetupStep is the outcome of a setup click
type SetupStep int

const (
	StepIgnored       SetupStep = iota // Selector not armed or click from another player
	StepFirstCorner                    // Corner A recorded, waiting for corner B
	StepComplete                       // Both corners recorded, area configured, selector disarmed
	StepWorldMismatch                  // Corner B in a different world than A, A kept
)

// String returns a short label for logs
func (s SetupStep) String() string {
	switch s {
	case StepIgnored:
		return "ignored"
	case StepFirstCorner:
		return "first_corner"
	case StepComplete:
		return "complete"
	case StepWorldMismatch:
		return "world_mismatch"
	default:
		return "unknown"
	}
}

// Configurer receives the finished corner pair
type Configurer interface {
	Configure(a, b core.BlockPos) error
}

// Selector runs the two-click setup protocol for one player at a time
// The pending corner is held here; the target is configured only with a full pair
type Selector struct {
	target  Configurer
	armed   bool
	setter  string
	pending *core.BlockPos
}

// NewSelector creates a disarmed selector
func NewSelector(target Configurer) *Selector {
	return &Selector{target: target}
}

// Begin arms the selector for playerID, discarding any pending corner
func (s *Selector) Begin(playerID string) {
	s.armed = true
	s.setter = playerID
	s.pending = nil
}

// Cancel disarms without configuring
func (s *Selector) Cancel() {
	s.armed = false
	s.setter = ""
	s.pending = nil
}

// Armed reports whether a setup is in progress
func (s *Selector) Armed() bool {
	return s.armed
}

// Setter returns the player performing the setup
func (s *Selector) Setter() string {
	return s.setter
}

// Click feeds one clicked block
func (s *Selector) Click(playerID string, pos core.BlockPos) SetupStep {
	if !s.armed || playerID != s.setter {
		return StepIgnored
	}

	if s.pending == nil {
		p := pos
		s.pending = &p
		return StepFirstCorner
	}

	if err := s.target.Configure(*s.pending, pos); err != nil {
		return StepWorldMismatch
	}
	s.Cancel()
	return StepComplete
}
