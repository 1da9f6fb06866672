package game

import "github.com/lixenwraith/colormix/core"

// Phase is the Active substate driving which timer is live
type Phase int

const (
	PhaseIdle         Phase = iota
	PhaseCountdown          // game.countdown runs
	PhaseIntermission       // game.intermission runs before the next round
	PhaseCelebration        // winner declared, game.finish pending
)

// String returns the phase name for logs and the state endpoint
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseIntermission:
		return "intermission"
	case PhaseCelebration:
		return "celebration"
	default:
		return "unknown"
	}
}

// State is the round state machine's data
// Invariants: Paused implies Active; CurrentCountdown >= minimum while Active
type State struct {
	Active            bool
	Paused            bool
	Round             int
	StartingCountdown int
	ChangeEveryRounds int
	CurrentCountdown  int
	TimeLeft          int
	SafeColor         core.Color // ColorEmpty when no round is live
	Phase             Phase
}
