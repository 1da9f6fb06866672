package events

import (
	"time"

	"github.com/lixenwraith/colormix/core"
)

// EventType represents the type of game event
type EventType int

const (
	// EventGameStarted marks the Idle to Active transition
	// Trigger: Scheduler.Start | Payload: *GameStartedPayload
	EventGameStarted EventType = iota

	// EventRoundStarted announces a freshly filled grid and its safe color
	// Trigger: beginRound, Resume after a countdown pause
	// Consumer: Notifier (round header), bots | Payload: *RoundStartedPayload
	EventRoundStarted

	// EventCountdownTick reports remaining seconds during the last five
	// Trigger: countdown timer | Payload: *CountdownTickPayload
	EventCountdownTick

	// EventCellsStripped signals every unsafe cell vanished
	// Trigger: countdown expiry | Payload: *CellsStrippedPayload
	EventCellsStripped

	// EventWinnerDeclared signals exactly one occupant remained
	// Trigger: pre-decrement or post-strip occupant check | Payload: *WinnerPayload
	EventWinnerDeclared

	// EventNoPlayersLeft signals the area emptied during a countdown
	// Payload: *RoundPayload
	EventNoPlayersLeft

	// EventNoWinner signals the strip eliminated everybody
	// Payload: *RoundPayload
	EventNoWinner

	// EventGamePaused and EventGameResumed follow Scheduler.Pause/Resume
	// Payload: *RoundPayload
	EventGamePaused
	EventGameResumed

	// EventGameStopped marks an Active to Idle transition
	// Payload: nil
	EventGameStopped

	// EventSetupStep reports progress of the two-click area setup to the setter
	// Trigger: Facade.BeginSetup, Facade.Click | Payload: *SetupStepPayload
	EventSetupStep

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	"game_started", "round_started", "countdown_tick", "cells_stripped",
	"winner_declared", "no_players_left", "no_winner",
	"game_paused", "game_resumed", "game_stopped", "setup_step",
}

// String returns the snake_case name used in logs and on the wire
func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "unknown"
	}
	return eventTypeNames[t]
}

// AllTypes lists every event type, for handlers that want everything
func AllTypes() []EventType {
	out := make([]EventType, eventTypeCount)
	for i := range out {
		out[i] = EventType(i)
	}
	return out
}

// GameEvent is one published notification
type GameEvent struct {
	Type      EventType
	Payload   any
	Tick      int64
	Timestamp time.Time
}

// GameStartedPayload carries the settings of a new game
type GameStartedPayload struct {
	StartingSeconds   int
	ChangeEveryRounds int
}

// RoundStartedPayload carries what players need to survive the round
type RoundStartedPayload struct {
	Round     int
	Occupants int
	SafeColor core.Color
	Seconds   int
	Resumed   bool
}

// CountdownTickPayload carries the remaining seconds before the strip
type CountdownTickPayload struct {
	Round     int
	Remaining int
	SafeColor core.Color
}

// CellsStrippedPayload reports the strip outcome
type CellsStrippedPayload struct {
	Round     int
	SafeColor core.Color
	Survivors int
}

// WinnerPayload names the last player standing
type WinnerPayload struct {
	Round  int
	Winner core.Player
}

// RoundPayload carries only the round number
type RoundPayload struct {
	Round int
}

// SetupPhase is the stage a setup event reports
type SetupPhase int

const (
	SetupArmed SetupPhase = iota
	SetupFirstCorner
	SetupComplete
	SetupWorldMismatch
)

// SetupStepPayload addresses a setup reply to the setter
type SetupStepPayload struct {
	PlayerID string
	Phase    SetupPhase
	Pos      core.BlockPos
}
