// Package game holds the round state machine and its external API.
package game

import (
	"sync/atomic"

	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/engine"
	"github.com/lixenwraith/colormix/engine/fsm"
	"github.com/lixenwraith/colormix/events"
	"github.com/lixenwraith/colormix/logger"
	"github.com/lixenwraith/colormix/status"
)

// Timer keys owned by the scheduler
const (
	KeyCountdown    engine.TimerKey = "game.countdown"
	KeyIntermission engine.TimerKey = "game.intermission"
	KeyFinish       engine.TimerKey = "game.finish"
)

// announceFrom is the highest remaining second that is broadcast
const announceFrom = 5

// Area is the play area as seen by the scheduler
type Area interface {
	IsConfigured() bool
	Fill()
	Strip(keep core.Color)
	RandomColor() core.Color
	Occupants() []core.Player
}

// Effects receives presentation triggers; it has no say in transitions
type Effects interface {
	StartAnnouncement(safe core.Color)
	StopAnnouncement()
	CountdownTick(remaining int)
	CellsStripped()
	// StartCelebration returns the celebration length in ticks
	StartCelebration(winnerID string) int64
	StopAll()
}

// Timers is the clock scheduler's timer table
type Timers interface {
	Schedule(key engine.TimerKey, delay, period int64, fn func())
	Cancel(key engine.TimerKey) bool
}

// Publisher emits game notifications
type Publisher interface {
	Publish(t events.EventType, payload any)
}

// Settings are the tunables read at transition time
type Settings struct {
	MinimumCountdown int
	RoundDelay       int // ticks between strip and the next round
}

// Scheduler is the round state machine
// Every method runs on the tick goroutine
type Scheduler struct {
	area     Area
	fx       Effects
	timers   Timers
	pub      Publisher
	settings Settings

	machine  *fsm.Machine[*Scheduler]
	state    State
	pausedIn Phase

	statActive    *atomic.Bool
	statPaused    *atomic.Bool
	statRound     *atomic.Int64
	statCountdown *atomic.Int64
	statOccupants *atomic.Int64
	statRounds    *atomic.Int64
	statWins      *atomic.Int64
	statDraws     *atomic.Int64
	statSafe      *status.AtomicString
	statPhase     *status.AtomicString
}

// NewScheduler creates an idle scheduler; reg may be nil
func NewScheduler(a Area, fx Effects, timers Timers, pub Publisher, s Settings, reg *status.Registry) *Scheduler {
	if reg == nil {
		reg = status.NewRegistry()
	}
	sc := &Scheduler{
		area:     a,
		fx:       fx,
		timers:   timers,
		pub:      pub,
		settings: normalize(s),

		statActive:    reg.Bools.Get("game.active"),
		statPaused:    reg.Bools.Get("game.paused"),
		statRound:     reg.Ints.Get("game.round"),
		statCountdown: reg.Ints.Get("game.countdown"),
		statOccupants: reg.Ints.Get("game.occupants"),
		statRounds:    reg.Ints.Get("game.rounds"),
		statWins:      reg.Ints.Get("game.wins"),
		statDraws:     reg.Ints.Get("game.draws"),
		statSafe:      reg.Strings.Get("game.safe_color"),
		statPhase:     reg.Strings.Get("game.phase"),
	}
	sc.machine = newRoundMachine()
	if err := sc.machine.Init(sc, stateIdle); err != nil {
		panic(err)
	}
	sc.mirror()
	return sc
}

func normalize(s Settings) Settings {
	s.MinimumCountdown = max(s.MinimumCountdown, 1)
	s.RoundDelay = max(s.RoundDelay, 1)
	return s
}

// SetSettings replaces tunables; takes effect at the next transition that reads them
func (s *Scheduler) SetSettings(st Settings) {
	s.settings = normalize(st)
}

// Settings returns the current tunables
func (s *Scheduler) Settings() Settings {
	return s.settings
}

// State returns a copy of the current state
func (s *Scheduler) State() State {
	return s.state
}

// Start begins a game from Idle
func (s *Scheduler) Start(startingSeconds, changeEveryRounds int) error {
	switch {
	case s.machine.In(stateActive):
		return ErrAlreadyActive
	case !s.area.IsConfigured():
		return ErrAreaNotConfigured
	case startingSeconds < 1:
		return ErrInvalidSeconds
	case changeEveryRounds < 1:
		return ErrInvalidRounds
	}

	s.state = State{
		Active:            true,
		StartingCountdown: startingSeconds,
		ChangeEveryRounds: changeEveryRounds,
		CurrentCountdown:  max(startingSeconds, s.settings.MinimumCountdown),
	}
	s.machine.Fire(s, triggerStart)
	logger.Info("game started", "seconds", startingSeconds, "change_every", changeEveryRounds)
	s.pub.Publish(events.EventGameStarted, &events.GameStartedPayload{
		StartingSeconds:   startingSeconds,
		ChangeEveryRounds: changeEveryRounds,
	})

	s.beginRound()
	return nil
}

// beginRound fills the grid, picks the safe color and starts the countdown
func (s *Scheduler) beginRound() {
	s.state.Round++
	s.area.Fill()
	s.state.SafeColor = s.area.RandomColor()
	s.statRounds.Add(1)

	occupants := len(s.area.Occupants())
	s.statOccupants.Store(int64(occupants))
	logger.Debug("round started", "round", s.state.Round, "color", s.state.SafeColor, "seconds", s.state.CurrentCountdown, "occupants", occupants)

	s.pub.Publish(events.EventRoundStarted, &events.RoundStartedPayload{
		Round:     s.state.Round,
		Occupants: occupants,
		SafeColor: s.state.SafeColor,
		Seconds:   s.state.CurrentCountdown,
	})
	s.startCountdown()
	s.fx.StartAnnouncement(s.state.SafeColor)
}

func (s *Scheduler) startCountdown() {
	s.state.TimeLeft = s.state.CurrentCountdown
	s.timers.Schedule(KeyCountdown, 1, engine.TicksPerSecond, s.countdownTick)
	s.mirror()
}

// countdownTick runs once per second while the countdown is live
func (s *Scheduler) countdownTick() {
	if s.machine.Current() != stateCountdown {
		s.timers.Cancel(KeyCountdown)
		return
	}

	// Occupancy is checked before anything else: a win ends the round on this tick
	if s.settle(s.sample(), events.EventNoPlayersLeft) {
		return
	}

	if s.state.TimeLeft <= 0 {
		s.strip()
		return
	}

	if s.state.TimeLeft <= announceFrom {
		s.pub.Publish(events.EventCountdownTick, &events.CountdownTickPayload{
			Round:     s.state.Round,
			Remaining: s.state.TimeLeft,
			SafeColor: s.state.SafeColor,
		})
		s.fx.CountdownTick(s.state.TimeLeft)
	}
	s.state.TimeLeft--
	if s.state.TimeLeft < 0 {
		panic("countdown went negative")
	}
	s.mirror()
}

// strip removes unsafe cells and re-checks occupancy, since the strip itself eliminates players
func (s *Scheduler) strip() {
	s.timers.Cancel(KeyCountdown)
	s.area.Strip(s.state.SafeColor)
	s.fx.CellsStripped()

	occupants := s.sample()
	s.pub.Publish(events.EventCellsStripped, &events.CellsStrippedPayload{
		Round:     s.state.Round,
		SafeColor: s.state.SafeColor,
		Survivors: len(occupants),
	})
	if s.settle(occupants, events.EventNoWinner) {
		return
	}

	s.machine.Fire(s, triggerStrip)
	s.timers.Schedule(KeyIntermission, int64(s.settings.RoundDelay), 0, s.nextRound)
	s.mirror()
}

// settle ends the game when fewer than two occupants remain; reports whether it did
// emptyEvent distinguishes players leaving mid-countdown from a strip that eliminated everybody
func (s *Scheduler) settle(occupants []core.Player, emptyEvent events.EventType) bool {
	switch len(occupants) {
	case 0:
		s.statDraws.Add(1)
		logger.Info("round ended without players", "round", s.state.Round, "outcome", emptyEvent)
		s.pub.Publish(emptyEvent, &events.RoundPayload{Round: s.state.Round})
		s.Stop()
		return true
	case 1:
		s.declareWinner(occupants[0])
		return true
	default:
		return false
	}
}

func (s *Scheduler) declareWinner(p core.Player) {
	s.timers.Cancel(KeyCountdown)
	s.timers.Cancel(KeyIntermission)
	s.machine.Fire(s, triggerWin)
	s.statWins.Add(1)
	logger.Info("winner declared", "round", s.state.Round, "player", p.Name, "id", p.ID)

	s.pub.Publish(events.EventWinnerDeclared, &events.WinnerPayload{Round: s.state.Round, Winner: p})
	s.fx.StopAnnouncement()
	length := s.fx.StartCelebration(p.ID)
	s.timers.Schedule(KeyFinish, length, 0, s.Stop)
	s.mirror()
}

// nextRound applies the countdown decay and begins the following round
func (s *Scheduler) nextRound() {
	if !s.machine.Fire(s, triggerNextRound) {
		return
	}
	if s.state.Round%s.state.ChangeEveryRounds == 0 && s.state.CurrentCountdown > s.settings.MinimumCountdown {
		s.state.CurrentCountdown--
	}
	s.beginRound()
}

// Pause halts the live timer and all effects, preserving round data
func (s *Scheduler) Pause() error {
	switch {
	case !s.machine.In(stateActive):
		return ErrNotActive
	case s.machine.Current() == statePaused:
		return ErrAlreadyPaused
	case s.machine.Current() == stateCelebration:
		return ErrGameEnding
	}

	s.machine.Fire(s, triggerPause)
	logger.Info("game paused", "round", s.state.Round, "phase", s.pausedIn)

	s.pub.Publish(events.EventGamePaused, &events.RoundPayload{Round: s.state.Round})
	s.mirror()
	return nil
}

// Resume continues a paused game at round granularity
// A countdown pause restarts the same round's countdown from CurrentCountdown;
// an intermission pause proceeds to the next round
func (s *Scheduler) Resume() error {
	switch {
	case !s.machine.In(stateActive):
		return ErrNotActive
	case s.machine.Current() != statePaused:
		return ErrNotPaused
	}

	s.machine.Fire(s, triggerResume)
	logger.Info("game resumed", "round", s.state.Round, "phase", s.pausedIn)
	s.pub.Publish(events.EventGameResumed, &events.RoundPayload{Round: s.state.Round})

	if s.pausedIn == PhaseIntermission {
		s.nextRound()
		return nil
	}

	s.pub.Publish(events.EventRoundStarted, &events.RoundStartedPayload{
		Round:     s.state.Round,
		Occupants: len(s.area.Occupants()),
		SafeColor: s.state.SafeColor,
		Seconds:   s.state.CurrentCountdown,
		Resumed:   true,
	})
	s.startCountdown()
	s.fx.StartAnnouncement(s.state.SafeColor)
	return nil
}

// Stop returns to Idle from any state; always safe
// Cancellations precede the refill. The stop notification fires only when a game was active
func (s *Scheduler) Stop() {
	wasActive := s.state.Active

	s.state = State{}
	s.pausedIn = PhaseIdle
	s.timers.Cancel(KeyCountdown)
	s.timers.Cancel(KeyIntermission)
	s.timers.Cancel(KeyFinish)
	s.fx.StopAll()
	if err := s.machine.Reset(s); err != nil {
		panic(err)
	}
	s.area.Fill()
	s.mirror()

	if wasActive {
		logger.Info("game stopped")
		s.pub.Publish(events.EventGameStopped, nil)
	}
}

func (s *Scheduler) sample() []core.Player {
	occupants := s.area.Occupants()
	s.statOccupants.Store(int64(len(occupants)))
	return occupants
}

// mirror copies state into status metrics for lock-free readers
func (s *Scheduler) mirror() {
	s.statActive.Store(s.state.Active)
	s.statPaused.Store(s.state.Paused)
	s.statRound.Store(int64(s.state.Round))
	s.statCountdown.Store(int64(s.state.CurrentCountdown))
	s.statPhase.Store(s.machine.StateName())
	if s.state.SafeColor.Valid() {
		s.statSafe.Store(s.state.SafeColor.String())
	} else {
		s.statSafe.Store("")
	}
}

// Round machine states; Paused is an Active substate
const (
	stateIdle fsm.StateID = iota + 2
	stateActive
	stateCountdown
	stateIntermission
	stateCelebration
	statePaused
)

const (
	triggerStart     fsm.Trigger = "start"
	triggerStrip     fsm.Trigger = "strip"
	triggerNextRound fsm.Trigger = "next_round"
	triggerWin       fsm.Trigger = "win"
	triggerPause     fsm.Trigger = "pause"
	triggerResume    fsm.Trigger = "resume"
)

// newRoundMachine builds Idle -> Active{Countdown, Intermission, Celebration, Paused}
// Actions only track phase and pause bookkeeping; timers and events stay in the Scheduler methods
func newRoundMachine() *fsm.Machine[*Scheduler] {
	m := fsm.NewMachine[*Scheduler]()
	m.AddState(stateIdle, PhaseIdle.String(), fsm.StateRoot)
	m.AddState(stateActive, "active", fsm.StateRoot)
	m.AddState(stateCountdown, PhaseCountdown.String(), stateActive)
	m.AddState(stateIntermission, PhaseIntermission.String(), stateActive)
	m.AddState(stateCelebration, PhaseCelebration.String(), stateActive)
	m.AddState(statePaused, "paused", stateActive)

	m.OnEnter(stateIdle, enterPhase, PhaseIdle)
	m.OnEnter(stateCountdown, enterPhase, PhaseCountdown)
	m.OnEnter(stateIntermission, enterPhase, PhaseIntermission)
	m.OnEnter(stateCelebration, enterPhase, PhaseCelebration)
	m.OnEnter(statePaused, enterPaused, nil)
	m.OnExit(statePaused, exitPaused, nil)

	m.AddTransition(stateIdle, fsm.Transition[*Scheduler]{Trigger: triggerStart, TargetID: stateCountdown})
	m.AddTransition(stateCountdown, fsm.Transition[*Scheduler]{Trigger: triggerStrip, TargetID: stateIntermission})
	m.AddTransition(stateCountdown, fsm.Transition[*Scheduler]{Trigger: triggerWin, TargetID: stateCelebration})
	m.AddTransition(stateIntermission, fsm.Transition[*Scheduler]{Trigger: triggerNextRound, TargetID: stateCountdown})
	m.AddTransition(stateCountdown, fsm.Transition[*Scheduler]{Trigger: triggerPause, TargetID: statePaused})
	m.AddTransition(stateIntermission, fsm.Transition[*Scheduler]{Trigger: triggerPause, TargetID: statePaused})
	m.AddTransition(statePaused, fsm.Transition[*Scheduler]{
		Trigger:  triggerResume,
		TargetID: stateCountdown,
		Guard:    func(s *Scheduler) bool { return s.pausedIn == PhaseCountdown },
	})
	m.AddTransition(statePaused, fsm.Transition[*Scheduler]{
		Trigger:  triggerResume,
		TargetID: stateIntermission,
		Guard:    func(s *Scheduler) bool { return s.pausedIn == PhaseIntermission },
	})

	if err := m.CompilePaths(); err != nil {
		panic(err)
	}
	return m
}

func enterPhase(s *Scheduler, args any) {
	s.state.Phase = args.(Phase)
}

// enterPaused keeps Phase at the interrupted substate so Resume can route back
func enterPaused(s *Scheduler, _ any) {
	s.pausedIn = s.state.Phase
	s.state.Paused = true
	s.timers.Cancel(KeyCountdown)
	s.timers.Cancel(KeyIntermission)
	s.fx.StopAll()
}

func exitPaused(s *Scheduler, _ any) {
	s.state.Paused = false
}
