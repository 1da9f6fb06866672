package game

import (
	"context"
	"sync/atomic"

	"github.com/lixenwraith/colormix/area"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/events"
	"github.com/lixenwraith/colormix/logger"
)

// Executor runs functions on the tick goroutine
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

// Facade is the external API: it validates preconditions and marshals every
// call onto the tick goroutine, so callers on any goroutine are safe
type Facade struct {
	exec     Executor
	sched    *Scheduler
	model    *area.Model
	selector *area.Selector
	pub      Publisher

	hasArea atomic.Bool
}

// NewFacade wires the API surface over an owned scheduler and area model
func NewFacade(exec Executor, sched *Scheduler, model *area.Model, pub Publisher) *Facade {
	f := &Facade{
		exec:     exec,
		sched:    sched,
		model:    model,
		selector: area.NewSelector(model),
		pub:      pub,
	}
	f.hasArea.Store(model.IsConfigured())
	return f
}

// IsActive reads the mirrored state without a round trip
func (f *Facade) IsActive() bool {
	return f.sched.statActive.Load()
}

// IsPaused reads the mirrored state without a round trip
func (f *Facade) IsPaused() bool {
	return f.sched.statPaused.Load()
}

// HasArea reports whether both corners are configured
func (f *Facade) HasArea() bool {
	return f.hasArea.Load()
}

// State returns a consistent copy of the scheduler state
func (f *Facade) State(ctx context.Context) (State, error) {
	var st State
	err := f.exec.Do(ctx, func() { st = f.sched.State() })
	return st, err
}

// OccupantCount samples the play volume
func (f *Facade) OccupantCount(ctx context.Context) (int, error) {
	list, err := f.OccupantList(ctx)
	return len(list), err
}

// OccupantList samples the play volume, sorted by player ID
func (f *Facade) OccupantList(ctx context.Context) ([]core.Player, error) {
	var list []core.Player
	err := f.exec.Do(ctx, func() { list = f.model.Occupants() })
	return list, err
}

// Start begins a game
func (f *Facade) Start(ctx context.Context, startingSeconds, changeEveryRounds int) error {
	return f.run(ctx, func() error {
		if err := f.sched.Start(startingSeconds, changeEveryRounds); err != nil {
			return err
		}
		f.selector.Cancel()
		return nil
	})
}

// Stop ends an active game
func (f *Facade) Stop(ctx context.Context) error {
	return f.run(ctx, func() error {
		if !f.sched.State().Active {
			return ErrNotActive
		}
		f.sched.Stop()
		return nil
	})
}

// Pause halts the running round
func (f *Facade) Pause(ctx context.Context) error {
	return f.run(ctx, f.sched.Pause)
}

// Resume continues a paused game
func (f *Facade) Resume(ctx context.Context) error {
	return f.run(ctx, f.sched.Resume)
}

// Reload stops any active game, applies settings and runs apply on the tick goroutine
func (f *Facade) Reload(ctx context.Context, s Settings, apply func()) error {
	return f.run(ctx, func() error {
		f.sched.Stop()
		f.sched.SetSettings(s)
		if apply != nil {
			apply()
		}
		return nil
	})
}

// BeginSetup arms the two-click area setup for playerID
func (f *Facade) BeginSetup(ctx context.Context, playerID string) error {
	return f.run(ctx, func() error {
		if f.sched.State().Active {
			return ErrSetupWhileActive
		}
		if f.selector.Armed() && f.selector.Setter() != playerID {
			logger.Info("area setup taken over", "from", f.selector.Setter(), "player", playerID)
		}
		f.selector.Begin(playerID)
		f.pub.Publish(events.EventSetupStep, &events.SetupStepPayload{
			PlayerID: playerID,
			Phase:    events.SetupArmed,
		})
		return nil
	})
}

// Click feeds a clicked block to the setup protocol
// Clicks that are not part of an armed setup return StepIgnored
func (f *Facade) Click(ctx context.Context, playerID string, pos core.BlockPos) (area.SetupStep, error) {
	var step area.SetupStep
	err := f.run(ctx, func() error {
		step = f.click(playerID, pos)
		return nil
	})
	return step, err
}

func (f *Facade) click(playerID string, pos core.BlockPos) area.SetupStep {
	if f.sched.State().Active {
		return area.StepIgnored
	}

	step := f.selector.Click(playerID, pos)
	var phase events.SetupPhase
	switch step {
	case area.StepFirstCorner:
		phase = events.SetupFirstCorner
	case area.StepWorldMismatch:
		phase = events.SetupWorldMismatch
	case area.StepComplete:
		phase = events.SetupComplete
		f.model.Fill()
		f.hasArea.Store(true)
		if b, ok := f.model.Bounds(); ok {
			logger.Info("play area configured", "world", pos.World,
				"min_x", b.MinX, "max_x", b.MaxX, "min_z", b.MinZ, "max_z", b.MaxZ, "ground_y", b.GroundY)
		}
	default:
		return step
	}

	f.pub.Publish(events.EventSetupStep, &events.SetupStepPayload{
		PlayerID: playerID,
		Phase:    phase,
		Pos:      pos,
	})
	return step
}

// ConfigureArea sets both corners directly, for hosts that know the area up front
func (f *Facade) ConfigureArea(ctx context.Context, a, b core.BlockPos) error {
	return f.run(ctx, func() error {
		if f.sched.State().Active {
			return ErrSetupWhileActive
		}
		if err := f.model.Configure(a, b); err != nil {
			return err
		}
		f.model.Fill()
		f.hasArea.Store(true)
		return nil
	})
}

func (f *Facade) run(ctx context.Context, fn func() error) error {
	var err error
	if doErr := f.exec.Do(ctx, func() { err = fn() }); doErr != nil {
		return doErr
	}
	return err
}
