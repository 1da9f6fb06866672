package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/colormix/area"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/engine"
	"github.com/lixenwraith/colormix/events"
	"github.com/lixenwraith/colormix/world"
)

type facadeFixture struct {
	clock  *engine.ClockScheduler
	world  *world.World
	model  *area.Model
	fx     *fakeEffects
	facade *Facade
	setup  []events.SetupPhase
}

func newFacadeFixture() *facadeFixture {
	f := &facadeFixture{
		clock: engine.NewClockScheduler(0, nil),
		world: world.New(54),
		fx:    &fakeEffects{length: 20},
	}
	f.model = area.NewModel(f.world, rand.New(rand.NewPCG(3, 4)))
	bus := events.NewBus(nil, f.clock.Now)
	bus.Register(events.HandlerFunc{
		Types: []events.EventType{events.EventSetupStep},
		Fn: func(ev events.GameEvent) {
			f.setup = append(f.setup, ev.Payload.(*events.SetupStepPayload).Phase)
		},
	})
	sched := NewScheduler(f.model, f.fx, f.clock, bus, Settings{MinimumCountdown: 1, RoundDelay: 60}, nil)
	f.facade = NewFacade(f.clock, sched, f.model, bus)
	return f
}

func block(x, y, z int) core.BlockPos {
	return core.BlockPos{World: "overworld", X: x, Y: y, Z: z}
}

func TestFacadeTwoClickSetup(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()

	if err := f.facade.Start(ctx, 5, 3); !errors.Is(err, ErrAreaNotConfigured) {
		t.Fatalf("Start without area = %v", err)
	}

	// Clicks before arming are ignored
	if step, _ := f.facade.Click(ctx, "op", block(0, 64, 0)); step != area.StepIgnored {
		t.Errorf("unarmed click = %v", step)
	}

	if err := f.facade.BeginSetup(ctx, "op"); err != nil {
		t.Fatal(err)
	}
	if step, _ := f.facade.Click(ctx, "op", block(0, 64, 0)); step != area.StepFirstCorner {
		t.Fatalf("first click = %v", step)
	}
	if f.facade.HasArea() {
		t.Fatal("area reported after a single corner")
	}
	if step, _ := f.facade.Click(ctx, "op", block(4, 64, 4)); step != area.StepComplete {
		t.Fatalf("second click = %v", step)
	}
	if !f.facade.HasArea() {
		t.Fatal("HasArea false after setup")
	}
	if n := f.model.Count(core.ColorEmpty); n != 0 {
		t.Errorf("grid has %d empty cells after setup, want a filled grid", n)
	}

	want := []events.SetupPhase{events.SetupArmed, events.SetupFirstCorner, events.SetupComplete}
	if len(f.setup) != len(want) {
		t.Fatalf("setup events = %v, want %v", f.setup, want)
	}
	for i := range want {
		if f.setup[i] != want[i] {
			t.Errorf("setup events = %v, want %v", f.setup, want)
		}
	}

	// Further clicks are ignored
	if step, _ := f.facade.Click(ctx, "op", block(1, 64, 1)); step != area.StepIgnored {
		t.Errorf("click after completion = %v", step)
	}
}

func TestFacadeLifecycle(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()
	if err := f.facade.ConfigureArea(ctx, block(0, 64, 0), block(4, 64, 4)); err != nil {
		t.Fatal(err)
	}
	f.world.Join("a", "overworld", core.Vec3{X: 1.5, Y: 65, Z: 1.5})
	f.world.Join("b", "overworld", core.Vec3{X: 3.5, Y: 65, Z: 3.5})
	f.world.Join("far", "overworld", core.Vec3{X: 30, Y: 65, Z: 30})

	if n, err := f.facade.OccupantCount(ctx); err != nil || n != 2 {
		t.Fatalf("OccupantCount = %d, %v, want 2", n, err)
	}

	if err := f.facade.Stop(ctx); !errors.Is(err, ErrNotActive) {
		t.Errorf("idle Stop = %v, want ErrNotActive", err)
	}
	if err := f.facade.Start(ctx, 5, 3); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !f.facade.IsActive() || f.facade.IsPaused() {
		t.Error("mirror flags wrong after Start")
	}
	if err := f.facade.BeginSetup(ctx, "op"); !errors.Is(err, ErrSetupWhileActive) {
		t.Errorf("BeginSetup while active = %v", err)
	}
	if err := f.facade.ConfigureArea(ctx, block(0, 64, 0), block(1, 64, 1)); !errors.Is(err, ErrSetupWhileActive) {
		t.Errorf("ConfigureArea while active = %v", err)
	}

	if err := f.facade.Pause(ctx); err != nil {
		t.Fatal(err)
	}
	if !f.facade.IsPaused() {
		t.Error("IsPaused false after Pause")
	}
	st, err := f.facade.State(ctx)
	if err != nil || st.Round != 1 || !st.Paused {
		t.Errorf("State = %+v, %v", st, err)
	}
	if err := f.facade.Resume(ctx); err != nil {
		t.Fatal(err)
	}
	if err := f.facade.Stop(ctx); err != nil {
		t.Fatal(err)
	}
	if f.facade.IsActive() {
		t.Error("IsActive true after Stop")
	}
}

func TestFacadeReload(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()
	if err := f.facade.ConfigureArea(ctx, block(0, 64, 0), block(2, 64, 2)); err != nil {
		t.Fatal(err)
	}
	f.world.Join("a", "overworld", core.Vec3{X: 0.5, Y: 65, Z: 0.5})
	f.world.Join("b", "overworld", core.Vec3{X: 1.5, Y: 65, Z: 1.5})
	if err := f.facade.Start(ctx, 5, 3); err != nil {
		t.Fatal(err)
	}

	applied := false
	if err := f.facade.Reload(ctx, Settings{MinimumCountdown: 2, RoundDelay: 10}, func() { applied = true }); err != nil {
		t.Fatal(err)
	}
	if f.facade.IsActive() || !applied {
		t.Error("Reload must stop the game and run apply")
	}
	if got := f.facade.sched.Settings(); got.MinimumCountdown != 2 || got.RoundDelay != 10 {
		t.Errorf("settings = %+v", got)
	}
}
