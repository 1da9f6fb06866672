package bot

import (
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/colormix/area"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/engine"
	"github.com/lixenwraith/colormix/events"
	"github.com/lixenwraith/colormix/world"
)

type fixture struct {
	world *world.World
	model *area.Model
	clock *engine.ClockScheduler
	mgr   *Manager
}

func newFixture(t *testing.T, profiles []Profile) *fixture {
	t.Helper()
	w := world.New(54)
	model := area.NewModel(w, rand.New(rand.NewPCG(7, 9)))
	if err := model.Configure(
		core.BlockPos{World: "overworld", X: 0, Y: 64, Z: 0},
		core.BlockPos{World: "overworld", X: 7, Y: 64, Z: 7},
	); err != nil {
		t.Fatal(err)
	}
	model.Fill()

	clock := engine.NewClockScheduler(0, nil)
	mgr := NewManager(w, model, clock, rand.New(rand.NewPCG(1, 2)))
	mgr.Spawn("overworld", core.Vec3{X: 0.5, Y: 70, Z: 0.5}, profiles)
	mgr.Respawn()
	return &fixture{world: w, model: model, clock: clock, mgr: mgr}
}

func (f *fixture) run(ticks int) {
	for i := 0; i < ticks; i++ {
		f.clock.Tick()
	}
}

func roundStarted(safe core.Color) events.GameEvent {
	return events.GameEvent{
		Type:    events.EventRoundStarted,
		Payload: &events.RoundStartedPayload{Round: 1, SafeColor: safe},
	}
}

func TestRespawnPlacesBotsOnPlatform(t *testing.T) {
	f := newFixture(t, DefaultProfiles(5))
	bd, _ := f.model.Bounds()
	for _, id := range f.mgr.IDs() {
		p, _ := f.world.Get(id)
		x, y, z := p.Pos.Block()
		if !bd.InFootprint(x, z) || y != bd.GroundY+1 {
			t.Errorf("bot %s at %d,%d,%d, want on the platform", p.Name, x, y, z)
		}
	}
}

func TestBotsWalkToSafeColor(t *testing.T) {
	f := newFixture(t, []Profile{{Name: "a", Reaction: 3}, {Name: "b", Reaction: 5}})
	safe, _ := f.model.ColorAt(6, 6)

	f.mgr.HandleEvent(roundStarted(safe))
	f.run(200)

	for _, id := range f.mgr.IDs() {
		p, _ := f.world.Get(id)
		x, _, z := p.Pos.Block()
		if got, _ := f.model.ColorAt(x, z); got != safe {
			t.Errorf("bot %s ended on %s, want %s", p.Name, got, safe)
		}
		if f.clock.Active(engine.TimerKey("bot." + id)) {
			t.Errorf("bot %s still walking after reaching its target", p.Name)
		}
	}
}

func TestReactionDelay(t *testing.T) {
	f := newFixture(t, []Profile{{Name: "slow", Reaction: 30}})
	id := f.mgr.IDs()[0]
	start, _ := f.world.Get(id)

	// pick a color away from the bot so it has to move
	sx, _, sz := start.Pos.Block()
	safe, _ := f.model.ColorAt(7-sx, 7-sz)
	if cur, _ := f.model.ColorAt(sx, sz); cur == safe {
		t.Skip("bot already stands on the target color")
	}

	f.mgr.HandleEvent(roundStarted(safe))
	f.run(29)
	if p, _ := f.world.Get(id); p.Pos != start.Pos {
		t.Error("bot moved before its reaction delay")
	}
	f.run(1)
	if p, _ := f.world.Get(id); p.Pos == start.Pos {
		t.Error("bot should take its first step at the reaction tick")
	}
}

func TestHaltAndFallenBots(t *testing.T) {
	f := newFixture(t, []Profile{{Name: "a", Reaction: 50}, {Name: "b", Reaction: 50}})
	ids := f.mgr.IDs()
	_ = f.world.Teleport(ids[1], core.Vec3{X: 3.5, Y: 55, Z: 3.5})

	f.mgr.HandleEvent(roundStarted(core.ColorRed))
	if !f.clock.Active(engine.TimerKey("bot." + ids[0])) {
		t.Error("standing bot should start walking")
	}
	if f.clock.Active(engine.TimerKey("bot." + ids[1])) {
		t.Error("fallen bot must stay put")
	}

	f.mgr.HandleEvent(events.GameEvent{Type: events.EventWinnerDeclared, Payload: &events.WinnerPayload{}})
	if f.clock.Active(engine.TimerKey("bot." + ids[0])) {
		t.Error("winner should halt every bot")
	}

	f.mgr.HandleEvent(events.GameEvent{Type: events.EventGameStopped})
	bd, _ := f.model.Bounds()
	if p, _ := f.world.Get(ids[1]); int(p.Pos.Y) != bd.GroundY+1 {
		t.Error("game stop should respawn fallen bots")
	}
}

func TestDefaultProfilesUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range DefaultProfiles(12) {
		if seen[p.Name] {
			t.Errorf("duplicate bot name %s", p.Name)
		}
		seen[p.Name] = true
		if p.Reaction <= 0 || p.Mistake < 0 || p.Mistake >= 1 {
			t.Errorf("profile %+v out of range", p)
		}
	}
}
