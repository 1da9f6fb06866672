// Package bot drives simulated players that try to reach the safe color each round
package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/colormix/area"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/engine"
	"github.com/lixenwraith/colormix/events"
	"github.com/lixenwraith/colormix/logger"
)

// walkPeriod is the tick interval between bot steps
const walkPeriod = 4

// Body is the host world as seen by bots
type Body interface {
	Join(name, worldName string, pos core.Vec3) core.Player
	Get(id string) (core.Player, bool)
	Teleport(id string, pos core.Vec3) error
	Walk(id string, dx, dz int) error
}

// Floor exposes the play area
type Floor interface {
	Area() (area.Area, bool)
	ColorAt(x, z int) (core.Color, bool)
}

// Timers is the clock scheduler's timer table
type Timers interface {
	Schedule(key engine.TimerKey, delay, period int64, fn func())
	Cancel(key engine.TimerKey) bool
}

// Profile tunes one bot's skill
type Profile struct {
	Name     string
	Reaction int64   // ticks before the first step
	Mistake  float64 // chance of heading to a random cell
}

type bot struct {
	id      string
	profile Profile
	key     engine.TimerKey
	tx, tz  int
}

// Manager owns the bots; every method runs on the tick goroutine
type Manager struct {
	body   Body
	floor  Floor
	timers Timers
	rng    *rand.Rand
	bots   []*bot
}

// DefaultProfiles returns n profiles of spread skill
func DefaultProfiles(n int) []Profile {
	names := []string{"Pixel", "Dotty", "Crayon", "Tinsel", "Marble", "Sprout", "Comet", "Velvet"}
	out := make([]Profile, n)
	for i := range out {
		name := names[i%len(names)]
		if i >= len(names) {
			name = fmt.Sprintf("%s%d", name, i/len(names)+1)
		}
		out[i] = Profile{
			Name:     name,
			Reaction: int64(10 + 8*(i%4)),
			Mistake:  0.1 + 0.1*float64(i%3),
		}
	}
	return out
}

// NewManager creates a manager; rng nil seeds from the runtime
func NewManager(body Body, floor Floor, timers Timers, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Manager{body: body, floor: floor, timers: timers, rng: rng}
}

// Spawn joins one player per profile in world at pos
func (m *Manager) Spawn(world string, pos core.Vec3, profiles []Profile) {
	for _, pr := range profiles {
		p := m.body.Join(pr.Name, world, pos)
		m.bots = append(m.bots, &bot{
			id:      p.ID,
			profile: pr,
			key:     engine.TimerKey("bot." + p.ID),
		})
	}
}

// IDs returns the bot player IDs in spawn order
func (m *Manager) IDs() []string {
	ids := make([]string, len(m.bots))
	for i, b := range m.bots {
		ids[i] = b.id
	}
	return ids
}

// Respawn places every bot on a random cell of the play area
func (m *Manager) Respawn() {
	a, ok := m.floor.Area()
	if !ok {
		return
	}
	bd := a.Bounds()
	for _, b := range m.bots {
		m.timers.Cancel(b.key)
		x := bd.MinX + m.rng.IntN(bd.Width())
		z := bd.MinZ + m.rng.IntN(bd.Depth())
		pos := core.Vec3{X: float64(x) + 0.5, Y: float64(bd.GroundY + 1), Z: float64(z) + 0.5}
		if err := m.body.Teleport(b.id, pos); err != nil {
			logger.Debug("bot respawn failed", "player", b.profile.Name, "err", err)
		}
	}
}

// EventTypes implements events.Handler
func (m *Manager) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventRoundStarted,
		events.EventWinnerDeclared,
		events.EventGameStopped,
		events.EventGamePaused,
		events.EventSetupStep,
	}
}

// HandleEvent implements events.Handler
func (m *Manager) HandleEvent(ev events.GameEvent) {
	switch ev.Type {
	case events.EventRoundStarted:
		if p, ok := ev.Payload.(*events.RoundStartedPayload); ok {
			m.seek(p.SafeColor)
		}
	case events.EventWinnerDeclared, events.EventGamePaused:
		m.halt()
	case events.EventGameStopped:
		m.halt()
		m.Respawn()
	case events.EventSetupStep:
		if p, ok := ev.Payload.(*events.SetupStepPayload); ok && p.Phase == events.SetupComplete {
			m.Respawn()
		}
	}
}

func (m *Manager) halt() {
	for _, b := range m.bots {
		m.timers.Cancel(b.key)
	}
}

// seek picks a target for every standing bot and starts walking it there
func (m *Manager) seek(safe core.Color) {
	a, ok := m.floor.Area()
	if !ok {
		return
	}
	bd := a.Bounds()

	for _, b := range m.bots {
		p, ok := m.body.Get(b.id)
		if !ok || p.World != a.World {
			continue
		}
		x, y, z := p.Pos.Block()
		if y <= bd.GroundY {
			continue // fell through
		}

		if m.rng.Float64() < b.profile.Mistake {
			b.tx = bd.MinX + m.rng.IntN(bd.Width())
			b.tz = bd.MinZ + m.rng.IntN(bd.Depth())
		} else {
			b.tx, b.tz = m.nearest(bd, x, z, safe)
		}

		bb := b
		m.timers.Schedule(b.key, b.profile.Reaction, walkPeriod, func() { m.step(bb) })
	}
}

// nearest returns the closest cell of color c by Manhattan distance, or the start when none
func (m *Manager) nearest(bd area.Bounds, x, z int, c core.Color) (int, int) {
	bx, bz, best := x, z, -1
	for cz := bd.MinZ; cz <= bd.MaxZ; cz++ {
		for cx := bd.MinX; cx <= bd.MaxX; cx++ {
			if got, _ := m.floor.ColorAt(cx, cz); got != c {
				continue
			}
			d := abs(cx-x) + abs(cz-z)
			if best < 0 || d < best {
				bx, bz, best = cx, cz, d
			}
		}
	}
	return bx, bz
}

func (m *Manager) step(b *bot) {
	p, ok := m.body.Get(b.id)
	if !ok {
		m.timers.Cancel(b.key)
		return
	}
	x, _, z := p.Pos.Block()
	dx, dz := sign(b.tx-x), sign(b.tz-z)
	if dx == 0 && dz == 0 {
		m.timers.Cancel(b.key)
		return
	}
	// one axis per step, x first
	if dx != 0 {
		dz = 0
	}
	if err := m.body.Walk(b.id, dx, dz); err != nil {
		m.timers.Cancel(b.key)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
