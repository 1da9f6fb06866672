// Package effects runs presentation sequences triggered by the round scheduler.
// It reads occupancy and player positions but never mutates game or area state.
package effects

import (
	"math/rand/v2"

	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/engine"
	"github.com/lixenwraith/colormix/logger"
)

// Timer keys owned by the coordinator
const (
	KeyAnnouncement engine.TimerKey = "fx.announcement"
	KeyCelebration  engine.TimerKey = "fx.celebration"
)

const (
	// AnnouncementPeriod is the banner refresh interval in ticks
	AnnouncementPeriod = 2
	// announcementWrap resets the animation phase counter
	announcementWrap = 40
	// countdownSoundFrom is the highest remaining second that plays a tick sound
	countdownSoundFrom = 5
)

// Timers is the subset of the clock scheduler used for sequences
type Timers interface {
	Schedule(key engine.TimerKey, delay, period int64, fn func())
	Cancel(key engine.TimerKey) bool
	Active(key engine.TimerKey) bool
}

// OccupantSource lists players currently in the play volume
type OccupantSource interface {
	Occupants() []core.Player
}

// PlayerLocator resolves a player's live position
type PlayerLocator interface {
	Get(id string) (core.Player, bool)
}

// Config sizes the celebration
type Config struct {
	FireworksDuration  int // seconds
	FireworksPerSecond int
}

// Coordinator owns the announcement and celebration sequences
// All methods run on the tick goroutine
type Coordinator struct {
	timers    Timers
	occupants OccupantSource
	players   PlayerLocator
	presenter Presenter
	sound     SoundPlayer
	rng       *rand.Rand
	cfg       Config

	safe     core.Color
	phase    int
	launched int
	winner   string
}

// NewCoordinator wires a coordinator; presenter and sound may be nil
func NewCoordinator(timers Timers, occupants OccupantSource, players PlayerLocator,
	presenter Presenter, sound SoundPlayer, rng *rand.Rand, cfg Config) *Coordinator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Coordinator{
		timers:    timers,
		occupants: occupants,
		players:   players,
		presenter: presenter,
		sound:     sound,
		rng:       rng,
		cfg:       cfg,
	}
}

// SetConfig replaces celebration sizing, effective from the next celebration
func (c *Coordinator) SetConfig(cfg Config) {
	c.cfg = cfg
}

// StartAnnouncement begins refreshing the safe-color banner for occupants
// Replaces a running announcement
func (c *Coordinator) StartAnnouncement(safe core.Color) {
	c.StopAnnouncement()
	c.safe = safe
	c.phase = 0
	c.timers.Schedule(KeyAnnouncement, 1, AnnouncementPeriod, c.announce)
}

// StopAnnouncement cancels the banner sequence
func (c *Coordinator) StopAnnouncement() {
	c.timers.Cancel(KeyAnnouncement)
}

// Announcing reports whether the banner sequence runs
func (c *Coordinator) Announcing() bool {
	return c.timers.Active(KeyAnnouncement)
}

func (c *Coordinator) announce() {
	players := c.occupants.Occupants()
	if len(players) == 0 {
		return
	}

	frame := Sparkle(c.phase)
	if c.presenter != nil {
		for _, p := range players {
			if err := c.presenter.ShowSafeColor(p, c.safe, frame); err != nil {
				logger.Debug("safe color banner skipped", "player", p.ID, "err", err)
			}
		}
	}

	c.phase++
	if c.phase >= announcementWrap {
		c.phase = 0
	}
}

// CountdownTick plays the tick cue for the last seconds
func (c *Coordinator) CountdownTick(remaining int) {
	if remaining <= countdownSoundFrom {
		c.play(core.SoundCountdown)
	}
}

// CellsStripped plays the removal cue
func (c *Coordinator) CellsStripped() {
	c.play(core.SoundRemoval)
}

// StartCelebration launches fireworks around the winner's live position
// Replaces a running celebration. Returns the sequence length in ticks
func (c *Coordinator) StartCelebration(winnerID string) int64 {
	c.StopCelebration()

	perSecond := max(c.cfg.FireworksPerSecond, 1)
	total := c.cfg.FireworksDuration * perSecond
	interval := max(int64(engine.TicksPerSecond/perSecond), 1)

	c.winner = winnerID
	c.launched = 0
	c.play(core.SoundVictory)

	if total > 0 {
		c.timers.Schedule(KeyCelebration, 1, interval, func() { c.launch(total) })
	}
	return int64(c.cfg.FireworksDuration) * engine.TicksPerSecond
}

func (c *Coordinator) launch(total int) {
	if c.launched >= total {
		c.timers.Cancel(KeyCelebration)
		return
	}
	c.launched++

	p, ok := c.players.Get(c.winner)
	if !ok {
		// Winner left; keep the count so the sequence still ends on time
		return
	}

	offset := core.Vec3{
		X: (c.rng.Float64() - 0.5) * 6,
		Y: c.rng.Float64()*3 + 1,
		Z: (c.rng.Float64() - 0.5) * 6,
	}
	color := core.FireworkColors[c.rng.IntN(len(core.FireworkColors))]
	if c.presenter != nil {
		if err := c.presenter.SpawnFirework(p.World, p.Pos.Add(offset), color); err != nil {
			logger.Debug("firework skipped", "player", p.ID, "err", err)
			return
		}
	}
	c.play(core.SoundFirework)
}

// StopCelebration cancels the firework sequence
func (c *Coordinator) StopCelebration() {
	c.timers.Cancel(KeyCelebration)
}

// Celebrating reports whether fireworks are still being launched
func (c *Coordinator) Celebrating() bool {
	return c.timers.Active(KeyCelebration)
}

// Launched returns how many units the current or last celebration spawned or attempted
func (c *Coordinator) Launched() int {
	return c.launched
}

// StopAll cancels every running sequence
func (c *Coordinator) StopAll() {
	c.StopAnnouncement()
	c.StopCelebration()
}

func (c *Coordinator) play(s core.SoundType) {
	if c.sound != nil {
		c.sound.Play(s)
	}
}
