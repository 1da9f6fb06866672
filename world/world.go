// Package world is the host world of the terminal demo: named worlds with
// players that move on a block lattice and fall when nothing holds them up.
package world

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/colormix/core"
)

// ErrUnknownPlayer is returned for operations on a player that is not in the world
var ErrUnknownPlayer = errors.New("unknown player")

// Ground reports solid blocks that players can stand on
type Ground interface {
	Solid(world string, x, y, z int) bool
}

// World tracks live players
// Mutated on the tick goroutine; the lock only serves read-side consumers such as the HTTP state endpoint
type World struct {
	mu      sync.RWMutex
	players map[string]*core.Player
	floorY  int
}

// New creates an empty world whose bedrock floor is at floorY
// Falling players stop standing on floorY
func New(floorY int) *World {
	return &World{
		players: make(map[string]*core.Player),
		floorY:  floorY,
	}
}

// Join adds a player with a fresh identity
func (w *World) Join(name, worldName string, pos core.Vec3) core.Player {
	p := &core.Player{
		ID:    uuid.NewString(),
		Name:  name,
		World: worldName,
		Pos:   pos,
	}
	w.mu.Lock()
	w.players[p.ID] = p
	w.mu.Unlock()
	return *p
}

// Leave removes a player; unknown IDs are ignored
func (w *World) Leave(id string) {
	w.mu.Lock()
	delete(w.players, id)
	w.mu.Unlock()
}

// Get returns a snapshot of one player
func (w *World) Get(id string) (core.Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[id]
	if !ok {
		return core.Player{}, false
	}
	return *p, true
}

// Players returns snapshots of every player sorted by name then ID
func (w *World) Players() []core.Player {
	w.mu.RLock()
	out := make([]core.Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, *p)
	}
	w.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Teleport places a player at pos
func (w *World) Teleport(id string, pos core.Vec3) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.Pos = pos
	return nil
}

// Walk moves a player horizontally by whole blocks
// Vertical position is left to gravity
func (w *World) Walk(id string, dx, dz int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.Pos.X += float64(dx)
	p.Pos.Z += float64(dz)
	return nil
}

// EntitiesInBox returns players of worldName whose block lies inside box
func (w *World) EntitiesInBox(worldName string, box core.Box) []core.Player {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []core.Player
	for _, p := range w.players {
		if p.World == worldName && box.Contains(p.Pos) {
			out = append(out, *p)
		}
	}
	return out
}

// Step applies one tick of gravity: every unsupported player drops one block,
// never below the floor. Returns the IDs that moved
func (w *World) Step(ground Ground) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var fell []string
	for id, p := range w.players {
		x, y, z := p.Pos.Block()
		below := y - 1
		if below <= w.floorY {
			if p.Pos.Y < float64(w.floorY+1) {
				p.Pos.Y = float64(w.floorY + 1)
			}
			continue
		}
		if ground != nil && ground.Solid(p.World, x, below, z) {
			// Snap onto the block top
			p.Pos.Y = math.Floor(p.Pos.Y)
			continue
		}
		p.Pos.Y = float64(below)
		fell = append(fell, id)
	}
	sort.Strings(fell)
	return fell
}
