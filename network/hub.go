package network

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/colormix/area"
	"github.com/lixenwraith/colormix/command"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/effects"
	"github.com/lixenwraith/colormix/logger"
	"github.com/lixenwraith/colormix/notify"
	"github.com/lixenwraith/colormix/status"
)

// ErrHubFull is returned when MaxClients players are connected
var ErrHubFull = errors.New("too many clients")

// Executor runs work on the tick goroutine
type Executor interface {
	Do(ctx context.Context, fn func()) error
	Submit(fn func())
}

// Players is the host world as seen by remote players
type Players interface {
	Join(name, worldName string, pos core.Vec3) core.Player
	Leave(id string)
	Walk(id string, dx, dz int) error
}

// Game is the facade surface used by the network front-end
type Game interface {
	OccupantList(ctx context.Context) ([]core.Player, error)
	Click(ctx context.Context, playerID string, pos core.BlockPos) (area.SetupStep, error)
}

// Commands runs command lines
type Commands interface {
	ExecuteLine(ctx context.Context, s command.Sender, line string) command.Reply
}

// Hub tracks connected websocket players and fans game output to them
// Deliver, ShowSafeColor and SpawnFirework never block: full queues drop messages
type Hub struct {
	cfg      Config
	exec     Executor
	players  Players
	game     Game
	commands Commands
	banner   func(safe core.Color, glyphs string) string

	mu      sync.RWMutex
	clients map[string]*Client
	gone    map[string]struct{} // disconnected, world leave still queued

	statClients *atomic.Int64
	statDropped *atomic.Int64
}

// NewHub creates a hub; banner renders the safe-color text
func NewHub(cfg Config, exec Executor, players Players, game Game, commands Commands,
	banner func(core.Color, string) string, reg *status.Registry) *Hub {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if banner == nil {
		banner = func(safe core.Color, glyphs string) string { return glyphs + " " + safe.String() + " " + glyphs }
	}
	return &Hub{
		cfg:         cfg,
		exec:        exec,
		players:     players,
		game:        game,
		commands:    commands,
		banner:      banner,
		clients:     make(map[string]*Client),
		gone:        make(map[string]struct{}),
		statClients: reg.Ints.Get("network.clients"),
		statDropped: reg.Ints.Get("network.dropped"),
	}
}

// Count returns the number of connected players
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// join spawns a world player for a new connection
func (h *Hub) join(ctx context.Context, name string) (core.Player, error) {
	h.mu.RLock()
	full := len(h.clients) >= h.cfg.MaxClients
	h.mu.RUnlock()
	if full {
		return core.Player{}, ErrHubFull
	}

	var p core.Player
	err := h.exec.Do(ctx, func() {
		p = h.players.Join(name, h.cfg.SpawnWorld, h.cfg.SpawnPos)
	})
	return p, err
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.player.ID] = c
	n := len(h.clients)
	h.mu.Unlock()
	h.statClients.Store(int64(n))
	logger.Info("player connected", "player", c.player.Name, "id", c.player.ID)
}

func (h *Hub) unregister(c *Client) {
	id := c.player.ID
	h.mu.Lock()
	if h.clients[id] == c {
		delete(h.clients, id)
		h.gone[id] = struct{}{}
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.statClients.Store(int64(n))

	h.exec.Submit(func() {
		h.players.Leave(id)
		h.mu.Lock()
		delete(h.gone, id)
		h.mu.Unlock()
	})
	logger.Info("player disconnected", "player", c.player.Name, "id", id)
}

// Deliver implements notify.Sink
func (h *Hub) Deliver(msg notify.Message) {
	env := Envelope{Type: MsgLine, Text: msg.Text, Style: msg.Style.String()}
	if msg.Color != (core.RGB{}) {
		env.Color = msg.Color.Hex()
	}
	if msg.Target != "" {
		_ = h.send(msg.Target, env)
		return
	}
	h.broadcast(env)
}

// ShowSafeColor implements effects.Presenter for remote players
// Players that never connected here are skipped silently
func (h *Hub) ShowSafeColor(p core.Player, safe core.Color, frame effects.SparkleFrame) error {
	return h.send(p.ID, Envelope{
		Type:  MsgBanner,
		Text:  h.banner(safe, frame.Glyphs),
		Color: safe.RGB().Hex(),
		Style: frame.Color.Hex(),
	})
}

// SpawnFirework implements effects.Presenter
func (h *Hub) SpawnFirework(world string, pos core.Vec3, color core.RGB) error {
	h.broadcast(Envelope{Type: MsgFirework, World: world, X: pos.X, Y: pos.Y, Z: pos.Z, Color: color.Hex()})
	return nil
}

// send queues env for one client
// Returns effects.ErrTargetGone for a client that disconnected but is still in the world
func (h *Hub) send(id string, env Envelope) error {
	h.mu.RLock()
	c := h.clients[id]
	_, gone := h.gone[id]
	h.mu.RUnlock()
	if c == nil {
		if gone {
			return effects.ErrTargetGone
		}
		return nil
	}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if !c.enqueue(data) {
		h.statDropped.Add(1)
	}
	return nil
}

func (h *Hub) broadcast(env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if !c.enqueue(data) {
			h.statDropped.Add(1)
		}
	}
}

// CloseAll disconnects every client
func (h *Hub) CloseAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.Close()
	}
}
