package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/colormix/command"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/logger"
)

// Client is one websocket player
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	player core.Player
	sender command.Sender
	send   chan []byte

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, player core.Player, perms []string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		player: player,
		sender: command.Sender{ID: player.ID, Name: player.Name, Permissions: perms},
		send:   make(chan []byte, hub.cfg.SendQueueSize),

		closeCh: make(chan struct{}),
	}
}

// enqueue queues data; false when closed or the queue is full
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.closeCh:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Close initiates shutdown of both pumps
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		_ = c.conn.Close()
	})
}

// run serves the connection until it closes
func (c *Client) run(ctx context.Context) {
	c.hub.register(c)
	defer c.hub.unregister(c)

	welcome, _ := json.Marshal(Envelope{Type: MsgWelcome, ID: c.player.ID, Text: c.player.Name})
	c.enqueue(welcome)

	core.Go(c.writePump)
	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	defer c.Close()

	cfg := c.hub.cfg
	c.conn.SetReadLimit(cfg.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read failed", "player", c.player.Name, "err", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))

		var in Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			c.reply(Envelope{Type: MsgError, Text: "malformed message"})
			continue
		}
		c.handle(ctx, in)
	}
}

func (c *Client) handle(ctx context.Context, in Inbound) {
	switch in.Type {
	case MsgMove:
		dx, dz := clampStep(in.DX), clampStep(in.DZ)
		if dx == 0 && dz == 0 {
			return
		}
		id := c.player.ID
		c.hub.exec.Submit(func() {
			_ = c.hub.players.Walk(id, dx, dz)
		})

	case MsgClick:
		pos := core.BlockPos{World: c.player.World, X: in.X, Y: c.hub.cfg.ClickY, Z: in.Z}
		if _, err := c.hub.game.Click(ctx, c.player.ID, pos); err != nil {
			c.reply(Envelope{Type: MsgError, Text: err.Error()})
		}

	case MsgCommand:
		r := c.hub.commands.ExecuteLine(ctx, c.sender, in.Line)
		c.reply(Envelope{Type: MsgReply, OK: r.OK, Lines: r.Lines})

	default:
		c.reply(Envelope{Type: MsgError, Text: "unknown message type " + in.Type})
	}
}

func (c *Client) reply(env Envelope) {
	if data, err := json.Marshal(env); err == nil {
		c.enqueue(data)
	}
}

func (c *Client) writePump() {
	cfg := c.hub.cfg
	ticker := time.NewTicker(cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.closeCh:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func clampStep(v int) int {
	return max(-1, min(1, v))
}
