package network

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/colormix/command"
	"github.com/lixenwraith/colormix/logger"
	"github.com/lixenwraith/colormix/status"
)

const (
	stateTimeout  = 2 * time.Second
	maxPlayerName = 16
)

// Server routes HTTP and websocket traffic
type Server struct {
	cfg      Config
	auth     *Auth
	hub      *Hub
	game     Game
	commands Commands
	reg      *status.Registry
	metrics  *prometheus.Registry
	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// NewServer builds the router; reg may be nil
func NewServer(cfg Config, auth *Auth, hub *Hub, game Game, commands Commands, reg *status.Registry) *Server {
	if reg == nil {
		reg = status.NewRegistry()
	}
	s := &Server{
		cfg:      cfg,
		auth:     auth,
		hub:      hub,
		game:     game,
		commands: commands,
		reg:      reg,
		metrics:  NewMetrics(reg),
		upgrader: websocket.Upgrader{
			// players connect from any origin; commands still need a token
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.engine = s.routes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{})))
	r.GET("/ws", s.websocket)

	api := r.Group("/api")
	api.GET("/state", s.state)
	api.POST("/commands", s.auth.RequireToken(), s.command)
	return r
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

type playerView struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

func (s *Server) state(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), stateTimeout)
	defer cancel()

	occupants, err := s.game.OccupantList(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	views := make([]playerView, len(occupants))
	for i, p := range occupants {
		views[i] = playerView{ID: p.ID, Name: p.Name, X: p.Pos.X, Y: p.Pos.Y, Z: p.Pos.Z}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    s.reg.Snapshot(),
		"occupants": views,
		"clients":   s.hub.Count(),
	})
}

func (s *Server) command(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := claimsFrom(c)
	sender := command.Sender{ID: claims.Subject, Name: claims.Name, Permissions: claims.Perms}
	reply := s.commands.ExecuteLine(c.Request.Context(), sender, req.Line)

	code := http.StatusOK
	if !reply.OK {
		code = http.StatusUnprocessableEntity
	}
	c.JSON(code, reply)
}

func (s *Server) websocket(c *gin.Context) {
	var perms []string
	if raw := bearer(c); raw != "" {
		claims, err := s.auth.ParseToken(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		perms = claims.Perms
	}

	name := c.Query("name")
	if name == "" {
		name = "guest"
	}
	if r := []rune(name); len(r) > maxPlayerName {
		name = string(r[:maxPlayerName])
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Debug("websocket upgrade failed", "err", err)
		return
	}

	ctx := c.Request.Context()
	player, err := s.hub.join(ctx, name)
	if err != nil {
		code := websocket.CloseInternalServerErr
		if errors.Is(err, ErrHubFull) {
			code = websocket.CloseTryAgainLater
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(code, err.Error()), time.Now().Add(s.cfg.WriteTimeout))
		_ = conn.Close()
		return
	}

	newClient(s.hub, conn, player, perms).run(ctx)
}
