// Package network serves the HTTP command API, the websocket player gateway and metrics
package network

import (
	"time"

	"github.com/lixenwraith/colormix/core"
)

// Config holds network configuration
type Config struct {
	// Address to bind; empty disables the front-end
	Address string

	// JWTSecret signs operator tokens; empty rejects every token
	JWTSecret string
	TokenTTL  time.Duration

	// Connection limits
	MaxClients    int
	SendQueueSize int
	ReadLimit     int64

	// Timing
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	PingInterval    time.Duration
	ShutdownTimeout time.Duration

	// Where remote players appear and which layer their clicks target
	SpawnWorld string
	SpawnPos   core.Vec3
	ClickY     int
}

// DefaultConfig returns production-safe defaults with the front-end disabled
func DefaultConfig() Config {
	return Config{
		TokenTTL:        24 * time.Hour,
		MaxClients:      32,
		SendQueueSize:   256,
		ReadLimit:       4096,
		WriteTimeout:    10 * time.Second,
		PongTimeout:     30 * time.Second,
		PingInterval:    25 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		SpawnWorld:      "overworld",
	}
}
