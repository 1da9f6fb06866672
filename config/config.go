// Package config loads game and host settings from the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name
const Prefix = "COLORMIX_"

// MaxFireworksPerSecond is one firework per tick
const MaxFireworksPerSecond = 20

// Config holds every tunable
type Config struct {
	Game GameConfig
	Host HostConfig
}

// GameConfig drives the round scheduler and celebration
type GameConfig struct {
	StartingSeconds    int           `env:"STARTING_SECONDS" envDefault:"5"`
	ChangeEveryRounds  int           `env:"CHANGE_EVERY_ROUNDS" envDefault:"3"`
	MinimumCountdown   int           `env:"MINIMUM_COUNTDOWN" envDefault:"1"`
	RoundDelay         int           `env:"ROUND_DELAY" envDefault:"60"` // ticks
	FireworksDuration  int           `env:"FIREWORKS_DURATION" envDefault:"5"`
	FireworksPerSecond int           `env:"FIREWORKS_PER_SECOND" envDefault:"5"`
	TickInterval       time.Duration `env:"TICK_INTERVAL" envDefault:"50ms"`
}

// HostConfig drives the terminal host and network front-end
type HostConfig struct {
	Locale    string `env:"LOCALE" envDefault:"en-US"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir    string `env:"LOG_DIR" envDefault:"logs"`
	Audio     bool   `env:"AUDIO" envDefault:"true"`
	Listen    string `env:"LISTEN"`
	JWTSecret string `env:"JWT_SECRET"`
	Bots      int    `env:"BOTS" envDefault:"3"`
	World     string `env:"WORLD" envDefault:"overworld"`
	PlatformY int    `env:"PLATFORM_Y" envDefault:"64"`
	FloorY    int    `env:"FLOOR_Y" envDefault:"54"`
}

// Load reads optional dotenv files then parses the environment
// Variables set in the process win over dotenv values; the process
// environment is not modified, so a later Load sees edited files
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	environ := make(map[string]string)
	for _, f := range dotenv {
		vals, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
		for k, v := range vals {
			// earlier files win, matching godotenv.Load
			if _, ok := environ[k]; !ok {
				environ[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return Parse(environ)
}

// Parse reads Config from environ, or the process environment when environ is nil
func Parse(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: Prefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the scheduler cannot honor
func (c Config) Validate() error {
	g := c.Game
	var errs []error
	if g.StartingSeconds < 1 {
		errs = append(errs, fmt.Errorf("STARTING_SECONDS must be >= 1, got %d", g.StartingSeconds))
	}
	if g.ChangeEveryRounds < 1 {
		errs = append(errs, fmt.Errorf("CHANGE_EVERY_ROUNDS must be >= 1, got %d", g.ChangeEveryRounds))
	}
	if g.MinimumCountdown < 1 {
		errs = append(errs, fmt.Errorf("MINIMUM_COUNTDOWN must be >= 1, got %d", g.MinimumCountdown))
	}
	if g.MinimumCountdown > g.StartingSeconds {
		errs = append(errs, fmt.Errorf("MINIMUM_COUNTDOWN %d exceeds STARTING_SECONDS %d", g.MinimumCountdown, g.StartingSeconds))
	}
	if g.RoundDelay < 1 {
		errs = append(errs, fmt.Errorf("ROUND_DELAY must be >= 1 tick, got %d", g.RoundDelay))
	}
	if g.FireworksDuration < 0 {
		errs = append(errs, fmt.Errorf("FIREWORKS_DURATION must be >= 0, got %d", g.FireworksDuration))
	}
	if g.FireworksPerSecond < 1 || g.FireworksPerSecond > MaxFireworksPerSecond {
		errs = append(errs, fmt.Errorf("FIREWORKS_PER_SECOND must be in [1,%d], got %d", MaxFireworksPerSecond, g.FireworksPerSecond))
	}
	if g.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("TICK_INTERVAL must be positive, got %s", g.TickInterval))
	}
	if c.Host.Bots < 0 {
		errs = append(errs, fmt.Errorf("BOTS must be >= 0, got %d", c.Host.Bots))
	}
	if c.Host.FloorY >= c.Host.PlatformY {
		errs = append(errs, fmt.Errorf("FLOOR_Y %d must be below PLATFORM_Y %d", c.Host.FloorY, c.Host.PlatformY))
	}
	return errors.Join(errs...)
}
