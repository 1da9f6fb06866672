// Package command parses operator commands and runs them against the game
package command

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/colormix/config"
	"github.com/lixenwraith/colormix/effects"
	"github.com/lixenwraith/colormix/game"
	"github.com/lixenwraith/colormix/i18n"
	"github.com/lixenwraith/colormix/logger"
)

// PermAdmin gates every command
const PermAdmin = "colormix.admin"

// Game is the facade surface used by commands
type Game interface {
	State(ctx context.Context) (game.State, error)
	OccupantCount(ctx context.Context) (int, error)
	Start(ctx context.Context, startingSeconds, changeEveryRounds int) error
	Stop(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Reload(ctx context.Context, s game.Settings, apply func()) error
	BeginSetup(ctx context.Context, playerID string) error
}

// Sender identifies who issued a command
type Sender struct {
	ID          string
	Name        string
	Permissions []string
}

// Can reports whether the sender holds perm
func (s Sender) Can(perm string) bool {
	for _, p := range s.Permissions {
		if p == perm || p == "*" {
			return true
		}
	}
	return false
}

// Reply is what the issuer sees
type Reply struct {
	OK    bool     `json:"ok"`
	Lines []string `json:"lines"`
}

// Loader re-reads configuration for the reload command
type Loader func() (config.Config, error)

// ReloadHook runs on the tick goroutine after a successful reload
type ReloadHook func(cfg config.Config)

// Dispatcher routes command lines to handlers
type Dispatcher struct {
	game     Game
	load     Loader
	catalog  atomic.Pointer[i18n.Catalog]
	defaults atomic.Pointer[config.GameConfig]

	mu    sync.Mutex
	hooks []ReloadHook
}

// NewDispatcher creates a dispatcher; load may be nil to disable reload
func NewDispatcher(g Game, cat *i18n.Catalog, defaults config.GameConfig, load Loader) *Dispatcher {
	d := &Dispatcher{game: g, load: load}
	d.catalog.Store(cat)
	d.defaults.Store(&defaults)
	return d
}

// OnReload registers a hook for applied configurations
func (d *Dispatcher) OnReload(h ReloadHook) {
	d.mu.Lock()
	d.hooks = append(d.hooks, h)
	d.mu.Unlock()
}

// SetCatalog swaps the reply catalog
func (d *Dispatcher) SetCatalog(cat *i18n.Catalog) {
	d.catalog.Store(cat)
}

// Defaults returns the configured start parameters
func (d *Dispatcher) Defaults() config.GameConfig {
	return *d.defaults.Load()
}

// ExecuteLine splits line on whitespace and executes it
func (d *Dispatcher) ExecuteLine(ctx context.Context, s Sender, line string) Reply {
	return d.Execute(ctx, s, strings.Fields(line))
}

// Execute runs one command; an empty args list shows help
func (d *Dispatcher) Execute(ctx context.Context, s Sender, args []string) Reply {
	if !s.Can(PermAdmin) {
		return d.fail(i18n.KeyNoPermission)
	}
	if len(args) == 0 {
		return d.help()
	}

	name := strings.ToLower(args[0])
	rest := args[1:]
	logger.Debug("command", "player", s.Name, "command", name, "args", rest)

	switch name {
	case "start":
		return d.start(ctx, rest)
	case "stop":
		return d.simple(d.game.Stop(ctx))
	case "pause":
		return d.simple(d.game.Pause(ctx), i18n.KeyGamePausedByPlayer)
	case "resume":
		return d.simple(d.game.Resume(ctx), i18n.KeyGameResumedByPlayer)
	case "setplatform":
		return d.simple(d.game.BeginSetup(ctx, s.ID))
	case "reload":
		return d.reload(ctx)
	case "status":
		return d.status(ctx)
	case "help":
		return d.help()
	default:
		return d.fail(i18n.KeyUnknownCommand, "command", name)
	}
}

func (d *Dispatcher) start(ctx context.Context, args []string) Reply {
	def := d.Defaults()
	seconds, rounds := def.StartingSeconds, def.ChangeEveryRounds

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return d.fail(i18n.KeyInvalidSeconds)
		}
		if n <= 0 {
			return d.fail(i18n.KeySecondsTooLow)
		}
		seconds = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return d.fail(i18n.KeyInvalidRounds)
		}
		if n <= 0 {
			return d.fail(i18n.KeyRoundsTooLow)
		}
		rounds = n
	}

	if err := d.game.Start(ctx, seconds, rounds); err != nil {
		return d.failErr(err)
	}
	cat := d.catalog.Load()
	return Reply{OK: true, Lines: []string{
		cat.Render(i18n.KeyGameStarted),
		cat.Render(i18n.KeyGameSettings, "seconds", seconds, "rounds", rounds),
	}}
}

func (d *Dispatcher) reload(ctx context.Context) Reply {
	if d.load == nil {
		return d.fail(i18n.KeyConfigReloadFailed, "error", "reload disabled")
	}
	cfg, err := d.load()
	if err != nil {
		logger.Warn("config reload failed", "err", err)
		return d.fail(i18n.KeyConfigReloadFailed, "error", err.Error())
	}

	d.mu.Lock()
	hooks := append([]ReloadHook(nil), d.hooks...)
	d.mu.Unlock()

	err = d.game.Reload(ctx, SettingsFrom(cfg.Game), func() {
		for _, h := range hooks {
			h(cfg)
		}
	})
	if err != nil {
		return d.failErr(err)
	}
	d.defaults.Store(&cfg.Game)
	logger.Info("config reloaded", "starting_seconds", cfg.Game.StartingSeconds, "locale", cfg.Host.Locale)
	return d.ok(i18n.KeyConfigReloaded)
}

func (d *Dispatcher) status(ctx context.Context) Reply {
	st, err := d.game.State(ctx)
	if err != nil {
		return d.failErr(err)
	}
	count, err := d.game.OccupantCount(ctx)
	if err != nil {
		return d.failErr(err)
	}
	return d.ok(i18n.KeyStatusLine,
		"active", st.Active,
		"paused", st.Paused,
		"round", st.Round,
		"seconds", st.CurrentCountdown,
		"count", count,
	)
}

func (d *Dispatcher) help() Reply {
	cat := d.catalog.Load()
	lines := make([]string, len(i18n.HelpKeys))
	for i, k := range i18n.HelpKeys {
		lines[i] = cat.Render(k)
	}
	return Reply{OK: true, Lines: lines}
}

// simple maps err to a failure reply, or succeeds with the optional keys
func (d *Dispatcher) simple(err error, keys ...string) Reply {
	if err != nil {
		return d.failErr(err)
	}
	cat := d.catalog.Load()
	r := Reply{OK: true, Lines: []string{}}
	for _, k := range keys {
		r.Lines = append(r.Lines, cat.Render(k))
	}
	return r
}

func (d *Dispatcher) ok(key string, params ...any) Reply {
	return Reply{OK: true, Lines: []string{d.catalog.Load().Render(key, params...)}}
}

func (d *Dispatcher) fail(key string, params ...any) Reply {
	return Reply{Lines: []string{d.catalog.Load().Render(key, params...)}}
}

func (d *Dispatcher) failErr(err error) Reply {
	if key, ok := MessageKey(err); ok {
		return d.fail(key)
	}
	logger.Warn("command failed", "err", err)
	return Reply{Lines: []string{err.Error()}}
}

var errorKeys = []struct {
	err error
	key string
}{
	{game.ErrAreaNotConfigured, i18n.KeyPlatformNotSet},
	{game.ErrAlreadyActive, i18n.KeyGameAlreadyActive},
	{game.ErrNotActive, i18n.KeyGameNotActive},
	{game.ErrAlreadyPaused, i18n.KeyGameAlreadyPaused},
	{game.ErrNotPaused, i18n.KeyGameNotPaused},
	{game.ErrGameEnding, i18n.KeyGameEnding},
	{game.ErrInvalidSeconds, i18n.KeySecondsTooLow},
	{game.ErrInvalidRounds, i18n.KeyRoundsTooLow},
	{game.ErrSetupWhileActive, i18n.KeySetupWhileActive},
}

// MessageKey maps a game precondition error to its message key
func MessageKey(err error) (string, bool) {
	for _, e := range errorKeys {
		if errors.Is(err, e.err) {
			return e.key, true
		}
	}
	return "", false
}

// SettingsFrom extracts scheduler tunables from configuration
func SettingsFrom(g config.GameConfig) game.Settings {
	return game.Settings{
		MinimumCountdown: g.MinimumCountdown,
		RoundDelay:       g.RoundDelay,
	}
}

// EffectsFrom extracts celebration sizing from configuration
func EffectsFrom(g config.GameConfig) effects.Config {
	return effects.Config{
		FireworksDuration:  g.FireworksDuration,
		FireworksPerSecond: g.FireworksPerSecond,
	}
}
