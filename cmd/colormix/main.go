package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/lixenwraith/colormix/area"
	"github.com/lixenwraith/colormix/audio"
	"github.com/lixenwraith/colormix/bot"
	"github.com/lixenwraith/colormix/command"
	"github.com/lixenwraith/colormix/config"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/effects"
	"github.com/lixenwraith/colormix/engine"
	"github.com/lixenwraith/colormix/events"
	"github.com/lixenwraith/colormix/game"
	"github.com/lixenwraith/colormix/i18n"
	"github.com/lixenwraith/colormix/input"
	"github.com/lixenwraith/colormix/logger"
	"github.com/lixenwraith/colormix/network"
	"github.com/lixenwraith/colormix/notify"
	"github.com/lixenwraith/colormix/render"
	"github.com/lixenwraith/colormix/service"
	"github.com/lixenwraith/colormix/status"
	"github.com/lixenwraith/colormix/world"
)

// Default play area around the origin, in blocks
const (
	defaultHalfWidth = 8
	defaultHalfDepth = 5
	shutdownTimeout  = 3 * time.Second
)

const hint = "arrows/wasd move  click: set corner  : command  m mute  q quit"

var (
	headlessFlag = flag.Bool("headless", false, "run without the terminal UI")
	tokenFlag    = flag.String("token", "", "print an operator token for `name` and exit")
	envFlag      = flag.String("env", ".env", "dotenv file read before the environment")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*envFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "colormix: %v\n", err)
		os.Exit(1)
	}

	if *tokenFlag != "" {
		os.Exit(printToken(cfg, *tokenFlag))
	}

	tui := !*headlessFlag && term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(cfg, tui); err != nil {
		fmt.Fprintf(os.Stderr, "colormix: %v\n", err)
		os.Exit(1)
	}
}

// printToken issues an operator token signed with the configured secret
func printToken(cfg config.Config, name string) int {
	auth := network.NewAuth(cfg.Host.JWTSecret)
	token, err := auth.IssueToken(uuid.NewString(), name, []string{command.PermAdmin}, network.DefaultConfig().TokenTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "colormix: %v\n", err)
		return 1
	}
	fmt.Println(token)
	return 0
}

// outputs fans effects and messages out to every front-end
// Filled before the clock starts, read only on the tick goroutine afterwards
type outputs struct {
	presenters effects.MultiPresenter
	sinks      notify.MultiSink
}

func (o *outputs) ShowSafeColor(p core.Player, safe core.Color, frame effects.SparkleFrame) error {
	return o.presenters.ShowSafeColor(p, safe, frame)
}

func (o *outputs) SpawnFirework(world string, pos core.Vec3, color core.RGB) error {
	return o.presenters.SpawnFirework(world, pos, color)
}

func (o *outputs) Deliver(msg notify.Message) {
	o.sinks.Deliver(msg)
}

func run(cfg config.Config, tui bool) error {
	logFile, err := setupLogging(cfg.Host, tui)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cat, err := i18n.New(cfg.Host.Locale)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	var catalog atomic.Pointer[i18n.Catalog]
	catalog.Store(cat)

	reg := status.NewRegistry()
	clock := engine.NewClockScheduler(cfg.Game.TickInterval, reg)
	var wall engine.TimeProvider = engine.SystemTime{}
	bus := events.NewBus(wall.Now, clock.Now)
	players := world.New(cfg.Host.FloorY)
	model := area.NewModel(players, nil)
	clock.BeforeTick(func(int64) { players.Step(model) })
	// Drop players off emptied cells on the strip tick itself
	model.OnStrip(func() {
		if fell := players.Step(model); len(fell) > 0 {
			logger.Debug("players dropped by strip", "count", len(fell))
		}
	})

	hub := service.NewHub()
	out := &outputs{}

	audioSvc := audio.NewService(cfg.Host.Audio, audio.DefaultConfig())
	if err := hub.Register(audioSvc); err != nil {
		return err
	}

	coordinator := effects.NewCoordinator(clock, model, players, out, audioSvc, nil, command.EffectsFrom(cfg.Game))
	sched := game.NewScheduler(model, coordinator, clock, bus, command.SettingsFrom(cfg.Game), reg)
	facade := game.NewFacade(clock, sched, model, bus)

	notifier := notify.NewNotifier(cat, out)
	bus.Register(notifier)
	banner := func(safe core.Color, glyphs string) string { return notifier.ActionBar(safe, glyphs) }

	dispatcher := command.NewDispatcher(facade, cat, cfg.Game, func() (config.Config, error) {
		return config.Load(*envFlag)
	})
	dispatcher.OnReload(func(next config.Config) {
		coordinator.SetConfig(command.EffectsFrom(next.Game))
		nc, err := i18n.New(next.Host.Locale)
		if err != nil {
			logger.Warn("locale reload failed", "locale", next.Host.Locale, "err", err)
			return
		}
		catalog.Store(nc)
		notifier.SetCatalog(nc)
		dispatcher.SetCatalog(nc)
	})

	spawn := core.Vec3{X: 0.5, Y: float64(cfg.Host.PlatformY + 1), Z: 0.5}
	// Players that fell through the grid return to the platform once a game ends
	bus.Register(events.HandlerFunc{
		Types: []events.EventType{events.EventGameStopped},
		Fn: func(events.GameEvent) {
			for _, p := range players.Players() {
				if _, y, _ := p.Pos.Block(); y <= cfg.Host.PlatformY {
					_ = players.Teleport(p.ID, spawn)
				}
			}
		},
	})

	bots := bot.NewManager(players, model, clock, nil)
	bots.Spawn(cfg.Host.World, spawn, bot.DefaultProfiles(cfg.Host.Bots))
	bus.Register(bots)

	engineDeps := []string{audioSvc.Name()}

	var terminal *render.Terminal
	var local core.Player
	if tui {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		local = players.Join("you", cfg.Host.World, spawn)
		terminal = render.NewTerminal(screen, model, players, reg, render.Options{
			World:    cfg.Host.World,
			LocalID:  local.ID,
			Hint:     hint,
			Banner:   banner,
			ColorTag: func(c core.Color) string { return catalog.Load().ColorName(c) },
		})
		out.presenters = append(out.presenters, terminal)
		out.sinks = append(out.sinks, terminal)
		clock.AfterTick(func(int64) { terminal.Draw() })
		if err := hub.Register(terminal); err != nil {
			return err
		}
		engineDeps = append(engineDeps, terminal.Name())

		core.SetCrashHandler(func(r any) {
			_ = terminal.Stop()
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCOLORMIX CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		})
	} else {
		out.sinks = append(out.sinks, notify.SinkFunc(func(m notify.Message) {
			logger.Info(m.Text, "style", m.Style.String(), "target", m.Target)
		}))
	}

	if cfg.Host.Listen != "" {
		gin.SetMode(gin.ReleaseMode)
		netCfg := network.DefaultConfig()
		netCfg.Address = cfg.Host.Listen
		netCfg.JWTSecret = cfg.Host.JWTSecret
		netCfg.SpawnWorld = cfg.Host.World
		netCfg.SpawnPos = spawn
		netCfg.ClickY = cfg.Host.PlatformY

		netHub := network.NewHub(netCfg, clock, players, facade, dispatcher, banner, reg)
		server := network.NewServer(netCfg, network.NewAuth(netCfg.JWTSecret), netHub, facade, dispatcher, reg)
		out.presenters = append(out.presenters, netHub)
		out.sinks = append(out.sinks, netHub)
		if err := hub.Register(network.NewService(netCfg, server)); err != nil {
			return err
		}
	}

	if err := hub.Register(engine.NewService(clock, engineDeps...)); err != nil {
		return err
	}

	// The clock is not running yet, so these run inline
	ctx := context.Background()
	corner := func(x, z int) core.BlockPos {
		return core.BlockPos{World: cfg.Host.World, X: x, Y: cfg.Host.PlatformY, Z: z}
	}
	if err := facade.ConfigureArea(ctx,
		corner(-defaultHalfWidth, -defaultHalfDepth),
		corner(defaultHalfWidth-1, defaultHalfDepth-1)); err != nil {
		return fmt.Errorf("configure default area: %w", err)
	}
	clock.Submit(bots.Respawn)

	if err := hub.InitAll(); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	logger.Info("colormix started", "services", hub.Names(), "tui", tui, "bots", cfg.Host.Bots, "listen", cfg.Host.Listen, "locale", cat.Locale())

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if tui {
		h := input.NewHandler(input.Deps{
			Exec:     clock,
			Mover:    players,
			Game:     facade,
			Commands: dispatcher,
			Prompt:   terminal,
			Replies:  terminal,
			Muter:    audioSvc.Manager(),
		}, command.Sender{ID: local.ID, Name: local.Name, Permissions: []string{"*"}}, cfg.Host.PlatformY)

		done := make(chan struct{})
		core.Go(func() {
			defer close(done)
			h.Run(sigCtx, terminal.Screen())
		})
		select {
		case <-done:
		case <-sigCtx.Done():
		}
	} else {
		<-sigCtx.Done()
	}

	return shutdown(facade, hub)
}

// shutdown ends a running game before the services go down
func shutdown(facade *game.Facade, hub *service.Hub) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if facade.IsActive() {
		if err := facade.Stop(ctx); err != nil && !errors.Is(err, game.ErrNotActive) {
			logger.Warn("stop game on shutdown", "err", err)
		}
	}
	err := hub.StopAll()
	logger.Info("colormix stopped")
	return err
}
