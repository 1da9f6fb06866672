package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lixenwraith/colormix/config"
	"github.com/lixenwraith/colormix/game"
	"github.com/lixenwraith/colormix/i18n"
)

type fakeGame struct {
	state      game.State
	occupants  int
	err        error
	started    [2]int
	setupBy    string
	reloaded   *game.Settings
	applyCalls int
}

func (f *fakeGame) State(context.Context) (game.State, error)  { return f.state, f.err }
func (f *fakeGame) OccupantCount(context.Context) (int, error) { return f.occupants, nil }
func (f *fakeGame) Stop(context.Context) error                 { return f.err }
func (f *fakeGame) Pause(context.Context) error                { return f.err }
func (f *fakeGame) Resume(context.Context) error               { return f.err }

func (f *fakeGame) Start(_ context.Context, s, r int) error {
	if f.err != nil {
		return f.err
	}
	f.started = [2]int{s, r}
	return nil
}

func (f *fakeGame) Reload(_ context.Context, s game.Settings, apply func()) error {
	f.reloaded = &s
	apply()
	f.applyCalls++
	return nil
}

func (f *fakeGame) BeginSetup(_ context.Context, id string) error {
	f.setupBy = id
	return f.err
}

var admin = Sender{ID: "op", Name: "operator", Permissions: []string{PermAdmin}}

func newDispatcher(t *testing.T, g Game, load Loader) *Dispatcher {
	t.Helper()
	cat, err := i18n.New("en-US")
	if err != nil {
		t.Fatal(err)
	}
	return NewDispatcher(g, cat, config.GameConfig{StartingSeconds: 5, ChangeEveryRounds: 3}, load)
}

func TestStartArguments(t *testing.T) {
	tests := []struct {
		line    string
		ok      bool
		started [2]int
		first   string
	}{
		{"start", true, [2]int{5, 3}, "ColorMix has been started!"},
		{"start 10", true, [2]int{10, 3}, "ColorMix has been started!"},
		{"START 10 2", true, [2]int{10, 2}, "ColorMix has been started!"},
		{"start ten", false, [2]int{}, "Invalid number of seconds!"},
		{"start 0", false, [2]int{}, "The number of seconds must be greater than 0!"},
		{"start 5 x", false, [2]int{}, "Incorrect value of change after how many rounds!"},
		{"start 5 -1", false, [2]int{}, "The change after how many rounds must be greater than 0!"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			g := &fakeGame{}
			r := newDispatcher(t, g, nil).ExecuteLine(context.Background(), admin, tt.line)
			if r.OK != tt.ok {
				t.Fatalf("OK = %v, want %v (%v)", r.OK, tt.ok, r.Lines)
			}
			if r.Lines[0] != tt.first {
				t.Errorf("first line = %q, want %q", r.Lines[0], tt.first)
			}
			if g.started != tt.started {
				t.Errorf("started = %v, want %v", g.started, tt.started)
			}
		})
	}
}

func TestStartReportsSettings(t *testing.T) {
	r := newDispatcher(t, &fakeGame{}, nil).ExecuteLine(context.Background(), admin, "start 10 2")
	if len(r.Lines) != 2 || r.Lines[1] != "Starting seconds: 10, change every 2 rounds" {
		t.Errorf("lines = %q", r.Lines)
	}
}

func TestGameErrorsMapToMessages(t *testing.T) {
	tests := []struct {
		line string
		err  error
		want string
	}{
		{"start", game.ErrAreaNotConfigured, "First, set up the platform using setplatform!"},
		{"start", game.ErrAlreadyActive, "ColorMix already in progress!"},
		{"stop", game.ErrNotActive, "ColorMix is not active!"},
		{"pause", game.ErrAlreadyPaused, "ColorMix is already on hold!"},
		{"pause", game.ErrGameEnding, "The game is ending, it cannot be paused now!"},
		{"resume", game.ErrNotPaused, "ColorMix is not suspended!"},
		{"setplatform", game.ErrSetupWhileActive, "Stop the game before changing the platform!"},
		{"stop", fmt.Errorf("wrapped: %w", game.ErrNotActive), "ColorMix is not active!"},
		{"stop", errors.New("engine gone"), "engine gone"},
	}
	for _, tt := range tests {
		t.Run(tt.line+"/"+tt.err.Error(), func(t *testing.T) {
			r := newDispatcher(t, &fakeGame{err: tt.err}, nil).ExecuteLine(context.Background(), admin, tt.line)
			if r.OK || len(r.Lines) != 1 || r.Lines[0] != tt.want {
				t.Errorf("reply = %+v, want failure %q", r, tt.want)
			}
		})
	}
}

func TestPermissionAndRouting(t *testing.T) {
	g := &fakeGame{}
	d := newDispatcher(t, g, nil)
	ctx := context.Background()

	r := d.ExecuteLine(ctx, Sender{ID: "guest"}, "start")
	if r.OK || r.Lines[0] != "You do not have permission to use this command!" {
		t.Errorf("guest reply = %+v", r)
	}

	r = d.ExecuteLine(ctx, admin, "")
	if !r.OK || len(r.Lines) != len(i18n.HelpKeys) {
		t.Errorf("empty line should show help, got %+v", r)
	}

	r = d.ExecuteLine(ctx, admin, "jump")
	if r.OK || r.Lines[0] != "Unknown command: jump" {
		t.Errorf("unknown reply = %+v", r)
	}

	r = d.ExecuteLine(ctx, admin, "setplatform")
	if !r.OK || g.setupBy != "op" {
		t.Errorf("setplatform should arm for the issuer, got %+v by %q", r, g.setupBy)
	}

	r = d.ExecuteLine(ctx, admin, "pause")
	if !r.OK || r.Lines[0] != "You paused the game ColorMix!" {
		t.Errorf("pause reply = %+v", r)
	}
}

func TestStatus(t *testing.T) {
	g := &fakeGame{
		state:     game.State{Active: true, Round: 3, CurrentCountdown: 4},
		occupants: 2,
	}
	r := newDispatcher(t, g, nil).ExecuteLine(context.Background(), admin, "status")
	want := "active=true paused=false round=3 countdown=4 players=2"
	if !r.OK || r.Lines[0] != want {
		t.Errorf("status = %+v, want %q", r, want)
	}
}

func TestReload(t *testing.T) {
	g := &fakeGame{}
	next := config.Config{Game: config.GameConfig{
		StartingSeconds: 8, ChangeEveryRounds: 2, MinimumCountdown: 2, RoundDelay: 40,
	}}
	d := newDispatcher(t, g, func() (config.Config, error) { return next, nil })

	var hooked config.Config
	d.OnReload(func(cfg config.Config) { hooked = cfg })

	r := d.ExecuteLine(context.Background(), admin, "reload")
	if !r.OK || r.Lines[0] != "The configuration has been reloaded!" {
		t.Fatalf("reload reply = %+v", r)
	}
	if g.reloaded == nil || *g.reloaded != (game.Settings{MinimumCountdown: 2, RoundDelay: 40}) {
		t.Errorf("settings = %+v", g.reloaded)
	}
	if hooked.Game.StartingSeconds != 8 {
		t.Error("reload hook not applied")
	}
	if d.Defaults().StartingSeconds != 8 {
		t.Error("defaults not replaced")
	}

	d.ExecuteLine(context.Background(), admin, "start")
	if g.started != [2]int{8, 2} {
		t.Errorf("start after reload used %v", g.started)
	}
}

func TestReloadFailure(t *testing.T) {
	g := &fakeGame{}
	d := newDispatcher(t, g, func() (config.Config, error) { return config.Config{}, errors.New("bad env") })
	r := d.ExecuteLine(context.Background(), admin, "reload")
	if r.OK || r.Lines[0] != "Configuration reload failed: bad env" {
		t.Errorf("reply = %+v", r)
	}
	if g.applyCalls != 0 {
		t.Error("failed load must not touch the game")
	}
}
