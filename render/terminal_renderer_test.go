package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/colormix/area"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/effects"
	"github.com/lixenwraith/colormix/notify"
	"github.com/lixenwraith/colormix/status"
)

type fixedScene struct {
	area  area.Area
	ok    bool
	color core.Color
}

func (s *fixedScene) Area() (area.Area, bool) { return s.area, s.ok }

func (s *fixedScene) ColorAt(x, z int) (core.Color, bool) {
	if !s.ok || !s.area.Bounds().InFootprint(x, z) {
		return core.ColorEmpty, false
	}
	if x == 1 && z == 1 {
		return core.ColorEmpty, true
	}
	return s.color, true
}

type fixedRoster []core.Player

func (r fixedRoster) Players() []core.Player { return r }

func newTestTerminal(t *testing.T, roster fixedRoster, reg *status.Registry, opts Options) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	a, err := area.New(
		core.BlockPos{World: "overworld", X: 0, Y: 64, Z: 0},
		core.BlockPos{World: "overworld", X: 3, Y: 64, Z: 2},
	)
	if err != nil {
		t.Fatal(err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminal(screen, &fixedScene{area: a, ok: true, color: core.ColorRed}, roster, reg, opts)
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = term.Stop() })
	screen.SetSize(80, 30)
	return term, screen
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func bgAt(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestGridCellsTakeDyeColor(t *testing.T) {
	term, screen := newTestTerminal(t, nil, nil, Options{})
	term.Draw()

	// block (0,0) sits viewMargin cells in from the grid origin
	sx, sy := gridLeft+viewMargin*cellWidth, gridTop+viewMargin
	if got := bgAt(screen, sx, sy); got != Tcell(core.ColorRed.RGB()) {
		t.Errorf("cell bg = %v, want red", got)
	}
	// vanished cell at (1,1)
	if r, _, _, _ := screen.GetContent(sx+cellWidth, sy+1); r != '·' {
		t.Errorf("empty cell glyph = %q", r)
	}
	// outside the footprint stays background
	if got := bgAt(screen, gridLeft, gridTop); got != RgbBackground {
		t.Errorf("margin bg = %v", got)
	}
}

func TestPlayersAndBlockAt(t *testing.T) {
	roster := fixedRoster{
		{ID: "1", Name: "ducky", World: "overworld", Pos: core.Vec3{X: 2.5, Y: 65, Z: 1.5}},
		{ID: "2", Name: "nether", World: "nether", Pos: core.Vec3{X: 2.5, Y: 65, Z: 1.5}},
	}
	term, screen := newTestTerminal(t, roster, nil, Options{})
	term.Draw()

	sx, sy := gridLeft+(2+viewMargin)*cellWidth, gridTop+1+viewMargin
	if r, _, _, _ := screen.GetContent(sx, sy); r != 'd' {
		t.Errorf("player glyph = %q, want d", r)
	}

	world, x, z, ok := term.BlockAt(sx+1, sy)
	if !ok || world != "overworld" || x != 2 || z != 1 {
		t.Errorf("BlockAt = %s %d %d %v", world, x, z, ok)
	}
	if _, _, _, ok := term.BlockAt(0, 0); ok {
		t.Error("status row must not map to a block")
	}
}

func TestLogFiltersTargetedMessages(t *testing.T) {
	term, screen := newTestTerminal(t, nil, nil, Options{LocalID: "me"})
	term.Deliver(notify.Message{Text: "Nobody won this round!", Style: notify.StyleWarning})
	term.Deliver(notify.Message{Target: "other", Text: "secret"})
	term.Deliver(notify.Message{Target: "me", Text: "First corner set!"})
	term.Draw()

	_, h := screen.Size()
	var all strings.Builder
	for y := 0; y < h; y++ {
		all.WriteString(row(screen, y))
	}
	text := all.String()
	if !strings.Contains(text, "Nobody won this round!") || !strings.Contains(text, "First corner set!") {
		t.Error("broadcast and own messages should be shown")
	}
	if strings.Contains(text, "secret") {
		t.Error("messages for other players must be hidden")
	}
}

func TestBannerExpires(t *testing.T) {
	term, screen := newTestTerminal(t, nil, nil, Options{})
	frame := effects.Sparkle(0)
	_ = term.ShowSafeColor(core.Player{ID: "x"}, core.ColorLime, frame)

	term.Draw()
	if !strings.Contains(row(screen, 1), "LIME") {
		t.Fatalf("banner row = %q", row(screen, 1))
	}
	for i := 0; i < bannerTTL; i++ {
		term.Draw()
	}
	if strings.TrimSpace(row(screen, 1)) != "" {
		t.Errorf("banner should expire, row = %q", row(screen, 1))
	}
	if got := term.Frames(); got != bannerTTL+1 {
		t.Errorf("frames = %d, want %d", got, bannerTTL+1)
	}
}

func TestStatusRowReadsRegistry(t *testing.T) {
	reg := status.NewRegistry()
	term, screen := newTestTerminal(t, nil, reg, Options{ColorTag: func(c core.Color) string { return strings.ToLower(c.String()) }})

	term.Draw()
	if !strings.Contains(row(screen, 0), "idle") {
		t.Errorf("idle status row = %q", row(screen, 0))
	}

	reg.Bools.Get("game.active").Store(true)
	reg.Bools.Get("game.paused").Store(true)
	reg.Ints.Get("game.round").Store(4)
	reg.Strings.Get("game.safe_color").Store("CYAN")
	term.Draw()

	got := row(screen, 0)
	for _, want := range []string{"round 4", "cyan", "PAUSED"} {
		if !strings.Contains(got, want) {
			t.Errorf("status row %q missing %q", got, want)
		}
	}
}

func TestFireworkParticlesFade(t *testing.T) {
	term, screen := newTestTerminal(t, nil, nil, Options{})
	term.Draw()
	_ = term.SpawnFirework("overworld", core.Vec3{X: 1, Y: 66, Z: 0}, core.RGBYellow)
	_ = term.SpawnFirework("nether", core.Vec3{X: 1, Y: 66, Z: 0}, core.RGBYellow)

	term.Draw()
	sx, sy := gridLeft+(1+viewMargin)*cellWidth, gridTop+viewMargin
	if r, _, _, _ := screen.GetContent(sx, sy); r != '✸' {
		t.Errorf("firework glyph = %q", r)
	}
	if n := len(term.particles); n != 5 {
		t.Errorf("particles = %d, want 5 from one world", n)
	}
	for i := 0; i < fireworkTTL; i++ {
		term.Draw()
	}
	if len(term.particles) != 0 {
		t.Error("particles should fade out")
	}
}
