// Package render draws the play area, players and game overlays on a tcell screen
package render

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/colormix/area"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/effects"
	"github.com/lixenwraith/colormix/notify"
	"github.com/lixenwraith/colormix/status"
)

// Layout
const (
	gridTop    = 3
	gridLeft   = 2
	cellWidth  = 2 // terminal columns per block
	viewMargin = 3 // blocks shown around the play area

	logLines      = 6
	bannerTTL     = 8 // frames a banner survives without refresh
	fireworkTTL   = 6
	fallbackViewW = 16
	fallbackViewD = 10
)

// Scene is the play area as read by the renderer, on the tick goroutine
type Scene interface {
	Area() (area.Area, bool)
	ColorAt(x, z int) (core.Color, bool)
}

// Roster lists every player in the host world
type Roster interface {
	Players() []core.Player
}

// Options configure what the terminal shows
type Options struct {
	World    string // shown before an area is configured
	OriginX  int
	OriginZ  int
	LocalID  string // player whose targeted messages and banner are shown; empty shows all
	Hint     string // bottom row text outside command mode
	Banner   func(safe core.Color, glyphs string) string
	ColorTag func(c core.Color) string
}

type banner struct {
	text   string
	glyphs string
	safe   core.Color
	accent core.RGB
	age    int
}

type particle struct {
	x, z  int
	glyph rune
	color tcell.Color
	ttl   int
}

type viewport struct {
	world  string
	x0, z0 int
	w, d   int
}

// Terminal renders frames and implements effects.Presenter and notify.Sink
// Draw runs on the tick goroutine; overlay inputs arrive from any goroutine
type Terminal struct {
	screen tcell.Screen
	scene  Scene
	roster Roster
	opts   Options

	statActive    *atomic.Bool
	statPaused    *atomic.Bool
	statRound     *atomic.Int64
	statCountdown *atomic.Int64
	statOccupants *atomic.Int64
	statSafe      *status.AtomicString

	mu        sync.Mutex
	log       []notify.Message
	banner    *banner
	particles []particle
	prompt    string
	prompting bool
	view      viewport
	frames    int64

	finiOnce sync.Once
}

// NewTerminal creates a renderer over screen; reg may be nil
func NewTerminal(screen tcell.Screen, scene Scene, roster Roster, reg *status.Registry, opts Options) *Terminal {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if opts.Banner == nil {
		opts.Banner = func(safe core.Color, glyphs string) string { return glyphs + " " + safe.String() + " " + glyphs }
	}
	if opts.ColorTag == nil {
		opts.ColorTag = core.Color.String
	}
	return &Terminal{
		screen:        screen,
		scene:         scene,
		roster:        roster,
		opts:          opts,
		statActive:    reg.Bools.Get("game.active"),
		statPaused:    reg.Bools.Get("game.paused"),
		statRound:     reg.Ints.Get("game.round"),
		statCountdown: reg.Ints.Get("game.countdown"),
		statOccupants: reg.Ints.Get("game.occupants"),
		statSafe:      reg.Strings.Get("game.safe_color"),
	}
}

// Name implements service.Service
func (t *Terminal) Name() string { return "render" }

// Dependencies implements service.Service
func (t *Terminal) Dependencies() []string { return nil }

// Init takes over the terminal
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault.Background(RgbBackground))
	t.screen.EnableMouse()
	t.screen.HideCursor()
	return nil
}

// Start implements service.Service
func (t *Terminal) Start() error { return nil }

// Stop restores the terminal
func (t *Terminal) Stop() error {
	t.finiOnce.Do(t.screen.Fini)
	return nil
}

// Screen returns the underlying screen for the input loop
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Frames returns how many frames were drawn
func (t *Terminal) Frames() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}

// ShowSafeColor implements effects.Presenter
func (t *Terminal) ShowSafeColor(p core.Player, safe core.Color, frame effects.SparkleFrame) error {
	if t.opts.LocalID != "" && p.ID != t.opts.LocalID {
		return nil
	}
	t.mu.Lock()
	t.banner = &banner{
		text:   t.opts.Banner(safe, frame.Glyphs),
		glyphs: frame.Glyphs,
		safe:   safe,
		accent: frame.Color,
	}
	t.mu.Unlock()
	return nil
}

// SpawnFirework implements effects.Presenter
func (t *Terminal) SpawnFirework(world string, pos core.Vec3, color core.RGB) error {
	x, _, z := pos.Block()
	c := Tcell(color)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.view.world != "" && world != t.view.world {
		return nil
	}
	t.particles = append(t.particles, particle{x: x, z: z, glyph: '✸', color: c, ttl: fireworkTTL})
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		t.particles = append(t.particles, particle{x: x + d[0], z: z + d[1], glyph: '·', color: c, ttl: fireworkTTL - 2})
	}
	return nil
}

// Deliver implements notify.Sink
func (t *Terminal) Deliver(msg notify.Message) {
	if msg.Target != "" && t.opts.LocalID != "" && msg.Target != t.opts.LocalID {
		return
	}
	t.mu.Lock()
	t.log = append(t.log, msg)
	if len(t.log) > logLines {
		t.log = t.log[len(t.log)-logLines:]
	}
	t.mu.Unlock()
}

// SetPrompt shows text on the command line; active false restores the hint
func (t *Terminal) SetPrompt(text string, active bool) {
	t.mu.Lock()
	t.prompt = text
	t.prompting = active
	t.mu.Unlock()
}

// BlockAt maps a screen cell to a block column of the last drawn frame
func (t *Terminal) BlockAt(sx, sy int) (world string, x, z int, ok bool) {
	t.mu.Lock()
	v := t.view
	t.mu.Unlock()

	if sx < gridLeft || sy < gridTop {
		return "", 0, 0, false
	}
	cx := (sx - gridLeft) / cellWidth
	cz := sy - gridTop
	if cx >= v.w || cz >= v.d {
		return "", 0, 0, false
	}
	return v.world, v.x0 + cx, v.z0 + cz, true
}

// Draw renders one frame
func (t *Terminal) Draw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frames++
	t.view = t.viewport()

	base := tcell.StyleDefault.Background(RgbBackground)
	t.screen.Fill(' ', base)

	t.drawStatus(base)
	t.drawBanner(base)
	t.drawGrid(base)
	t.drawPlayers()
	t.drawParticles()
	t.drawLog(base)
	t.drawPrompt(base)

	t.screen.Show()
}

func (t *Terminal) viewport() viewport {
	if a, ok := t.scene.Area(); ok {
		b := a.Bounds()
		return viewport{
			world: a.World,
			x0:    b.MinX - viewMargin,
			z0:    b.MinZ - viewMargin,
			w:     b.Width() + 2*viewMargin,
			d:     b.Depth() + 2*viewMargin,
		}
	}
	return viewport{
		world: t.opts.World,
		x0:    t.opts.OriginX - fallbackViewW/2,
		z0:    t.opts.OriginZ - fallbackViewD/2,
		w:     fallbackViewW,
		d:     fallbackViewD,
	}
}

func (t *Terminal) drawStatus(base tcell.Style) {
	width, _ := t.screen.Size()
	style := base.Foreground(RgbStatusText).Background(RgbStatusBg)
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, 0, ' ', nil, style)
	}

	x := t.drawText(1, 0, "ColorMix", style.Bold(true))
	if !t.statActive.Load() {
		t.drawText(x+2, 0, "idle", style)
		return
	}

	x = t.drawText(x+2, 0, fmt.Sprintf("round %d", t.statRound.Load()), style)
	if safe, ok := core.ParseColor(t.statSafe.Load()); ok {
		x = t.drawText(x+2, 0, "██", style.Foreground(Tcell(safe.RGB())))
		x = t.drawText(x+1, 0, t.opts.ColorTag(safe), style)
	}
	x = t.drawText(x+2, 0, fmt.Sprintf("%ds", t.statCountdown.Load()), style)
	x = t.drawText(x+2, 0, fmt.Sprintf("players %d", t.statOccupants.Load()), style)
	if t.statPaused.Load() {
		t.drawText(x+2, 0, "PAUSED", style.Foreground(RgbPaused).Bold(true))
	}
}

func (t *Terminal) drawBanner(base tcell.Style) {
	b := t.banner
	if b == nil {
		return
	}
	b.age++
	if b.age > bannerTTL {
		t.banner = nil
		return
	}

	width, _ := t.screen.Size()
	start := max((width-runewidth.StringWidth(b.text))/2, 0)
	accent := base.Foreground(Tcell(b.accent)).Bold(true)
	dye := base.Foreground(Tcell(b.safe.RGB())).Bold(true)

	// glyphs on both ends take the frame accent, the label takes the dye
	g := runewidth.StringWidth(b.glyphs)
	total := runewidth.StringWidth(b.text)
	x := start
	for _, r := range b.text {
		style := dye
		if off := x - start; off < g || off >= total-g {
			style = accent
		}
		t.screen.SetContent(x, 1, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

func (t *Terminal) drawGrid(base tcell.Style) {
	v := t.view
	a, configured := t.scene.Area()
	var b area.Bounds
	if configured {
		b = a.Bounds()
	}

	for dz := 0; dz < v.d; dz++ {
		for dx := 0; dx < v.w; dx++ {
			wx, wz := v.x0+dx, v.z0+dz
			sx, sy := gridLeft+dx*cellWidth, gridTop+dz

			if !configured || !b.InFootprint(wx, wz) {
				continue
			}
			c, _ := t.scene.ColorAt(wx, wz)
			if c == core.ColorEmpty {
				style := base.Foreground(RgbFloorDot).Background(RgbFloor)
				t.screen.SetContent(sx, sy, '·', nil, style)
				t.screen.SetContent(sx+1, sy, ' ', nil, style)
				continue
			}
			style := base.Background(Tcell(c.RGB()))
			t.screen.SetContent(sx, sy, ' ', nil, style)
			t.screen.SetContent(sx+1, sy, ' ', nil, style)
		}
	}

	if configured {
		// mark the two configured corners
		corner := base.Foreground(RgbCorner).Bold(true)
		for _, c := range []core.BlockPos{a.A, a.B} {
			if sx, sy, ok := t.project(c.X, c.Z); ok {
				t.screen.SetContent(sx+1, sy, '+', nil, corner)
			}
		}
	}
}

func (t *Terminal) drawPlayers() {
	ground := 0
	a, configured := t.scene.Area()
	if configured {
		ground = a.Bounds().GroundY
	}

	for _, p := range t.roster.Players() {
		if p.World != t.view.world {
			continue
		}
		x, y, z := p.Pos.Block()
		sx, sy, ok := t.project(x, z)
		if !ok {
			continue
		}

		style := tcell.StyleDefault.Foreground(RgbPlayerFg).Background(RgbPlayerBg).Bold(true)
		if configured && y <= ground {
			style = style.Background(RgbFallen)
		}
		glyph := '?'
		for _, r := range p.Name {
			glyph = r
			break
		}
		t.screen.SetContent(sx, sy, glyph, nil, style)
	}
}

func (t *Terminal) drawParticles() {
	alive := t.particles[:0]
	for _, p := range t.particles {
		if sx, sy, ok := t.project(p.x, p.z); ok {
			t.screen.SetContent(sx, sy, p.glyph, nil, tcell.StyleDefault.Foreground(p.color).Background(RgbBackground).Bold(true))
		}
		p.ttl--
		if p.ttl > 0 {
			alive = append(alive, p)
		}
	}
	t.particles = alive
}

func (t *Terminal) drawLog(base tcell.Style) {
	_, height := t.screen.Size()
	top := gridTop + t.view.d + 1
	for i, msg := range t.log {
		y := top + i
		if y >= height-1 {
			return
		}
		t.drawText(gridLeft, y, msg.Text, logStyle(base, msg))
	}
}

func (t *Terminal) drawPrompt(base tcell.Style) {
	_, height := t.screen.Size()
	y := height - 1
	if y < 1 {
		return
	}
	if t.prompting {
		x := t.drawText(0, y, ":"+t.prompt, base.Foreground(RgbStatusText))
		t.screen.SetContent(x, y, ' ', nil, base.Reverse(true))
		return
	}
	t.drawText(0, y, t.opts.Hint, base.Foreground(RgbHint))
}

// project maps a block column to its screen cell, false when outside the view
func (t *Terminal) project(x, z int) (sx, sy int, ok bool) {
	dx, dz := x-t.view.x0, z-t.view.z0
	if dx < 0 || dz < 0 || dx >= t.view.w || dz >= t.view.d {
		return 0, 0, false
	}
	return gridLeft + dx*cellWidth, gridTop + dz, true
}

// drawText writes s from x and returns the column after it
func (t *Terminal) drawText(x, y int, s string, style tcell.Style) int {
	width, _ := t.screen.Size()
	for _, r := range s {
		if x >= width {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}
