package input

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/colormix/area"
	"github.com/lixenwraith/colormix/command"
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/logger"
	"github.com/lixenwraith/colormix/notify"
)

// Submitter queues work onto the tick goroutine
type Submitter interface {
	Submit(fn func())
}

// Mover moves players; called on the tick goroutine
type Mover interface {
	Walk(id string, dx, dz int) error
}

// Clicker feeds setup clicks to the game
type Clicker interface {
	Click(ctx context.Context, playerID string, pos core.BlockPos) (area.SetupStep, error)
}

// Commander executes command lines
type Commander interface {
	ExecuteLine(ctx context.Context, s command.Sender, line string) command.Reply
}

// Prompter shows the command line and maps screen cells to blocks
type Prompter interface {
	SetPrompt(text string, active bool)
	BlockAt(sx, sy int) (world string, x, z int, ok bool)
}

// Muter toggles sound
type Muter interface {
	ToggleMute() bool
}

// Deps are the collaborators of a Handler
type Deps struct {
	Exec     Submitter
	Mover    Mover
	Game     Clicker
	Commands Commander
	Prompt   Prompter
	Replies  notify.Sink
	Muter    Muter // optional
}

type mode int

const (
	modeNormal mode = iota
	modeCommand
)

// Handler interprets input for the local player
// Handle is called from the input goroutine only
type Handler struct {
	deps   Deps
	keys   *KeyTable
	sender command.Sender
	clickY int

	mode    mode
	buf     []rune
	buttons tcell.ButtonMask
}

// NewHandler creates a handler acting as sender; clicks target blocks at clickY
func NewHandler(deps Deps, sender command.Sender, clickY int) *Handler {
	return &Handler{
		deps:   deps,
		keys:   DefaultKeyTable(),
		sender: sender,
		clickY: clickY,
		buf:    make([]rune, 0, 32),
	}
}

// Run polls screen until it is finalized or a quit intent arrives
func (h *Handler) Run(ctx context.Context, screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if !h.Handle(ctx, ev) {
			return
		}
	}
}

// Handle processes one event; false means quit
func (h *Handler) Handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if h.mode == modeCommand {
			h.commandKey(ctx, ev)
			return true
		}
		return h.normalKey(ev)
	case *tcell.EventMouse:
		h.mouse(ctx, ev)
	}
	return true
}

func (h *Handler) normalKey(ev *tcell.EventKey) bool {
	intent := h.keys.Lookup(ev)
	if dx, dz, ok := intent.delta(); ok {
		id := h.sender.ID
		h.deps.Exec.Submit(func() {
			if err := h.deps.Mover.Walk(id, dx, dz); err != nil {
				logger.Debug("move failed", "player", id, "err", err)
			}
		})
		return true
	}

	switch intent {
	case IntentCommandMode:
		h.mode = modeCommand
		h.buf = h.buf[:0]
		h.deps.Prompt.SetPrompt("", true)
	case IntentToggleMute:
		if h.deps.Muter != nil {
			logger.Info("audio mute toggled", "muted", h.deps.Muter.ToggleMute())
		}
	case IntentQuit:
		return false
	}
	return true
}

func (h *Handler) commandKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		h.leaveCommand()
		return
	case tcell.KeyEnter:
		line := string(h.buf)
		h.leaveCommand()
		h.execute(ctx, line)
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(h.buf) == 0 {
			h.leaveCommand()
			return
		}
		h.buf = h.buf[:len(h.buf)-1]
	case tcell.KeyRune:
		h.buf = append(h.buf, ev.Rune())
	default:
		return
	}
	h.deps.Prompt.SetPrompt(string(h.buf), true)
}

func (h *Handler) leaveCommand() {
	h.mode = modeNormal
	h.buf = h.buf[:0]
	h.deps.Prompt.SetPrompt("", false)
}

func (h *Handler) execute(ctx context.Context, line string) {
	reply := h.deps.Commands.ExecuteLine(ctx, h.sender, line)
	style := notify.StyleSuccess
	if !reply.OK {
		style = notify.StyleWarning
	}
	for _, l := range reply.Lines {
		h.deps.Replies.Deliver(notify.Message{Target: h.sender.ID, Text: l, Style: style})
	}
}

// mouse reacts to fresh primary button presses only, not drags
func (h *Handler) mouse(ctx context.Context, ev *tcell.EventMouse) {
	prev := h.buttons
	h.buttons = ev.Buttons()
	if h.buttons&tcell.Button1 == 0 || prev&tcell.Button1 != 0 {
		return
	}

	sx, sy := ev.Position()
	world, x, z, ok := h.deps.Prompt.BlockAt(sx, sy)
	if !ok {
		return
	}
	pos := core.BlockPos{World: world, X: x, Y: h.clickY, Z: z}
	step, err := h.deps.Game.Click(ctx, h.sender.ID, pos)
	if err != nil {
		logger.Warn("setup click failed", "err", err)
		return
	}
	logger.Debug("setup click", "step", step.String(), "x", x, "z", z)
}
