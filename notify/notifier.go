// Package notify turns game events into localized lines for players
package notify

import (
	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/events"
	"github.com/lixenwraith/colormix/i18n"
)

// Style hints how a front-end should emphasize a line
type Style int

const (
	StyleInfo Style = iota
	StyleHeader
	StyleSuccess
	StyleWarning
	StyleCountdown
	StyleCelebration
)

// String returns the style name used on the wire
func (s Style) String() string {
	switch s {
	case StyleHeader:
		return "header"
	case StyleSuccess:
		return "success"
	case StyleWarning:
		return "warning"
	case StyleCountdown:
		return "countdown"
	case StyleCelebration:
		return "celebration"
	default:
		return "info"
	}
}

// Message is one rendered line
// Target is empty for broadcasts, otherwise the addressed player ID
type Message struct {
	Target string
	Text   string
	Style  Style
	Color  core.RGB // accent, zero when the style decides
}

// Sink delivers rendered messages
type Sink interface {
	Deliver(msg Message)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Message)

func (f SinkFunc) Deliver(msg Message) { f(msg) }

// MultiSink fans out to every sink
type MultiSink []Sink

func (m MultiSink) Deliver(msg Message) {
	for _, s := range m {
		s.Deliver(msg)
	}
}

// Notifier is an events.Handler rendering the game's broadcast and setup replies
type Notifier struct {
	cat  *i18n.Catalog
	sink Sink
}

// NewNotifier creates a notifier writing to sink
func NewNotifier(cat *i18n.Catalog, sink Sink) *Notifier {
	return &Notifier{cat: cat, sink: sink}
}

// SetCatalog swaps the catalog after a locale reload
func (n *Notifier) SetCatalog(cat *i18n.Catalog) {
	n.cat = cat
}

// EventTypes implements events.Handler
func (n *Notifier) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventRoundStarted,
		events.EventCountdownTick,
		events.EventCellsStripped,
		events.EventWinnerDeclared,
		events.EventNoPlayersLeft,
		events.EventNoWinner,
		events.EventGamePaused,
		events.EventGameResumed,
		events.EventGameStopped,
		events.EventSetupStep,
	}
}

// HandleEvent implements events.Handler
func (n *Notifier) HandleEvent(ev events.GameEvent) {
	switch ev.Type {
	case events.EventRoundStarted:
		p, ok := ev.Payload.(*events.RoundStartedPayload)
		if !ok {
			return
		}
		n.broadcast(StyleHeader, i18n.KeyRoundHeader, "round", p.Round)
		n.broadcast(StyleInfo, i18n.KeyPlayersCount, "count", p.Occupants)
		n.deliver(Message{
			Text:  n.cat.Render(i18n.KeySafeColor, "color", n.cat.ColorName(p.SafeColor)),
			Style: StyleHeader,
			Color: p.SafeColor.RGB(),
		})
		n.broadcast(StyleInfo, i18n.KeyCountdownInfo, "seconds", p.Seconds)

	case events.EventCountdownTick:
		if p, ok := ev.Payload.(*events.CountdownTickPayload); ok {
			n.deliver(Message{
				Text:  n.cat.Render(i18n.KeyCountdownRemaining, "seconds", p.Remaining),
				Style: StyleCountdown,
				Color: core.RGBRed,
			})
		}

	case events.EventCellsStripped:
		n.broadcast(StyleWarning, i18n.KeyUnsafeColorsRemoved)

	case events.EventWinnerDeclared:
		if p, ok := ev.Payload.(*events.WinnerPayload); ok {
			n.broadcast(StyleCelebration, i18n.KeyWinnerAnnouncement, "player", p.Winner.Name)
		}

	case events.EventNoPlayersLeft:
		n.broadcast(StyleWarning, i18n.KeyNoPlayersLeft)
	case events.EventNoWinner:
		n.broadcast(StyleWarning, i18n.KeyNoWinner)
	case events.EventGamePaused:
		n.broadcast(StyleWarning, i18n.KeyGamePaused)
	case events.EventGameResumed:
		n.broadcast(StyleSuccess, i18n.KeyGameResumed)
	case events.EventGameStopped:
		n.broadcast(StyleWarning, i18n.KeyGameStopped)

	case events.EventSetupStep:
		if p, ok := ev.Payload.(*events.SetupStepPayload); ok {
			n.setup(p)
		}
	}
}

func (n *Notifier) setup(p *events.SetupStepPayload) {
	tell := func(style Style, key string) {
		n.deliver(Message{Target: p.PlayerID, Text: n.cat.Render(key), Style: style})
	}
	switch p.Phase {
	case events.SetupArmed:
		tell(StyleInfo, i18n.KeyPlatformModeEnabled)
		tell(StyleInfo, i18n.KeyPlatformInstruction)
	case events.SetupFirstCorner:
		tell(StyleSuccess, i18n.KeyPlatformFirstCorner)
	case events.SetupComplete:
		tell(StyleSuccess, i18n.KeyPlatformSecondCorner)
	case events.SetupWorldMismatch:
		tell(StyleWarning, i18n.KeyPlatformWorld)
	}
}

// ActionBar renders the animated safe-color banner text
func (n *Notifier) ActionBar(safe core.Color, glyphs string) string {
	return glyphs + " " + n.cat.Render(i18n.KeyActionBar, "color", n.cat.ColorName(safe)) + " " + glyphs
}

func (n *Notifier) broadcast(style Style, key string, params ...any) {
	n.deliver(Message{Text: n.cat.Render(key, params...), Style: style})
}

func (n *Notifier) deliver(msg Message) {
	if n.sink != nil {
		n.sink.Deliver(msg)
	}
}
