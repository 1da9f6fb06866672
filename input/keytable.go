package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents in normal mode
type KeyTable struct {
	Keys  map[tcell.Key]Intent
	Runes map[rune]Intent
}

// DefaultKeyTable binds arrows, wasd and hjkl to movement
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Intent{
			tcell.KeyUp:    IntentMoveNorth,
			tcell.KeyDown:  IntentMoveSouth,
			tcell.KeyLeft:  IntentMoveWest,
			tcell.KeyRight: IntentMoveEast,
			tcell.KeyCtrlC: IntentQuit,
			tcell.KeyCtrlQ: IntentQuit,
			tcell.KeyCtrlS: IntentToggleMute,
		},
		Runes: map[rune]Intent{
			'w': IntentMoveNorth, 'k': IntentMoveNorth,
			's': IntentMoveSouth, 'j': IntentMoveSouth,
			'a': IntentMoveWest, 'h': IntentMoveWest,
			'd': IntentMoveEast, 'l': IntentMoveEast,
			':': IntentCommandMode,
			'm': IntentToggleMute,
			'q': IntentQuit,
		},
	}
}

// Lookup resolves a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.Keys[ev.Key()]
}
