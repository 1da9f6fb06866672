// Package input turns terminal events into player moves, setup clicks and commands
package input

// Intent is the semantic action behind a key
type Intent int

const (
	IntentNone Intent = iota
	IntentMoveNorth
	IntentMoveSouth
	IntentMoveWest
	IntentMoveEast
	IntentCommandMode
	IntentToggleMute
	IntentQuit
)

// delta returns the block step for movement intents
func (i Intent) delta() (dx, dz int, ok bool) {
	switch i {
	case IntentMoveNorth:
		return 0, -1, true
	case IntentMoveSouth:
		return 0, 1, true
	case IntentMoveWest:
		return -1, 0, true
	case IntentMoveEast:
		return 1, 0, true
	}
	return 0, 0, false
}
