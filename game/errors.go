package game

import "errors"

// Precondition failures reported to callers; never raised inside the tick loop
var (
	ErrAreaNotConfigured = errors.New("play area not configured")
	ErrAlreadyActive     = errors.New("game already active")
	ErrNotActive         = errors.New("game not active")
	ErrAlreadyPaused     = errors.New("game already paused")
	ErrNotPaused         = errors.New("game not paused")
	ErrGameEnding        = errors.New("game is ending")
	ErrInvalidSeconds    = errors.New("starting seconds must be at least 1")
	ErrInvalidRounds     = errors.New("change every rounds must be at least 1")
	ErrSetupWhileActive  = errors.New("area setup not allowed while a game is active")
)
