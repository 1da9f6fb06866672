package i18n

// Message keys
const (
	KeyRoundHeader          = "round-header"
	KeyPlayersCount         = "players-count"
	KeySafeColor            = "safe-color"
	KeyCountdownInfo        = "countdown-info"
	KeyCountdownRemaining   = "countdown-remaining"
	KeyUnsafeColorsRemoved  = "unsafe-colors-removed"
	KeyWinnerAnnouncement   = "winner-announcement"
	KeyNoPlayersLeft        = "no-players-left"
	KeyNoWinner             = "no-winner"
	KeyGameStarted          = "game-started"
	KeyGameSettings         = "game-settings"
	KeyGameStopped          = "game-stopped"
	KeyGamePaused           = "game-paused"
	KeyGameResumed          = "game-resumed"
	KeyGamePausedByPlayer   = "game-paused-by-player"
	KeyGameResumedByPlayer  = "game-resumed-by-player"
	KeyGameAlreadyActive    = "game-already-active"
	KeyGameNotActive        = "game-not-active"
	KeyGameAlreadyPaused    = "game-already-paused"
	KeyGameNotPaused        = "game-not-paused"
	KeyGameEnding           = "game-ending"
	KeyPlatformNotSet       = "platform-not-set"
	KeyPlatformModeEnabled  = "platform-mode-enabled"
	KeyPlatformInstruction  = "platform-click-instruction"
	KeyPlatformFirstCorner  = "platform-first-corner"
	KeyPlatformSecondCorner = "platform-second-corner"
	KeyPlatformWorld        = "platform-world-mismatch"
	KeySetupWhileActive     = "setup-while-active"
	KeyNoPermission         = "no-permission"
	KeyInvalidSeconds       = "invalid-seconds"
	KeySecondsTooLow        = "seconds-too-low"
	KeyInvalidRounds        = "invalid-rounds"
	KeyRoundsTooLow         = "rounds-too-low"
	KeyUnknownCommand       = "unknown-command"
	KeyConfigReloaded       = "config-reloaded"
	KeyConfigReloadFailed   = "config-reload-failed"
	KeyStatusLine           = "status-line"
	KeyActionBar            = "action-bar-format"
	KeyHelpHeader           = "help-header"
	KeyHelpStart            = "help-start"
	KeyHelpStop             = "help-stop"
	KeyHelpPause            = "help-pause"
	KeyHelpResume           = "help-resume"
	KeyHelpSetPlatform      = "help-setplatform"
	KeyHelpReload           = "help-reload"
	KeyHelpStatus           = "help-status"
	KeyHelpExample          = "help-example"
)

// HelpKeys lists the help lines in display order
var HelpKeys = []string{
	KeyHelpHeader, KeyHelpStart, KeyHelpStop, KeyHelpPause, KeyHelpResume,
	KeyHelpSetPlatform, KeyHelpReload, KeyHelpStatus, KeyHelpExample,
}

// colorKeyPrefix prefixes dye identifiers for color name lookups ("color.LIGHT_BLUE")
const colorKeyPrefix = "color."
