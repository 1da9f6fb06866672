package i18n

// Placeholders use {name} and are substituted after catalog lookup
var enUS = map[string]string{
	KeyRoundHeader:          "=== ColorMix - Round {round} ===",
	KeyPlayersCount:         "Players in the game: {count}",
	KeySafeColor:            "Safe color: {color}",
	KeyCountdownInfo:        "Countdown: {seconds} seconds",
	KeyCountdownRemaining:   "{seconds}",
	KeyUnsafeColorsRemoved:  "The dangerous colors are gone!",
	KeyWinnerAnnouncement:   "🎉 {player} won the game ColorMix! 🎉",
	KeyNoPlayersLeft:        "All players have left the game!",
	KeyNoWinner:             "Nobody won this round!",
	KeyGameStarted:          "ColorMix has been started!",
	KeyGameSettings:         "Starting seconds: {seconds}, change every {rounds} rounds",
	KeyGameStopped:          "ColorMix was stopped!",
	KeyGamePaused:           "ColorMix has been suspended!",
	KeyGameResumed:          "ColorMix has been resumed!",
	KeyGamePausedByPlayer:   "You paused the game ColorMix!",
	KeyGameResumedByPlayer:  "You have resumed the game ColorMix!",
	KeyGameAlreadyActive:    "ColorMix already in progress!",
	KeyGameNotActive:        "ColorMix is not active!",
	KeyGameAlreadyPaused:    "ColorMix is already on hold!",
	KeyGameNotPaused:        "ColorMix is not suspended!",
	KeyGameEnding:           "The game is ending, it cannot be paused now!",
	KeyPlatformNotSet:       "First, set up the platform using setplatform!",
	KeyPlatformModeEnabled:  "Platform setup mode has been enabled!",
	KeyPlatformInstruction:  "Click on two opposite corners of the platform area!",
	KeyPlatformFirstCorner:  "First corner set! Click second corner.",
	KeyPlatformSecondCorner: "The second corner is set! The platform is ready.",
	KeyPlatformWorld:        "Both corners must be in the same world!",
	KeySetupWhileActive:     "Stop the game before changing the platform!",
	KeyNoPermission:         "You do not have permission to use this command!",
	KeyInvalidSeconds:       "Invalid number of seconds!",
	KeySecondsTooLow:        "The number of seconds must be greater than 0!",
	KeyInvalidRounds:        "Incorrect value of change after how many rounds!",
	KeyRoundsTooLow:         "The change after how many rounds must be greater than 0!",
	KeyUnknownCommand:       "Unknown command: {command}",
	KeyConfigReloaded:       "The configuration has been reloaded!",
	KeyConfigReloadFailed:   "Configuration reload failed: {error}",
	KeyStatusLine:           "active={active} paused={paused} round={round} countdown={seconds} players={count}",
	KeyActionBar:            "SAFE COLOR: {color}",
	KeyHelpHeader:           "=== ColorMix Commands ===",
	KeyHelpStart:            "start [seconds] [change_every_rounds] - Starts the game",
	KeyHelpStop:             "stop - Stops the game",
	KeyHelpPause:            "pause - Pauses the game",
	KeyHelpResume:           "resume - Resumes the game",
	KeyHelpSetPlatform:      "setplatform - Sets the platform area",
	KeyHelpReload:           "reload - Reloads the configuration",
	KeyHelpStatus:           "status - Shows the game state",
	KeyHelpExample:          "Example: start 10 2 (10 seconds, decreases every 2 rounds)",

	"color.WHITE":      "White",
	"color.ORANGE":     "Orange",
	"color.MAGENTA":    "Magenta",
	"color.LIGHT_BLUE": "Light Blue",
	"color.YELLOW":     "Yellow",
	"color.LIME":       "Lime",
	"color.PINK":       "Pink",
	"color.GRAY":       "Gray",
	"color.LIGHT_GRAY": "Light Gray",
	"color.CYAN":       "Cyan",
	"color.PURPLE":     "Purple",
	"color.BLUE":       "Blue",
	"color.BROWN":      "Brown",
	"color.GREEN":      "Green",
	"color.RED":        "Red",
	"color.BLACK":      "Black",
}

var plPL = map[string]string{
	KeyRoundHeader:          "=== ColorMix - Runda {round} ===",
	KeyPlayersCount:         "Graczy w grze: {count}",
	KeySafeColor:            "Bezpieczny kolor: {color}",
	KeyCountdownInfo:        "Odliczanie: {seconds} sekund",
	KeyUnsafeColorsRemoved:  "Niebezpieczne kolory zniknęły!",
	KeyWinnerAnnouncement:   "🎉 {player} wygrał grę ColorMix! 🎉",
	KeyNoPlayersLeft:        "Wszyscy gracze opuścili grę!",
	KeyNoWinner:             "Nikt nie wygrał tej rundy!",
	KeyGameStarted:          "ColorMix została rozpoczęta!",
	KeyGameSettings:         "Sekundy startowe: {seconds}, zmiana co {rounds} rundy",
	KeyGameStopped:          "ColorMix została zatrzymana!",
	KeyGamePaused:           "ColorMix została wstrzymana!",
	KeyGameResumed:          "ColorMix została wznowiona!",
	KeyGameAlreadyActive:    "ColorMix już trwa!",
	KeyGameNotActive:        "ColorMix nie jest aktywna!",
	KeyGameAlreadyPaused:    "ColorMix jest już wstrzymana!",
	KeyGameNotPaused:        "ColorMix nie jest wstrzymana!",
	KeyPlatformNotSet:       "Najpierw ustaw platformę za pomocą setplatform!",
	KeyPlatformModeEnabled:  "Tryb ustawiania platformy został włączony!",
	KeyPlatformInstruction:  "Kliknij dwa przeciwległe rogi obszaru platformy!",
	KeyPlatformFirstCorner:  "Pierwszy róg ustawiony! Kliknij drugi róg.",
	KeyPlatformSecondCorner: "Drugi róg ustawiony! Platforma jest gotowa.",
	KeyNoPermission:         "Nie masz uprawnień do tej komendy!",
	KeyInvalidSeconds:       "Nieprawidłowa liczba sekund!",
	KeySecondsTooLow:        "Liczba sekund musi być większa od 0!",
	KeyInvalidRounds:        "Nieprawidłowa liczba rund!",
	KeyRoundsTooLow:         "Liczba rund musi być większa od 0!",
	KeyConfigReloaded:       "Konfiguracja została przeładowana!",
	KeyActionBar:            "BEZPIECZNY KOLOR: {color}",
	KeyHelpHeader:           "=== Komendy ColorMix ===",
	KeyHelpStart:            "start [sekundy] [zmiana_co_rundy] - Rozpoczyna grę",
	KeyHelpExample:          "Przykład: start 10 2 (10 sekund, skraca się co 2 rundy)",

	"color.WHITE":      "Biały",
	"color.ORANGE":     "Pomarańczowy",
	"color.MAGENTA":    "Karmazynowy",
	"color.LIGHT_BLUE": "Jasnoniebieski",
	"color.YELLOW":     "Żółty",
	"color.LIME":       "Limonkowy",
	"color.PINK":       "Różowy",
	"color.GRAY":       "Szary",
	"color.LIGHT_GRAY": "Jasnoszary",
	"color.CYAN":       "Błękitny",
	"color.PURPLE":     "Fioletowy",
	"color.BLUE":       "Niebieski",
	"color.BROWN":      "Brązowy",
	"color.GREEN":      "Zielony",
	"color.RED":        "Czerwony",
	"color.BLACK":      "Czarny",
}
