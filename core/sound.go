package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundCountdown SoundType = iota // Last-seconds pling
	SoundRemoval                    // Unsafe cells stripped
	SoundFirework                   // Celebration burst
	SoundVictory                    // Winner declared
	SoundTypeCount
)

// String returns the lowercase sound name used in config and logs
func (s SoundType) String() string {
	switch s {
	case SoundCountdown:
		return "countdown"
	case SoundRemoval:
		return "removal"
	case SoundFirework:
		return "firework"
	case SoundVictory:
		return "victory"
	default:
		return "unknown"
	}
}
