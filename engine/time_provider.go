package engine

import "time"

// TimeProvider supplies wall-clock time for event timestamps
type TimeProvider interface {
	Now() time.Time
}

// SystemTime is the real clock
type SystemTime struct{}

// Now returns time.Now()
func (SystemTime) Now() time.Time {
	return time.Now()
}
