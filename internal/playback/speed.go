package playback

import (
	"fmt"
	"strings"
	"time"
)

// Speed is the auto-play rate. The numeric values match the stored user
// preference (1 = slow, 3 = fast).
type Speed int

const (
	Slow   Speed = 1
	Medium Speed = 2
	Fast   Speed = 3
)

// Interval returns the delay between auto-played moves.
func (s Speed) Interval() time.Duration {
	switch s {
	case Slow:
		return 2 * time.Second
	case Fast:
		return 500 * time.Millisecond
	default:
		return time.Second
	}
}

func (s Speed) String() string {
	switch s {
	case Slow:
		return "slow"
	case Medium:
		return "medium"
	case Fast:
		return "fast"
	default:
		return "unknown"
	}
}

// Faster returns the next faster speed, saturating at Fast.
func (s Speed) Faster() Speed {
	if s >= Fast {
		return Fast
	}
	return s + 1
}

// Slower returns the next slower speed, saturating at Slow.
func (s Speed) Slower() Speed {
	if s <= Slow {
		return Slow
	}
	return s - 1
}

// ParseSpeed parses "slow", "medium", "fast" or their numeric form 1..3.
func ParseSpeed(s string) (Speed, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow", "1":
		return Slow, nil
	case "medium", "2":
		return Medium, nil
	case "fast", "3":
		return Fast, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpeed, s)
	}
}
