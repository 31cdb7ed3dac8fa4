package cubestate

import (
	"fmt"
	"strings"
)

// Color represents a sticker color. Empty marks a sticker that has not
// been entered yet.
type Color byte

const (
	Empty  Color = iota // Not entered
	White               // Up face when solved
	Yellow              // Down face when solved
	Green               // Front face when solved
	Blue                // Back face when solved
	Orange              // Left face when solved
	Red                 // Right face when solved
)

// Colors lists the six sticker colors in face order (U, D, F, B, L, R).
var Colors = [6]Color{White, Yellow, Green, Blue, Orange, Red}

// EmptySymbol is the serialization symbol for an Empty sticker.
const EmptySymbol = '-'

func (c Color) String() string {
	switch c {
	case Empty:
		return "empty"
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	case Red:
		return "red"
	default:
		return "unknown"
	}
}

// Symbol returns the letter of the face this color belongs to when solved.
// This is the alphabet of the solver string.
func (c Color) Symbol() byte {
	switch c {
	case White:
		return 'U'
	case Yellow:
		return 'D'
	case Green:
		return 'F'
	case Blue:
		return 'B'
	case Orange:
		return 'L'
	case Red:
		return 'R'
	default:
		return EmptySymbol
	}
}

// Valid reports whether c is Empty or one of the six sticker colors.
func (c Color) Valid() bool {
	return c <= Red
}

// ColorFromSymbol decodes one solver string symbol.
func ColorFromSymbol(b byte) (Color, error) {
	switch b {
	case 'U':
		return White, nil
	case 'D':
		return Yellow, nil
	case 'F':
		return Green, nil
	case 'B':
		return Blue, nil
	case 'L':
		return Orange, nil
	case 'R':
		return Red, nil
	case EmptySymbol:
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: symbol %q", ErrInvalidColor, b)
	}
}

// ParseColor parses a color name ("white"), a face letter ("U") or a color
// initial ("W"). Matching is case-insensitive.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "-", "":
		return Empty, nil
	case "white", "w", "u":
		return White, nil
	case "yellow", "y", "d":
		return Yellow, nil
	case "green", "g", "f":
		return Green, nil
	case "blue", "b":
		return Blue, nil
	case "orange", "o", "l":
		return Orange, nil
	case "red", "r":
		return Red, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}
