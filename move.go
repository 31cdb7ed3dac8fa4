package cubestate

import (
	"fmt"
	"strings"
)

// Turn represents the direction and magnitude of a face turn.
type Turn int8

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Move is a single face turn.
type Move struct {
	Face Face // Which face to turn
	Turn Turn // Direction and amount
}

// Valid reports whether m is one of the 18 face turns.
func (m Move) Valid() bool {
	if !m.Face.Valid() {
		return false
	}
	switch m.Turn {
	case CW, CCW, Double:
		return true
	}
	return false
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return m.Face.String() + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
		// Double is its own inverse
	}
	return inv
}

// Description returns a human-readable description of the move.
func (m Move) Description() string {
	switch m.Turn {
	case CW:
		return m.Face.Name() + " face clockwise 90°"
	case CCW:
		return m.Face.Name() + " face counter-clockwise 90°"
	case Double:
		return m.Face.Name() + " face 180°"
	default:
		return "unknown move"
	}
}

// ParseMove parses one move token. Accepted tokens are exactly a face
// letter (U, D, F, B, L, R) optionally followed by ' or 2. Matching is
// case-sensitive and surrounding whitespace is not trimmed.
func ParseMove(s string) (Move, error) {
	if len(s) == 0 || len(s) > 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	face, err := ParseFace(s[:1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW // Default is clockwise
	if len(s) == 2 {
		switch s[1] {
		case '\'':
			turn = CCW
		case '2':
			turn = Double
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a whitespace-separated sequence of moves.
// Example: "R U R' U'"
// The first invalid token fails the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for i, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// ReverseMove returns the inverse of a move token: a ' suffix is dropped,
// a 2 suffix is kept, and anything else gains a ' suffix. The token is not
// validated.
func ReverseMove(token string) string {
	switch {
	case strings.HasSuffix(token, "'"):
		return strings.TrimSuffix(token, "'")
	case strings.HasSuffix(token, "2"):
		return token
	default:
		return token + "'"
	}
}

// InvertMoves returns the sequence that undoes moves: each move inverted,
// in reverse order.
func InvertMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
