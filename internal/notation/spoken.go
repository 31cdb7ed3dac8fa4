// Package notation phrases moves the way they are said while holding the
// cube white on top and green in front.
package notation

import (
	"strings"

	"github.com/SeamusWaldron/cubestate"
)

// Vertical faces turn up or down, horizontal layers rotate left or right
// and the front and back rotate like a clock. D is the "B"ottom layer.
var spoken = map[cubestate.Face][3]string{
	// clockwise, counter-clockwise, half turn
	cubestate.FaceR: {"R up", "R down", "R up x 2"},
	cubestate.FaceL: {"L down", "L up", "L down x 2"},
	cubestate.FaceU: {"T rotate right", "T rotate left", "T rotate right x 2"},
	cubestate.FaceD: {"B rotate right", "B rotate left", "B rotate right x 2"},
	cubestate.FaceF: {"F rotate clockwise", "F rotate anti-clockwise", "F rotate x 2"},
	cubestate.FaceB: {"Back rotate clockwise", "Back rotate anti-clockwise", "Back rotate x 2"},
}

// Spoken returns the spoken form of a move, or its notation for a move
// outside the 18 face turns.
func Spoken(m cubestate.Move) string {
	phrases, ok := spoken[m.Face]
	if !ok {
		return m.Notation()
	}
	switch m.Turn {
	case cubestate.CW:
		return phrases[0]
	case cubestate.CCW:
		return phrases[1]
	case cubestate.Double:
		return phrases[2]
	default:
		return m.Notation()
	}
}

// SpokenSequence returns the spoken moves separated by commas.
func SpokenSequence(moves []cubestate.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = Spoken(m)
	}
	return strings.Join(parts, ", ")
}
