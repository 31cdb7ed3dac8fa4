package cubestate

import (
	"fmt"
	"strings"
)

// Face identifies one of the six faces of the cube.
type Face byte

const (
	FaceU Face = iota // Up (White)
	FaceD             // Down (Yellow)
	FaceF             // Front (Green)
	FaceB             // Back (Blue)
	FaceL             // Left (Orange)
	FaceR             // Right (Red)
)

// Faces lists every face in storage order.
var Faces = [6]Face{FaceU, FaceD, FaceF, FaceB, FaceL, FaceR}

// SolverOrder is the face order of the solver string.
var SolverOrder = [6]Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

const (
	StickersPerFace = 9
	StickerCount    = 6 * StickersPerFace
	CenterIndex     = 4
)

func (f Face) String() string {
	switch f {
	case FaceU:
		return "U"
	case FaceD:
		return "D"
	case FaceF:
		return "F"
	case FaceB:
		return "B"
	case FaceL:
		return "L"
	case FaceR:
		return "R"
	default:
		return "?"
	}
}

// Name returns the long name of the face.
func (f Face) Name() string {
	switch f {
	case FaceU:
		return "Up"
	case FaceD:
		return "Down"
	case FaceF:
		return "Front"
	case FaceB:
		return "Back"
	case FaceL:
		return "Left"
	case FaceR:
		return "Right"
	default:
		return "Unknown"
	}
}

// Valid reports whether f names one of the six faces.
func (f Face) Valid() bool {
	return f <= FaceR
}

// Color returns the canonical center color of the face.
func (f Face) Color() Color {
	switch f {
	case FaceU:
		return White
	case FaceD:
		return Yellow
	case FaceF:
		return Green
	case FaceB:
		return Blue
	case FaceL:
		return Orange
	case FaceR:
		return Red
	default:
		return Empty
	}
}

// ParseFace parses a face letter (U, D, F, B, L, R).
func ParseFace(s string) (Face, error) {
	switch s {
	case "U":
		return FaceU, nil
	case "D":
		return FaceD, nil
	case "F":
		return FaceF, nil
	case "B":
		return FaceB, nil
	case "L":
		return FaceL, nil
	case "R":
		return FaceR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFace, s)
	}
}

// State is the sticker state of a 3x3 cube.
// Each face has 9 stickers indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The center (index 4) defines the face color and is never modified.
// State is a value type: assigning or copying it copies every sticker.
type State struct {
	// stickers[face*9+index] = color
	stickers [StickerCount]Color
}

// New creates a blank state: every sticker Empty except the six centers.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// NewSolved creates a state with every face filled with its center color.
func NewSolved() *State {
	s := &State{}
	for _, f := range Faces {
		for i := 0; i < StickersPerFace; i++ {
			s.stickers[slot(f, i)] = f.Color()
		}
	}
	return s
}

func slot(f Face, index int) int {
	return int(f)*StickersPerFace + index
}

func checkCoord(f Face, index int) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFace, f)
	}
	if index < 0 || index >= StickersPerFace {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return nil
}

// Reset restores the blank state in place.
func (s *State) Reset() {
	for i := range s.stickers {
		s.stickers[i] = Empty
	}
	for _, f := range Faces {
		s.stickers[slot(f, CenterIndex)] = f.Color()
	}
}

// SetColor replaces a single sticker. The state is left untouched when
// the face or index is invalid, the index is the center, or the color is
// unknown.
func (s *State) SetColor(f Face, index int, c Color) error {
	if err := checkCoord(f, index); err != nil {
		return err
	}
	if index == CenterIndex {
		return fmt.Errorf("%w: %s", ErrCenterImmutable, f)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidColor, c)
	}
	s.stickers[slot(f, index)] = c
	return nil
}

// Color returns the sticker at (face, index).
func (s *State) Color(f Face, index int) (Color, error) {
	if err := checkCoord(f, index); err != nil {
		return Empty, err
	}
	return s.stickers[slot(f, index)], nil
}

// Face returns a copy of the nine stickers of a face.
func (s *State) Face(f Face) ([StickersPerFace]Color, error) {
	var out [StickersPerFace]Color
	if !f.Valid() {
		return out, fmt.Errorf("%w: %d", ErrInvalidFace, f)
	}
	copy(out[:], s.stickers[slot(f, 0):slot(f, StickersPerFace)])
	return out, nil
}

// IsComplete returns true if no sticker is Empty.
func (s *State) IsComplete() bool {
	return s.EmptyCount() == 0
}

// EmptyCount returns the number of stickers still Empty.
func (s *State) EmptyCount() int {
	n := 0
	for _, c := range s.stickers {
		if c == Empty {
			n++
		}
	}
	return n
}

// CompletedFaceCount returns how many faces have all nine stickers set.
func (s *State) CompletedFaceCount() int {
	completed := 0
	for _, f := range Faces {
		full := true
		for i := 0; i < StickersPerFace; i++ {
			if s.stickers[slot(f, i)] == Empty {
				full = false
				break
			}
		}
		if full {
			completed++
		}
	}
	return completed
}

// ColorCounts returns how many stickers carry each non-empty color.
func (s *State) ColorCounts() map[Color]int {
	counts := make(map[Color]int, len(Colors))
	for _, c := range s.stickers {
		if c != Empty {
			counts[c]++
		}
	}
	return counts
}

// IsValid returns true if the state is complete and every color appears
// exactly nine times. It does not check that the arrangement is reachable
// on a physical cube.
func (s *State) IsValid() bool {
	return s.Validate() == nil
}

// Validate is IsValid with the reason for rejection.
func (s *State) Validate() error {
	if n := s.EmptyCount(); n > 0 {
		return fmt.Errorf("%w: %d stickers empty", ErrIncomplete, n)
	}
	counts := s.ColorCounts()
	for _, c := range Colors {
		if counts[c] != StickersPerFace {
			return fmt.Errorf("%w: %s appears %d times", ErrColorImbalance, c, counts[c])
		}
	}
	return nil
}

// IsSolved returns true if every face shows only its center color.
func (s *State) IsSolved() bool {
	for _, f := range Faces {
		expected := f.Color()
		for i := 0; i < StickersPerFace; i++ {
			if s.stickers[slot(f, i)] != expected {
				return false
			}
		}
	}
	return true
}

// MisplacedCount returns how many stickers differ from their face's center
// color. It is 0 exactly when the state is solved.
func (s *State) MisplacedCount() int {
	n := 0
	for _, f := range Faces {
		expected := f.Color()
		for i := 0; i < StickersPerFace; i++ {
			if s.stickers[slot(f, i)] != expected {
				n++
			}
		}
	}
	return n
}

// Clone creates an independent deep copy of the state.
func (s *State) Clone() *State {
	clone := *s
	return &clone
}

// Equal reports whether both states carry the same stickers.
func (s *State) Equal(o *State) bool {
	if o == nil {
		return false
	}
	return s.stickers == o.stickers
}

// SolverString serializes the state as 54 symbols, face blocks in
// U, R, F, D, L, B order, each block row-major.
func (s *State) SolverString() string {
	var b strings.Builder
	b.Grow(StickerCount)
	for _, f := range SolverOrder {
		for i := 0; i < StickersPerFace; i++ {
			b.WriteByte(s.stickers[slot(f, i)].Symbol())
		}
	}
	return b.String()
}

// ParseSolverString decodes a string produced by SolverString.
func ParseSolverString(str string) (*State, error) {
	if len(str) != StickerCount {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrInvalidStateString, len(str), StickerCount)
	}
	s := &State{}
	for block, f := range SolverOrder {
		for i := 0; i < StickersPerFace; i++ {
			pos := block*StickersPerFace + i
			c, err := ColorFromSymbol(str[pos])
			if err != nil {
				return nil, fmt.Errorf("%w: position %d: %v", ErrInvalidStateString, pos, err)
			}
			if i == CenterIndex && c != f.Color() {
				return nil, fmt.Errorf("%w: center of %s is %s", ErrInvalidStateString, f, c)
			}
			s.stickers[slot(f, i)] = c
		}
	}
	return s, nil
}

// MarshalText encodes the state as its solver string.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.SolverString()), nil
}

// UnmarshalText decodes a solver string into the state.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseSolverString(string(text))
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// String returns an unfolded net of the cube.
func (s *State) String() string {
	var b strings.Builder

	row := func(f Face, r int) {
		for col := 0; col < 3; col++ {
			b.WriteByte(s.stickers[slot(f, r*3+col)].Symbol())
			b.WriteByte(' ')
		}
	}

	// U face (indented)
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(FaceU, r)
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for r := 0; r < 3; r++ {
		for _, f := range []Face{FaceL, FaceF, FaceR, FaceB} {
			row(f, r)
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(FaceD, r)
		b.WriteString("\n")
	}

	return b.String()
}
